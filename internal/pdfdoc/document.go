// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfdoc adapts third-party PDF libraries to the collaborator
// interfaces the splitter consumes.
//
// Page structure, geometry and single-page export come from pdfcpu. Text
// comes from ledongthuc/pdf, which exposes positioned text runs for layout
// reconstruction. Both read the same in-memory copy of the file.
package pdfdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/chart-splitter/pkg/types"
)

// ErrNoText is returned by the text methods when the text layer of the file
// could not be parsed. Page structure and export remain available.
var ErrNoText = errors.New("text layer unavailable")

// Document is an opened source PDF.
type Document struct {
	name    string
	ctx     *model.Context
	text    *pdf.Reader
	textErr error
}

// Open reads and parses the PDF at path. Any failure here is fatal to a run.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Load(path, data)
}

// Load parses an in-memory PDF. name is used in error messages only.
func Load(name string, data []byte) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("parsing %s: panic: %v", name, r)
		}
	}()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	d := &Document{name: name, ctx: ctx}
	d.text, d.textErr = openText(data)
	return d, nil
}

func openText(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("%w: panic: %v", ErrNoText, p)
		}
	}()
	r, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoText, err)
	}
	return r, nil
}

// Name returns the name the document was opened with.
func (d *Document) Name() string { return d.name }

// TextErr reports why the text layer is unavailable, or nil.
func (d *Document) TextErr() error { return d.textErr }

// NumPages returns the number of pages in the page tree.
func (d *Document) NumPages() int { return d.ctx.PageCount }

// PageInfo returns the rotation and media box of the page at index,
// including attributes inherited from the page tree.
func (d *Document) PageInfo(index int) (info types.PageInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading page %d: panic: %v", index+1, r)
		}
	}()

	if err := d.checkIndex(index); err != nil {
		return types.PageInfo{}, err
	}
	_, _, inherited, err := d.ctx.PageDict(index+1, false)
	if err != nil {
		return types.PageInfo{}, fmt.Errorf("reading page %d: %w", index+1, err)
	}

	info = types.PageInfo{Index: index}
	if inherited == nil {
		return info, nil
	}
	info.Rotate = inherited.Rotate
	if mb := inherited.MediaBox; mb != nil {
		info.MediaBox = types.Box{LLX: mb.LL.X, LLY: mb.LL.Y, URX: mb.UR.X, URY: mb.UR.Y}
		info.HasBox = true
	}
	return info, nil
}

// PlainText returns the text of the page at index, one line per baseline
// from top to bottom. Pages without a text layer yield the empty string.
func (d *Document) PlainText(index int) (string, error) {
	runs, err := d.runs(index)
	if err != nil {
		return "", fmt.Errorf("extracting text of page %d: %w", index+1, err)
	}
	return renderPlain(runs), nil
}

// LayoutText returns the text of the page at index laid out on a character
// grid, keeping only runs that start inside crop.
func (d *Document) LayoutText(index int, crop types.Box) (string, error) {
	runs, err := d.runs(index)
	if err != nil {
		return "", fmt.Errorf("extracting layout text of page %d: %w", index+1, err)
	}
	return renderLayout(runs, crop), nil
}

// runs returns the positioned text runs of the page at index.
func (d *Document) runs(index int) (runs []textRun, err error) {
	p, err := d.textPage(index)
	if err != nil || p.V.IsNull() {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			runs, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	content := p.Content()
	runs = make([]textRun, 0, len(content.Text))
	for _, t := range content.Text {
		runs = append(runs, textRun{X: t.X, Y: t.Y, W: t.W, FontSize: t.FontSize, S: t.S})
	}
	return runs, nil
}

// ExtractPage returns a standalone one-page PDF holding only the page at
// index.
func (d *Document) ExtractPage(index int) (r io.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("extracting page %d: panic: %v", index+1, p)
		}
	}()

	if err := d.checkIndex(index); err != nil {
		return nil, err
	}
	r, err = api.ExtractPage(d.ctx, index+1)
	if err != nil {
		return nil, fmt.Errorf("extracting page %d: %w", index+1, err)
	}
	return r, nil
}

func (d *Document) textPage(index int) (pdf.Page, error) {
	if d.textErr != nil {
		return pdf.Page{}, d.textErr
	}
	if err := d.checkIndex(index); err != nil {
		return pdf.Page{}, err
	}
	if index >= d.text.NumPage() {
		return pdf.Page{}, fmt.Errorf("page %d: %w: text reader sees %d pages", index+1, ErrNoText, d.text.NumPage())
	}
	return d.text.Page(index + 1), nil
}

func (d *Document) checkIndex(index int) error {
	if index < 0 || index >= d.ctx.PageCount {
		return fmt.Errorf("page index %d out of range [0, %d)", index, d.ctx.PageCount)
	}
	return nil
}
