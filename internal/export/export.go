// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes single source pages to standalone PDF files with
// deterministic names.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// PageSource is the output side of the document collaborator.
type PageSource interface {
	// ExtractPage returns a serialized one-page document holding only the
	// page at index.
	ExtractPage(index int) (io.Reader, error)
}

// Naming is the run-scoped context every output file name is built from.
type Naming struct {
	// OutputDir is the directory files are written into.
	OutputDir string

	// SiteCode is the upper-cased input base name appended to every file.
	SiteCode string
}

// SiteCode derives the site code from an input path: the base name without
// extension, upper-cased ("charts/gmad.pdf" -> "GMAD").
func SiteCode(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base)))
}

// NamingFor returns the naming context for inputPath. Files go to
// <root>/<SITE>, where root defaults to the input file's directory.
func NamingFor(inputPath, root string) Naming {
	site := SiteCode(inputPath)
	if root == "" {
		root = filepath.Dir(inputPath)
	}
	return Naming{OutputDir: filepath.Join(root, site), SiteCode: site}
}

// FileName returns the bare file name for the page at index:
// "<NN>_<title> - <SITE>.pdf" with a 1-based, zero-padded page number.
func (n Naming) FileName(index int, title string) string {
	return fmt.Sprintf("%02d_%s - %s.pdf", index+1, title, n.SiteCode)
}

// Path returns the full output path for the page at index.
func (n Naming) Path(index int, title string) string {
	return filepath.Join(n.OutputDir, n.FileName(index, title))
}

// Error reports a failed export of one page.
type Error struct {
	// Page is the 1-based page number.
	Page int
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("exporting page %d to %s: %v", e.Page, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Exporter writes pages from a PageSource using a fixed Naming.
type Exporter struct {
	src    PageSource
	naming Naming
}

// New returns an Exporter for src.
func New(src PageSource, naming Naming) *Exporter {
	return &Exporter{src: src, naming: naming}
}

// Naming returns the exporter's naming context.
func (e *Exporter) Naming() Naming { return e.naming }

// Export writes the page at index to its named file and returns the path and
// the number of bytes written. Failures are returned as *Error; a partially
// written file is removed.
func (e *Exporter) Export(index int, title string) (path string, n int64, err error) {
	path = e.naming.Path(index, title)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			n, err = 0, &Error{Page: index + 1, Path: path, Err: err}
		}
	}()

	page, err := e.src.ExtractPage(index)
	if err != nil {
		return path, 0, err
	}
	n, err = writeFile(path, page)
	return path, n, err
}

// writeFile copies r into a new file at path. The file is closed on every
// path out; a failed write removes it.
func writeFile(path string, r io.Reader) (n int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing: %w", cerr)
		}
		if err != nil {
			if rerr := os.Remove(path); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
				err = errors.Join(err, rerr)
			}
		}
	}()

	n, err = io.Copy(f, r)
	if err != nil {
		return n, fmt.Errorf("writing: %w", err)
	}
	return n, nil
}
