// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package split

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/chart-splitter/internal/export"
	"github.com/pdiddy/chart-splitter/pkg/types"
)

// fakePage describes one page of a fakeDocument.
type fakePage struct {
	rotate     int
	text       string
	layout     string
	infoErr    error
	infoPanic  bool
	textPanic  bool
	exportErrs int // number of export calls that fail before one succeeds
}

// fakeDocument implements Document over in-memory pages.
type fakeDocument struct {
	pages       []*fakePage
	layoutCalls int
}

func (d *fakeDocument) NumPages() int { return len(d.pages) }

func (d *fakeDocument) PageInfo(index int) (types.PageInfo, error) {
	p := d.pages[index]
	if p.infoPanic {
		panic("broken page tree")
	}
	if p.infoErr != nil {
		return types.PageInfo{}, p.infoErr
	}
	return types.PageInfo{
		Index:    index,
		Rotate:   p.rotate,
		MediaBox: types.Box{URX: 612, URY: 792},
		HasBox:   true,
	}, nil
}

func (d *fakeDocument) PlainText(index int) (string, error) {
	if d.pages[index].textPanic {
		panic("bad font program")
	}
	return d.pages[index].text, nil
}

func (d *fakeDocument) LayoutText(index int, _ types.Box) (string, error) {
	d.layoutCalls++
	return d.pages[index].layout, nil
}

func (d *fakeDocument) ExtractPage(index int) (io.Reader, error) {
	p := d.pages[index]
	if p.exportErrs > 0 {
		p.exportErrs--
		return nil, errors.New("page content is corrupt")
	}
	return strings.NewReader(fmt.Sprintf("%%PDF-1.7 page %d", index+1)), nil
}

func testNaming(t *testing.T) export.Naming {
	t.Helper()
	return export.NamingFor(filepath.Join(t.TempDir(), "gmad.pdf"), "")
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

func TestRun_OneFilePerPage(t *testing.T) {
	doc := &fakeDocument{pages: []*fakePage{
		{text: "JEPPESEN\nSTAR\nAGALI 2A ARRIVAL\nRWY 27"},
		{text: "SID\nKEGAG 1B DEPARTURE"},
		{text: "ILS Rwy 27L"},
		{text: "GMAD 20-3B"},
		{text: ""},
	}}
	naming := testNaming(t)
	var out bytes.Buffer

	report, err := New(doc, naming, types.SplitConfig{}, nil).Run("gmad.pdf", &out)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"01_STAR AGALI2A RWY 27 - GMAD.pdf",
		"02_SID KEGAG1B RWY Unknown - GMAD.pdf",
		"03_ILS RWY 27L - GMAD.pdf",
		"04_Chart 20-3B - GMAD.pdf",
		"05_Untitled_Page_5 - GMAD.pdf",
	}, listDir(t, naming.OutputDir))

	assert.Equal(t, 5, report.Total())
	assert.Equal(t, 5, report.Exported())
	assert.Equal(t, 1, report.Placeholders())
	assert.False(t, report.HasFailures())
	assert.Equal(t, "GMAD", report.SiteCode)
	for i, p := range report.Pages {
		assert.Equal(t, i+1, p.Page)
		assert.Equal(t, int64(len(fmt.Sprintf("%%PDF-1.7 page %d", i+1))), p.Bytes)
	}

	log := out.String()
	assert.Equal(t, 4, strings.Count(log, "saved:"))
	assert.Contains(t, log, "warning: 05_Untitled_Page_5 - GMAD.pdf")
	assert.Contains(t, log, "Split summary: 5 saved, 1 placeholders, 0 failed (total: 5")
	assert.Contains(t, log, "All charts split into: "+naming.OutputDir)
}

func TestRun_Placeholders(t *testing.T) {
	tests := []struct {
		name      string
		page      *fakePage
		wantTitle string
		wantCat   types.Category
		wantErr   string
	}{
		{
			name:      "no text",
			page:      &fakePage{text: "   \n\n"},
			wantTitle: "Untitled_Page_1",
			wantCat:   types.CategoryUntitled,
		},
		{
			name:      "only footer and numbers",
			page:      &fakePage{text: "Printed from JeppView 2026\n12345678901"},
			wantTitle: "Untitled_Page_1",
			wantCat:   types.CategoryUntitled,
		},
		{
			name:      "extraction panic",
			page:      &fakePage{textPanic: true},
			wantTitle: "Untitled_Page_1",
			wantCat:   types.CategoryUntitled,
		},
		{
			name:      "page info error",
			page:      &fakePage{infoErr: errors.New("missing MediaBox"), text: "ILS Rwy 27L"},
			wantTitle: "Error_Page_1",
			wantCat:   types.CategoryError,
			wantErr:   "missing MediaBox",
		},
		{
			name:      "page info panic",
			page:      &fakePage{infoPanic: true},
			wantTitle: "Error_Page_1",
			wantCat:   types.CategoryError,
			wantErr:   "broken page tree",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &fakeDocument{pages: []*fakePage{tt.page}}
			naming := testNaming(t)
			var out bytes.Buffer

			report, err := New(doc, naming, types.SplitConfig{}, nil).Run("gmad.pdf", &out)
			require.NoError(t, err)
			require.Len(t, report.Pages, 1)

			p := report.Pages[0]
			assert.Equal(t, tt.wantTitle, p.Title)
			assert.Equal(t, tt.wantCat, p.Category)
			assert.Equal(t, types.PageExported, p.Status)
			assert.True(t, p.Placeholder())
			if tt.wantErr != "" {
				assert.Contains(t, p.Error, tt.wantErr)
			} else {
				assert.Empty(t, p.Error)
			}
			assert.FileExists(t, naming.Path(0, tt.wantTitle))
			assert.Contains(t, out.String(), "warning:")
		})
	}
}

func TestRun_RotatedPageUsesLayoutText(t *testing.T) {
	doc := &fakeDocument{pages: []*fakePage{
		{rotate: 90, text: "fragmented", layout: "\n\nILS Rwy 27L\n\n\n"},
	}}
	naming := testNaming(t)

	report, err := New(doc, naming, types.SplitConfig{}, nil).Run("gmad.pdf", io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 1, doc.layoutCalls)
	assert.Equal(t, "ILS RWY 27L", report.Pages[0].Title)
}

func TestRun_ExportRetry(t *testing.T) {
	doc := &fakeDocument{pages: []*fakePage{
		{text: "ILS Rwy 27L", exportErrs: 1},
		{text: "Noise Abatement Procedures", exportErrs: 2},
		{text: "TRIP KIT INDEX"},
	}}
	naming := testNaming(t)
	var out bytes.Buffer

	report, err := New(doc, naming, types.SplitConfig{}, nil).Run("gmad.pdf", &out)
	require.NoError(t, err)
	require.Len(t, report.Pages, 3)

	retried := report.Pages[0]
	assert.Equal(t, "Error_Page_1", retried.Title)
	assert.Equal(t, types.CategoryError, retried.Category)
	assert.Equal(t, types.PageExported, retried.Status)
	assert.Contains(t, retried.Error, "page content is corrupt")

	failed := report.Pages[1]
	assert.Equal(t, types.PageFailed, failed.Status)
	assert.Zero(t, failed.Bytes)
	assert.Contains(t, failed.Error, "page content is corrupt")

	assert.Equal(t, types.PageExported, report.Pages[2].Status)
	assert.True(t, report.HasFailures())
	assert.Equal(t, 1, report.Failed())

	assert.Equal(t, []string{
		"01_Error_Page_1 - GMAD.pdf",
		"03_TRIP KIT INDEX - GMAD.pdf",
	}, listDir(t, naming.OutputDir))
	assert.Contains(t, out.String(), "failed:  page 2")
	assert.Contains(t, out.String(), "1 failed (total: 3")
}

func TestRun_DryRun(t *testing.T) {
	doc := &fakeDocument{pages: []*fakePage{
		{text: "ILS Rwy 27L"},
		{text: ""},
	}}
	naming := testNaming(t)
	var out bytes.Buffer

	report, err := New(doc, naming, types.SplitConfig{DryRun: true}, nil).Run("gmad.pdf", &out)
	require.NoError(t, err)

	assert.NoDirExists(t, naming.OutputDir)
	assert.True(t, report.DryRun)
	assert.Equal(t, 2, report.Planned())
	assert.Equal(t, naming.Path(0, "ILS RWY 27L"), report.Pages[0].Path)
	assert.Equal(t, naming.Path(1, "Untitled_Page_2"), report.Pages[1].Path)
	assert.Contains(t, out.String(), "planned: 01_ILS RWY 27L - GMAD.pdf")
	assert.Contains(t, out.String(), "Charts would be split into: "+naming.OutputDir)
}

func TestRun_Deterministic(t *testing.T) {
	pages := func() []*fakePage {
		return []*fakePage{
			{text: "STAR BUVAG 3B RWY 09L"},
			{text: "Revision Letter A Cycle 2401 effective"},
			{infoErr: errors.New("bad dictionary")},
		}
	}
	naming := testNaming(t)

	first, err := New(&fakeDocument{pages: pages()}, naming, types.SplitConfig{}, nil).Run("gmad.pdf", io.Discard)
	require.NoError(t, err)
	names := listDir(t, naming.OutputDir)

	second, err := New(&fakeDocument{pages: pages()}, naming, types.SplitConfig{}, nil).Run("gmad.pdf", io.Discard)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("reports differ between runs (-first +second):\n%s", diff)
	}
	assert.Equal(t, names, listDir(t, naming.OutputDir))
}

func TestRun_MaxTitleLength(t *testing.T) {
	doc := &fakeDocument{pages: []*fakePage{{text: "Airport Information For GMAD"}}}
	cfg := types.SplitConfig{ClassifyConfig: types.ClassifyConfig{MaxTitleLength: 12}}

	report, err := New(doc, testNaming(t), cfg, nil).Run("gmad.pdf", io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "Airport Info", report.Pages[0].Title)
}

func TestRun_OutputDirectoryUnwritable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	naming := export.Naming{OutputDir: filepath.Join(blocker, "GMAD"), SiteCode: "GMAD"}

	_, err := New(&fakeDocument{pages: []*fakePage{{}}}, naming, types.SplitConfig{}, nil).Run("gmad.pdf", io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating output directory")
}
