// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package split

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/chart-splitter/internal/export"
	"github.com/pdiddy/chart-splitter/internal/pdfdoc"
	"github.com/pdiddy/chart-splitter/internal/pdfdoc/pdftest"
	"github.com/pdiddy/chart-splitter/pkg/types"
)

func TestRun_GeneratedDocument(t *testing.T) {
	data := pdftest.Build(
		pdftest.Page{Content: pdftest.Lines(72, 700, 14, "JEPPESEN", "STAR", "AGALI 2A ARRIVAL", "RWY 27")},
		pdftest.Page{Content: pdftest.Block(72, 700, "SID") + "\n" + pdftest.Block(72, 680, "KEGAG 1B DEPARTURE")},
		pdftest.Page{Rotate: 90, Content: pdftest.Block(72, 700, "ILS Rwy 27L")},
		pdftest.Page{Content: pdftest.Lines(72, 760, 20, "Printed from JeppView", "Casablanca Mohammed V Intl")},
		pdftest.Page{Content: pdftest.Block(72, 700, "GMAD 20-3B")},
		pdftest.Page{},
	)
	input := filepath.Join(t.TempDir(), "gmad.pdf")
	require.NoError(t, os.WriteFile(input, data, 0o644))

	doc, err := pdfdoc.Open(input)
	require.NoError(t, err)
	require.NoError(t, doc.TextErr())

	naming := export.NamingFor(input, "")
	report, err := New(doc, naming, types.SplitConfig{}, nil).Run(input, io.Discard)
	require.NoError(t, err)

	want := []string{
		"STAR AGALI2A RWY 27",
		"SID KEGAG1B RWY Unknown",
		"ILS RWY 27L",
		"Casablanca Mohammed V Intl",
		"Chart 20-3B",
		"Untitled_Page_6",
	}
	require.Len(t, report.Pages, len(want))
	for i, p := range report.Pages {
		assert.Equal(t, want[i], p.Title, "page %d", i+1)
		assert.Equal(t, types.PageExported, p.Status, "page %d", i+1)
		assert.FileExists(t, naming.Path(i, want[i]))
	}

	single, err := pdfdoc.Open(naming.Path(2, "ILS RWY 27L"))
	require.NoError(t, err)
	assert.Equal(t, 1, single.NumPages())
}
