// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfdoc

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/chart-splitter/pkg/types"
)

// Grid densities in points per output column and per output line.
const (
	columnWidth = 7.25
	lineHeight  = 13.0

	// rowTolerance is the baseline drift still treated as the same row.
	rowTolerance = 2.0

	// wordGapRatio is the gap, as a fraction of the font size, that
	// separates two runs into different words.
	wordGapRatio = 0.2
)

// textRun is one positioned piece of text in user space.
type textRun struct {
	X, Y, W  float64
	FontSize float64
	S        string
}

// renderLayout places runs on a character grid anchored at the crop box.
// Rows are emitted top to bottom, with blank lines for vertical gaps of more
// than one line.
func renderLayout(runs []textRun, crop types.Box) string {
	rows := sortedRows(runs, func(r textRun) bool { return crop.Contains(r.X, r.Y) })
	if len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	prevY := 0.0
	for i, row := range rows {
		if i > 0 {
			n := int(math.Round((prevY - row[0].Y) / lineHeight))
			b.WriteString(strings.Repeat("\n", max(n, 1)))
		}
		b.WriteString(renderRow(row, crop.LLX, true))
		prevY = row[0].Y
	}
	return b.String()
}

// renderPlain emits one line per baseline, top to bottom, with single spaces
// between words.
func renderPlain(runs []textRun) string {
	rows := sortedRows(runs, nil)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if line := renderRow(row, 0, false); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// sortedRows drops empty runs and runs rejected by keep, then groups the rest
// into rows ordered top to bottom and left to right. Runs at the same
// position keep their content order.
func sortedRows(runs []textRun, keep func(textRun) bool) [][]textRun {
	kept := make([]textRun, 0, len(runs))
	for _, r := range runs {
		if r.S == "" || (keep != nil && !keep(r)) {
			continue
		}
		kept = append(kept, r)
	}
	if len(kept) == 0 {
		return nil
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Y != kept[j].Y {
			return kept[i].Y > kept[j].Y
		}
		return kept[i].X < kept[j].X
	})
	return groupRows(kept)
}

// groupRows splits runs sorted by descending Y into rows of similar
// baseline, each sorted left to right.
func groupRows(runs []textRun) [][]textRun {
	var rows [][]textRun
	var current []textRun
	for _, r := range runs {
		if len(current) > 0 && current[0].Y-r.Y > rowTolerance {
			rows = append(rows, current)
			current = nil
		}
		current = append(current, r)
	}
	if len(current) > 0 {
		rows = append(rows, current)
	}

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
	}
	return rows
}

// renderRow joins the runs of one row. A whitespace run, or a gap wider than
// wordGapRatio of the font size, starts a new word. With grid set, words are
// padded out to their column relative to originX.
func renderRow(row []textRun, originX float64, grid bool) string {
	var b strings.Builder
	width := 0
	prevEnd := math.Inf(-1)
	space := false
	for _, r := range row {
		if strings.TrimSpace(r.S) == "" {
			space = true
			prevEnd = math.Max(prevEnd, r.X+r.W)
			continue
		}

		if width == 0 || space || r.X-prevEnd > wordGapRatio*fontSize(r) {
			col := int(math.Round((r.X - originX) / columnWidth))
			switch {
			case grid && col > width:
				b.WriteString(strings.Repeat(" ", col-width))
				width = col
			case width > 0 && !strings.HasSuffix(b.String(), " "):
				b.WriteByte(' ')
				width++
			}
		}
		space = false
		b.WriteString(r.S)
		width += utf8.RuneCountInString(r.S)
		prevEnd = r.X + r.W
	}
	return strings.TrimRight(b.String(), " ")
}

func fontSize(r textRun) float64 {
	if r.FontSize > 0 {
		return r.FontSize
	}
	return 10
}
