// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest builds small uncompressed PDF documents for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Letter is the US Letter media box in points.
var Letter = [4]int{0, 0, 612, 792}

// Page describes one page of a generated document.
type Page struct {
	// Rotate is the /Rotate value written to the page dictionary.
	Rotate int

	// MediaBox defaults to Letter when zero.
	MediaBox [4]int

	// Content is the raw content stream. Font /F1 is Helvetica at every
	// page's disposal.
	Content string
}

// Lines returns a content stream that shows each line in its own row,
// starting at (x, y) and moving down by leading with Td.
func Lines(x, y, leading int, lines ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "BT /F1 12 Tf %d %d Td", x, y)
	for i, l := range lines {
		if i > 0 {
			fmt.Fprintf(&b, " 0 %d Td", -leading)
		}
		fmt.Fprintf(&b, " (%s) Tj", Escape(l))
	}
	b.WriteString(" ET")
	return b.String()
}

// Block returns a single BT/ET text object showing s at (x, y).
func Block(x, y int, s string) string {
	return fmt.Sprintf("BT /F1 12 Tf %d %d Td (%s) Tj ET", x, y, Escape(s))
}

// Escape quotes the characters that are special inside a PDF literal string.
func Escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`).Replace(s)
}

// Build returns a PDF holding pages, with a correct cross-reference table.
func Build(pages ...Page) []byte {
	var kids strings.Builder
	for i := range pages {
		fmt.Fprintf(&kids, "%d 0 R ", 4+2*i)
	}
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids.String(), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}
	for i, p := range pages {
		box := p.MediaBox
		if box == [4]int{} {
			box = Letter
		}
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [%d %d %d %d] /Rotate %d /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
				box[0], box[1], box[2], box[3], p.Rotate, 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(p.Content), p.Content),
		)
	}

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return b.Bytes()
}
