// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rotation extracts page text with awareness of rotated (landscape)
// pages. Rotated pages are re-read in layout-preserving mode, which keeps
// rows intact where plain extraction would fragment them.
package rotation

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/pdiddy/chart-splitter/pkg/types"
)

// TextExtractor is the text side of the document collaborator.
type TextExtractor interface {
	// PlainText returns the page text in content order.
	PlainText(index int) (string, error)

	// LayoutText returns the page text with its layout preserved, limited
	// to runs inside crop.
	LayoutText(index int, crop types.Box) (string, error)
}

// blankRuns matches a line break followed by one or more blank lines.
var blankRuns = regexp.MustCompile(`\n\s*\n+`)

// Normalizer turns a page into classification-ready text.
type Normalizer struct {
	src    TextExtractor
	logger *slog.Logger
}

// NewNormalizer returns a Normalizer reading from src. A nil logger discards.
func NewNormalizer(src TextExtractor, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Normalizer{src: src, logger: logger}
}

// Normalize returns the text of the page described by info. It never fails:
// an extraction error or panic is logged and yields the empty string.
func (n *Normalizer) Normalize(info types.PageInfo) string {
	text, err := n.extract(info)
	if err != nil {
		n.logger.Warn("text extraction failed, continuing with empty text",
			"page", info.Index+1, "error", err)
		return ""
	}
	return text
}

func (n *Normalizer) extract(info types.PageInfo) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extracting page %d: panic: %v", info.Index+1, r)
		}
	}()

	if IsRotated(info) {
		n.logger.Debug("page is rotated, using layout extraction", "page", info.Index+1, "rotate", info.Rotate)
		raw, err := n.src.LayoutText(info.Index, PageBox(info))
		if err != nil {
			return "", fmt.Errorf("extracting layout text of page %d: %w", info.Index+1, err)
		}
		return CollapseBlankLines(raw), nil
	}

	raw, err := n.src.PlainText(info.Index)
	if err != nil {
		return "", fmt.Errorf("extracting text of page %d: %w", info.Index+1, err)
	}
	return raw, nil
}

// IsRotated reports whether the page should be read as rotated. The stored
// rotation decides when it is a quarter turn; otherwise a landscape box
// implies rotation.
func IsRotated(info types.PageInfo) bool {
	switch normalizeDegrees(info.Rotate) {
	case 90, 270:
		return true
	}
	box := PageBox(info)
	return box.Width() > box.Height()
}

// PageBox returns the page's media box, or US Letter when none was declared.
func PageBox(info types.PageInfo) types.Box {
	if !info.HasBox {
		return types.Box{URX: types.DefaultPageWidth, URY: types.DefaultPageHeight}
	}
	return info.MediaBox
}

// CollapseBlankLines replaces every run of blank lines with a single line
// break and trims the result.
func CollapseBlankLines(s string) string {
	return strings.TrimSpace(blankRuns.ReplaceAllString(s, "\n"))
}

func normalizeDegrees(d int) int {
	d %= 360
	if d < 0 {
		d += 360
	}
	return d
}
