// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the chart-splitter pipeline.
package types

// Category tags the kind of chart a page was classified as.
type Category string

const (
	CategorySTAR           Category = "STAR"
	CategorySID            Category = "SID"
	CategoryApproach       Category = "Approach"
	CategoryDeparture      Category = "Departure"
	CategoryRadarMinimums  Category = "RadarMinimums"
	CategoryGroundChart    Category = "GroundChart"
	CategoryCommunications Category = "Communications"
	CategoryNoiseAbatement Category = "NoiseAbatement"
	CategoryAdmin          Category = "Admin"
	CategoryChartCode      Category = "ChartCode"

	// CategoryLine marks a title taken verbatim from the first meaningful
	// line of the page.
	CategoryLine Category = "Line"

	// CategoryUntitled and CategoryError mark driver placeholders.
	CategoryUntitled Category = "Untitled"
	CategoryError    Category = "Error"
)

// Unknown is substituted for an identifier or runway that could not be found.
const Unknown = "Unknown"

// Default page geometry (US Letter, in points) used when a page carries no
// box metadata.
const (
	DefaultPageWidth  = 612.0
	DefaultPageHeight = 792.0
)

// Box is a rectangle in PDF user space.
type Box struct {
	LLX float64 `json:"llx" yaml:"llx"`
	LLY float64 `json:"lly" yaml:"lly"`
	URX float64 `json:"urx" yaml:"urx"`
	URY float64 `json:"ury" yaml:"ury"`
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.URX - b.LLX }

// Height returns the vertical extent of the box.
func (b Box) Height() float64 { return b.URY - b.LLY }

// Contains reports whether the point (x, y) lies inside the box, edges included.
func (b Box) Contains(x, y float64) bool {
	return x >= b.LLX && x <= b.URX && y >= b.LLY && y <= b.URY
}

// PageInfo holds the metadata of one source page. It is read once per run.
type PageInfo struct {
	// Index is the 0-based page index.
	Index int `json:"index" yaml:"index"`

	// Rotate is the /Rotate value in degrees, as stored (possibly inherited).
	Rotate int `json:"rotate" yaml:"rotate"`

	// MediaBox is the page box. It is the zero Box when HasBox is false.
	MediaBox Box `json:"media_box" yaml:"media_box"`

	// HasBox reports whether the page (or an ancestor) declared a MediaBox.
	HasBox bool `json:"has_box" yaml:"has_box"`
}

// Classification is the outcome of classifying one page's text.
type Classification struct {
	// Category is the tag of the rule or fallback that produced the title.
	Category Category `json:"category" yaml:"category"`

	// Identifier is the procedure name (e.g. "AGALI2A"), empty when the
	// category has none.
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`

	// Runway is the runway designator; Unknown when the category expects one
	// but the text had none.
	Runway string `json:"runway,omitempty" yaml:"runway,omitempty"`

	// Span is the raw text matched by the rule.
	Span string `json:"span,omitempty" yaml:"span,omitempty"`

	// RawTitle is the candidate title before sanitization.
	RawTitle string `json:"raw_title" yaml:"raw_title"`

	// Title is the sanitized title used for naming.
	Title string `json:"title" yaml:"title"`

	// Source names the rule or fallback that matched (e.g. "star", "fallback-line").
	Source string `json:"source" yaml:"source"`
}
