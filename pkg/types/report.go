// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PageStatus indicates what happened to one page during a split run.
type PageStatus string

const (
	PageExported PageStatus = "exported"
	PageFailed   PageStatus = "failed"
	PagePlanned  PageStatus = "planned"
)

// PageResult records the outcome of processing one page.
type PageResult struct {
	// Page is the 1-based page number.
	Page int `json:"page" yaml:"page"`

	// Title is the title the output file was named with.
	Title string `json:"title" yaml:"title"`

	// Category is the classification tag, or a placeholder category.
	Category Category `json:"category" yaml:"category"`

	// Source names the rule or fallback that produced the title.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Path is the output file path (planned path in dry-run mode).
	Path string `json:"path" yaml:"path"`

	// Bytes is the size of the written file.
	Bytes int64 `json:"bytes" yaml:"bytes"`

	// Status is exported, failed, or planned.
	Status PageStatus `json:"status" yaml:"status"`

	// Error holds the first recoverable error seen for the page, if any.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Placeholder reports whether the page was named with an Untitled_Page_ or
// Error_Page_ placeholder.
func (p PageResult) Placeholder() bool {
	return p.Category == CategoryUntitled || p.Category == CategoryError
}

// RunReport collects the per-page results of one split run.
type RunReport struct {
	Source    string       `json:"source" yaml:"source"`
	SiteCode  string       `json:"site_code" yaml:"site_code"`
	OutputDir string       `json:"output_dir" yaml:"output_dir"`
	PageCount int          `json:"page_count" yaml:"page_count"`
	DryRun    bool         `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	Pages     []PageResult `json:"pages" yaml:"pages"`
}

// Exported returns the number of pages written to disk.
func (r RunReport) Exported() int { return r.count(PageExported) }

// Failed returns the number of pages that could not be exported.
func (r RunReport) Failed() int { return r.count(PageFailed) }

// Planned returns the number of pages classified in dry-run mode.
func (r RunReport) Planned() int { return r.count(PagePlanned) }

// Placeholders returns the number of pages named with a placeholder title.
func (r RunReport) Placeholders() int {
	n := 0
	for _, p := range r.Pages {
		if p.Placeholder() {
			n++
		}
	}
	return n
}

// Total returns the number of pages processed.
func (r RunReport) Total() int { return len(r.Pages) }

// HasFailures reports whether any page failed export.
func (r RunReport) HasFailures() bool { return r.Failed() > 0 }

// BytesWritten returns the total size of all exported files.
func (r RunReport) BytesWritten() int64 {
	var n int64
	for _, p := range r.Pages {
		n += p.Bytes
	}
	return n
}

func (r RunReport) count(s PageStatus) int {
	n := 0
	for _, p := range r.Pages {
		if p.Status == s {
			n++
		}
	}
	return n
}
