// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package split drives a chart PDF through extraction, classification, and
// export, one page at a time, and collects the outcome into a RunReport.
package split

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/pdiddy/chart-splitter/internal/classify"
	"github.com/pdiddy/chart-splitter/internal/export"
	"github.com/pdiddy/chart-splitter/internal/rotation"
	"github.com/pdiddy/chart-splitter/pkg/types"
)

// Document is the source collaborator the driver reads pages from and
// exports pages through.
type Document interface {
	// NumPages returns the number of pages in the document.
	NumPages() int

	// PageInfo returns the rotation and geometry of the page at index.
	PageInfo(index int) (types.PageInfo, error)

	rotation.TextExtractor
	export.PageSource
}

// UntitledTitle is the placeholder for a page no rule or fallback could name.
func UntitledTitle(index int) string { return fmt.Sprintf("Untitled_Page_%d", index+1) }

// ErrorTitle is the placeholder for a page whose processing failed.
func ErrorTitle(index int) string { return fmt.Sprintf("Error_Page_%d", index+1) }

// Splitter splits one document into per-chart files.
type Splitter struct {
	doc        Document
	naming     export.Naming
	normalizer *rotation.Normalizer
	classifier *classify.Classifier
	exporter   *export.Exporter
	dryRun     bool
	logger     *slog.Logger
}

// New returns a Splitter for doc. Files are named and placed by naming.
func New(doc Document, naming export.Naming, cfg types.SplitConfig, logger *slog.Logger) *Splitter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Splitter{
		doc:        doc,
		naming:     naming,
		normalizer: rotation.NewNormalizer(doc, logger),
		classifier: classify.New(classify.OptionsFrom(cfg.ClassifyConfig), logger),
		exporter:   export.New(doc, naming),
		dryRun:     cfg.DryRun,
		logger:     logger,
	}
}

// PrepareOutput creates the output directory of naming if it is absent.
func PrepareOutput(naming export.Naming) error {
	if err := os.MkdirAll(naming.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", naming.OutputDir, err)
	}
	return nil
}

// Run processes every page in index order, printing one status line per page
// to w followed by a summary. Per-page failures are recorded in the report and
// never stop the run. The error is returned only when the output directory
// cannot be created.
func (s *Splitter) Run(source string, w io.Writer) (types.RunReport, error) {
	report := types.RunReport{
		Source:    source,
		SiteCode:  s.naming.SiteCode,
		OutputDir: s.naming.OutputDir,
		PageCount: s.doc.NumPages(),
		DryRun:    s.dryRun,
	}

	if !s.dryRun {
		if err := PrepareOutput(s.naming); err != nil {
			return report, err
		}
	}

	s.logger.Info("splitting document", "source", source, "pages", report.PageCount, "output", s.naming.OutputDir)
	report.Pages = make([]types.PageResult, 0, report.PageCount)
	for i := 0; i < report.PageCount; i++ {
		report.Pages = append(report.Pages, s.page(i, w))
	}

	writeSummary(w, report)
	return report, nil
}

// page processes the page at index and reports what happened to it.
func (s *Splitter) page(index int, w io.Writer) types.PageResult {
	c, err := s.classify(index)
	res := types.PageResult{
		Page:     index + 1,
		Title:    c.Title,
		Category: c.Category,
		Source:   c.Source,
	}
	if err != nil {
		s.logger.Warn("page processing failed", "page", index+1, "error", err)
		res.Error = err.Error()
	}

	if s.dryRun {
		res.Path = s.naming.Path(index, res.Title)
		res.Status = types.PagePlanned
		fmt.Fprintf(w, "planned: %s\n", filepath.Base(res.Path))
		return res
	}

	path, n, err := s.exporter.Export(index, res.Title)
	if err != nil && res.Category != types.CategoryError {
		s.logger.Warn("export failed, retrying with placeholder title",
			"page", index+1, "title", res.Title, "error", err)
		if res.Error == "" {
			res.Error = err.Error()
		}
		res.Title, res.Category, res.Source = ErrorTitle(index), types.CategoryError, ""
		path, n, err = s.exporter.Export(index, res.Title)
	}
	res.Path = path
	if err != nil {
		if res.Error == "" {
			res.Error = err.Error()
		}
		res.Status = types.PageFailed
		fmt.Fprintf(w, "failed:  page %d (%v)\n", index+1, err)
		return res
	}

	res.Bytes, res.Status = n, types.PageExported
	if res.Placeholder() {
		fmt.Fprintf(w, "warning: %s (no title found)\n", filepath.Base(path))
		return res
	}
	fmt.Fprintf(w, "saved:   %s\n", filepath.Base(path))
	return res
}

// classify names the page at index. A page with no usable text gets the
// Untitled placeholder. A page whose metadata cannot be read, or whose
// processing panics, gets the Error placeholder and the error.
func (s *Splitter) classify(index int) (c types.Classification, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("processing page %d: panic: %v", index+1, r)
		}
		if err != nil {
			c = placeholder(types.CategoryError, ErrorTitle(index))
		}
	}()

	info, err := s.doc.PageInfo(index)
	if err != nil {
		return c, fmt.Errorf("reading page %d: %w", index+1, err)
	}

	text := s.normalizer.Normalize(info)
	c, ok := s.classifier.Classify(text)
	if !ok {
		return placeholder(types.CategoryUntitled, UntitledTitle(index)), nil
	}
	return c, nil
}

func placeholder(cat types.Category, title string) types.Classification {
	return types.Classification{Category: cat, RawTitle: title, Title: title}
}

func writeSummary(w io.Writer, r types.RunReport) {
	if r.DryRun {
		fmt.Fprintf(w, "\nDry run: %d planned, %d placeholders (total: %d)\n",
			r.Planned(), r.Placeholders(), r.Total())
		fmt.Fprintf(w, "Charts would be split into: %s\n", r.OutputDir)
		return
	}
	fmt.Fprintf(w, "\nSplit summary: %d saved, %d placeholders, %d failed (total: %d, %s written)\n",
		r.Exported(), r.Placeholders(), r.Failed(), r.Total(), humanize.Bytes(uint64(r.BytesWritten())))
	fmt.Fprintf(w, "All charts split into: %s\n", r.OutputDir)
}
