// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify infers a chart title from the text of one page.
//
// Classification runs an ordered rule table (DefaultRules) over the text and
// applies tag-specific extraction to the first match. When no rule matches it
// falls back, in order, to a loose STAR/SID search, an unanchored chart-code
// search, and the first meaningful line of the page.
package classify

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/chart-splitter/internal/sanitize"
	"github.com/pdiddy/chart-splitter/pkg/types"
)

// minLineLength is the length a line must exceed to serve as a title.
const minLineLength = 10

// Fallback source names reported in Classification.Source.
const (
	SourceLooseProcedure = "fallback-procedure"
	SourceLooseChartCode = "fallback-chart-code"
	SourceLine           = "fallback-line"
)

// Options controls title sanitization and the meaningful-line fallback.
type Options struct {
	// MaxTitleLength bounds sanitized titles; non-positive means 100.
	MaxTitleLength int

	// Footers are recurring watermark strings; a line containing one is
	// never used as a title.
	Footers []string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxTitleLength: sanitize.DefaultMaxLength,
		Footers:        []string{types.DefaultFooter},
	}
}

// OptionsFrom builds Options from the classification config, filling defaults.
func OptionsFrom(cfg types.ClassifyConfig) Options {
	opts := DefaultOptions()
	if cfg.MaxTitleLength > 0 {
		opts.MaxTitleLength = cfg.MaxTitleLength
	}
	if cfg.Footers != nil {
		opts.Footers = cfg.Footers
	}
	return opts
}

// Classifier applies a compiled rule table to page text.
type Classifier struct {
	rules  []compiledRule
	opts   Options
	logger *slog.Logger
}

// New returns a Classifier over DefaultRules.
func New(opts Options, logger *slog.Logger) *Classifier {
	c, err := NewWithRules(DefaultRules, opts, logger)
	if err != nil {
		panic(fmt.Sprintf("classify: default rules: %v", err))
	}
	return c
}

// NewWithRules returns a Classifier over a custom rule table. It fails if a
// pattern does not compile or a tag is unknown.
func NewWithRules(rules []Rule, opts Options, logger *slog.Logger) (*Classifier, error) {
	compiled, err := compile(rules)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Classifier{rules: compiled, opts: opts, logger: logger}, nil
}

// Rules returns the rule table in evaluation order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.Rule
	}
	return out
}

// Classify returns the classification of text. The boolean is false when
// neither a rule nor a fallback produced a title; empty text always yields
// false.
func (c *Classifier) Classify(text string) (types.Classification, bool) {
	for _, r := range c.rules {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		res, ok := c.extract(r, m, text)
		if !ok {
			c.logger.Debug("rule suppressed", "rule", r.Name)
			continue
		}
		c.logger.Debug("rule matched", "rule", r.Name, "title", res.Title)
		return res, true
	}

	if res, ok := c.fallback(text); ok {
		c.logger.Debug("fallback matched", "source", res.Source, "title", res.Title)
		return res, true
	}
	return types.Classification{}, false
}

// extract builds the classification for a rule match. It dispatches on the
// rule's tag. The second result is false when the match must be ignored.
func (c *Classifier) extract(r compiledRule, m []string, text string) (types.Classification, bool) {
	res := types.Classification{
		Category: r.Tag,
		Span:     m[0],
		Source:   r.Name,
	}

	switch r.Tag {
	case types.CategorySTAR, types.CategorySID:
		res.Identifier = orUnknown(compact(group(m, 1)))
		res.Runway = orUnknown(group(m, 2))
		res.RawTitle = procedureTitle(r.Tag, res.Identifier, res.Runway)
	case types.CategoryApproach:
		res.Identifier = group(m, 1)
		res.Runway = orUnknown(group(m, 2))
		res.RawTitle = res.Identifier + " RWY " + res.Runway
	case types.CategoryDeparture:
		res.Runway = orUnknown(group(m, 1))
		res.RawTitle = "Departure RWY " + res.Runway
	case types.CategoryChartCode:
		if mentionsProcedure(text) {
			return types.Classification{}, false
		}
		res.Identifier = m[0]
		res.RawTitle = "Chart " + m[0]
	default:
		res.RawTitle = m[0]
	}

	res.Title = c.sanitize(res.RawTitle)
	return res, true
}

// fallback runs the loose heuristics used when no rule matched.
func (c *Classifier) fallback(text string) (types.Classification, bool) {
	upper := strings.ToUpper(text)
	for _, tag := range []types.Category{types.CategorySTAR, types.CategorySID} {
		if !strings.Contains(upper, string(tag)) {
			continue
		}
		res := types.Classification{
			Category:   tag,
			Identifier: types.Unknown,
			Runway:     types.Unknown,
			Source:     SourceLooseProcedure,
		}
		if m := looseIdentifier.FindStringSubmatch(text); m != nil {
			res.Identifier = orUnknown(compact(m[1]))
		}
		if m := looseRunway.FindStringSubmatch(text); m != nil {
			res.Runway = orUnknown(m[1])
		}
		res.RawTitle = procedureTitle(tag, res.Identifier, res.Runway)
		res.Title = c.sanitize(res.RawTitle)
		return res, true
	}

	if m := looseChartCode.FindString(text); m != "" {
		raw := "Chart " + m
		return types.Classification{
			Category:   types.CategoryChartCode,
			Identifier: m,
			Span:       m,
			RawTitle:   raw,
			Title:      c.sanitize(raw),
			Source:     SourceLooseChartCode,
		}, true
	}

	if line, ok := c.meaningfulLine(text); ok {
		return types.Classification{
			Category: types.CategoryLine,
			Span:     line,
			RawTitle: line,
			Title:    c.sanitize(line),
			Source:   SourceLine,
		}, true
	}
	return types.Classification{}, false
}

// meaningfulLine returns the first trimmed line longer than minLineLength
// that is not purely numeric and carries no footer string.
func (c *Classifier) meaningfulLine(text string) (string, bool) {
	for _, line := range splitLines(strings.TrimSpace(text)) {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) <= minLineLength || isNumeric(line) || c.isFooter(line) {
			continue
		}
		return line, true
	}
	return "", false
}

func (c *Classifier) isFooter(line string) bool {
	for _, f := range c.opts.Footers {
		if f != "" && strings.Contains(line, f) {
			return true
		}
	}
	return false
}

func (c *Classifier) sanitize(raw string) string {
	return sanitize.Sanitize(raw, c.opts.MaxTitleLength)
}

// mentionsProcedure reports whether text contains STAR or SID anywhere,
// including inside longer words. Chart codes are not trusted on such pages.
func mentionsProcedure(text string) bool {
	upper := strings.ToUpper(text)
	return strings.Contains(upper, "STAR") || strings.Contains(upper, "SID")
}

func procedureTitle(tag types.Category, identifier, runway string) string {
	return fmt.Sprintf("%s %s RWY %s", tag, identifier, runway)
}

// group returns submatch i, or "" when the group did not participate.
func group(m []string, i int) string {
	if i < len(m) {
		return m[i]
	}
	return ""
}

func orUnknown(s string) string {
	if s == "" {
		return types.Unknown
	}
	return s
}

// compact removes all whitespace ("AGALI 2A" -> "AGALI2A").
func compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}
