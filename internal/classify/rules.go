// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/pdiddy/chart-splitter/pkg/types"
)

// Rule is one entry of the ordered classification table. Rules are evaluated
// in ascending Priority; the first match wins. The extraction applied to a
// match is selected by Tag.
type Rule struct {
	Priority int            `json:"priority" yaml:"priority"`
	Name     string         `json:"name" yaml:"name"`
	Tag      types.Category `json:"tag" yaml:"tag"`
	Pattern  string         `json:"pattern" yaml:"pattern"`
}

// matchFlags makes every rule case-insensitive with '.' matching newlines.
const matchFlags = "(?is)"

// DefaultRules is the built-in rule table.
var DefaultRules = []Rule{
	// e.g. AGALI 2A RWY 27, BUVAG 3B RWY 09L
	{1, "star", types.CategorySTAR, `(?:\.STAR\.|\bSTAR\b).*?([A-Z]{3,6}\s*\d[A-Z])(?:.*?RWY\s*(\d{2}[LR]?))?`},
	// e.g. KEGAG 1B RWY 27, DRAKE 2F RWY 09R
	{2, "sid", types.CategorySID, `(?:\.SID\.|\bSID\b).*?([A-Z]{3,6}\s*\d[A-Z])(?:.*?RWY\s*(\d{2}[LR]?))?`},
	// e.g. ILS Rwy 27, RNAV Z Rwy 09L, VOR or NDB Rwy 36 (CAT)
	{3, "approach", types.CategoryApproach, `(ILS|LOC|VOR|NDB|RNAV|RNP|CAT II|CAT III)(?: [XYZ])?(?: or [A-Z]+)* Rwy (\d{2}[LR]?(?:/\d{2}[LR]?)?)(?: \([A-Z]+\))?`},
	{4, "departure", types.CategoryDeparture, `(?:Climb STRAIGHT AHEAD|Departure Procedure).*?RWY (\d{2}[LR]?)`},
	{5, "radar-minimums", types.CategoryRadarMinimums, `\.RADAR\.MINIMUM\.ALTITUDES|Radar Minimum Altitudes`},
	{6, "parking", types.CategoryGroundChart, `(?:Parking Stands?|Apron|Stand|Gate|Taxiway).*?Coords`},
	{7, "low-visibility", types.CategoryGroundChart, `Low Visibility (?:Take-off|Procedures)`},
	{8, "control-tower", types.CategoryGroundChart, `Control Tower.*?\b[A-Z]{4}\b`},
	{9, "airport-diagram", types.CategoryGroundChart, `Airport (?:Diagram|Chart|Layout)`},
	{10, "communications", types.CategoryCommunications, `(?:D-ATIS|ATIS|Communications).*?\b[A-Z]{4}\b`},
	{11, "noise-abatement", types.CategoryNoiseAbatement, `Noise Abatement(?: Procedures)?`},
	{12, "airport-information", types.CategoryAdmin, `Airport Information For \b[A-Z]{4}\b`},
	{13, "trip-kit-index", types.CategoryAdmin, `Trip Kit Index`},
	{14, "change-notices", types.CategoryAdmin, `Terminal Chart Change Notices`},
	{15, "revision-letter", types.CategoryAdmin, `Revision Letter.*Cycle.*`},
	// e.g. 10-2A, 11-2, 20-3B
	{16, "chart-code", types.CategoryChartCode, chartCodePattern},
}

const chartCodePattern = `\b((?:10|11|20|30)-\d[A-Z]?)\b`

// Patterns used by the fallback chain. They are not anchored to a marker.
var (
	looseIdentifier = regexp.MustCompile(matchFlags + `([A-Z]{3,6}\s*\d[A-Z])`)
	looseRunway     = regexp.MustCompile(matchFlags + `RWY\s*(\d{2}[LR]?)`)
	looseChartCode  = regexp.MustCompile(matchFlags + chartCodePattern)
)

// compiledRule pairs a Rule with its compiled pattern.
type compiledRule struct {
	Rule
	re *regexp.Regexp
}

// compile validates and compiles rules, ordering them by priority. Ties keep
// their list order.
func compile(rules []Rule) ([]compiledRule, error) {
	out := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		if !knownTag(r.Tag) {
			return nil, fmt.Errorf("rule %q: unknown tag %q", r.Name, r.Tag)
		}
		re, err := regexp.Compile(matchFlags + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %q: compiling pattern: %w", r.Name, err)
		}
		out = append(out, compiledRule{Rule: r, re: re})
	}
	sortByPriority(out)
	return out, nil
}

func sortByPriority(rules []compiledRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority < rules[j].Priority
	})
}

func knownTag(tag types.Category) bool {
	switch tag {
	case types.CategorySTAR, types.CategorySID, types.CategoryApproach,
		types.CategoryDeparture, types.CategoryRadarMinimums, types.CategoryGroundChart,
		types.CategoryCommunications, types.CategoryNoiseAbatement, types.CategoryAdmin,
		types.CategoryChartCode:
		return true
	}
	return false
}
