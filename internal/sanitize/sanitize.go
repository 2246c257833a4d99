// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sanitize turns candidate chart titles into safe, bounded file-name
// components.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultMaxLength is the title length bound used when none is configured.
	DefaultMaxLength = 100

	// Placeholder replaces a title that sanitizes to nothing.
	Placeholder = "Untitled"
)

// reserved matches runs of characters that are not allowed in file names on
// at least one common filesystem.
var reserved = regexp.MustCompile(`[\\/:"*?<>|]+`)

// asciiOnly decomposes to NFKD and drops everything outside printable ASCII
// and whitespace, which strips diacritics from their base letters.
var asciiOnly = runes.Remove(runes.Predicate(func(r rune) bool {
	if r > unicode.MaxASCII {
		return true
	}
	return unicode.IsControl(r) && !unicode.IsSpace(r)
}))

// Sanitize converts raw into an ASCII title of at most maxLength characters
// with no reserved characters. A non-positive maxLength means
// DefaultMaxLength. The result is never empty.
func Sanitize(raw string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	t := transform.Chain(norm.NFKD, asciiOnly)
	s, _, err := transform.String(t, raw)
	if err != nil {
		s = stripNonASCII(raw)
	}

	s = reserved.ReplaceAllString(s, "-")
	s = strings.Join(strings.Fields(s), " ")

	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		return Placeholder
	}
	return s
}

// stripNonASCII is the fallback when the transformer reports an error; it
// drops diacritics by losing the whole character.
func stripNonASCII(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r <= unicode.MaxASCII && (!unicode.IsControl(r) || unicode.IsSpace(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
