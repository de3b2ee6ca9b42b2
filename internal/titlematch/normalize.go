// Package titlematch decides whether free-form article text mentions a canonical title.
//
// It provides three building blocks that are shared by the editorial link health
// check and the publish-time hyperlink injection:
//
//   - Normalize canonicalizes case, quote glyphs, dashes, whitespace and comma spacing.
//   - Expander turns one (title, url) pair into a table of alternate spellings.
//   - FindMatch tests a paragraph against a list of spellings using four ordered strategies.
//
// Everything in this package is deterministic, allocation-local and safe for concurrent use.
package titlematch

import (
	"regexp"
	"strings"
)

var (
	// Straight quote, curly left/right single quotes and backtick.
	apostropheRe = regexp.MustCompile("['‘’`]")
	// Em dash, en dash and hyphen.
	dashRe       = regexp.MustCompile("[—–-]")
	whitespaceRe = regexp.MustCompile(`\s+`)
	commaRe      = regexp.MustCompile(`,\s*`)
)

// Normalize converts s into a comparable form.
//
// Steps, in order:
//  1. Lowercase
//  2. Trim surrounding whitespace
//  3. Unify apostrophe glyphs to '
//  4. Unify dash glyphs to -
//  5. Collapse whitespace runs to one space
//  6. Rewrite every comma to ", "
//
// Punctuation is never removed here. Normalize is total and idempotent.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.TrimSpace(s)
	s = apostropheRe.ReplaceAllString(s, "'")
	s = dashRe.ReplaceAllString(s, "-")
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = commaRe.ReplaceAllString(s, ", ")
	return s
}

// stripApostrophes removes straight and curly apostrophes.
func stripApostrophes(s string) string {
	return strings.NewReplacer("'", "", "’", "", "‘", "").Replace(s)
}

// hasApostrophe reports whether s contains a straight or curly apostrophe.
func hasApostrophe(s string) bool {
	return strings.ContainsAny(s, "'’")
}
