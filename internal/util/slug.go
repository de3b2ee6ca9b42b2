// Package util provides small helpers shared by the service layer.
package util

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// FallbackSlug is used when a title has no ASCII letters or digits.
const FallbackSlug = "untitled"

// maxSlugLen keeps slugs readable in URLs.
const maxSlugLen = 80

var (
	apostrophes       = strings.NewReplacer("'", "", "’", "", "‘", "")
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify converts a submission title to a URL-safe slug.
//
//	"Ender's Game: A Review"  → "enders-game-a-review"
//	"Café Society"            → "cafe-society"
//	"🐉!!"                     → "untitled"
func Slugify(title string) string {
	s := apostrophes.Replace(title)

	// Decompose accents, then drop anything non-ASCII.
	s = norm.NFKD.String(s)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = nonAlphanumericRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "-")
	}
	if s == "" {
		return FallbackSlug
	}
	return s
}

// NthSlug returns the slug to try on the nth attempt: base for n <= 1,
// otherwise base-n.
func NthSlug(base string, n int) string {
	if n <= 1 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
