package titlematch

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MatchThreshold is the minimum word-overlap ratio accepted by the overlap strategy.
const MatchThreshold = 0.7

// minCoreContainLen is the length a core string must exceed before it may match
// by containment inside the other core string.
const minCoreContainLen = 5

// Strategy identifies which comparison accepted a candidate.
type Strategy int

// Strategies in evaluation order.
const (
	StrategyNone Strategy = iota
	StrategyExact
	StrategyApostrophe
	StrategyWordOverlap
	StrategyCoreTitle
)

// String returns the strategy name used in diagnostics.
func (s Strategy) String() string {
	switch s {
	case StrategyExact:
		return "exact"
	case StrategyApostrophe:
		return "apostrophe"
	case StrategyWordOverlap:
		return "word-overlap"
	case StrategyCoreTitle:
		return "core-title"
	default:
		return "none"
	}
}

var (
	// Punctuation removed before splitting into words.
	wordPunctRe = regexp.MustCompile(`[.,!?;:()\[\]{}'"]`)
	// Leading or trailing article.
	articleRe = regexp.MustCompile(`^(the|a|an)\s+|\s+(the|a|an)$`)
)

// Match describes a successful FindMatch call.
type Match struct {
	Variation string
	Strategy  Strategy
}

// FindMatch returns the first candidate, in slice order, that fragment mentions.
// The boolean is false when nothing matches or either input is empty.
func FindMatch(fragment string, candidates []string) (string, bool) {
	m, ok := FindMatchDetail(fragment, candidates)
	return m.Variation, ok
}

// FindMatchDetail is FindMatch that also reports which strategy fired.
func FindMatchDetail(fragment string, candidates []string) (Match, bool) {
	if fragment == "" || len(candidates) == 0 {
		return Match{}, false
	}

	text := Normalize(fragment)
	if text == "" {
		return Match{}, false
	}
	textWords := significantWords(text)

	for _, candidate := range candidates {
		title := Normalize(candidate)
		if title == "" {
			continue
		}
		if s := compare(text, textWords, title); s != StrategyNone {
			return Match{Variation: candidate, Strategy: s}, true
		}
	}

	return Match{}, false
}

// compare runs the four strategies in order and stops at the first success.
// Both strings must already be normalized.
func compare(text string, textWords []string, title string) Strategy {
	if text == title {
		return StrategyExact
	}

	if stripApostrophes(text) == stripApostrophes(title) {
		return StrategyApostrophe
	}

	if overlapRatio(textWords, significantWords(title)) >= MatchThreshold {
		return StrategyWordOverlap
	}

	if coresMatch(coreTitle(text), coreTitle(title)) {
		return StrategyCoreTitle
	}

	return StrategyNone
}

// significantWords strips punctuation and keeps words longer than two characters.
func significantWords(s string) []string {
	fields := strings.Fields(wordPunctRe.ReplaceAllString(s, ""))
	words := fields[:0]
	for _, w := range fields {
		if utf8.RuneCountInString(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}

// overlapRatio returns the larger of the title-side and text-side overlap
// fractions. Zero when either side has no significant words.
func overlapRatio(textWords, titleWords []string) float64 {
	if len(textWords) == 0 || len(titleWords) == 0 {
		return 0
	}

	matching := 0
	for _, tw := range titleWords {
		if anyRelated(tw, textWords) {
			matching++
		}
	}

	reverse := 0
	for _, xw := range textWords {
		if anyRelated(xw, titleWords) {
			reverse++
		}
	}

	return max(
		float64(matching)/float64(len(titleWords)),
		float64(reverse)/float64(len(textWords)),
	)
}

// anyRelated reports whether w equals, contains, or is contained by any word in others.
func anyRelated(w string, others []string) bool {
	for _, o := range others {
		if o == w || strings.Contains(o, w) || strings.Contains(w, o) {
			return true
		}
	}
	return false
}

// coreTitle drops one leading or trailing article and all apostrophes.
func coreTitle(s string) string {
	return stripApostrophes(articleRe.ReplaceAllString(s, ""))
}

func coresMatch(text, title string) bool {
	if text == "" || title == "" {
		return false
	}
	if text == title {
		return true
	}
	if utf8.RuneCountInString(title) > minCoreContainLen && strings.Contains(text, title) {
		return true
	}
	return utf8.RuneCountInString(text) > minCoreContainLen && strings.Contains(title, text)
}
