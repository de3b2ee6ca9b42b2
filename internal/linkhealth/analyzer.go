// Package linkhealth reports, per affiliate link, how many paragraphs of a draft
// would resolve to it. The report is diagnostic only and never alters content.
package linkhealth

import (
	"strings"

	"github.com/shelfpost/linkcheck/internal/content"
	"github.com/shelfpost/linkcheck/internal/domain"
	"github.com/shelfpost/linkcheck/internal/titlematch"
)

// MatchResult is the health of one configured link.
type MatchResult struct {
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Count      int      `json:"count"`
	Variations []string `json:"variations"`
}

// Healthy reports whether at least one paragraph resolves to the link.
func (r MatchResult) Healthy() bool {
	return r.Count > 0
}

// Report is the full result of a health check.
type Report struct {
	Results    []MatchResult          `json:"results"`
	Collisions []titlematch.Collision `json:"collisions"`
	Paragraphs int                    `json:"paragraphs"`
}

// Unmatched returns the results whose link never matched.
func (r *Report) Unmatched() []MatchResult {
	var out []MatchResult
	for _, res := range r.Results {
		if !res.Healthy() {
			out = append(out, res)
		}
	}
	return out
}

// Analyzer runs health checks with a fixed variation expander.
// The zero value is not usable; create one with New.
type Analyzer struct {
	expander *titlematch.Expander
}

// New creates an analyzer using the default special cases.
func New() *Analyzer {
	return &Analyzer{expander: titlematch.NewExpander()}
}

// NewWithExpander creates an analyzer using a custom expander.
func NewWithExpander(e *titlematch.Expander) *Analyzer {
	return &Analyzer{expander: e}
}

// Analyze returns one MatchResult per link, in input order. It returns an empty
// slice when content or links are empty.
func (a *Analyzer) Analyze(text string, links []domain.AffiliateLink) []MatchResult {
	return a.Check(text, links).Results
}

// Check is Analyze plus the variation collisions and paragraph count.
func (a *Analyzer) Check(text string, links []domain.AffiliateLink) *Report {
	report := &Report{
		Results:    []MatchResult{},
		Collisions: []titlematch.Collision{},
	}
	if strings.TrimSpace(text) == "" || len(links) == 0 {
		return report
	}

	table := a.expander.Build(links)
	paragraphs := content.Paragraphs(text)

	report.Paragraphs = len(paragraphs)
	report.Collisions = append(report.Collisions, table.Collisions()...)

	for _, link := range links {
		variations := table.VariationsFor(link.URL)

		count := 0
		for _, p := range paragraphs {
			if _, ok := titlematch.FindMatch(p, variations); ok {
				count++
			}
		}

		if variations == nil {
			variations = []string{}
		}
		report.Results = append(report.Results, MatchResult{
			Title:      link.Title,
			URL:        link.URL,
			Count:      count,
			Variations: variations,
		})
	}

	return report
}

// Analyze runs a health check with the default analyzer.
func Analyze(text string, links []domain.AffiliateLink) []MatchResult {
	return New().Analyze(text, links)
}

// Check runs a full health check with the default analyzer.
func Check(text string, links []domain.AffiliateLink) *Report {
	return New().Check(text, links)
}
