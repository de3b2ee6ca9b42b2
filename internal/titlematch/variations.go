package titlematch

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shelfpost/linkcheck/internal/domain"
)

// Collision records a variation that was claimed by two different URLs.
// The later URL wins; PreviousURL is the mapping that was overwritten.
type Collision struct {
	Variation   string `json:"variation"`
	PreviousURL string `json:"previous_url"`
	URL         string `json:"url"`
}

// VariationTable maps alternate spellings to destination URLs.
// Keys keep their first insertion order so iteration is deterministic.
type VariationTable struct {
	urls       map[string]string
	keys       []string
	collisions []Collision
}

// NewVariationTable creates an empty table.
func NewVariationTable() *VariationTable {
	return &VariationTable{urls: make(map[string]string)}
}

// Add maps variation to url. An existing mapping is overwritten; if it pointed
// at a different URL the overwrite is recorded as a Collision.
func (t *VariationTable) Add(variation, url string) {
	prev, exists := t.urls[variation]
	if !exists {
		t.keys = append(t.keys, variation)
	} else if prev != url {
		t.collisions = append(t.collisions, Collision{
			Variation:   variation,
			PreviousURL: prev,
			URL:         url,
		})
	}
	t.urls[variation] = url
}

// Lookup returns the URL a variation resolves to.
func (t *VariationTable) Lookup(variation string) (string, bool) {
	url, ok := t.urls[variation]
	return url, ok
}

// Len returns the number of distinct variations.
func (t *VariationTable) Len() int {
	return len(t.keys)
}

// Variations returns all variation keys in insertion order.
func (t *VariationTable) Variations() []string {
	return append([]string(nil), t.keys...)
}

// VariationsFor returns every variation that resolves to url, in insertion order.
// This recovers spellings generated from other link entries sharing the same URL.
func (t *VariationTable) VariationsFor(url string) []string {
	var out []string
	for _, k := range t.keys {
		if t.urls[k] == url {
			out = append(out, k)
		}
	}
	return out
}

// Collisions returns the overwrites between different URLs seen so far.
func (t *VariationTable) Collisions() []Collision {
	return append([]Collision(nil), t.collisions...)
}

// Merge adds every mapping of other into t, in other's order.
func (t *VariationTable) Merge(other *VariationTable) {
	for _, k := range other.keys {
		t.Add(k, other.urls[k])
	}
}

// Expander produces variation tables from affiliate links.
type Expander struct {
	special []SpecialCase
}

// NewExpander creates an expander using DefaultSpecialCases.
func NewExpander() *Expander {
	return &Expander{special: DefaultSpecialCases}
}

// WithSpecialCases returns a copy of the expander that also applies extra.
func (e *Expander) WithSpecialCases(extra ...SpecialCase) *Expander {
	special := make([]SpecialCase, 0, len(e.special)+len(extra))
	special = append(special, e.special...)
	special = append(special, extra...)
	return &Expander{special: special}
}

// Expand returns the variation table for a single link.
func (e *Expander) Expand(link domain.AffiliateLink) *VariationTable {
	t := NewVariationTable()
	e.expandInto(t, link)
	return t
}

// Build expands every link into one combined table, in input order.
func (e *Expander) Build(links []domain.AffiliateLink) *VariationTable {
	t := NewVariationTable()
	for _, link := range links {
		e.expandInto(t, link)
	}
	return t
}

func (e *Expander) expandInto(t *VariationTable, link domain.AffiliateLink) {
	title, url := link.Title, link.URL
	normalized := Normalize(title)

	t.Add(title, url)

	e.addSpecial(t, normalized, url, true)

	// "Enders Game" style titles missing the possessive apostrophe.
	if strings.HasSuffix(title, "s Game") && !hasApostrophe(title) {
		stem := strings.TrimSuffix(title, "s Game")
		t.Add(stem+"'s Game", url)
		t.Add(stem+"’s Game", url)
	}

	e.addSpecial(t, normalized, url, false)

	if !strings.HasPrefix(normalized, "the ") {
		t.Add("The "+title, url)
		t.Add("The "+capitalizeFirst(title), url)
	}

	if hasApostrophe(title) {
		t.Add(stripApostrophes(title), url)
	}
}

// addSpecial applies the matching special cases of one kind, in table order.
func (e *Expander) addSpecial(t *VariationTable, normalized, url string, possessive bool) {
	for _, sc := range e.special {
		if sc.Possessive != possessive || !sc.Detect(normalized) {
			continue
		}
		for _, s := range sc.Spellings {
			t.Add(s, url)
		}
	}
}

// Expand returns the variation table for link using the default special cases.
func Expand(link domain.AffiliateLink) *VariationTable {
	return NewExpander().Expand(link)
}

// BuildTable expands links into one combined table using the default special cases.
func BuildTable(links []domain.AffiliateLink) *VariationTable {
	return NewExpander().Build(links)
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
