// Package inject turns title mentions in an article into affiliate hyperlinks at publish time.
//
// It shares the titlematch primitives with the link health check so that a link
// reported healthy is also the one that gets rendered.
package inject

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/shelfpost/linkcheck/internal/content"
	"github.com/shelfpost/linkcheck/internal/domain"
	"github.com/shelfpost/linkcheck/internal/titlematch"
)

// DefaultMaxPerTitle caps how many hyperlinks a single title receives per article.
const DefaultMaxPerTitle = 2

// blockElements are treated as paragraphs when they hold no nested block.
//
//nolint:gochecknoglobals // Static lookup table
var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Li: true, atom.Blockquote: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Td: true, atom.Th: true, atom.Figcaption: true, atom.Dd: true, atom.Dt: true,
	atom.Div: true,
}

// Placement reports how many anchors were created for one link.
type Placement struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// Result is the rendered article.
type Result struct {
	HTML       string      `json:"html"`
	Placements []Placement `json:"placements"`
}

// Injector places affiliate hyperlinks into article HTML.
type Injector struct {
	maxPerTitle int
	expander    *titlematch.Expander
	policy      *bluemonday.Policy
}

// Option configures an Injector.
type Option func(*Injector)

// WithMaxPerTitle overrides DefaultMaxPerTitle. Values below one are ignored.
func WithMaxPerTitle(n int) Option {
	return func(in *Injector) {
		if n >= 1 {
			in.maxPerTitle = n
		}
	}
}

// WithExpander sets the variation expander.
func WithExpander(e *titlematch.Expander) Option {
	return func(in *Injector) {
		in.expander = e
	}
}

// New creates an injector.
func New(opts ...Option) *Injector {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnFullyQualifiedLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.AllowAttrs("rel").Matching(regexp.MustCompile(`^[a-z ]+$`)).OnElements("a")

	in := &Injector{
		maxPerTitle: DefaultMaxPerTitle,
		expander:    titlematch.NewExpander(),
		policy:      policy,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// MaxPerTitle returns the configured per-title cap.
func (in *Injector) MaxPerTitle() int {
	return in.maxPerTitle
}

// linkState tracks one configured link during a render.
type linkState struct {
	link       domain.AffiliateLink
	variations []string
	patterns   []*regexp.Regexp
	count      int
}

// Inject renders text (HTML or plain paragraphs) with affiliate hyperlinks.
// Each link is placed at most once per paragraph and at most MaxPerTitle times
// per title. Text already inside an anchor is left alone.
func (in *Injector) Inject(text string, links []domain.AffiliateLink) (*Result, error) {
	if !content.ContainsHTML(text) {
		text = content.ToHTML(text)
	}

	container := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(text), container)
	if err != nil {
		return nil, fmt.Errorf("parse article html: %w", err)
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	table := in.expander.Build(links)
	states := make([]*linkState, len(links))
	for i, link := range links {
		states[i] = newLinkState(link, table.VariationsFor(link.URL))
	}

	perTitle := make(map[string]int)
	in.walk(container, states, perTitle)

	var buf bytes.Buffer
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return nil, fmt.Errorf("render article html: %w", err)
		}
	}

	result := &Result{
		HTML:       in.policy.Sanitize(buf.String()),
		Placements: make([]Placement, len(states)),
	}
	for i, s := range states {
		result.Placements[i] = Placement{Title: s.link.Title, URL: s.link.URL, Count: s.count}
	}
	return result, nil
}

func newLinkState(link domain.AffiliateLink, variations []string) *linkState {
	// Longest spelling first so "The Hobbit" wins over "Hobbit".
	sorted := append([]string(nil), variations...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i]) > utf8.RuneCountInString(sorted[j])
	})

	patterns := make([]*regexp.Regexp, 0, len(sorted))
	for _, v := range sorted {
		if strings.TrimSpace(v) == "" {
			continue
		}
		patterns = append(patterns, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(v)))
	}

	return &linkState{link: link, variations: variations, patterns: patterns}
}

func (in *Injector) walk(n *html.Node, states []*linkState, perTitle map[string]int) {
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		return
	}
	if n.Type == html.ElementNode && blockElements[n.DataAtom] && !hasBlockDescendant(n) {
		in.linkParagraph(n, states, perTitle)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		in.walk(c, states, perTitle)
	}
}

// linkParagraph places at most one anchor per link inside a leaf block.
func (in *Injector) linkParagraph(block *html.Node, states []*linkState, perTitle map[string]int) {
	paragraph := textContent(block)
	if strings.TrimSpace(paragraph) == "" {
		return
	}

	for _, s := range states {
		key := titlematch.Normalize(s.link.Title)
		if perTitle[key] >= in.maxPerTitle {
			continue
		}
		if _, ok := titlematch.FindMatch(paragraph, s.variations); !ok {
			continue
		}
		if wrapFirst(block, s) {
			s.count++
			perTitle[key]++
		}
	}
}

// wrapFirst wraps the first literal occurrence of any variation in an anchor.
// Fuzzy matches without a literal span are skipped.
func wrapFirst(block *html.Node, s *linkState) bool {
	for _, re := range s.patterns {
		if wrapPattern(block, re, s.link.URL) {
			return true
		}
	}
	return false
}

func wrapPattern(n *html.Node, re *regexp.Regexp, url string) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.ElementNode && c.DataAtom == atom.A:
			continue
		case c.Type == html.TextNode:
			if start, end, ok := findBounded(c.Data, re); ok {
				splitAndWrap(c, start, end, url)
				return true
			}
		case c.Type == html.ElementNode:
			if wrapPattern(c, re, url) {
				return true
			}
		}
	}
	return false
}

// findBounded returns the first match not glued to surrounding letters or digits.
func findBounded(text string, re *regexp.Regexp) (int, int, bool) {
	for _, loc := range re.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if start > 0 {
			r, _ := utf8.DecodeLastRuneInString(text[:start])
			if isWordRune(r) {
				continue
			}
		}
		if end < len(text) {
			r, _ := utf8.DecodeRuneInString(text[end:])
			if isWordRune(r) {
				continue
			}
		}
		return start, end, true
	}
	return 0, 0, false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// splitAndWrap replaces text node t with before, <a>match</a>, after.
func splitAndWrap(t *html.Node, start, end int, url string) {
	parent := t.Parent
	before, match, after := t.Data[:start], t.Data[start:end], t.Data[end:]

	anchor := &html.Node{
		Type:     html.ElementNode,
		Data:     "a",
		DataAtom: atom.A,
		Attr: []html.Attribute{
			{Key: "href", Val: url},
			{Key: "rel", Val: "sponsored"},
		},
	}
	anchor.AppendChild(&html.Node{Type: html.TextNode, Data: match})

	if before != "" {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: before}, t)
	}
	parent.InsertBefore(anchor, t)
	if after != "" {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: after}, t)
	}
	parent.RemoveChild(t)
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Br {
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}

func hasBlockDescendant(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (blockElements[c.DataAtom] || hasBlockDescendant(c)) {
			return true
		}
	}
	return false
}
