// Package content prepares article drafts for link matching and rendering.
package content

import (
	"html"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

var (
	// htmlTagPattern matches common HTML tags to detect if a string contains HTML.
	// Looks for opening tags like <p>, <br>, <div>, <b>, etc.
	htmlTagPattern = regexp.MustCompile(`<(p|br|div|span|b|i|strong|em|a|ul|ol|li|h[1-6]|blockquote|table|figure)[\s>/]`)
	// paragraphSplit separates paragraphs on one or more newlines.
	paragraphSplit = regexp.MustCompile(`\n+`)
	blankLineSplit = regexp.MustCompile(`\n\s*\n`)
)

// ContainsHTML reports whether s appears to contain HTML markup.
func ContainsHTML(s string) bool {
	return htmlTagPattern.MatchString(strings.ToLower(s))
}

// ToText converts an HTML draft to Markdown so paragraphs survive as text lines.
// Non-HTML input, or input that fails to convert, is returned unchanged.
func ToText(s string) string {
	if s == "" || !ContainsHTML(s) {
		return s
	}

	markdown, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		return s
	}

	return strings.TrimSpace(markdown)
}

// Paragraphs splits text on runs of newlines and drops blank blocks.
// Carriage returns are treated as line breaks.
func Paragraphs(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	parts := paragraphSplit.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ToHTML wraps plain-text blocks in escaped <p> elements. Blocks are separated
// by blank lines; single newlines inside a block become <br>.
func ToHTML(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var b strings.Builder
	for _, block := range blankLineSplit.Split(s, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		for i, line := range lines {
			lines[i] = html.EscapeString(strings.TrimSpace(line))
		}
		b.WriteString("<p>")
		b.WriteString(strings.Join(lines, "<br>"))
		b.WriteString("</p>\n")
	}
	return b.String()
}
