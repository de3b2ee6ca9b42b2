// Package domain contains the core entities shared by the link matching engine and the editorial service.
package domain

// AffiliateLink pairs a canonical title with the destination it should link to.
// Title is the contributor-entered name of a book or product. Links are read-only
// inputs to the matching engine.
type AffiliateLink struct {
	Title string `json:"title" yaml:"title" toml:"title" validate:"required,max=300"`
	URL   string `json:"url" yaml:"url" toml:"url" validate:"required,url"`
}
