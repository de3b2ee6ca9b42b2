package domain

// Submission is a stored article draft together with the affiliate links configured for it.
type Submission struct {
	Record
	Slug    string          `json:"slug"`
	Title   string          `json:"title"`
	Content string          `json:"content"`
	Links   []AffiliateLink `json:"links"`
}

// LinkTitles returns the canonical titles of the submission's links in order.
func (s *Submission) LinkTitles() []string {
	titles := make([]string, len(s.Links))
	for i, l := range s.Links {
		titles[i] = l.Title
	}
	return titles
}
