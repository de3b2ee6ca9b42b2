package api

import (
	"time"

	"github.com/shelfpost/linkcheck/internal/domain"
	"github.com/shelfpost/linkcheck/internal/inject"
	"github.com/shelfpost/linkcheck/internal/service"
	"github.com/shelfpost/linkcheck/internal/titlematch"
)

// LinkBody is one affiliate link in a request or response.
type LinkBody struct {
	Title string `json:"title" doc:"Canonical title as entered by the contributor" example:"Ender's Game"`
	URL   string `json:"url" doc:"Affiliate destination URL" example:"https://example.com/ender"`
}

// DraftBody is an unsaved draft with its links.
type DraftBody struct {
	Content string     `json:"content" doc:"Article text; blank lines or HTML block elements separate paragraphs"`
	Links   []LinkBody `json:"links" doc:"Affiliate links to check"`
}

// MatchResultResponse is the health of one link.
type MatchResultResponse struct {
	Title      string   `json:"title" doc:"Canonical title"`
	URL        string   `json:"url" doc:"Affiliate URL"`
	Count      int      `json:"count" doc:"Paragraphs that resolve to this link"`
	Variations []string `json:"variations" doc:"Spellings that resolve to this URL"`
	Healthy    bool     `json:"healthy" doc:"True when count is at least one"`
}

// CollisionResponse reports a spelling claimed by two URLs.
type CollisionResponse struct {
	Variation   string `json:"variation" doc:"Spelling claimed by both links"`
	PreviousURL string `json:"previous_url" doc:"URL that lost the spelling"`
	URL         string `json:"url" doc:"URL that now owns the spelling"`
}

// LinkHealthResponse is a full health report.
type LinkHealthResponse struct {
	ReportID   string                `json:"report_id" doc:"Unique id for this check"`
	Paragraphs int                   `json:"paragraphs" doc:"Non-blank paragraphs analyzed"`
	Results    []MatchResultResponse `json:"results" doc:"One entry per link, in request order"`
	Collisions []CollisionResponse   `json:"collisions" doc:"Spellings overwritten by a later link"`
}

// PlacementResponse counts hyperlinks inserted for one link.
type PlacementResponse struct {
	Title string `json:"title" doc:"Canonical title"`
	URL   string `json:"url" doc:"Affiliate URL"`
	Count int    `json:"count" doc:"Anchors inserted"`
}

// RenderResponse is a draft with affiliate links inserted.
type RenderResponse struct {
	HTML       string              `json:"html" doc:"Sanitized HTML"`
	Placements []PlacementResponse `json:"placements" doc:"One entry per link, in request order"`
}

// SubmissionBody carries the editable fields of a submission.
type SubmissionBody struct {
	Title   string     `json:"title" maxLength:"300" doc:"Article title"`
	Content string     `json:"content" doc:"Article draft"`
	Links   []LinkBody `json:"links" doc:"Affiliate links for the article"`
}

// SubmissionResponse is a stored submission.
type SubmissionResponse struct {
	ID        string     `json:"id" doc:"Submission ID"`
	Slug      string     `json:"slug" doc:"URL-safe unique slug"`
	Title     string     `json:"title" doc:"Article title"`
	Content   string     `json:"content" doc:"Article draft"`
	Links     []LinkBody `json:"links" doc:"Affiliate links"`
	CreatedAt time.Time  `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time  `json:"updated_at" doc:"Last update time"`
}

func toDomainLinks(links []LinkBody) []domain.AffiliateLink {
	out := make([]domain.AffiliateLink, len(links))
	for i, l := range links {
		out[i] = domain.AffiliateLink{Title: l.Title, URL: l.URL}
	}
	return out
}

func toLinkBodies(links []domain.AffiliateLink) []LinkBody {
	out := make([]LinkBody, len(links))
	for i, l := range links {
		out[i] = LinkBody{Title: l.Title, URL: l.URL}
	}
	return out
}

func toLinkHealthResponse(r *service.HealthReport) LinkHealthResponse {
	resp := LinkHealthResponse{
		ReportID:   r.ReportID,
		Paragraphs: r.Paragraphs,
		Results:    make([]MatchResultResponse, len(r.Results)),
		Collisions: toCollisionResponses(r.Collisions),
	}
	for i, res := range r.Results {
		resp.Results[i] = MatchResultResponse{
			Title:      res.Title,
			URL:        res.URL,
			Count:      res.Count,
			Variations: res.Variations,
			Healthy:    res.Healthy(),
		}
	}
	return resp
}

func toCollisionResponses(cs []titlematch.Collision) []CollisionResponse {
	out := make([]CollisionResponse, len(cs))
	for i, c := range cs {
		out[i] = CollisionResponse{Variation: c.Variation, PreviousURL: c.PreviousURL, URL: c.URL}
	}
	return out
}

func toRenderResponse(r *inject.Result) RenderResponse {
	resp := RenderResponse{HTML: r.HTML, Placements: make([]PlacementResponse, len(r.Placements))}
	for i, p := range r.Placements {
		resp.Placements[i] = PlacementResponse{Title: p.Title, URL: p.URL, Count: p.Count}
	}
	return resp
}

func toSubmissionResponse(s *domain.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:        s.ID,
		Slug:      s.Slug,
		Title:     s.Title,
		Content:   s.Content,
		Links:     toLinkBodies(s.Links),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
