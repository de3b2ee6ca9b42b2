package service

import (
	"context"
	"log/slog"

	"github.com/shelfpost/linkcheck/internal/content"
	"github.com/shelfpost/linkcheck/internal/domain"
	"github.com/shelfpost/linkcheck/internal/id"
	"github.com/shelfpost/linkcheck/internal/inject"
	"github.com/shelfpost/linkcheck/internal/linkhealth"
	"github.com/shelfpost/linkcheck/internal/validation"
)

// SubmissionGetter loads a stored draft by id.
type SubmissionGetter interface {
	Get(ctx context.Context, id string) (*domain.Submission, error)
}

// LinkHealthService runs link health checks and link injection on drafts.
type LinkHealthService struct {
	analyzer    *linkhealth.Analyzer
	injector    *inject.Injector
	submissions SubmissionGetter
	logger      *slog.Logger
	validator   *validation.Validator
}

// NewLinkHealthService creates a service that links each title at most maxPerTitle times.
func NewLinkHealthService(submissions SubmissionGetter, maxPerTitle int, logger *slog.Logger) *LinkHealthService {
	return &LinkHealthService{
		analyzer:    linkhealth.New(),
		injector:    inject.New(inject.WithMaxPerTitle(maxPerTitle)),
		submissions: submissions,
		logger:      logger,
		validator:   validation.New(),
	}
}

// DraftRequest is an unsaved draft with its affiliate links.
type DraftRequest struct {
	Content string                 `json:"content"`
	Links   []domain.AffiliateLink `json:"links" validate:"max=500,dive"`
}

// HealthReport is a link health report tagged with a unique id for log correlation.
type HealthReport struct {
	ReportID string `json:"report_id"`
	*linkhealth.Report
}

// Check reports how many paragraphs of the draft resolve to each link.
// HTML drafts are reduced to text first.
func (s *LinkHealthService) Check(ctx context.Context, req DraftRequest) (*HealthReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	report := &HealthReport{
		ReportID: id.NewReportID(),
		Report:   s.analyzer.Check(content.ToText(req.Content), req.Links),
	}

	log := s.logger.With("report_id", report.ReportID)
	for _, c := range report.Collisions {
		log.Warn("variation collision",
			"variation", c.Variation,
			"kept_url", c.URL,
			"overwritten_url", c.PreviousURL,
		)
	}
	log.Info("link health checked",
		"links", len(req.Links),
		"paragraphs", report.Paragraphs,
		"matched", len(report.Results)-len(report.Unmatched()),
	)

	return report, nil
}

// Render hyperlinks the draft's titles and returns sanitized HTML.
func (s *LinkHealthService) Render(ctx context.Context, req DraftRequest) (*inject.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	result, err := s.injector.Inject(req.Content, req.Links)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("draft rendered", "links", len(req.Links), "placements", len(result.Placements))
	return result, nil
}

// CheckSubmission runs Check on a stored submission.
func (s *LinkHealthService) CheckSubmission(ctx context.Context, subID string) (*HealthReport, error) {
	sub, err := s.submissions.Get(ctx, subID)
	if err != nil {
		return nil, err
	}
	return s.Check(ctx, DraftRequest{Content: sub.Content, Links: sub.Links})
}

// RenderSubmission runs Render on a stored submission.
func (s *LinkHealthService) RenderSubmission(ctx context.Context, subID string) (*inject.Result, error) {
	sub, err := s.submissions.Get(ctx, subID)
	if err != nil {
		return nil, err
	}
	return s.Render(ctx, DraftRequest{Content: sub.Content, Links: sub.Links})
}
