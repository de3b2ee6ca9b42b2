package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfpost/linkcheck/internal/service"
)

func (s *Server) registerLinkHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "checkLinkHealth",
		Method:      http.MethodPost,
		Path:        "/api/v1/link-health",
		Summary:     "Check link health",
		Description: "Counts, for each affiliate link, the paragraphs of the draft that resolve to it",
		Tags:        []string{"Link Health"},
	}, s.handleCheckLinkHealth)

	huma.Register(s.api, huma.Operation{
		OperationID: "renderDraft",
		Method:      http.MethodPost,
		Path:        "/api/v1/render",
		Summary:     "Render draft",
		Description: "Returns sanitized HTML with affiliate hyperlinks inserted",
		Tags:        []string{"Link Health"},
	}, s.handleRenderDraft)

	huma.Register(s.api, huma.Operation{
		OperationID: "checkSubmissionLinkHealth",
		Method:      http.MethodGet,
		Path:        "/api/v1/submissions/{id}/link-health",
		Summary:     "Check submission link health",
		Description: "Runs a link health check on a stored submission",
		Tags:        []string{"Submissions"},
	}, s.handleCheckSubmissionLinkHealth)

	huma.Register(s.api, huma.Operation{
		OperationID: "renderSubmission",
		Method:      http.MethodGet,
		Path:        "/api/v1/submissions/{id}/render",
		Summary:     "Render submission",
		Description: "Returns the stored draft as sanitized HTML with affiliate hyperlinks inserted",
		Tags:        []string{"Submissions"},
	}, s.handleRenderSubmission)
}

// DraftInput wraps a draft request body for Huma.
type DraftInput struct {
	Body DraftBody
}

// LinkHealthOutput wraps the health report for Huma.
type LinkHealthOutput struct {
	Body LinkHealthResponse
}

// RenderOutput wraps the render response for Huma.
type RenderOutput struct {
	Body RenderResponse
}

// SubmissionIDInput identifies a submission by path.
type SubmissionIDInput struct {
	ID string `path:"id" doc:"Submission ID"`
}

func (s *Server) handleCheckLinkHealth(ctx context.Context, input *DraftInput) (*LinkHealthOutput, error) {
	report, err := s.services.LinkHealth.Check(ctx, service.DraftRequest{
		Content: input.Body.Content,
		Links:   toDomainLinks(input.Body.Links),
	})
	if err != nil {
		return nil, apiError(err)
	}
	return &LinkHealthOutput{Body: toLinkHealthResponse(report)}, nil
}

func (s *Server) handleRenderDraft(ctx context.Context, input *DraftInput) (*RenderOutput, error) {
	result, err := s.services.LinkHealth.Render(ctx, service.DraftRequest{
		Content: input.Body.Content,
		Links:   toDomainLinks(input.Body.Links),
	})
	if err != nil {
		return nil, apiError(err)
	}
	return &RenderOutput{Body: toRenderResponse(result)}, nil
}

func (s *Server) handleCheckSubmissionLinkHealth(ctx context.Context, input *SubmissionIDInput) (*LinkHealthOutput, error) {
	report, err := s.services.LinkHealth.CheckSubmission(ctx, input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	return &LinkHealthOutput{Body: toLinkHealthResponse(report)}, nil
}

func (s *Server) handleRenderSubmission(ctx context.Context, input *SubmissionIDInput) (*RenderOutput, error) {
	result, err := s.services.LinkHealth.RenderSubmission(ctx, input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	return &RenderOutput{Body: toRenderResponse(result)}, nil
}
