package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfpost/linkcheck/internal/service"
)

func (s *Server) registerSubmissionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createSubmission",
		Method:        http.MethodPost,
		Path:          "/api/v1/submissions",
		Summary:       "Create submission",
		Description:   "Stores a draft with its affiliate links and assigns a unique slug",
		Tags:          []string{"Submissions"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateSubmission)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSubmissions",
		Method:      http.MethodGet,
		Path:        "/api/v1/submissions",
		Summary:     "List submissions",
		Description: "Returns all submissions, newest first",
		Tags:        []string{"Submissions"},
	}, s.handleListSubmissions)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSubmission",
		Method:      http.MethodGet,
		Path:        "/api/v1/submissions/{id}",
		Summary:     "Get submission",
		Description: "Returns a submission by ID",
		Tags:        []string{"Submissions"},
	}, s.handleGetSubmission)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSubmissionBySlug",
		Method:      http.MethodGet,
		Path:        "/api/v1/submissions/by-slug/{slug}",
		Summary:     "Get submission by slug",
		Description: "Returns a submission by its slug",
		Tags:        []string{"Submissions"},
	}, s.handleGetSubmissionBySlug)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateSubmission",
		Method:      http.MethodPut,
		Path:        "/api/v1/submissions/{id}",
		Summary:     "Update submission",
		Description: "Replaces the title, content, and links of a submission",
		Tags:        []string{"Submissions"},
	}, s.handleUpdateSubmission)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteSubmission",
		Method:        http.MethodDelete,
		Path:          "/api/v1/submissions/{id}",
		Summary:       "Delete submission",
		Description:   "Deletes a submission; deleting a missing submission succeeds",
		Tags:          []string{"Submissions"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteSubmission)
}

// CreateSubmissionInput wraps the create request for Huma.
type CreateSubmissionInput struct {
	Body SubmissionBody
}

// UpdateSubmissionInput wraps the update request for Huma.
type UpdateSubmissionInput struct {
	ID   string `path:"id" doc:"Submission ID"`
	Body SubmissionBody
}

// SubmissionSlugInput identifies a submission by slug.
type SubmissionSlugInput struct {
	Slug string `path:"slug" doc:"Submission slug"`
}

// SubmissionOutput wraps a submission for Huma.
type SubmissionOutput struct {
	Body SubmissionResponse
}

// ListSubmissionsResponse contains all submissions.
type ListSubmissionsResponse struct {
	Submissions []SubmissionResponse `json:"submissions" doc:"Submissions, newest first"`
}

// ListSubmissionsOutput wraps the list for Huma.
type ListSubmissionsOutput struct {
	Body ListSubmissionsResponse
}

func (s *Server) handleCreateSubmission(ctx context.Context, input *CreateSubmissionInput) (*SubmissionOutput, error) {
	sub, err := s.services.Submissions.Create(ctx, toSubmissionRequest(input.Body))
	if err != nil {
		return nil, apiError(err)
	}
	return &SubmissionOutput{Body: toSubmissionResponse(sub)}, nil
}

func (s *Server) handleListSubmissions(ctx context.Context, _ *struct{}) (*ListSubmissionsOutput, error) {
	subs, err := s.services.Submissions.List(ctx)
	if err != nil {
		return nil, apiError(err)
	}

	resp := make([]SubmissionResponse, len(subs))
	for i, sub := range subs {
		resp[i] = toSubmissionResponse(sub)
	}
	return &ListSubmissionsOutput{Body: ListSubmissionsResponse{Submissions: resp}}, nil
}

func (s *Server) handleGetSubmission(ctx context.Context, input *SubmissionIDInput) (*SubmissionOutput, error) {
	sub, err := s.services.Submissions.Get(ctx, input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	return &SubmissionOutput{Body: toSubmissionResponse(sub)}, nil
}

func (s *Server) handleGetSubmissionBySlug(ctx context.Context, input *SubmissionSlugInput) (*SubmissionOutput, error) {
	sub, err := s.services.Submissions.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, apiError(err)
	}
	return &SubmissionOutput{Body: toSubmissionResponse(sub)}, nil
}

func (s *Server) handleUpdateSubmission(ctx context.Context, input *UpdateSubmissionInput) (*SubmissionOutput, error) {
	sub, err := s.services.Submissions.Update(ctx, input.ID, toSubmissionRequest(input.Body))
	if err != nil {
		return nil, apiError(err)
	}
	return &SubmissionOutput{Body: toSubmissionResponse(sub)}, nil
}

func (s *Server) handleDeleteSubmission(ctx context.Context, input *SubmissionIDInput) (*struct{}, error) {
	if err := s.services.Submissions.Delete(ctx, input.ID); err != nil {
		return nil, apiError(err)
	}
	return nil, nil
}

func toSubmissionRequest(body SubmissionBody) service.SubmissionRequest {
	return service.SubmissionRequest{
		Title:   body.Title,
		Content: body.Content,
		Links:   toDomainLinks(body.Links),
	}
}
