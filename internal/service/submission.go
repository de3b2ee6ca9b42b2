// Package service implements the editorial operations on top of the store and the matching engine.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shelfpost/linkcheck/internal/domain"
	domainerrors "github.com/shelfpost/linkcheck/internal/errors"
	"github.com/shelfpost/linkcheck/internal/id"
	"github.com/shelfpost/linkcheck/internal/store"
	"github.com/shelfpost/linkcheck/internal/util"
	"github.com/shelfpost/linkcheck/internal/validation"
)

// maxSlugAttempts bounds the -2, -3, ... suffix search for a free slug.
const maxSlugAttempts = 100

// SubmissionService manages stored article drafts.
type SubmissionService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewSubmissionService creates a new submission service.
func NewSubmissionService(store *store.Store, logger *slog.Logger) *SubmissionService {
	return &SubmissionService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// SubmissionRequest carries the editable fields of a submission.
type SubmissionRequest struct {
	Title   string                 `json:"title" validate:"notblank,max=300"`
	Content string                 `json:"content" validate:"notblank"`
	Links   []domain.AffiliateLink `json:"links" validate:"max=500,dive"`
}

// Create validates req and stores a new submission with a unique slug.
func (s *SubmissionService) Create(ctx context.Context, req SubmissionRequest) (*domain.Submission, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	subID, err := id.Generate(id.PrefixSubmission)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to generate submission id")
	}

	sub := &domain.Submission{
		Record:  domain.Record{ID: subID},
		Title:   req.Title,
		Content: req.Content,
		Links:   copyLinks(req.Links),
	}
	sub.InitTimestamps()

	base := util.Slugify(req.Title)
	for n := 1; n <= maxSlugAttempts; n++ {
		sub.Slug = util.NthSlug(base, n)

		err = s.store.CreateSubmission(ctx, sub)
		if err == nil {
			s.logger.Info("submission created", "id", sub.ID, "slug", sub.Slug, "links", len(sub.Links))
			return sub, nil
		}

		var conflict *store.IndexConflictError
		if !errors.As(err, &conflict) {
			return nil, fmt.Errorf("create submission: %w", err)
		}
	}

	return nil, domainerrors.Conflictf("no free slug for %q after %d attempts", base, maxSlugAttempts)
}

// Get returns the submission with id.
func (s *SubmissionService) Get(ctx context.Context, subID string) (*domain.Submission, error) {
	sub, err := s.store.GetSubmission(ctx, subID)
	if err != nil {
		return nil, translateStoreError(err, "submission %s not found", subID)
	}
	return sub, nil
}

// GetBySlug returns the submission with slug.
func (s *SubmissionService) GetBySlug(ctx context.Context, slug string) (*domain.Submission, error) {
	sub, err := s.store.GetSubmissionBySlug(ctx, slug)
	if err != nil {
		return nil, translateStoreError(err, "submission with slug %s not found", slug)
	}
	return sub, nil
}

// List returns every submission, newest first.
func (s *SubmissionService) List(ctx context.Context) ([]*domain.Submission, error) {
	subs, err := s.store.ListSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	if subs == nil {
		subs = []*domain.Submission{}
	}
	return subs, nil
}

// Update replaces the title, content, and links of a submission.
// The slug is a permalink and does not follow title changes.
func (s *SubmissionService) Update(ctx context.Context, subID string, req SubmissionRequest) (*domain.Submission, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	sub, err := s.Get(ctx, subID)
	if err != nil {
		return nil, err
	}

	sub.Title = req.Title
	sub.Content = req.Content
	sub.Links = copyLinks(req.Links)
	sub.Touch()

	if err := s.store.UpdateSubmission(ctx, sub); err != nil {
		return nil, translateStoreError(err, "submission %s not found", subID)
	}

	s.logger.Info("submission updated", "id", sub.ID, "links", len(sub.Links))
	return sub, nil
}

// Delete removes a submission. Deleting a missing submission succeeds.
func (s *SubmissionService) Delete(ctx context.Context, subID string) error {
	if err := s.store.DeleteSubmission(ctx, subID); err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}
	s.logger.Info("submission deleted", "id", subID)
	return nil
}

func translateStoreError(err error, format string, args ...any) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.NotFoundf(format, args...)
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.Conflictf("%s", err.Error())
	default:
		return err
	}
}

func copyLinks(links []domain.AffiliateLink) []domain.AffiliateLink {
	out := make([]domain.AffiliateLink, len(links))
	copy(out, links)
	return out
}
