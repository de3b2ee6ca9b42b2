package store

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/shelfpost/linkcheck/internal/domain"
)

const (
	submissionPrefix = "submission:"

	// SubmissionSlugIndex is the unique index over submission slugs.
	SubmissionSlugIndex = "slug"
)

func (s *Store) initSubmissions() {
	s.Submissions = NewEntity[domain.Submission](s, submissionPrefix).
		WithIndexTransform(SubmissionSlugIndex,
			func(sub *domain.Submission) []string {
				return []string{strings.ToLower(sub.Slug)}
			},
			strings.ToLower,
		)
}

// CreateSubmission stores a new submission. A taken slug yields *IndexConflictError.
func (s *Store) CreateSubmission(ctx context.Context, sub *domain.Submission) error {
	return s.Submissions.Create(ctx, sub.ID, sub)
}

// GetSubmission returns the submission with id.
func (s *Store) GetSubmission(ctx context.Context, id string) (*domain.Submission, error) {
	sub, err := s.Submissions.Get(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "submission "+id+" not found")
	}
	return sub, nil
}

// GetSubmissionBySlug returns the submission whose slug matches, ignoring case.
func (s *Store) GetSubmissionBySlug(ctx context.Context, slug string) (*domain.Submission, error) {
	sub, err := s.Submissions.GetByIndex(ctx, SubmissionSlugIndex, slug)
	if err != nil {
		return nil, wrapNotFound(err, "submission with slug "+slug+" not found")
	}
	return sub, nil
}

// ListSubmissions returns all submissions, newest first.
func (s *Store) ListSubmissions(ctx context.Context) ([]*domain.Submission, error) {
	var subs []*domain.Submission
	for sub, err := range s.Submissions.List(ctx) {
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	slices.SortStableFunc(subs, func(a, b *domain.Submission) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return subs, nil
}

// UpdateSubmission replaces a stored submission.
func (s *Store) UpdateSubmission(ctx context.Context, sub *domain.Submission) error {
	if err := s.Submissions.Update(ctx, sub.ID, sub); err != nil {
		return wrapNotFound(err, "submission "+sub.ID+" not found")
	}
	return nil
}

// DeleteSubmission removes a submission. Missing ids are ignored.
func (s *Store) DeleteSubmission(ctx context.Context, id string) error {
	return s.Submissions.Delete(ctx, id)
}

func wrapNotFound(err error, msg string) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound.WithMessage(msg)
	}
	return err
}
