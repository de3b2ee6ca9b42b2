package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfpost/linkcheck/internal/domain"
	"github.com/shelfpost/linkcheck/internal/store"
)

func newSubmission(id, slug string, created time.Time) *domain.Submission {
	return &domain.Submission{
		Record:  domain.Record{ID: id, CreatedAt: created, UpdatedAt: created},
		Slug:    slug,
		Title:   slug,
		Content: "Read Ender's Game.",
		Links:   []domain.AffiliateLink{{Title: "Ender's Game", URL: "https://example.com/ender"}},
	}
}

func TestSubmissions_CRUD(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	sub := newSubmission("sub-1", "summer-reading", time.Now())
	require.NoError(t, s.CreateSubmission(ctx, sub))

	got, err := s.GetSubmission(ctx, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, sub.Links, got.Links)
	assert.Equal(t, "summer-reading", got.Slug)

	bySlug, err := s.GetSubmissionBySlug(ctx, "Summer-Reading")
	require.NoError(t, err)
	assert.Equal(t, "sub-1", bySlug.ID)

	got.Title = "Updated"
	got.Slug = "updated"
	require.NoError(t, s.UpdateSubmission(ctx, got))

	_, err = s.GetSubmissionBySlug(ctx, "summer-reading")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.DeleteSubmission(ctx, "sub-1"))
	_, err = s.GetSubmission(ctx, "sub-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Contains(t, err.Error(), "sub-1")
}

func TestSubmissions_SlugConflict(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateSubmission(ctx, newSubmission("sub-1", "dune", time.Now())))
	err := s.CreateSubmission(ctx, newSubmission("sub-2", "DUNE", time.Now()))

	var conflict *store.IndexConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, store.SubmissionSlugIndex, conflict.Index)
}

func TestSubmissions_ListNewestFirst(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateSubmission(ctx, newSubmission("sub-a", "a", base)))
	require.NoError(t, s.CreateSubmission(ctx, newSubmission("sub-b", "b", base.Add(2*time.Hour))))
	require.NoError(t, s.CreateSubmission(ctx, newSubmission("sub-c", "c", base.Add(time.Hour))))

	subs, err := s.ListSubmissions(ctx)
	require.NoError(t, err)

	ids := make([]string, len(subs))
	for i, sub := range subs {
		ids[i] = sub.ID
	}
	assert.Equal(t, []string{"sub-b", "sub-c", "sub-a"}, ids)
}

func TestSubmissions_ListEmpty(t *testing.T) {
	s := setupTestStore(t)

	subs, err := s.ListSubmissions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestSubmissions_UpdateMissing(t *testing.T) {
	s := setupTestStore(t)

	err := s.UpdateSubmission(context.Background(), newSubmission("sub-x", "x", time.Now()))
	assert.ErrorIs(t, err, store.ErrNotFound)
}
