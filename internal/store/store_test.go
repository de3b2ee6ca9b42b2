package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfpost/linkcheck/internal/store"
)

type testEntity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func emailEntity(s *store.Store) *store.Entity[testEntity] {
	return store.NewEntity[testEntity](s, "test:").
		WithIndex("email", func(e *testEntity) []string { return []string{e.Email} })
}

func TestEntity_CreateAndGet(t *testing.T) {
	s := setupTestStore(t)
	entity := emailEntity(s)
	ctx := context.Background()

	want := &testEntity{ID: "1", Name: "John Doe", Email: "john@example.com"}
	require.NoError(t, entity.Create(ctx, "1", want))

	got, err := entity.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	byEmail, err := entity.GetByIndex(ctx, "email", "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, "1", byEmail.ID)
}

func TestEntity_CreateDuplicateID(t *testing.T) {
	s := setupTestStore(t)
	entity := emailEntity(s)
	ctx := context.Background()

	require.NoError(t, entity.Create(ctx, "1", &testEntity{ID: "1", Email: "a@x"}))
	err := entity.Create(ctx, "1", &testEntity{ID: "1", Email: "b@x"})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestEntity_IndexConflict(t *testing.T) {
	s := setupTestStore(t)
	entity := emailEntity(s)
	ctx := context.Background()

	require.NoError(t, entity.Create(ctx, "1", &testEntity{ID: "1", Email: "same@x"}))
	err := entity.Create(ctx, "2", &testEntity{ID: "2", Email: "same@x"})

	var conflict *store.IndexConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "email", conflict.Index)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = entity.Get(ctx, "2")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_GetMissing(t *testing.T) {
	s := setupTestStore(t)
	entity := emailEntity(s)

	_, err := entity.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = entity.GetByIndex(context.Background(), "email", "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_UpdateMovesIndex(t *testing.T) {
	s := setupTestStore(t)
	entity := emailEntity(s)
	ctx := context.Background()

	require.NoError(t, entity.Create(ctx, "1", &testEntity{ID: "1", Email: "old@x"}))
	require.NoError(t, entity.Update(ctx, "1", &testEntity{ID: "1", Email: "new@x"}))

	_, err := entity.GetByIndex(ctx, "email", "old@x")
	assert.ErrorIs(t, err, store.ErrNotFound)

	got, err := entity.GetByIndex(ctx, "email", "new@x")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)

	// Old value is free again.
	require.NoError(t, entity.Create(ctx, "2", &testEntity{ID: "2", Email: "old@x"}))
}

func TestEntity_UpdateKeepsOwnIndex(t *testing.T) {
	s := setupTestStore(t)
	entity := emailEntity(s)
	ctx := context.Background()

	require.NoError(t, entity.Create(ctx, "1", &testEntity{ID: "1", Name: "a", Email: "me@x"}))
	require.NoError(t, entity.Update(ctx, "1", &testEntity{ID: "1", Name: "b", Email: "me@x"}))

	got, err := entity.GetByIndex(ctx, "email", "me@x")
	require.NoError(t, err)
	assert.Equal(t, "b", got.Name)
}

func TestEntity_UpdateConflictAndMissing(t *testing.T) {
	s := setupTestStore(t)
	entity := emailEntity(s)
	ctx := context.Background()

	require.NoError(t, entity.Create(ctx, "1", &testEntity{ID: "1", Email: "one@x"}))
	require.NoError(t, entity.Create(ctx, "2", &testEntity{ID: "2", Email: "two@x"}))

	err := entity.Update(ctx, "2", &testEntity{ID: "2", Email: "one@x"})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	err = entity.Update(ctx, "3", &testEntity{ID: "3", Email: "three@x"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_DeleteIdempotent(t *testing.T) {
	s := setupTestStore(t)
	entity := emailEntity(s)
	ctx := context.Background()

	require.NoError(t, entity.Create(ctx, "1", &testEntity{ID: "1", Email: "a@x"}))
	require.NoError(t, entity.Delete(ctx, "1"))
	require.NoError(t, entity.Delete(ctx, "1"))

	_, err := entity.GetByIndex(ctx, "email", "a@x")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_ListSkipsIndexKeys(t *testing.T) {
	s := setupTestStore(t)
	entity := emailEntity(s)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, entity.Create(ctx, id, &testEntity{ID: id, Email: id + "@x"}))
	}

	var ids []string
	for e, err := range entity.List(ctx) {
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestEntity_ListEarlyStop(t *testing.T) {
	s := setupTestStore(t)
	entity := emailEntity(s)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, entity.Create(ctx, id, &testEntity{ID: id, Email: id + "@x"}))
	}

	count := 0
	for _, err := range entity.List(ctx) {
		require.NoError(t, err)
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestEntity_CanceledContext(t *testing.T) {
	s := setupTestStore(t)
	entity := emailEntity(s)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, entity.Create(ctx, "1", &testEntity{}), context.Canceled)
	_, err := entity.Get(ctx, "1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_Ping(t *testing.T) {
	s, err := store.NewInMemory(nil)
	require.NoError(t, err)

	assert.NoError(t, s.Ping())
	require.NoError(t, s.Close())
	assert.Error(t, s.Ping())
	assert.NoError(t, s.Close(), "second close is a no-op")
}
