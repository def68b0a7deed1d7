package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
)

// fakeRunStore serves canned listings and captures the limit used.
type fakeRunStore struct {
	runs      []domain.RunRecord
	lastLimit int
	listErr   error
}

func (f *fakeRunStore) SaveRun(_ context.Context, _ *domain.RunRecord) error { return nil }

func (f *fakeRunStore) ListRuns(_ context.Context, limit int) ([]domain.RunRecord, error) {
	f.lastLimit = limit
	return f.runs, f.listErr
}

func (f *fakeRunStore) GetRun(_ context.Context, id string) (*domain.RunRecord, error) {
	for i := range f.runs {
		if f.runs[i].ID == id {
			return &f.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRunStore) Close() error { return nil }

func TestHistoryRecent(t *testing.T) {
	store := &fakeRunStore{runs: []domain.RunRecord{
		{ID: "a", SourcePath: "x.csv", CreatedAt: time.Now()},
	}}
	h := NewHistory(store)

	runs, err := h.Recent(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 5, store.lastLimit)
}

func TestHistoryRecent_DefaultLimit(t *testing.T) {
	store := &fakeRunStore{}
	h := NewHistory(store)

	_, err := h.Recent(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, DefaultHistoryLimit, store.lastLimit)
}

func TestHistoryRecent_StoreFailure(t *testing.T) {
	store := &fakeRunStore{listErr: errors.New("db locked")}
	h := NewHistory(store)

	_, err := h.Recent(context.Background(), 5)

	assert.ErrorContains(t, err, "listing runs")
}

func TestHistoryGet(t *testing.T) {
	store := &fakeRunStore{runs: []domain.RunRecord{{ID: "abc"}}}
	h := NewHistory(store)

	run, err := h.Get(context.Background(), "abc")

	require.NoError(t, err)
	assert.Equal(t, "abc", run.ID)
}

func TestHistoryGet_EmptyID(t *testing.T) {
	h := NewHistory(&fakeRunStore{})

	_, err := h.Get(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryGet_NotFound(t *testing.T) {
	h := NewHistory(&fakeRunStore{})

	_, err := h.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
