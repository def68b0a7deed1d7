package services

import (
	"context"
	"fmt"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driven"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driving"
)

// DefaultHistoryLimit bounds listings when no limit is given.
const DefaultHistoryLimit = 20

// Ensure History implements the interface.
var _ driving.HistoryService = (*History)(nil)

// History exposes persisted audit runs.
type History struct {
	store driven.RunStore
}

// NewHistory creates a history service backed by the given store.
func NewHistory(store driven.RunStore) *History {
	return &History{store: store}
}

// Recent returns the most recent runs, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	runs, err := h.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// Get returns a single run with its full finding list.
func (h *History) Get(ctx context.Context, id string) (*domain.RunRecord, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: run id required", domain.ErrInvalidInput)
	}
	run, err := h.store.GetRun(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting run %s: %w", id, err)
	}
	return run, nil
}
