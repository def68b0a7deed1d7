package driven

import (
	"context"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
)

// RunStore persists audit run history.
type RunStore interface {
	// SaveRun records a completed audit run.
	SaveRun(ctx context.Context, run *domain.RunRecord) error

	// ListRuns returns the most recent runs, newest first.
	// Findings are omitted from listings.
	ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// GetRun returns a single run with its full finding list.
	// Returns domain.ErrNotFound when the id is unknown.
	GetRun(ctx context.Context, id string) (*domain.RunRecord, error)

	// Close releases the underlying storage.
	Close() error
}
