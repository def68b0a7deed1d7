package driving

import (
	"context"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
)

// HistoryService provides access to persisted audit runs.
type HistoryService interface {
	// Recent returns the most recent runs, newest first.
	Recent(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Get returns a single run with its full finding list.
	Get(ctx context.Context, id string) (*domain.RunRecord, error)
}
