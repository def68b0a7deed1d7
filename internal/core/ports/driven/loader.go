package driven

import (
	"context"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
)

// TableLoader materialises a Table from a delimited source.
// The loader owns encoding negotiation and must populate the Table's
// SourceInfo with at minimum: row count, column count, column names
// in declared order, and the byte size of the originating source.
type TableLoader interface {
	// Load reads and parses the source at path.
	Load(ctx context.Context, path string, opts domain.LoadOptions) (*domain.Table, error)
}
