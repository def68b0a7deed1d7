package driven

import (
	"context"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
)

// Check is a single validation pass over a materialised table.
// Checks are read-only: they never mutate the table, and they report
// problems as findings rather than errors. A check that cannot
// evaluate something (insufficient sample, absent column) stays
// silent instead of failing the run.
type Check interface {
	// Name identifies the check in logs.
	Name() string

	// Run evaluates the table and returns its findings, if any.
	Run(ctx context.Context, tbl *domain.Table) []domain.Finding
}

// CheckFactory builds the check pipeline for a run.
type CheckFactory interface {
	// Structural returns the schema-level check that runs before all
	// others and may short-circuit the run (e.g. on an empty table).
	Structural() Check

	// Passes returns the value-level checks for the given rule set,
	// in deterministic order. The passes are independent of each
	// other and safe to run concurrently over the same table.
	Passes(rules []domain.BusinessRule) []Check
}
