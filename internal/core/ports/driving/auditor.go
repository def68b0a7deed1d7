package driving

import (
	"context"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
)

// AuditOptions configures a single audit run.
type AuditOptions struct {
	// Load controls source parsing (delimiter).
	Load domain.LoadOptions

	// Rules is the optional business rule set to evaluate.
	Rules []domain.BusinessRule

	// SkipHistory disables run persistence for this audit.
	SkipHistory bool
}

// AuditorService runs the validation pipeline over a delimited source
// and produces the derived report.
type AuditorService interface {
	// Audit loads the source at path and validates it.
	// The returned report is a pure function of the table and the
	// rule set: auditing the same source twice yields identical
	// reports.
	Audit(ctx context.Context, path string, opts AuditOptions) (*domain.Report, error)
}
