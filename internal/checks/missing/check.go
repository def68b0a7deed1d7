// Package missing provides the per-column missing-value census.
package missing

import (
	"context"
	"fmt"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driven"
)

// Ensure Check implements the interface.
var _ driven.Check = (*Check)(nil)

// Check counts missing cells per column and classifies the result by
// the share of rows affected. Columns with no missing values produce
// no finding.
type Check struct{}

// New creates the missing-value check.
func New() *Check {
	return &Check{}
}

// Name returns the check name.
func (c *Check) Name() string {
	return "missing-values"
}

// Run emits one finding per column with a non-zero missing count.
func (c *Check) Run(_ context.Context, tbl *domain.Table) []domain.Finding {
	rows := tbl.RowCount()
	if rows == 0 {
		return nil
	}

	var findings []domain.Finding
	for i := range tbl.Columns {
		col := &tbl.Columns[i]
		count := col.MissingCount()
		if count == 0 {
			continue
		}

		pct := domain.Percentage(count, rows)
		findings = append(findings, domain.Finding{
			Kind:       domain.FindingMissingValues,
			Severity:   classify(pct),
			Column:     col.Name,
			Message:    fmt.Sprintf("column has %d missing values (%.2f%%)", count, pct),
			Count:      count,
			Percentage: pct,
		})
	}
	return findings
}

// classify maps a missing percentage to a severity. Thresholds are
// strictly greater-than: exactly 50% missing is an error, not
// critical.
func classify(pct float64) domain.Severity {
	switch {
	case pct > 50:
		return domain.SeverityCritical
	case pct > 20:
		return domain.SeverityError
	case pct > 5:
		return domain.SeverityWarning
	default:
		return domain.SeverityInfo
	}
}
