// Package structural provides the schema-level sanity check that runs
// before all value-level passes.
package structural

import (
	"context"
	"fmt"
	"strings"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driven"
)

// Ensure Check implements the interface.
var _ driven.Check = (*Check)(nil)

// Check verifies the table is non-empty, has no fully-null columns
// and no duplicate column names.
type Check struct{}

// New creates the structural check.
func New() *Check {
	return &Check{}
}

// Name returns the check name.
func (c *Check) Name() string {
	return "structural"
}

// Run evaluates the table structure. An empty table produces a single
// critical finding; the caller is expected to skip all remaining
// checks for the run in that case.
func (c *Check) Run(_ context.Context, tbl *domain.Table) []domain.Finding {
	if tbl.RowCount() == 0 {
		return []domain.Finding{{
			Kind:     domain.FindingEmptyTable,
			Severity: domain.SeverityCritical,
			Message:  "table is empty",
		}}
	}

	var findings []domain.Finding

	if empty := fullyNullColumns(tbl); len(empty) > 0 {
		findings = append(findings, domain.Finding{
			Kind:     domain.FindingEmptyColumns,
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("empty columns found: %s", strings.Join(empty, ", ")),
			Count:    len(empty),
			Examples: empty,
		})
	}

	if dups := duplicateHeaders(tbl); len(dups) > 0 {
		findings = append(findings, domain.Finding{
			Kind:     domain.FindingDuplicateHeaders,
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("duplicate headers: %s", strings.Join(dups, ", ")),
			Count:    len(dups),
			Examples: dups,
		})
	}

	return findings
}

// fullyNullColumns returns the names of columns whose every value is
// missing, in declared order.
func fullyNullColumns(tbl *domain.Table) []string {
	var names []string
	for i := range tbl.Columns {
		col := &tbl.Columns[i]
		if col.MissingCount() == len(col.Values) {
			names = append(names, col.Name)
		}
	}
	return names
}

// duplicateHeaders returns each column name that occurs more than
// once, listed once in first-occurrence order.
func duplicateHeaders(tbl *domain.Table) []string {
	counts := make(map[string]int, len(tbl.Columns))
	for i := range tbl.Columns {
		counts[tbl.Columns[i].Name]++
	}

	var dups []string
	seen := make(map[string]bool)
	for i := range tbl.Columns {
		name := tbl.Columns[i].Name
		if counts[name] > 1 && !seen[name] {
			dups = append(dups, name)
			seen[name] = true
		}
	}
	return dups
}
