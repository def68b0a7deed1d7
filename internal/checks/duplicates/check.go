// Package duplicates detects duplicate rows and duplicated values in
// identifier-like columns.
package duplicates

import (
	"context"
	"fmt"
	"strings"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driven"
)

// keySubstrings mark a column as identifier-like. Matching is
// case-insensitive on the column name.
var keySubstrings = []string{"id", "key", "code", "identifier"}

// duplicateRowErrorRatio is the share of duplicated rows above which
// the duplicate-row finding escalates from warning to error.
const duplicateRowErrorRatio = 0.10

// Ensure Check implements the interface.
var _ driven.Check = (*Check)(nil)

// Check counts exact duplicate rows and duplicated non-missing values
// in identifier-like columns. Identifier collisions are always
// errors, independent of ratio.
type Check struct{}

// New creates the duplicates check.
func New() *Check {
	return &Check{}
}

// Name returns the check name.
func (c *Check) Name() string {
	return "duplicates"
}

// Run evaluates the table.
func (c *Check) Run(_ context.Context, tbl *domain.Table) []domain.Finding {
	var findings []domain.Finding
	if f := duplicateRows(tbl); f != nil {
		findings = append(findings, *f)
	}
	findings = append(findings, duplicateKeys(tbl)...)
	return findings
}

// duplicateRows counts rows that exactly duplicate an earlier row
// across all columns.
func duplicateRows(tbl *domain.Table) *domain.Finding {
	rows := tbl.RowCount()
	if rows == 0 {
		return nil
	}

	seen := make(map[string]bool, rows)
	count := 0
	for r := 0; r < rows; r++ {
		sig := rowSignature(tbl, r)
		if seen[sig] {
			count++
		} else {
			seen[sig] = true
		}
	}
	if count == 0 {
		return nil
	}

	severity := domain.SeverityWarning
	if float64(count) > float64(rows)*duplicateRowErrorRatio {
		severity = domain.SeverityError
	}
	pct := domain.Percentage(count, rows)
	return &domain.Finding{
		Kind:       domain.FindingDuplicateRows,
		Severity:   severity,
		Message:    fmt.Sprintf("%d duplicate rows (%.2f%%)", count, pct),
		Count:      count,
		Percentage: pct,
	}
}

// rowSignature builds a collision-safe key for full-row equality.
// Cell kind is encoded so an empty text cell and a missing cell never
// compare equal.
func rowSignature(tbl *domain.Table, row int) string {
	var b strings.Builder
	for i := range tbl.Columns {
		v := tbl.Columns[i].Values[row]
		b.WriteByte(byte('0' + int(v.Kind)))
		b.WriteString(v.Raw)
		b.WriteByte(0x1f)
	}
	return b.String()
}

// duplicateKeys emits one error finding per identifier-like column
// containing duplicated non-missing values.
func duplicateKeys(tbl *domain.Table) []domain.Finding {
	var findings []domain.Finding
	for i := range tbl.Columns {
		col := &tbl.Columns[i]
		if !isKeyColumn(col.Name) {
			continue
		}

		seen := make(map[string]bool)
		count := 0
		for _, v := range col.Values {
			if v.IsMissing() {
				continue
			}
			if seen[v.Raw] {
				count++
			} else {
				seen[v.Raw] = true
			}
		}
		if count == 0 {
			continue
		}
		findings = append(findings, domain.Finding{
			Kind:     domain.FindingDuplicateKeys,
			Severity: domain.SeverityError,
			Column:   col.Name,
			Message:  fmt.Sprintf("identifier column has %d duplicated values", count),
			Count:    count,
		})
	}
	return findings
}

// isKeyColumn reports whether the column name suggests an identifier.
func isKeyColumn(name string) bool {
	lower := strings.ToLower(name)
	for _, sub := range keySubstrings {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
