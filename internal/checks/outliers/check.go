// Package outliers identifies statistical outliers in numeric columns
// using the IQR fence method.
package outliers

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driven"
)

// minSample is the smallest non-missing numeric sample the fence
// method is run on. Smaller columns are silently skipped; that is a
// policy choice, not a failure.
const minSample = 4

// valueCap limits how many outlier values a finding carries.
const valueCap = 10

// fenceMultiplier scales the IQR when placing the fences.
const fenceMultiplier = 1.5

// Ensure Check implements the interface.
var _ driven.Check = (*Check)(nil)

// Check flags values strictly outside the IQR fences of each numeric
// column.
type Check struct{}

// New creates the outlier check.
func New() *Check {
	return &Check{}
}

// Name returns the check name.
func (c *Check) Name() string {
	return "outliers"
}

// Run emits at most one info finding per numeric column.
func (c *Check) Run(_ context.Context, tbl *domain.Table) []domain.Finding {
	var findings []domain.Finding
	for i := range tbl.Columns {
		col := &tbl.Columns[i]
		if col.Type() != domain.KindNumeric {
			continue
		}
		if f := fenceOutliers(col); f != nil {
			findings = append(findings, *f)
		}
	}
	return findings
}

// fenceOutliers computes Q1/Q3 with linear interpolation, places the
// fences at Q1-1.5*IQR and Q3+1.5*IQR, and collects values strictly
// outside them in original row order.
func fenceOutliers(col *domain.Column) *domain.Finding {
	values := col.NonMissing()
	if len(values) < minSample {
		return nil
	}

	nums := make([]float64, len(values))
	for i, v := range values {
		nums[i] = v.Num
	}
	sorted := make([]float64, len(nums))
	copy(sorted, nums)
	sort.Float64s(sorted)

	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	lower := q1 - fenceMultiplier*iqr
	upper := q3 + fenceMultiplier*iqr

	count := 0
	var examples []string
	for i, n := range nums {
		if n < lower || n > upper {
			count++
			if len(examples) < valueCap {
				examples = append(examples, values[i].Raw)
			}
		}
	}
	if count == 0 {
		return nil
	}

	pct := domain.Percentage(count, len(nums))
	return &domain.Finding{
		Kind:       domain.FindingOutliers,
		Severity:   domain.SeverityInfo,
		Column:     col.Name,
		Message:    fmt.Sprintf("%d outliers outside IQR fences [%g, %g] (%.2f%%)", count, lower, upper, pct),
		Count:      count,
		Percentage: pct,
		Examples:   examples,
	}
}

// quantile estimates the q-th quantile of sorted data using linear
// interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
