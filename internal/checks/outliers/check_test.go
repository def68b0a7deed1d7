package outliers

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
)

func numericColumn(name string, nums ...float64) *domain.Table {
	values := make([]domain.Value, len(nums))
	for i, n := range nums {
		values[i] = domain.Value{
			Kind: domain.KindNumeric,
			Raw:  strconv.FormatFloat(n, 'g', -1, 64),
			Num:  n,
		}
	}
	return &domain.Table{Columns: []domain.Column{{Name: name, Values: values}}}
}

func TestQuantile_LinearInterpolation(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}

	assert.InDelta(t, 1.75, quantile(sorted, 0.25), 1e-9)
	assert.InDelta(t, 2.5, quantile(sorted, 0.5), 1e-9)
	assert.InDelta(t, 3.25, quantile(sorted, 0.75), 1e-9)
	assert.InDelta(t, 1.0, quantile(sorted, 0), 1e-9)
	assert.InDelta(t, 4.0, quantile(sorted, 1), 1e-9)
}

func TestQuantile_SingleValue(t *testing.T) {
	assert.Equal(t, 7.0, quantile([]float64{7}, 0.75))
}

func TestOutlierDetected(t *testing.T) {
	// Q1=2.5, Q3=5.5, IQR=3: fences at -2 and 10.
	tbl := numericColumn("amount", 1, 2, 3, 4, 5, 6, 100)

	findings := New().Run(context.Background(), tbl)

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, domain.FindingOutliers, f.Kind)
	assert.Equal(t, domain.SeverityInfo, f.Severity)
	assert.Equal(t, "amount", f.Column)
	assert.Equal(t, 1, f.Count)
	assert.Equal(t, []string{"100"}, f.Examples)
	assert.Contains(t, f.Message, "[-2, 10]")
}

func TestNoOutliers(t *testing.T) {
	tbl := numericColumn("amount", 1, 2, 3, 4, 5, 6)

	assert.Empty(t, New().Run(context.Background(), tbl))
}

func TestSampleTooSmall(t *testing.T) {
	tbl := numericColumn("amount", 1, 2, 1000)

	assert.Empty(t, New().Run(context.Background(), tbl))
}

func TestValueOnFenceIsNotOutlier(t *testing.T) {
	// Fences are exclusive: a value exactly on the fence stays in.
	tbl := numericColumn("amount", 1, 2, 3, 4, 5, 6, 10)

	assert.Empty(t, New().Run(context.Background(), tbl))
}

func TestExamplesInRowOrderAndCapped(t *testing.T) {
	var nums []float64
	for i := 1; i <= 40; i++ {
		nums = append(nums, float64(i))
	}
	for i := 0; i < 12; i++ {
		nums = append(nums, float64(1000+i))
	}
	tbl := numericColumn("amount", nums...)

	findings := New().Run(context.Background(), tbl)

	require.Len(t, findings, 1)
	assert.Equal(t, 12, findings[0].Count)
	require.Len(t, findings[0].Examples, 10)
	assert.Equal(t, "1000", findings[0].Examples[0])
	assert.Equal(t, "1009", findings[0].Examples[9])
}

func TestTextColumnSkipped(t *testing.T) {
	tbl := &domain.Table{Columns: []domain.Column{{
		Name: "name",
		Values: []domain.Value{
			{Kind: domain.KindText, Raw: "a"},
			{Kind: domain.KindNumeric, Raw: "1", Num: 1},
		},
	}}}

	assert.Empty(t, New().Run(context.Background(), tbl))
}

func TestMissingValuesExcludedFromSample(t *testing.T) {
	tbl := numericColumn("amount", 1, 2, 3)
	tbl.Columns[0].Values = append(tbl.Columns[0].Values, domain.Value{Kind: domain.KindMissing})

	// Only three numeric values after excluding missing cells.
	assert.Empty(t, New().Run(context.Background(), tbl))
}
