package duplicates

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
)

func text(s string) domain.Value { return domain.Value{Kind: domain.KindText, Raw: s} }
func num(s string) domain.Value  { return domain.Value{Kind: domain.KindNumeric, Raw: s} }
func missing() domain.Value      { return domain.Value{Kind: domain.KindMissing} }

func singleColumn(name string, values ...domain.Value) *domain.Table {
	return &domain.Table{Columns: []domain.Column{{Name: name, Values: values}}}
}

func findByKind(findings []domain.Finding, kind domain.FindingKind) *domain.Finding {
	for i := range findings {
		if findings[i].Kind == kind {
			return &findings[i]
		}
	}
	return nil
}

func TestDuplicateRows_Warning(t *testing.T) {
	// 1 duplicate in 20 rows: 5%, below the escalation ratio.
	values := make([]domain.Value, 0, 20)
	for i := 0; i < 19; i++ {
		values = append(values, text(fmt.Sprintf("row-%d", i)))
	}
	values = append(values, text("row-0"))
	tbl := singleColumn("name", values...)

	f := findByKind(New().Run(context.Background(), tbl), domain.FindingDuplicateRows)

	require.NotNil(t, f)
	assert.Equal(t, domain.SeverityWarning, f.Severity)
	assert.Equal(t, 1, f.Count)
	assert.InDelta(t, 5.0, f.Percentage, 0.001)
}

func TestDuplicateRows_EscalatesAboveTenPercent(t *testing.T) {
	// 2 duplicates in 10 rows: 20% > 10%.
	tbl := singleColumn("name",
		text("a"), text("b"), text("c"), text("d"), text("e"),
		text("f"), text("g"), text("h"), text("a"), text("b"))

	f := findByKind(New().Run(context.Background(), tbl), domain.FindingDuplicateRows)

	require.NotNil(t, f)
	assert.Equal(t, domain.SeverityError, f.Severity)
	assert.Equal(t, 2, f.Count)
}

func TestDuplicateRows_ExactlyTenPercentStaysWarning(t *testing.T) {
	// 1 duplicate in 10 rows: the escalation threshold is strictly
	// greater-than.
	tbl := singleColumn("name",
		text("a"), text("b"), text("c"), text("d"), text("e"),
		text("f"), text("g"), text("h"), text("i"), text("a"))

	f := findByKind(New().Run(context.Background(), tbl), domain.FindingDuplicateRows)

	require.NotNil(t, f)
	assert.Equal(t, domain.SeverityWarning, f.Severity)
}

func TestDuplicateRows_MultiColumnExactMatchOnly(t *testing.T) {
	tbl := &domain.Table{Columns: []domain.Column{
		{Name: "a", Values: []domain.Value{text("x"), text("x"), text("x")}},
		{Name: "b", Values: []domain.Value{text("1"), text("2"), text("1")}},
	}}

	f := findByKind(New().Run(context.Background(), tbl), domain.FindingDuplicateRows)

	require.NotNil(t, f)
	assert.Equal(t, 1, f.Count)
}

func TestDuplicateRows_MissingAndEmptyTextDiffer(t *testing.T) {
	// An empty text cell and a missing cell are different rows.
	tbl := singleColumn("note", text(""), missing())

	assert.Nil(t, findByKind(New().Run(context.Background(), tbl), domain.FindingDuplicateRows))
}

func TestDuplicateKeys(t *testing.T) {
	tbl := singleColumn("user_id", num("1"), num("2"), num("2"), num("3"))

	findings := New().Run(context.Background(), tbl)

	f := findByKind(findings, domain.FindingDuplicateKeys)
	require.NotNil(t, f)
	assert.Equal(t, domain.SeverityError, f.Severity)
	assert.Equal(t, "user_id", f.Column)
	assert.Equal(t, 1, f.Count)
}

func TestDuplicateKeys_NonKeyColumnIgnored(t *testing.T) {
	tbl := singleColumn("amount", num("2"), num("2"), num("2"))

	assert.Nil(t, findByKind(New().Run(context.Background(), tbl), domain.FindingDuplicateKeys))
}

func TestDuplicateKeys_NameMatching(t *testing.T) {
	tests := []struct {
		column string
		isKey  bool
	}{
		{"id", true},
		{"user_id", true},
		{"UserID", true},
		{"product_code", true},
		{"api_key", true},
		{"identifier", true},
		{"amount", false},
		{"name", false},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			assert.Equal(t, tt.isKey, isKeyColumn(tt.column))
		})
	}
}

func TestDuplicateKeys_MissingValuesNotCollisions(t *testing.T) {
	tbl := singleColumn("id", num("1"), missing(), missing(), num("2"))

	assert.Nil(t, findByKind(New().Run(context.Background(), tbl), domain.FindingDuplicateKeys))
}

func TestEmptyTable_NoFindings(t *testing.T) {
	assert.Empty(t, New().Run(context.Background(), &domain.Table{}))
}
