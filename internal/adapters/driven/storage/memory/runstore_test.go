package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
)

func record(id string, created time.Time) *domain.RunRecord {
	return &domain.RunRecord{
		ID:         id,
		SourcePath: "data.csv",
		CreatedAt:  created,
		Rows:       10,
		Columns:    2,
		Summary:    domain.Summary{Warnings: 1, Total: 1},
		Assessment: domain.AssessmentVeryGood,
		Findings: []domain.Finding{{
			Kind:     domain.FindingMissingValues,
			Severity: domain.SeverityWarning,
			Column:   "email",
			Message:  "column has 1 missing values (10.00%)",
			Count:    1,
		}},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	require.NoError(t, store.SaveRun(ctx, record("run-1", time.Now())))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "data.csv", got.SourcePath)
	assert.Equal(t, domain.AssessmentVeryGood, got.Assessment)
	require.Len(t, got.Findings, 1)
	assert.Equal(t, "email", got.Findings[0].Column)
}

func TestSaveRun_EmptyID(t *testing.T) {
	store := NewRunStore()

	err := store.SaveRun(context.Background(), &domain.RunRecord{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetRun_NotFound(t *testing.T) {
	store := NewRunStore()

	_, err := store.GetRun(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListRuns_NewestFirstWithLimit(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, store.SaveRun(ctx, record(id, base.Add(time.Duration(i)*time.Hour))))
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "mid", runs[1].ID)
	assert.Nil(t, runs[0].Findings)
}

func TestListRuns_TiesBreakByID(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()
	same := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveRun(ctx, record("b", same)))
	require.NoError(t, store.SaveRun(ctx, record("a", same)))

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "a", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
}

func TestListRuns_InvalidLimit(t *testing.T) {
	store := NewRunStore()

	_, err := store.ListRuns(context.Background(), -1)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaveRun_CopiesRecord(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	run := record("run-1", time.Now())
	require.NoError(t, store.SaveRun(ctx, run))
	run.SourcePath = "changed.csv"

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "data.csv", got.SourcePath)
}
