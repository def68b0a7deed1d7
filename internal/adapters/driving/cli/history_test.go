package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
)

// mockHistoryService implements driving.HistoryService for testing.
type mockHistoryService struct {
	runs []domain.RunRecord
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.RunRecord, error) {
	if limit > 0 && len(m.runs) > limit {
		return m.runs[:limit], nil
	}
	return m.runs, nil
}

func (m *mockHistoryService) Get(_ context.Context, id string) (*domain.RunRecord, error) {
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func historyFixture() []domain.RunRecord {
	return []domain.RunRecord{{
		ID:         "run-abc",
		SourcePath: "orders.csv",
		CreatedAt:  time.Now().Add(-time.Hour),
		Rows:       100,
		Columns:    3,
		Summary:    domain.Summary{Errors: 1, Total: 1},
		Assessment: domain.AssessmentFair,
		Findings: []domain.Finding{{
			Kind:     domain.FindingDuplicateKeys,
			Severity: domain.SeverityError,
			Column:   "id",
			Message:  "identifier column has 2 duplicated values",
			Count:    2,
		}},
	}}
}

func setupHistoryTest(runs []domain.RunRecord) func() {
	oldHistory := historyService
	historyService = &mockHistoryService{runs: runs}
	return func() {
		historyService = oldHistory
		historyJSON = false
	}
}

func TestHistoryCmd_Use(t *testing.T) {
	assert.Equal(t, "history", historyCmd.Use)
}

func TestHistoryCmd_HasSubcommands(t *testing.T) {
	commands := historyCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "show")
}

func TestHistoryListCmd_HasLimitFlag(t *testing.T) {
	flag := historyListCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "20", flag.DefValue)
}

func TestHistoryListCmd_Executes(t *testing.T) {
	cleanup := setupHistoryTest(historyFixture())
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "run-abc")
	assert.Contains(t, buf.String(), "orders.csv")
	assert.Contains(t, buf.String(), "100 rows × 3 columns")
	assert.Contains(t, buf.String(), "Fair")
}

func TestHistoryCmd_ListsByDefault(t *testing.T) {
	cleanup := setupHistoryTest(historyFixture())
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "run-abc")
}

func TestHistoryListCmd_Empty(t *testing.T) {
	cleanup := setupHistoryTest(nil)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No audit runs recorded yet.")
}

func TestHistoryListCmd_JSONOutput(t *testing.T) {
	cleanup := setupHistoryTest(historyFixture())
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "list", "--json"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"id": "run-abc"`)
	assert.Contains(t, buf.String(), `"assessment": "fair"`)
}

func TestHistoryShowCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"history", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestHistoryShowCmd_Executes(t *testing.T) {
	cleanup := setupHistoryTest(historyFixture())
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "show", "run-abc"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Run run-abc")
	assert.Contains(t, buf.String(), "Source:     orders.csv")
	assert.Contains(t, buf.String(), "[error] identifier column has 2 duplicated values (id)")
}

func TestHistoryShowCmd_NotFound(t *testing.T) {
	cleanup := setupHistoryTest(historyFixture())
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"history", "show", "nope"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no run with id nope")
}
