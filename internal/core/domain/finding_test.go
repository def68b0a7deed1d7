package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityOrdering(t *testing.T) {
	assert.True(t, SeverityCritical > SeverityError)
	assert.True(t, SeverityError > SeverityWarning)
	assert.True(t, SeverityWarning > SeverityInfo)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "critical", SeverityCritical.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "info", SeverityInfo.String())
}

func TestParseSeverity(t *testing.T) {
	sev, err := ParseSeverity("warning")
	require.NoError(t, err)
	assert.Equal(t, SeverityWarning, sev)

	_, err = ParseSeverity("fatal")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSeverityJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(SeverityError)
	require.NoError(t, err)
	assert.Equal(t, `"error"`, string(data))

	var sev Severity
	require.NoError(t, json.Unmarshal(data, &sev))
	assert.Equal(t, SeverityError, sev)
}

func TestFindingJSON_OmitsEmptyFields(t *testing.T) {
	f := Finding{
		Kind:     FindingEmptyTable,
		Severity: SeverityCritical,
		Message:  "table is empty",
	}

	data, err := json.Marshal(f)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"type":"empty_table"`)
	assert.NotContains(t, string(data), "column")
	assert.NotContains(t, string(data), "examples")
}

func TestPercentage(t *testing.T) {
	assert.InDelta(t, 33.33, Percentage(1, 3), 0.001)
	assert.InDelta(t, 50.0, Percentage(1, 2), 0.001)
	assert.Equal(t, 0.0, Percentage(3, 0))
}
