package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "veridata", rootCmd.Use)
}

func TestRootCmd_Short(t *testing.T) {
	assert.Equal(t, "Audit tabular data files for quality problems", rootCmd.Short)
}

func TestRootCmd_Long(t *testing.T) {
	assert.Contains(t, rootCmd.Long, "missing values")
	assert.Contains(t, rootCmd.Long, "business rules")
}

func TestRootCmd_HasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag, "verbose flag should exist")
	assert.Equal(t, "v", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}

func TestRootCmd_HasDataDirFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("data-dir")
	require.NotNil(t, flag, "data-dir flag should exist")
	assert.Equal(t, "", flag.DefValue)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "audit")
	assert.Contains(t, commandNames, "history")
	assert.Contains(t, commandNames, "rules")
	assert.Contains(t, commandNames, "mcp")
	assert.Contains(t, commandNames, "version")
}

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    rune
		wantErr bool
	}{
		{name: "comma", input: ",", want: ','},
		{name: "semicolon", input: ";", want: ';'},
		{name: "pipe", input: "|", want: '|'},
		{name: "tab escape", input: `\t`, want: '\t'},
		{name: "multi-byte rune", input: "§", want: '§'},
		{name: "empty", input: "", wantErr: true},
		{name: "two characters", input: ",,", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDelimiter(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountAtOrAbove(t *testing.T) {
	rep := &domain.Report{
		Findings: []domain.Finding{
			{Severity: domain.SeverityInfo},
			{Severity: domain.SeverityWarning},
			{Severity: domain.SeverityError},
			{Severity: domain.SeverityCritical},
		},
	}

	assert.Equal(t, 4, countAtOrAbove(rep, domain.SeverityInfo))
	assert.Equal(t, 3, countAtOrAbove(rep, domain.SeverityWarning))
	assert.Equal(t, 2, countAtOrAbove(rep, domain.SeverityError))
	assert.Equal(t, 1, countAtOrAbove(rep, domain.SeverityCritical))
}

func TestVersionCmd_Output(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "veridata version dev")
}
