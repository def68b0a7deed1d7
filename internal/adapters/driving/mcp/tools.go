package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driving"
)

// AuditInput is the input schema for the audit_table tool.
type AuditInput struct {
	Path      string `json:"path" jsonschema:"path to the delimited data file to audit"`
	RulesPath string `json:"rules_path,omitempty" jsonschema:"optional path to a business rule file (.toml or .json)"`
	Delimiter string `json:"delimiter,omitempty" jsonschema:"field delimiter, a single character (default comma)"`
}

// AuditOutput is the output schema for the audit_table tool.
type AuditOutput struct {
	Source          domain.SourceInfo `json:"source"`
	Summary         domain.Summary    `json:"summary"`
	Assessment      string            `json:"assessment"`
	Findings        []domain.Finding  `json:"findings"`
	Recommendations []string          `json:"recommendations"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "audit_table",
		Description: "Audit a delimited data file for quality problems: structure, missing values, type consistency, duplicates, outliers, and business rule violations",
	}, s.handleAudit)
}

// handleAudit handles the audit_table tool invocation. MCP-driven
// audits are never recorded in the run history.
func (s *Server) handleAudit(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AuditInput,
) (*mcp.CallToolResult, AuditOutput, error) {
	opts := driving.AuditOptions{SkipHistory: true}

	if input.Delimiter != "" {
		runes := []rune(input.Delimiter)
		if len(runes) != 1 {
			return nil, AuditOutput{}, fmt.Errorf("delimiter must be a single character, got %q", input.Delimiter)
		}
		opts.Load.Delimiter = runes[0]
	}

	if input.RulesPath != "" {
		if s.ports.Rules == nil {
			return nil, AuditOutput{}, fmt.Errorf("rule files are not supported by this server")
		}
		rules, err := s.ports.Rules.Load(ctx, input.RulesPath)
		if err != nil {
			return nil, AuditOutput{}, fmt.Errorf("loading rules: %w", err)
		}
		opts.Rules = rules
	}

	rep, err := s.ports.Auditor.Audit(ctx, input.Path, opts)
	if err != nil {
		return nil, AuditOutput{}, err
	}

	output := AuditOutput{
		Source:          rep.Source,
		Summary:         rep.Summary,
		Assessment:      rep.Assessment.String(),
		Findings:        rep.Findings,
		Recommendations: rep.Recommendations,
	}
	return nil, output, nil
}
