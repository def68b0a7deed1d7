package mcp

import (
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driven"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Auditor runs the validation pipeline.
	Auditor driving.AuditorService

	// Rules loads business rule files for the audit tool.
	Rules driven.RuleStore

	// History provides past audit runs. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Auditor == nil {
		return ErrMissingAuditorService
	}
	// Rules and History are optional
	return nil
}
