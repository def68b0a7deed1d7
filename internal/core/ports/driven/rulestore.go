package driven

import (
	"context"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
)

// RuleStore loads a business rule set from already-structured
// configuration (TOML or JSON). Implementations must reject unknown
// rule kinds and malformed payloads at load time; the engine never
// sees an invalid rule.
type RuleStore interface {
	// Load reads and validates the rule set at path.
	// Rules are returned in deterministic (name) order.
	Load(ctx context.Context, path string) ([]domain.BusinessRule, error)
}
