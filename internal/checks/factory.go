// Package checks assembles the validation pipeline from its
// individual passes.
package checks

import (
	"github.com/veridata-labs/veridata-cli/internal/checks/consistency"
	"github.com/veridata-labs/veridata-cli/internal/checks/duplicates"
	"github.com/veridata-labs/veridata-cli/internal/checks/missing"
	"github.com/veridata-labs/veridata-cli/internal/checks/outliers"
	"github.com/veridata-labs/veridata-cli/internal/checks/rules"
	"github.com/veridata-labs/veridata-cli/internal/checks/structural"
	"github.com/veridata-labs/veridata-cli/internal/core/domain"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.CheckFactory = (*Factory)(nil)

// Factory builds the standard check pipeline.
type Factory struct{}

// NewFactory creates the default factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Structural returns the schema-level check that runs first.
func (f *Factory) Structural() driven.Check {
	return structural.New()
}

// Passes returns the value-level checks in merge order. The passes
// read the same immutable table and are safe to run concurrently;
// their findings are merged in this order after all complete.
func (f *Factory) Passes(ruleSet []domain.BusinessRule) []driven.Check {
	return []driven.Check{
		missing.New(),
		consistency.New(),
		duplicates.New(),
		outliers.New(),
		rules.New(ruleSet),
	}
}
