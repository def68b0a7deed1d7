package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Work with business rule files",
}

var rulesCheckCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Validate a business rule file",
	Long: `Parses and validates a business rule file without running an audit.
Exits non-zero when the file contains unknown rule kinds, malformed
payloads, or invalid patterns.`,
	Args: cobra.ExactArgs(1),
	RunE: runRulesCheck,
}

func init() {
	rulesCmd.AddCommand(rulesCheckCmd)
	rootCmd.AddCommand(rulesCmd)
}

func runRulesCheck(cmd *cobra.Command, args []string) error {
	rules, err := ensureRuleStore().Load(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("rule file invalid: %w", err)
	}

	for i := range rules {
		cmd.Printf("  %-30s %-15s column %q%s\n",
			rules[i].Name, rules[i].Kind, rules[i].Column, ruleDetail(&rules[i]))
	}
	cmd.Printf("%d rules OK\n", len(rules))
	return nil
}

// ruleDetail renders the kind-specific payload for display.
func ruleDetail(r *domain.BusinessRule) string {
	switch r.Kind {
	case domain.RuleRange:
		return fmt.Sprintf(" in [%g, %g]", r.Range.Min, r.Range.Max)
	case domain.RulePattern:
		return fmt.Sprintf(" matching %s", r.Pattern.Expr)
	case domain.RuleAllowedValues:
		return fmt.Sprintf(" one of %v", r.Allowed.Values)
	default:
		return ""
	}
}
