// Package rules evaluates user-declared business rules against named
// columns.
package rules

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driven"
)

// Ensure Check implements the interface.
var _ driven.Check = (*Check)(nil)

// Check interprets a resolved business rule set. Rules are evaluated
// over non-missing values only; a rule whose target column is absent
// is inert, since rule sets may be shared across heterogeneous
// tables. All violations are errors unconditionally: a rule is an
// explicit user-declared contract, never merely advisory.
type Check struct {
	rules []domain.BusinessRule
}

// New creates the business rule check for the given rule set.
func New(rules []domain.BusinessRule) *Check {
	return &Check{rules: rules}
}

// Name returns the check name.
func (c *Check) Name() string {
	return "business-rules"
}

// Run evaluates every rule. A failure inside one rule is contained
// and surfaced as a rule-error finding; it never terminates
// validation of the remaining rules.
func (c *Check) Run(_ context.Context, tbl *domain.Table) []domain.Finding {
	var findings []domain.Finding
	for i := range c.rules {
		if f := c.evalRule(tbl, &c.rules[i]); f != nil {
			findings = append(findings, *f)
		}
	}
	return findings
}

// evalRule evaluates a single rule, recovering from any panic at the
// rule boundary.
func (c *Check) evalRule(tbl *domain.Table, rule *domain.BusinessRule) (finding *domain.Finding) {
	defer func() {
		if r := recover(); r != nil {
			finding = ruleError(rule, fmt.Sprintf("evaluation panicked: %v", r))
		}
	}()

	col, ok := tbl.Column(rule.Column)
	if !ok {
		return nil
	}
	values := col.NonMissing()

	switch rule.Kind {
	case domain.RuleRange:
		return evalRange(rule, values)
	case domain.RulePattern:
		return evalPattern(rule, values)
	case domain.RuleAllowedValues:
		return evalAllowed(rule, values)
	default:
		return ruleError(rule, fmt.Sprintf("unknown rule kind %q", rule.Kind))
	}
}

// evalRange counts values outside the inclusive [min, max] interval.
// Values that do not coerce to numeric violate the numeric contract
// and count as violations.
func evalRange(rule *domain.BusinessRule, values []domain.Value) *domain.Finding {
	p := rule.Range
	if p == nil {
		return ruleError(rule, "range bounds not configured")
	}

	count := 0
	for _, v := range values {
		if v.Kind != domain.KindNumeric {
			count++
			continue
		}
		if v.Num < p.Min || v.Num > p.Max {
			count++
		}
	}
	if count == 0 {
		return nil
	}
	return violation(rule, count, fmt.Sprintf("%d values outside range %g-%g", count, p.Min, p.Max))
}

// evalPattern counts values whose string form does not match the
// configured expression anchored at the start of the value.
func evalPattern(rule *domain.BusinessRule, values []domain.Value) *domain.Finding {
	p := rule.Pattern
	if p == nil || p.Regexp == nil {
		return ruleError(rule, "pattern not configured")
	}

	count := 0
	for _, v := range values {
		if !p.Regexp.MatchString(v.Raw) {
			count++
		}
	}
	if count == 0 {
		return nil
	}
	return violation(rule, count, fmt.Sprintf("%d values do not match required pattern %q", count, p.Expr))
}

// evalAllowed counts values outside the configured set. Membership is
// by string form, with numeric equality as a fallback so a cell "1.0"
// satisfies an allowed value configured as the number 1.
func evalAllowed(rule *domain.BusinessRule, values []domain.Value) *domain.Finding {
	p := rule.Allowed
	if p == nil || len(p.Values) == 0 {
		return ruleError(rule, "allowed values not configured")
	}

	allowed := make(map[string]bool, len(p.Values))
	var allowedNums []float64
	for _, s := range p.Values {
		allowed[s] = true
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			allowedNums = append(allowedNums, n)
		}
	}

	count := 0
	for _, v := range values {
		if allowed[v.Raw] {
			continue
		}
		if v.Kind == domain.KindNumeric && numIn(allowedNums, v.Num) {
			continue
		}
		count++
	}
	if count == 0 {
		return nil
	}
	return violation(rule, count,
		fmt.Sprintf("%d invalid values; allowed: %s", count, strings.Join(p.Values, ", ")))
}

func numIn(nums []float64, n float64) bool {
	for _, m := range nums {
		if m == n {
			return true
		}
	}
	return false
}

func violation(rule *domain.BusinessRule, count int, msg string) *domain.Finding {
	return &domain.Finding{
		Kind:     domain.FindingRuleViolation,
		Severity: domain.SeverityError,
		Column:   rule.Column,
		Rule:     rule.Name,
		Message:  msg,
		Count:    count,
	}
}

func ruleError(rule *domain.BusinessRule, msg string) *domain.Finding {
	return &domain.Finding{
		Kind:     domain.FindingRuleError,
		Severity: domain.SeverityError,
		Column:   rule.Column,
		Rule:     rule.Name,
		Message:  fmt.Sprintf("rule %q could not be evaluated: %s", rule.Name, msg),
	}
}
