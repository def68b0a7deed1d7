package domain

import (
	"fmt"
	"regexp"
)

// RuleKind identifies a business rule variant. The set is closed:
// unknown kinds are rejected when a rule set is loaded, never
// silently ignored at evaluation time.
type RuleKind string

const (
	// RuleRange constrains numeric values to an inclusive interval.
	RuleRange RuleKind = "range"

	// RulePattern requires values to match a regular expression
	// anchored at the start of the value.
	RulePattern RuleKind = "pattern"

	// RuleAllowedValues restricts values to a fixed set.
	RuleAllowedValues RuleKind = "allowed_values"
)

// RangeParams is the payload for RuleRange. Bounds are inclusive:
// a value equal to Min or Max never violates the rule.
type RangeParams struct {
	Min float64
	Max float64
}

// PatternParams is the payload for RulePattern.
type PatternParams struct {
	// Expr is the source expression as configured.
	Expr string

	// Regexp is the compiled, start-anchored form. Compiled once
	// at load time so malformed patterns fail configuration,
	// not evaluation.
	Regexp *regexp.Regexp
}

// AllowedParams is the payload for RuleAllowedValues. Membership is
// tested against the string form of each cell, falling back to
// numeric equality when both the cell and the allowed value parse as
// numbers.
type AllowedParams struct {
	Values []string
}

// BusinessRule is a user-declared, per-column validity predicate.
// Exactly one payload matching Kind is set. Rules are pure: they are
// evaluated per cell over non-missing values only, and a rule whose
// target column is absent from the table is inert.
type BusinessRule struct {
	// Name identifies the rule in findings and reports.
	Name string

	// Column is the target column name.
	Column string

	// Kind selects the payload variant.
	Kind RuleKind

	Range   *RangeParams
	Pattern *PatternParams
	Allowed *AllowedParams
}

// CompileRulePattern compiles a rule pattern expression, anchoring it
// at the start of the value.
func CompileRulePattern(expr string) (*regexp.Regexp, error) {
	return regexp.Compile("^(?:" + expr + ")")
}

// Validate checks that the rule is well-formed: a known kind with a
// populated payload of the matching shape.
func (r *BusinessRule) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: rule name required", ErrInvalidInput)
	}
	if r.Column == "" {
		return fmt.Errorf("%w: rule %q: target column required", ErrInvalidInput, r.Name)
	}
	switch r.Kind {
	case RuleRange:
		if r.Range == nil {
			return fmt.Errorf("%w: rule %q: range bounds required", ErrInvalidInput, r.Name)
		}
		if r.Range.Min > r.Range.Max {
			return fmt.Errorf("%w: rule %q: min exceeds max", ErrInvalidInput, r.Name)
		}
	case RulePattern:
		if r.Pattern == nil || r.Pattern.Regexp == nil {
			return fmt.Errorf("%w: rule %q: pattern required", ErrInvalidInput, r.Name)
		}
	case RuleAllowedValues:
		if r.Allowed == nil || len(r.Allowed.Values) == 0 {
			return fmt.Errorf("%w: rule %q: allowed values required", ErrInvalidInput, r.Name)
		}
	default:
		return fmt.Errorf("%w: rule %q: kind %q", ErrUnknownRuleKind, r.Name, r.Kind)
	}
	return nil
}
