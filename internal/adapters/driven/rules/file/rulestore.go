// Package file provides a file-based RuleStore reading business rule
// sets from TOML or JSON.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driven"
)

// Ensure RuleStore implements the interface.
var _ driven.RuleStore = (*RuleStore)(nil)

// RuleStore loads rule sets from disk. Unknown rule kinds and
// malformed payloads are rejected here, at parse time, so the engine
// never evaluates an invalid rule.
type RuleStore struct{}

// NewRuleStore creates a file-based rule store.
func NewRuleStore() *RuleStore {
	return &RuleStore{}
}

// ruleSpec is the on-disk shape of one rule: a loosely-typed mapping
// resolved into the closed domain.BusinessRule variant.
type ruleSpec struct {
	Column  string   `json:"column" toml:"column"`
	Type    string   `json:"type" toml:"type"`
	Min     *float64 `json:"min" toml:"min"`
	Max     *float64 `json:"max" toml:"max"`
	Pattern *string  `json:"pattern" toml:"pattern"`
	Values  []any    `json:"values" toml:"values"`
}

// Load reads and validates the rule set at path. Rules are returned
// sorted by name so evaluation order is deterministic.
func (s *RuleStore) Load(_ context.Context, path string) ([]domain.BusinessRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules %s: %w", path, err)
	}

	specs := make(map[string]ruleSpec)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &specs); err != nil {
			return nil, fmt.Errorf("parsing rules %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &specs); err != nil {
			return nil, fmt.Errorf("parsing rules %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: rules file %s (want .toml or .json)", domain.ErrUnsupportedFormat, path)
	}

	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	rules := make([]domain.BusinessRule, 0, len(specs))
	for _, name := range names {
		rule, err := resolve(name, specs[name])
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// resolve turns a loose spec into a validated BusinessRule.
func resolve(name string, spec ruleSpec) (domain.BusinessRule, error) {
	rule := domain.BusinessRule{
		Name:   name,
		Column: spec.Column,
		Kind:   domain.RuleKind(spec.Type),
	}

	switch rule.Kind {
	case domain.RuleRange:
		if spec.Min == nil || spec.Max == nil {
			return rule, fmt.Errorf("%w: rule %q: range requires min and max", domain.ErrInvalidInput, name)
		}
		rule.Range = &domain.RangeParams{Min: *spec.Min, Max: *spec.Max}
	case domain.RulePattern:
		if spec.Pattern == nil {
			return rule, fmt.Errorf("%w: rule %q: pattern required", domain.ErrInvalidInput, name)
		}
		re, err := domain.CompileRulePattern(*spec.Pattern)
		if err != nil {
			return rule, fmt.Errorf("rule %q: compiling pattern: %w", name, err)
		}
		rule.Pattern = &domain.PatternParams{Expr: *spec.Pattern, Regexp: re}
	case domain.RuleAllowedValues:
		values := make([]string, 0, len(spec.Values))
		for _, v := range spec.Values {
			values = append(values, stringify(v))
		}
		rule.Allowed = &domain.AllowedParams{Values: values}
	}

	if err := rule.Validate(); err != nil {
		return rule, err
	}
	return rule, nil
}

// stringify renders a configured allowed value the same way cells are
// held: as their original string form.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
