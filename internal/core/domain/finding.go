package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Severity classifies how serious a finding is.
// The order is total: critical > error > warning > info.
type Severity int

const (
	// SeverityInfo is observational: worth knowing, no action required.
	SeverityInfo Severity = iota

	// SeverityWarning is a quality concern needing attention.
	SeverityWarning

	// SeverityError is a data-integrity violation requiring a fix
	// before the data can be trusted.
	SeverityError

	// SeverityCritical means the table is unusable as-is.
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityInfo:     "info",
	SeverityWarning:  "warning",
	SeverityError:    "error",
	SeverityCritical: "critical",
}

// String returns the lower-case severity name.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseSeverity converts a severity name to a Severity.
func ParseSeverity(name string) (Severity, error) {
	for sev, n := range severityNames {
		if n == name {
			return sev, nil
		}
	}
	return 0, fmt.Errorf("%w: severity %q", ErrInvalidInput, name)
}

// MarshalJSON encodes the severity as its name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a severity name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	sev, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = sev
	return nil
}

// FindingKind identifies the fixed taxonomy of observations the
// audit pipeline can produce.
type FindingKind string

const (
	FindingEmptyTable       FindingKind = "empty_table"
	FindingEmptyColumns     FindingKind = "empty_columns"
	FindingDuplicateHeaders FindingKind = "duplicate_headers"
	FindingMissingValues    FindingKind = "missing_values"
	FindingMixedTypes       FindingKind = "mixed_types"
	FindingPotentialDate    FindingKind = "potential_date_column"
	FindingDuplicateRows    FindingKind = "duplicate_rows"
	FindingDuplicateKeys    FindingKind = "duplicate_keys"
	FindingWhitespace       FindingKind = "whitespace"
	FindingInconsistentCase FindingKind = "inconsistent_case"
	FindingOutliers         FindingKind = "outliers"
	FindingRuleViolation    FindingKind = "rule_violation"
	FindingRuleError        FindingKind = "rule_error"
)

// Finding is a single classified observation about the data.
// Findings are immutable once created; the pipeline only appends.
type Finding struct {
	// Kind is the taxonomy entry this finding belongs to.
	Kind FindingKind `json:"type"`

	// Severity classifies the finding.
	Severity Severity `json:"severity"`

	// Column scopes the finding to a named column, when applicable.
	Column string `json:"column,omitempty"`

	// Rule names the business rule that produced this finding.
	Rule string `json:"rule,omitempty"`

	// Message is the human-readable description.
	Message string `json:"message"`

	// Count is the number of affected cells or rows, when applicable.
	Count int `json:"count,omitempty"`

	// Percentage is the affected share, rounded to two decimals.
	Percentage float64 `json:"percentage,omitempty"`

	// Examples holds up to a fixed cap of offending values
	// for inspection, in original row order.
	Examples []string `json:"examples,omitempty"`
}

// Percentage computes part/whole as a percentage rounded to two
// decimal places. A zero whole yields zero.
func Percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*100*100) / 100
}
