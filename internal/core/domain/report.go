package domain

import (
	"encoding/json"
	"time"
)

// Summary holds per-severity finding counts for one audit run.
type Summary struct {
	Critical int `json:"critical"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
	Total    int `json:"total"`
}

// Assessment is the overall data-quality tier derived from the
// summary counts. The mapping is deterministic and part of the
// report contract.
type Assessment int

const (
	// AssessmentExcellent means no findings at all.
	AssessmentExcellent Assessment = iota

	// AssessmentVeryGood means only a handful of warnings.
	AssessmentVeryGood

	// AssessmentGood means many warnings but no errors.
	AssessmentGood

	// AssessmentFair means errors need fixing before use.
	AssessmentFair

	// AssessmentPoor means critical issues must be addressed.
	AssessmentPoor
)

var assessmentNames = map[Assessment]string{
	AssessmentExcellent: "excellent",
	AssessmentVeryGood:  "very_good",
	AssessmentGood:      "good",
	AssessmentFair:      "fair",
	AssessmentPoor:      "poor",
}

// String returns the snake_case assessment name.
func (a Assessment) String() string {
	if name, ok := assessmentNames[a]; ok {
		return name
	}
	return "unknown"
}

// Label returns the human-facing tier label.
func (a Assessment) Label() string {
	switch a {
	case AssessmentExcellent:
		return "Excellent"
	case AssessmentVeryGood:
		return "Very Good"
	case AssessmentGood:
		return "Good"
	case AssessmentFair:
		return "Fair"
	case AssessmentPoor:
		return "Poor"
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the assessment as its name.
func (a Assessment) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes an assessment name.
func (a *Assessment) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for tier, n := range assessmentNames {
		if n == name {
			*a = tier
			return nil
		}
	}
	return ErrInvalidInput
}

// ParseAssessment maps a snake_case name back to its tier.
func ParseAssessment(name string) (Assessment, error) {
	for tier, n := range assessmentNames {
		if n == name {
			return tier, nil
		}
	}
	return AssessmentExcellent, ErrInvalidInput
}

// AssessSummary maps summary counts to the overall tier:
// any critical finding is poor; otherwise any error is fair;
// otherwise more than ten warnings is good; otherwise any warning
// is very good; otherwise excellent.
func AssessSummary(s Summary) Assessment {
	switch {
	case s.Critical > 0:
		return AssessmentPoor
	case s.Errors > 0:
		return AssessmentFair
	case s.Warnings > 10:
		return AssessmentGood
	case s.Warnings > 0:
		return AssessmentVeryGood
	default:
		return AssessmentExcellent
	}
}

// Report is the derived, read-only snapshot of one audit run.
// It is built once after all checks complete and never partially
// updated, so auditing the same table twice yields identical reports.
type Report struct {
	// Source carries the loader-reported file statistics.
	Source SourceInfo `json:"source"`

	// Summary holds per-severity finding counts.
	Summary Summary `json:"summary"`

	// Findings in severity order (critical first), stable by
	// insertion order within a severity.
	Findings []Finding `json:"findings"`

	// Recommendations is advisory text in fixed derivation order.
	// Recommendations are never themselves findings.
	Recommendations []string `json:"recommendations"`

	// Assessment is the overall tier derived from Summary.
	Assessment Assessment `json:"assessment"`
}

// RunRecord is a persisted audit run for the history store.
// Persistence is layered on top of the immutable Report; the core
// carries no state between runs.
type RunRecord struct {
	// ID is the unique run identifier.
	ID string `json:"id"`

	// SourcePath is the audited source location.
	SourcePath string `json:"source_path"`

	// CreatedAt is when the run was recorded.
	CreatedAt time.Time `json:"created_at"`

	// Rows and Columns echo the table shape at audit time.
	Rows    int `json:"rows"`
	Columns int `json:"columns"`

	// Summary holds the per-severity counts.
	Summary Summary `json:"summary"`

	// Assessment is the overall tier.
	Assessment Assessment `json:"assessment"`

	// Findings holds the full finding list. Omitted in listings.
	Findings []Finding `json:"findings,omitempty"`
}
