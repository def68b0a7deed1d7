// Package consistency provides type/format and string consistency
// checks for textually-typed columns.
package consistency

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driven"
)

// exampleCap limits how many offending values a finding carries.
const exampleCap = 5

// dateSampleSize is how many leading non-missing values are tested
// against the date shapes.
const dateSampleSize = 10

// Date-literal shapes, anchored at the start of the value:
// ISO YYYY-MM-DD, US MM/DD/YYYY, EU DD-MM-YYYY.
var dateShapes = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`),
	regexp.MustCompile(`^\d{2}-\d{2}-\d{4}`),
}

// Ensure Check implements the interface.
var _ driven.Check = (*Check)(nil)

// Check inspects text-typed columns for mixed numeric/text content,
// date-like literals stored as text, stray whitespace and
// inconsistent casing. The mixed-type and date checks are
// independent and may both fire on the same column.
type Check struct{}

// New creates the consistency check.
func New() *Check {
	return &Check{}
}

// Name returns the check name.
func (c *Check) Name() string {
	return "consistency"
}

// Run evaluates every text-typed column.
func (c *Check) Run(_ context.Context, tbl *domain.Table) []domain.Finding {
	var findings []domain.Finding
	for i := range tbl.Columns {
		col := &tbl.Columns[i]
		if col.Type() != domain.KindText {
			continue
		}
		values := col.NonMissing()
		if len(values) == 0 {
			continue
		}

		if f := mixedTypes(col.Name, values); f != nil {
			findings = append(findings, *f)
		}
		if f := potentialDates(col.Name, values); f != nil {
			findings = append(findings, *f)
		}
		if f := whitespace(col.Name, values); f != nil {
			findings = append(findings, *f)
		}
		if f := inconsistentCase(col.Name, values); f != nil {
			findings = append(findings, *f)
		}
	}
	return findings
}

// mixedTypes fires when some but not all values coerce to numeric.
// The loader already classified each cell, so coercion success is
// simply the cell kind.
func mixedTypes(name string, values []domain.Value) *domain.Finding {
	numeric := 0
	var examples []string
	for _, v := range values {
		if v.Kind == domain.KindNumeric {
			numeric++
		} else if len(examples) < exampleCap {
			examples = append(examples, v.Raw)
		}
	}
	if numeric == 0 || numeric == len(values) {
		return nil
	}
	return &domain.Finding{
		Kind:     domain.FindingMixedTypes,
		Severity: domain.SeverityWarning,
		Column:   name,
		Message:  fmt.Sprintf("column mixes numeric and text content: %d of %d values are non-numeric", len(values)-numeric, len(values)),
		Count:    len(values) - numeric,
		Examples: examples,
	}
}

// potentialDates samples the first values and fires when more than
// half of the sample matches any date shape.
func potentialDates(name string, values []domain.Value) *domain.Finding {
	sample := values
	if len(sample) > dateSampleSize {
		sample = sample[:dateSampleSize]
	}

	matches := 0
	for _, v := range sample {
		for _, shape := range dateShapes {
			if shape.MatchString(v.Raw) {
				matches++
				break
			}
		}
	}
	if float64(matches) <= float64(len(sample))*0.5 {
		return nil
	}
	return &domain.Finding{
		Kind:     domain.FindingPotentialDate,
		Severity: domain.SeverityInfo,
		Column:   name,
		Message:  "column appears to contain dates but is stored as text",
		Count:    matches,
	}
}

// whitespace counts values that differ from their trimmed form.
func whitespace(name string, values []domain.Value) *domain.Finding {
	count := 0
	for _, v := range values {
		if strings.TrimSpace(v.Raw) != v.Raw {
			count++
		}
	}
	if count == 0 {
		return nil
	}
	return &domain.Finding{
		Kind:     domain.FindingWhitespace,
		Severity: domain.SeverityInfo,
		Column:   name,
		Message:  fmt.Sprintf("%d values have leading or trailing whitespace", count),
		Count:    count,
	}
}

// inconsistentCase fires when the column holds at least one
// fully-uppercase and at least one fully-lowercase value.
func inconsistentCase(name string, values []domain.Value) *domain.Finding {
	hasUpper, hasLower := false, false
	for _, v := range values {
		if isUpperString(v.Raw) {
			hasUpper = true
		} else if isLowerString(v.Raw) {
			hasLower = true
		}
		if hasUpper && hasLower {
			break
		}
	}
	if !hasUpper || !hasLower {
		return nil
	}

	// Examples are drawn from the values that evidence the
	// inconsistency, not from the column at large.
	var examples []string
	seen := make(map[string]bool)
	for _, v := range values {
		if len(examples) == exampleCap {
			break
		}
		if !isUpperString(v.Raw) && !isLowerString(v.Raw) {
			continue
		}
		if !seen[v.Raw] {
			examples = append(examples, v.Raw)
			seen[v.Raw] = true
		}
	}
	return &domain.Finding{
		Kind:     domain.FindingInconsistentCase,
		Severity: domain.SeverityInfo,
		Column:   name,
		Message:  "mixed case usage detected",
		Examples: examples,
	}
}

// isUpperString reports whether s contains at least one letter and
// every letter is upper case.
func isUpperString(s string) bool {
	hasLetter := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return hasLetter
}

// isLowerString reports whether s contains at least one letter and
// every letter is lower case.
func isLowerString(s string) bool {
	hasLetter := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		if !unicode.IsLower(r) {
			return false
		}
	}
	return hasLetter
}
