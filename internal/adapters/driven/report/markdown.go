package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driven"
)

// sectionCap limits how many warning and observation findings the
// Markdown form lists per section.
const sectionCap = 20

// Ensure MarkdownWriter implements the interface.
var _ driven.ReportWriter = (*MarkdownWriter)(nil)

// MarkdownWriter renders the report as a sharable Markdown document.
type MarkdownWriter struct{}

// NewMarkdownWriter creates a Markdown report writer.
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

// Write renders the report to w.
func (m *MarkdownWriter) Write(w io.Writer, rep *domain.Report) error {
	var b strings.Builder

	b.WriteString("# Data Audit Report\n\n")

	b.WriteString("## File Information\n\n")
	fmt.Fprintf(&b, "- File: `%s`\n", rep.Source.Path)
	fmt.Fprintf(&b, "- Size: %s\n", humanize.Bytes(uint64(rep.Source.SizeBytes)))
	fmt.Fprintf(&b, "- Rows: %s\n", humanize.Comma(int64(rep.Source.Rows)))
	fmt.Fprintf(&b, "- Columns: %d\n", rep.Source.Columns)
	fmt.Fprintf(&b, "- Encoding: %s\n", rep.Source.Encoding)
	fmt.Fprintf(&b, "- Delimiter: `%s`\n\n", rep.Source.Delimiter)

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Critical Issues: %d\n", rep.Summary.Critical)
	fmt.Fprintf(&b, "- Errors: %d\n", rep.Summary.Errors)
	fmt.Fprintf(&b, "- Warnings: %d\n", rep.Summary.Warnings)
	fmt.Fprintf(&b, "- Observations: %d\n", rep.Summary.Info)
	fmt.Fprintf(&b, "- Total Findings: %d\n\n", rep.Summary.Total)

	writeSection(&b, "Critical Issues", filter(rep.Findings, domain.SeverityCritical), 0)
	writeSection(&b, "Errors", filter(rep.Findings, domain.SeverityError), 0)
	writeSection(&b, "Warnings", filter(rep.Findings, domain.SeverityWarning), sectionCap)
	writeSection(&b, "Observations", filter(rep.Findings, domain.SeverityInfo), sectionCap)

	if len(rep.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, rec := range rep.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Overall Assessment\n\n")
	fmt.Fprintf(&b, "**%s** - %s\n", rep.Assessment.Label(), assessmentBlurb(rep.Assessment))

	_, err := io.WriteString(w, b.String())
	return err
}

// writeSection renders one severity section, truncated at limit when
// limit is non-zero.
func writeSection(b *strings.Builder, title string, findings []domain.Finding, limit int) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)

	shown := findings
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for i := range shown {
		f := &shown[i]
		fmt.Fprintf(b, "**%s**\n", kindTitle(f.Kind))
		fmt.Fprintf(b, "- %s\n", f.Message)
		if f.Column != "" {
			fmt.Fprintf(b, "  - Column: `%s`\n", f.Column)
		}
		if f.Rule != "" {
			fmt.Fprintf(b, "  - Rule: `%s`\n", f.Rule)
		}
		if f.Percentage > 0 {
			fmt.Fprintf(b, "  - Affected: %.2f%%\n", f.Percentage)
		}
		if len(f.Examples) > 0 {
			fmt.Fprintf(b, "  - Examples: %s\n", strings.Join(f.Examples, ", "))
		}
		b.WriteString("\n")
	}
	if limit > 0 && len(findings) > limit {
		fmt.Fprintf(b, "... and %d more\n\n", len(findings)-limit)
	}
}

// filter returns the findings of one severity, preserving order.
func filter(findings []domain.Finding, sev domain.Severity) []domain.Finding {
	var out []domain.Finding
	for i := range findings {
		if findings[i].Severity == sev {
			out = append(out, findings[i])
		}
	}
	return out
}

// kindTitle renders a finding kind as a section heading,
// e.g. "duplicate_keys" becomes "Duplicate Keys".
func kindTitle(kind domain.FindingKind) string {
	words := strings.Split(string(kind), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// assessmentBlurb returns the human-facing explanation for a tier.
func assessmentBlurb(a domain.Assessment) string {
	switch a {
	case domain.AssessmentPoor:
		return "Critical issues must be addressed"
	case domain.AssessmentFair:
		return "Errors need to be fixed before use"
	case domain.AssessmentGood:
		return "Many warnings suggest data quality issues"
	case domain.AssessmentVeryGood:
		return "Minor issues to consider"
	default:
		return "No significant issues detected"
	}
}
