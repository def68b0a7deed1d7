package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driven"
)

// fallbackWidth is used when the output is not a terminal.
const fallbackWidth = 80

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	recStyle    = lipgloss.NewStyle().Italic(true)
	labelStyles = map[domain.Severity]lipgloss.Style{
		domain.SeverityCritical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		domain.SeverityError:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		domain.SeverityWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		domain.SeverityInfo:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}
)

// Ensure TerminalWriter implements the interface.
var _ driven.ReportWriter = (*TerminalWriter)(nil)

// TerminalWriter renders a colourised report for interactive use.
type TerminalWriter struct{}

// NewTerminalWriter creates a terminal report writer.
func NewTerminalWriter() *TerminalWriter {
	return &TerminalWriter{}
}

// Write renders the report to w.
func (t *TerminalWriter) Write(w io.Writer, rep *domain.Report) error {
	var b strings.Builder
	rule := strings.Repeat("─", terminalWidth())

	fmt.Fprintf(&b, "%s\n", titleStyle.Render("Data Audit Report"))
	fmt.Fprintf(&b, "%s\n", dimStyle.Render(fmt.Sprintf("%s · %s rows × %d columns · %s · %s",
		rep.Source.Path,
		humanize.Comma(int64(rep.Source.Rows)),
		rep.Source.Columns,
		humanize.Bytes(uint64(rep.Source.SizeBytes)),
		rep.Source.Encoding)))
	fmt.Fprintf(&b, "%s\n", rule)

	fmt.Fprintf(&b, "Summary: %d critical · %d errors · %d warnings · %d info\n",
		rep.Summary.Critical, rep.Summary.Errors, rep.Summary.Warnings, rep.Summary.Info)
	fmt.Fprintf(&b, "Assessment: %s - %s\n",
		titleStyle.Render(rep.Assessment.Label()), assessmentBlurb(rep.Assessment))

	if len(rep.Findings) > 0 {
		fmt.Fprintf(&b, "%s\n", rule)
		for i := range rep.Findings {
			f := &rep.Findings[i]
			label := labelStyles[f.Severity].Render(strings.ToUpper(f.Severity.String()))
			fmt.Fprintf(&b, "  [%s] %s", label, f.Message)
			if f.Column != "" {
				fmt.Fprintf(&b, " %s", dimStyle.Render("("+f.Column+")"))
			}
			b.WriteString("\n")
		}
	}

	if len(rep.Recommendations) > 0 {
		fmt.Fprintf(&b, "%s\n", rule)
		for _, rec := range rep.Recommendations {
			fmt.Fprintf(&b, "  • %s\n", recStyle.Render(rec))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// terminalWidth returns the current terminal width, or a fixed
// fallback when stdout is not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return fallbackWidth
}
