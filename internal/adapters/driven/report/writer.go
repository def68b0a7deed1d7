package report

import (
	"fmt"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driven"
)

// NewWriter returns the writer for the named output format.
func NewWriter(format string) (driven.ReportWriter, error) {
	switch format {
	case "json":
		return NewJSONWriter(), nil
	case "markdown", "md":
		return NewMarkdownWriter(), nil
	case "terminal", "text":
		return NewTerminalWriter(), nil
	default:
		return nil, fmt.Errorf("%w: %q (want json, markdown or terminal)", domain.ErrUnsupportedFormat, format)
	}
}
