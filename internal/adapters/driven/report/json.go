package report

import (
	"encoding/json"
	"io"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driven"
)

// Ensure JSONWriter implements the interface.
var _ driven.ReportWriter = (*JSONWriter)(nil)

// JSONWriter renders the report as indented JSON.
type JSONWriter struct{}

// NewJSONWriter creates a JSON report writer.
func NewJSONWriter() *JSONWriter {
	return &JSONWriter{}
}

// Write encodes the report to w with two-space indentation.
func (j *JSONWriter) Write(w io.Writer, rep *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
