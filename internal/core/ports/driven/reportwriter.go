package driven

import (
	"io"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
)

// ReportWriter renders a Report to an output format. The core itself
// performs no serialisation; its only contract with writers is the
// Report's field names, severity ordering, and truncation caps.
type ReportWriter interface {
	// Write renders the report to w.
	Write(w io.Writer, rep *domain.Report) error
}
