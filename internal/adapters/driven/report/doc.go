// Package report renders audit reports for external consumption.
//
// Three writers are provided: JSON for machine consumption, Markdown
// for sharable audit documents, and a colourised terminal form for
// interactive use. The core produces the Report value; everything
// about serialisation lives here.
package report
