// Package domain defines the core business entities for Veridata.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Table: A fully materialised tabular dataset under audit
//   - Column: A named, ordered sequence of cell values
//   - Finding: A single classified data-quality observation
//   - BusinessRule: A user-declared per-column validity predicate
//   - Report: The derived, read-only result of an audit run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
