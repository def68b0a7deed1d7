// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - TableLoader: Materialises a Table from a delimited source
//   - Check: A single validation pass over a table
//   - CheckFactory: Builds the check pipeline for a rule set
//   - ReportWriter: Renders a Report to an output format
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RuleStore: Loads business rule sets. Without it, only the
//     built-in structural and statistical checks run.
//   - RunStore: Persists audit run history. Without it, reports are
//     still produced but `veridata history` is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, loader, or check package
package driven
