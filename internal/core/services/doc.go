// Package services implements the core business logic for Veridata.
//
// Services implement the driving ports and depend only on domain
// types and driven port interfaces. Infrastructure (CSV parsing,
// rule files, report rendering, persistence) is injected.
//
//   - Auditor: runs the validation pipeline and aggregates findings
//   - History: exposes persisted audit runs
//
// # Import Rules
//
//   - Can Import: domain, ports/driven, ports/driving, logger
//   - Cannot Import: Any adapter, loader, or check package
package services
