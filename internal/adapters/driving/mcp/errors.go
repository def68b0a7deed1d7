// Package mcp provides an MCP (Model Context Protocol) server adapter
// for veridata. It lets AI assistants audit local data files and read
// past audit runs.
package mcp

import "errors"

// ErrMissingAuditorService is returned when the auditor service is not provided.
var ErrMissingAuditorService = errors.New("mcp: auditor service is required")
