// Package mcp provides an MCP (Model Context Protocol) server adapter for Sahaaya.
// It lets AI assistants request health guidance, emergency protocols and
// local resources from the rule-based engine.
package mcp

import "errors"

// ErrMissingGuidanceService is returned when the guidance service is not provided.
var ErrMissingGuidanceService = errors.New("mcp: guidance service is required")
