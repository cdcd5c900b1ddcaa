package mcp

import (
	"github.com/custodia-labs/sahaaya/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Guidance evaluates symptom descriptions.
	Guidance driving.GuidanceService

	// Emergency serves resources, protocols and vital-sign checks.
	Emergency driving.EmergencyService

	// Knowledge exposes the active condition table.
	Knowledge driving.KnowledgeService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Guidance == nil {
		return ErrMissingGuidanceService
	}
	// Emergency and Knowledge are optional; their tools report unavailability.
	return nil
}
