// Package tui provides an interactive terminal user interface for sahaaya.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/sahaaya/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Guidance evaluates symptom descriptions.
	Guidance driving.GuidanceService

	// Emergency provides resources, contacts and protocols. Optional.
	Emergency driving.EmergencyService

	// Region filters the resources view.
	Region string

	// LanguageHint is passed to every evaluation. Empty means detect.
	LanguageHint string
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(guidance driving.GuidanceService, emergency driving.EmergencyService) *Ports {
	return &Ports{
		Guidance:  guidance,
		Emergency: emergency,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Guidance == nil {
		return ErrMissingGuidanceService
	}
	return nil
}
