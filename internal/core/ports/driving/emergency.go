package driving

import (
	"context"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// EmergencyService exposes resource ranking, protocols and vitals.
type EmergencyService interface {
	// Resources returns ranked local resources: emergency-capable first,
	// then nearest, truncated to the query limit.
	Resources(ctx context.Context, query domain.ResourceQuery) ([]domain.LocalResource, error)

	// Contacts returns emergency contacts for a region, falling back to
	// the national hotlines.
	Contacts(ctx context.Context, region string) []domain.EmergencyContact

	// Protocol returns the first-aid protocol for an emergency type.
	// Unknown types yield the generic protocol, never an error.
	Protocol(ctx context.Context, emergencyType string) domain.EmergencyProtocol

	// ProtocolFor returns the protocol for the most critical of types.
	ProtocolFor(ctx context.Context, types []string) domain.EmergencyProtocol

	// Protocols lists stored protocols ordered by type.
	Protocols(ctx context.Context) ([]domain.EmergencyProtocol, error)

	// Hotlines returns the national emergency contact hierarchy.
	Hotlines() []domain.Hotline

	// AssessVitals classifies vital signs for an age group.
	AssessVitals(vitals domain.VitalSigns, group domain.AgeGroup) domain.VitalsAssessment
}
