package driven

import (
	"context"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// ResourceStore provides local healthcare resources.
// Results are unordered; ranking happens in the core.
type ResourceStore interface {
	// ListResources returns resources passing the query's region and
	// emergency filters. The query limit is applied by the caller.
	ListResources(ctx context.Context, query domain.ResourceQuery) ([]domain.LocalResource, error)

	// SaveResource creates or updates a resource. A zero ID creates.
	SaveResource(ctx context.Context, resource *domain.LocalResource) error
}

// ProtocolStore provides first-aid protocols by emergency type.
type ProtocolStore interface {
	// GetProtocol returns the protocol for an emergency type.
	// Returns domain.ErrNotFound if none is stored.
	GetProtocol(ctx context.Context, emergencyType string) (*domain.EmergencyProtocol, error)

	// ListProtocols returns all stored protocols ordered by type.
	ListProtocols(ctx context.Context) ([]domain.EmergencyProtocol, error)

	// SaveProtocol creates or replaces the protocol for its type.
	SaveProtocol(ctx context.Context, protocol *domain.EmergencyProtocol) error
}
