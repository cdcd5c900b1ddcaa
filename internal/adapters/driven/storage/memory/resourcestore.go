package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

// Ensure the stores implement their interfaces.
var (
	_ driven.ResourceStore = (*ResourceStore)(nil)
	_ driven.ProtocolStore = (*ProtocolStore)(nil)
)

// ResourceStore is an in-memory implementation of driven.ResourceStore.
type ResourceStore struct {
	mu        sync.RWMutex
	resources []domain.LocalResource
	nextID    int64
}

// NewResourceStore creates a store holding the given resources.
// Resources without an ID are assigned one.
func NewResourceStore(resources ...domain.LocalResource) *ResourceStore {
	s := &ResourceStore{}
	for i := range resources {
		r := resources[i]
		_ = s.SaveResource(context.Background(), &r)
	}
	return s
}

// ListResources returns resources matching the query in insertion order.
func (s *ResourceStore) ListResources(_ context.Context, query domain.ResourceQuery) ([]domain.LocalResource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.LocalResource, 0, len(s.resources))
	for _, r := range s.resources {
		if query.Matches(r) {
			out = append(out, copyResource(r))
		}
	}
	return out, nil
}

// SaveResource creates or updates a resource. A zero ID creates.
func (s *ResourceStore) SaveResource(_ context.Context, resource *domain.LocalResource) error {
	if resource == nil || strings.TrimSpace(resource.Name) == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if resource.ID == 0 {
		s.nextID++
		resource.ID = s.nextID
		if resource.Region == "" {
			resource.Region = domain.RegionAll
		}
		s.resources = append(s.resources, copyResource(*resource))
		return nil
	}

	for i := range s.resources {
		if s.resources[i].ID == resource.ID {
			s.resources[i] = copyResource(*resource)
			return nil
		}
	}
	if resource.ID > s.nextID {
		s.nextID = resource.ID
	}
	s.resources = append(s.resources, copyResource(*resource))
	return nil
}

func copyResource(r domain.LocalResource) domain.LocalResource {
	r.Services = append([]string(nil), r.Services...)
	return r
}

// ProtocolStore is an in-memory implementation of driven.ProtocolStore.
type ProtocolStore struct {
	mu        sync.RWMutex
	protocols map[string]domain.EmergencyProtocol
}

// NewProtocolStore creates a store holding the given protocols.
func NewProtocolStore(protocols ...domain.EmergencyProtocol) *ProtocolStore {
	s := &ProtocolStore{protocols: make(map[string]domain.EmergencyProtocol)}
	for _, p := range protocols {
		s.protocols[p.Type] = p
	}
	return s
}

// GetProtocol returns the protocol for an emergency type.
func (s *ProtocolStore) GetProtocol(_ context.Context, emergencyType string) (*domain.EmergencyProtocol, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.protocols[emergencyType]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// ListProtocols returns all protocols ordered by type.
func (s *ProtocolStore) ListProtocols(_ context.Context) ([]domain.EmergencyProtocol, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.EmergencyProtocol, 0, len(s.protocols))
	for _, p := range s.protocols {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

// SaveProtocol creates or replaces the protocol for its type.
func (s *ProtocolStore) SaveProtocol(_ context.Context, protocol *domain.EmergencyProtocol) error {
	if protocol == nil || protocol.Type == "" || protocol.ImmediateAction == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.protocols[protocol.Type] = *protocol
	return nil
}
