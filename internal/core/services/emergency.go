package services

import (
	"context"
	"errors"
	"strings"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driving"
	"github.com/custodia-labs/sahaaya/internal/logger"
	"github.com/custodia-labs/sahaaya/internal/triage"
)

// Ensure EmergencyService implements the interface.
var _ driving.EmergencyService = (*EmergencyService)(nil)

// EmergencyService serves local resources, first-aid protocols,
// hotlines and vital-sign checks. Both stores are optional.
type EmergencyService struct {
	resources driven.ResourceStore
	protocols driven.ProtocolStore
	limit     int
}

// NewEmergencyService creates an emergency service.
// limit is the default resource count; zero uses domain.DefaultResourceLimit.
func NewEmergencyService(resources driven.ResourceStore, protocols driven.ProtocolStore, limit int) *EmergencyService {
	if limit <= 0 {
		limit = domain.DefaultResourceLimit
	}
	return &EmergencyService{resources: resources, protocols: protocols, limit: limit}
}

// Resources returns ranked resources for the query.
func (s *EmergencyService) Resources(ctx context.Context, query domain.ResourceQuery) ([]domain.LocalResource, error) {
	if query.Limit <= 0 {
		query.Limit = s.limit
	}
	if s.resources == nil {
		return []domain.LocalResource{}, nil
	}
	resources, err := s.resources.ListResources(ctx, query)
	if err != nil {
		return nil, err
	}
	return triage.RankResources(resources, query), nil
}

// Contacts returns emergency contacts for region. Lookup failures and
// empty results yield the national hotlines.
func (s *EmergencyService) Contacts(ctx context.Context, region string) []domain.EmergencyContact {
	resources, err := s.Resources(ctx, domain.ResourceQuery{Region: region, EmergencyOnly: true})
	if err != nil {
		logger.Warn("resource lookup failed, using hotlines: %v", err)
		return domain.HotlineContacts()
	}
	if len(resources) == 0 {
		return domain.HotlineContacts()
	}
	contacts := make([]domain.EmergencyContact, 0, len(resources))
	for _, r := range resources {
		contacts = append(contacts, r.AsContact())
	}
	return contacts
}

// Protocol returns the protocol for emergencyType, or the generic one.
func (s *EmergencyService) Protocol(ctx context.Context, emergencyType string) domain.EmergencyProtocol {
	emergencyType = strings.ToLower(strings.TrimSpace(emergencyType))
	if s.protocols == nil || emergencyType == "" {
		return domain.GenericProtocol()
	}
	p, err := s.protocols.GetProtocol(ctx, emergencyType)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("protocol lookup for %q failed: %v", emergencyType, err)
		}
		return domain.GenericProtocol()
	}
	return *p
}

// ProtocolFor returns the protocol for the most critical of types.
func (s *EmergencyService) ProtocolFor(ctx context.Context, types []string) domain.EmergencyProtocol {
	return s.Protocol(ctx, triage.PrimaryEmergencyType(types))
}

// Protocols lists stored protocols.
func (s *EmergencyService) Protocols(ctx context.Context) ([]domain.EmergencyProtocol, error) {
	if s.protocols == nil {
		return []domain.EmergencyProtocol{}, nil
	}
	return s.protocols.ListProtocols(ctx)
}

// Hotlines returns the national emergency contact hierarchy.
func (s *EmergencyService) Hotlines() []domain.Hotline {
	return domain.Hotlines()
}

// AssessVitals classifies vital signs for an age group.
func (s *EmergencyService) AssessVitals(vitals domain.VitalSigns, group domain.AgeGroup) domain.VitalsAssessment {
	return triage.AssessVitals(vitals, group)
}
