package mcp

import (
	"context"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// mockGuidanceService is a mock implementation of driving.GuidanceService.
type mockGuidanceService struct {
	result   *domain.GuidanceResult
	err      error
	lastText string
	lastHint string
}

func (m *mockGuidanceService) Evaluate(_ context.Context, text, hint string) (*domain.GuidanceResult, error) {
	m.lastText, m.lastHint = text, hint
	return m.result, m.err
}

// mockEmergencyService is a mock implementation of driving.EmergencyService.
type mockEmergencyService struct {
	resources  []domain.LocalResource
	protocols  map[string]domain.EmergencyProtocol
	err        error
	lastQuery  domain.ResourceQuery
	lastTypes  []string
	lastGroup  domain.AgeGroup
	lastVitals domain.VitalSigns
}

func (m *mockEmergencyService) Resources(_ context.Context, q domain.ResourceQuery) ([]domain.LocalResource, error) {
	m.lastQuery = q
	return m.resources, m.err
}

func (m *mockEmergencyService) Contacts(context.Context, string) []domain.EmergencyContact {
	return domain.HotlineContacts()
}

func (m *mockEmergencyService) Protocol(_ context.Context, t string) domain.EmergencyProtocol {
	if p, ok := m.protocols[t]; ok {
		return p
	}
	return domain.GenericProtocol()
}

func (m *mockEmergencyService) ProtocolFor(ctx context.Context, types []string) domain.EmergencyProtocol {
	m.lastTypes = types
	if len(types) == 0 {
		return domain.GenericProtocol()
	}
	return m.Protocol(ctx, types[0])
}

func (m *mockEmergencyService) Protocols(context.Context) ([]domain.EmergencyProtocol, error) {
	out := make([]domain.EmergencyProtocol, 0, len(m.protocols))
	for _, p := range m.protocols {
		out = append(out, p)
	}
	return out, m.err
}

func (m *mockEmergencyService) Hotlines() []domain.Hotline {
	return domain.Hotlines()
}

func (m *mockEmergencyService) AssessVitals(v domain.VitalSigns, g domain.AgeGroup) domain.VitalsAssessment {
	m.lastVitals, m.lastGroup = v, g
	return domain.VitalsAssessment{AgeGroup: g, Status: domain.VitalNormal}
}

// mockKnowledgeService is a mock implementation of driving.KnowledgeService.
type mockKnowledgeService struct {
	kb *domain.KnowledgeBase
}

func (m *mockKnowledgeService) Current() *domain.KnowledgeBase { return m.kb }

func (m *mockKnowledgeService) Reload(context.Context) error { return nil }

func (m *mockKnowledgeService) Validate(context.Context) (*domain.KnowledgeBase, error) {
	return m.kb, nil
}
