package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sahaaya/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

func testResources() *memory.ResourceStore {
	return memory.NewResourceStore(
		domain.LocalResource{Type: "phc", Name: "Primary Health Centre", DistanceKm: 2, Region: "rural"},
		domain.LocalResource{Type: "hospital", Name: "District Hospital", EmergencyAvailable: true, DistanceKm: 12, Region: "rural", Contact: "08702-100"},
		domain.LocalResource{Type: "hospital", Name: "Taluk Hospital", EmergencyAvailable: true, DistanceKm: 6, Region: "rural", Contact: "08702-200"},
		domain.LocalResource{Type: "ambulance", Name: "108 Ambulance", EmergencyAvailable: true, DistanceKm: 0, Region: domain.RegionAll, Contact: "108"},
		domain.LocalResource{Type: "hospital", Name: "City Hospital", EmergencyAvailable: true, DistanceKm: 1, Region: "urban"},
	)
}

func testProtocols() *memory.ProtocolStore {
	return memory.NewProtocolStore(
		domain.EmergencyProtocol{Type: domain.EmergencyCardiac, ImmediateAction: "Call 108. Start CPR if unresponsive."},
		domain.EmergencyProtocol{Type: domain.EmergencyBleeding, ImmediateAction: "Apply firm pressure to the wound."},
	)
}

func TestEmergencyService_Resources(t *testing.T) {
	s := NewEmergencyService(testResources(), nil, 0)
	ctx := context.Background()

	t.Run("emergency only ascending distance", func(t *testing.T) {
		got, err := s.Resources(ctx, domain.ResourceQuery{Region: "rural", EmergencyOnly: true})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "108 Ambulance", got[0].Name)
		assert.Equal(t, "Taluk Hospital", got[1].Name)
		assert.Equal(t, "District Hospital", got[2].Name)
		for _, r := range got {
			assert.True(t, r.EmergencyAvailable)
		}
	})

	t.Run("emergency capable first", func(t *testing.T) {
		got, err := s.Resources(ctx, domain.ResourceQuery{Region: "rural"})
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, "Primary Health Centre", got[3].Name)
	})

	t.Run("limit", func(t *testing.T) {
		got, err := s.Resources(ctx, domain.ResourceQuery{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("service default limit", func(t *testing.T) {
		limited := NewEmergencyService(testResources(), nil, 1)
		got, err := limited.Resources(ctx, domain.ResourceQuery{})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("nil store", func(t *testing.T) {
		got, err := NewEmergencyService(nil, nil, 0).Resources(ctx, domain.ResourceQuery{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("store error", func(t *testing.T) {
		failing := NewEmergencyService(failingResourceStore{memory.NewResourceStore()}, nil, 0)
		_, err := failing.Resources(ctx, domain.ResourceQuery{})
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestEmergencyService_Contacts(t *testing.T) {
	ctx := context.Background()

	contacts := NewEmergencyService(testResources(), nil, 0).Contacts(ctx, "urban")
	require.Len(t, contacts, 2)
	assert.Equal(t, "108 Ambulance", contacts[0].Name)
	assert.Equal(t, "City Hospital", contacts[1].Name)

	assert.Equal(t, domain.HotlineContacts(), NewEmergencyService(nil, nil, 0).Contacts(ctx, "rural"))
	assert.Equal(t, domain.HotlineContacts(),
		NewEmergencyService(failingResourceStore{memory.NewResourceStore()}, nil, 0).Contacts(ctx, "rural"))
}

func TestEmergencyService_Protocol(t *testing.T) {
	s := NewEmergencyService(nil, testProtocols(), 0)
	ctx := context.Background()

	tests := []struct {
		name     string
		input    string
		wantType string
	}{
		{"stored", "cardiac", domain.EmergencyCardiac},
		{"case and spaces", "  Bleeding ", domain.EmergencyBleeding},
		{"unknown", "alien_abduction", domain.GenericProtocolType},
		{"empty", "", domain.GenericProtocolType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, s.Protocol(ctx, tt.input).Type)
		})
	}

	generic := NewEmergencyService(nil, nil, 0).Protocol(ctx, "cardiac")
	assert.True(t, generic.IsGeneric())
	assert.Equal(t, "Medical emergency detected. Call 108 immediately.", generic.ImmediateAction)
	assert.Equal(t, []string{"Call emergency services", "Stay with the person", "Follow dispatcher instructions"}, generic.Steps)
}

func TestEmergencyService_ProtocolFor(t *testing.T) {
	s := NewEmergencyService(nil, testProtocols(), 0)

	p := s.ProtocolFor(context.Background(), []string{domain.EmergencyBleeding, domain.EmergencyCardiac})
	assert.Equal(t, domain.EmergencyCardiac, p.Type)

	assert.True(t, s.ProtocolFor(context.Background(), nil).IsGeneric())
}

func TestEmergencyService_Protocols(t *testing.T) {
	got, err := NewEmergencyService(nil, testProtocols(), 0).Protocols(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.EmergencyBleeding, got[0].Type)

	got, err = NewEmergencyService(nil, nil, 0).Protocols(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEmergencyService_Hotlines(t *testing.T) {
	hotlines := NewEmergencyService(nil, nil, 0).Hotlines()
	require.Len(t, hotlines, 5)
	assert.Equal(t, "108", hotlines[0].Number)
	assert.Equal(t, "1078", hotlines[4].Number)
}

func TestEmergencyService_AssessVitals(t *testing.T) {
	s := NewEmergencyService(nil, nil, 0)

	normal := s.AssessVitals(domain.VitalSigns{HeartRate: domain.Reading(72), SystolicBP: domain.Reading(120), RespiratoryRate: domain.Reading(16)}, domain.AgeAdult)
	assert.Equal(t, domain.VitalNormal, normal.Status)

	critical := s.AssessVitals(domain.VitalSigns{HeartRate: domain.Reading(200)}, domain.AgeAdult)
	assert.Equal(t, domain.VitalCritical, critical.Status)

	noPulse := s.AssessVitals(domain.VitalSigns{HeartRate: domain.Reading(0)}, domain.AgeAdult)
	assert.Equal(t, domain.VitalCritical, noPulse.Status)

	unknown := s.AssessVitals(domain.VitalSigns{}, "teen")
	assert.Equal(t, domain.VitalUnknown, unknown.Status)
	assert.Equal(t, domain.AgeAdult, unknown.AgeGroup)
}
