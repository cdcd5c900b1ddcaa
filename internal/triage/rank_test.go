package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

func sampleResources() []domain.LocalResource {
	return []domain.LocalResource{
		{Name: "Local Pharmacy", DistanceKm: 5, Region: "rural"},
		{Name: "District Hospital", DistanceKm: 25, EmergencyAvailable: true, Region: "rural"},
		{Name: "Emergency Services", DistanceKm: 0, EmergencyAvailable: true, Region: domain.RegionAll},
		{Name: "City Clinic", DistanceKm: 2, Region: "urban"},
		{Name: "City Hospital", DistanceKm: 8, EmergencyAvailable: true, Region: "urban"},
		{Name: "Alpha Clinic", DistanceKm: 5, Region: "rural"},
	}
}

func names(resources []domain.LocalResource) []string {
	out := make([]string, 0, len(resources))
	for _, r := range resources {
		out = append(out, r.Name)
	}
	return out
}

func TestRankResources_Order(t *testing.T) {
	got := RankResources(sampleResources(), domain.ResourceQuery{Limit: 10})

	assert.Equal(t, []string{
		"Emergency Services",
		"City Hospital",
		"District Hospital",
		"City Clinic",
		"Alpha Clinic",
		"Local Pharmacy",
	}, names(got))
}

func TestRankResources_EmergencyOnly(t *testing.T) {
	got := RankResources(sampleResources(), domain.ResourceQuery{EmergencyOnly: true})

	assert.Equal(t, []string{"Emergency Services", "City Hospital", "District Hospital"}, names(got))
	for i, r := range got {
		assert.True(t, r.EmergencyAvailable)
		if i > 0 {
			assert.LessOrEqual(t, got[i-1].DistanceKm, r.DistanceKm)
		}
	}
}

func TestRankResources_Region(t *testing.T) {
	got := RankResources(sampleResources(), domain.ResourceQuery{Region: "rural"})

	assert.Equal(t, []string{
		"Emergency Services",
		"District Hospital",
		"Alpha Clinic",
		"Local Pharmacy",
	}, names(got))
}

func TestRankResources_DefaultLimit(t *testing.T) {
	got := RankResources(sampleResources(), domain.ResourceQuery{})

	assert.Len(t, got, domain.DefaultResourceLimit)
}

func TestRankResources_DoesNotModifyInput(t *testing.T) {
	in := sampleResources()

	RankResources(in, domain.ResourceQuery{})

	assert.Equal(t, sampleResources(), in)
}

func TestRankResources_Empty(t *testing.T) {
	assert.Empty(t, RankResources(nil, domain.ResourceQuery{}))
}

func TestPrimaryEmergencyType(t *testing.T) {
	tests := []struct {
		name     string
		types    []string
		expected string
	}{
		{"none", nil, ""},
		{"single", []string{domain.EmergencyBurns}, domain.EmergencyBurns},
		{"cardiac first", []string{domain.EmergencyBleeding, domain.EmergencyCardiac}, domain.EmergencyCardiac},
		{"respiratory over unconscious", []string{domain.EmergencyUnconscious, domain.EmergencyRespiratory}, domain.EmergencyRespiratory},
		{"unknown ranks last", []string{"snakebite", domain.EmergencyPoisoning}, domain.EmergencyPoisoning},
		{"unknown only", []string{"snakebite"}, "snakebite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PrimaryEmergencyType(tt.types))
		})
	}
}
