package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

func TestAssess_NoSymptoms(t *testing.T) {
	kb := smallKB(t)

	a := Assess(kb, nil, "xyzxyz")

	assert.True(t, a.NoSymptoms)
	assert.False(t, a.IsEmergency)
	assert.Equal(t, domain.SeverityLow, a.Severity)
	assert.Equal(t, domain.UrgencyRoutine, a.Urgency)
}

func TestAssess_MaximumOverMatched(t *testing.T) {
	kb := smallKB(t)

	tests := []struct {
		name     string
		symptoms []string
		severity domain.Severity
		urgency  domain.Urgency
	}{
		{"low only", []string{"rash"}, domain.SeverityLow, domain.UrgencyRoutine},
		{"low and medium", []string{"rash", "fever"}, domain.SeverityMedium, domain.UrgencyMonitor},
		{"all three", []string{"rash", "fever", "jaundice"}, domain.SeverityHigh, domain.UrgencyMonitor},
		{"unknown id ignored", []string{"rash", "missing"}, domain.SeverityLow, domain.UrgencyRoutine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Assess(kb, tt.symptoms, "")
			assert.Equal(t, tt.severity, a.Severity)
			assert.Equal(t, tt.urgency, a.Urgency)
			assert.False(t, a.IsEmergency)
			assert.False(t, a.NoSymptoms)
		})
	}
}

func TestAssess_RedFlagOverride(t *testing.T) {
	kb := smallKB(t)
	text := "fever with a stiff neck"

	a := Assess(kb, Extract(kb, text), text)

	assert.True(t, a.IsEmergency)
	assert.Equal(t, domain.SeverityEmergency, a.Severity)
	assert.Equal(t, domain.UrgencyImmediate, a.Urgency)
	assert.Equal(t, []string{"stiff neck"}, a.RedFlags)
}

func TestAssess_RedFlagOfUnmatchedConditionIgnored(t *testing.T) {
	kb := smallKB(t)
	text := "a rash and a stiff neck"

	a := Assess(kb, Extract(kb, text), text)

	assert.False(t, a.IsEmergency)
	assert.Empty(t, a.RedFlags)
}

func TestAssess_EmergencyKeywordOverride(t *testing.T) {
	kb := smallKB(t)
	text := "mild rash and chest pain"

	a := Assess(kb, Extract(kb, text), text)

	assert.True(t, a.IsEmergency)
	assert.Equal(t, domain.SeverityEmergency, a.Severity)
	assert.Equal(t, domain.UrgencyImmediate, a.Urgency)
	assert.Equal(t, []string{"chest pain"}, a.EmergencyKeywords)
	assert.Equal(t, []string{domain.EmergencyCardiac}, a.EmergencyTypes)
}

func TestAssess_EmergencyTypesInTableOrder(t *testing.T) {
	kb := smallKB(t)
	text := "unconscious after chest pain"

	a := Assess(kb, Extract(kb, text), text)

	assert.Equal(t, []string{domain.EmergencyCardiac, domain.EmergencyUnconscious}, a.EmergencyTypes)
}

func TestAssess_Intensity(t *testing.T) {
	kb := smallKB(t)

	tests := []struct {
		name        string
		text        string
		urgency     domain.Urgency
		intensified bool
	}{
		{"routine raised to monitor", "severe rash", domain.UrgencyMonitor, true},
		{"monitor raised to urgent", "unbearable fever", domain.UrgencyUrgent, true},
		{"no intensity word", "fever", domain.UrgencyMonitor, false},
		{"emergency unchanged", "extreme chest pain", domain.UrgencyImmediate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Assess(kb, Extract(kb, tt.text), tt.text)
			assert.Equal(t, tt.urgency, a.Urgency)
			assert.Equal(t, tt.intensified, a.Intensified)
		})
	}
}

func TestRaiseUrgency_CappedAtUrgent(t *testing.T) {
	assert.Equal(t, domain.UrgencyUrgent, raiseUrgency(domain.UrgencyUrgent))
	assert.Equal(t, domain.UrgencyImmediate, raiseUrgency(domain.UrgencyImmediate))
}

func TestAssess_SeverityIsMonotonic(t *testing.T) {
	kb := defaultKB(t)
	conditions := kb.Conditions()

	for _, a := range conditions {
		for _, b := range conditions {
			got := Assess(kb, []string{a.ID, b.ID}, "")
			assert.GreaterOrEqual(t, got.Severity.Rank(), a.Severity.Rank(), "%s+%s", a.ID, b.ID)
			assert.GreaterOrEqual(t, got.Severity.Rank(), b.Severity.Rank(), "%s+%s", a.ID, b.ID)
		}
	}
}

func TestAssess_EveryRedFlagForcesEmergency(t *testing.T) {
	kb := defaultKB(t)

	for _, c := range kb.Conditions() {
		for _, flag := range c.RedFlags {
			text := c.AllKeywords()[0] + " " + flag
			a := Assess(kb, Extract(kb, text), text)
			assert.True(t, a.IsEmergency, "%s: %q", c.ID, text)
			assert.Equal(t, domain.SeverityEmergency, a.Severity, "%s: %q", c.ID, text)
		}
	}
}

func TestAssess_EveryEmergencyKeywordForcesEmergency(t *testing.T) {
	kb := defaultKB(t)

	for _, c := range kb.EmergencyConditions() {
		for _, kw := range c.AllKeywords() {
			text := "mild rash and " + kw
			a := Assess(kb, Extract(kb, text), text)
			assert.True(t, a.IsEmergency, kw)
			assert.Equal(t, domain.UrgencyImmediate, a.Urgency, kw)
		}
	}
}
