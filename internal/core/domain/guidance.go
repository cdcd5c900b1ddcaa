package domain

import "time"

// ProcessingMode records which path produced a result.
type ProcessingMode string

// Processing modes.
const (
	// ModeOffline is rule-based guidance only.
	ModeOffline ProcessingMode = "offline"

	// ModeOnline is guidance rewritten by an advice enhancer.
	ModeOnline ProcessingMode = "online"

	// ModeFallback means the enhancer was tried and the rule-based text was used.
	ModeFallback ProcessingMode = "fallback"
)

// EmergencyContact is a reachable emergency service attached to a result.
type EmergencyContact struct {
	Name         string `json:"name"`
	Contact      string `json:"contact"`
	Availability string `json:"availability"`
}

// GuidanceResult is the unit returned for one evaluated query.
type GuidanceResult struct {
	// Guidance is the final advice text.
	Guidance string `json:"guidance"`

	// DetectedSymptoms lists matched condition IDs in knowledge base order.
	DetectedSymptoms []string `json:"detected_symptoms"`

	Severity   Severity   `json:"severity"`
	Urgency    Urgency    `json:"urgency"`
	Language   Language   `json:"language"`
	Confidence Confidence `json:"confidence"`

	// Disclaimers are localized notices shown alongside the guidance.
	Disclaimers []string `json:"disclaimers"`

	IsEmergency bool `json:"is_emergency"`

	// EmergencyContacts is populated only when IsEmergency is true.
	EmergencyContacts []EmergencyContact `json:"emergency_contacts,omitempty"`

	// RedFlags lists escalation phrases found in the text.
	RedFlags []string `json:"red_flags,omitempty"`

	// EmergencyTypes lists matched emergency kinds, used to pick protocols.
	EmergencyTypes []string `json:"emergency_types,omitempty"`

	// Mode records whether an enhancer contributed.
	Mode ProcessingMode `json:"mode"`

	// Enhanced is true when the guidance text came from an advice enhancer.
	Enhanced bool `json:"enhanced,omitempty"`

	// Cached is true when the result was served from the response cache.
	Cached bool `json:"cached,omitempty"`

	// Warnings annotate auxiliary steps that failed without failing the call.
	Warnings []string `json:"warnings,omitempty"`

	// EvaluatedAt is when the result was produced.
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// AddWarning records a degraded auxiliary step.
func (r *GuidanceResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
