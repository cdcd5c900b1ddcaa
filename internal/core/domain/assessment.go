package domain

// Assessment is the overall severity verdict for one input.
// It is derived per request and never stored.
type Assessment struct {
	// Severity is the maximum matched severity, or emergency on override.
	Severity Severity

	// Urgency is the maximum matched urgency, or immediate on override.
	Urgency Urgency

	// IsEmergency is true when an emergency keyword or red flag matched.
	IsEmergency bool

	// RedFlags lists the red-flag phrases found in the text.
	RedFlags []string

	// EmergencyKeywords lists the emergency-condition keywords found.
	EmergencyKeywords []string

	// EmergencyTypes lists matched emergency kinds (cardiac, bleeding, ...).
	EmergencyTypes []string

	// Intensified is true when an intensity word raised the urgency.
	Intensified bool

	// NoSymptoms is true when nothing in the text matched the knowledge base.
	NoSymptoms bool
}
