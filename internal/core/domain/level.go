package domain

// Severity is the clinical seriousness tier of a condition or assessment.
// Tiers are totally ordered: low < medium < high < emergency.
type Severity string

// Severity tiers.
const (
	SeverityLow       Severity = "low"
	SeverityMedium    Severity = "medium"
	SeverityHigh      Severity = "high"
	SeverityEmergency Severity = "emergency"
)

// Rank returns the position of s in the total order, or -1 if unknown.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	case SeverityEmergency:
		return 3
	default:
		return -1
	}
}

// IsValid returns true if the severity is recognised.
func (s Severity) IsValid() bool {
	return s.Rank() >= 0
}

// String returns the string representation.
func (s Severity) String() string {
	return string(s)
}

// MaxSeverity returns the higher of a and b.
func MaxSeverity(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// Urgency is the recommended response timeframe tier.
// Tiers are totally ordered: routine < monitor < urgent < immediate.
type Urgency string

// Urgency tiers.
const (
	UrgencyRoutine   Urgency = "routine"
	UrgencyMonitor   Urgency = "monitor"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyImmediate Urgency = "immediate"
)

// Rank returns the position of u in the total order, or -1 if unknown.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyRoutine:
		return 0
	case UrgencyMonitor:
		return 1
	case UrgencyUrgent:
		return 2
	case UrgencyImmediate:
		return 3
	default:
		return -1
	}
}

// IsValid returns true if the urgency is recognised.
func (u Urgency) IsValid() bool {
	return u.Rank() >= 0
}

// String returns the string representation.
func (u Urgency) String() string {
	return string(u)
}

// MaxUrgency returns the higher of a and b.
func MaxUrgency(a, b Urgency) Urgency {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// Confidence is an advisory tri-state flag on a result.
// It is a heuristic, not a calibrated probability.
type Confidence string

// Confidence values.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// AllSeverities returns severities in ascending order.
func AllSeverities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityEmergency}
}

// AllUrgencies returns urgencies in ascending order.
func AllUrgencies() []Urgency {
	return []Urgency{UrgencyRoutine, UrgencyMonitor, UrgencyUrgent, UrgencyImmediate}
}
