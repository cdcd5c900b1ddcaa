package domain

import "time"

// Consultation is an append-only record of one evaluated query.
type Consultation struct {
	ID          string         `json:"id"`
	Query       string         `json:"query"`
	Language    Language       `json:"language"`
	Symptoms    []string       `json:"symptoms"`
	Severity    Severity       `json:"severity"`
	Urgency     Urgency        `json:"urgency"`
	IsEmergency bool           `json:"is_emergency"`
	Guidance    string         `json:"guidance"`
	Mode        ProcessingMode `json:"mode"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewConsultation builds a log entry from a query and its result.
func NewConsultation(id, query string, r *GuidanceResult) Consultation {
	return Consultation{
		ID:          id,
		Query:       query,
		Language:    r.Language,
		Symptoms:    r.DetectedSymptoms,
		Severity:    r.Severity,
		Urgency:     r.Urgency,
		IsEmergency: r.IsEmergency,
		Guidance:    r.Guidance,
		Mode:        r.Mode,
		CreatedAt:   r.EvaluatedAt,
	}
}
