package triage

import (
	"strings"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// Evaluate runs the rule-based pipeline for text in lang and returns an
// offline result. It does not set contacts, timestamps or cache flags.
// The same inputs always produce the same result.
func Evaluate(kb *domain.KnowledgeBase, text string, lang domain.Language) *domain.GuidanceResult {
	normalized := strings.ToLower(text)

	symptoms := Extract(kb, normalized)
	assessment := Assess(kb, symptoms, normalized)
	composed := Compose(kb, symptoms, assessment, lang)

	if symptoms == nil {
		symptoms = []string{}
	}
	return &domain.GuidanceResult{
		Guidance:         composed.Guidance,
		DetectedSymptoms: symptoms,
		Severity:         assessment.Severity,
		Urgency:          assessment.Urgency,
		Language:         lang,
		Confidence:       composed.Confidence,
		Disclaimers:      composed.Disclaimers,
		IsEmergency:      assessment.IsEmergency,
		RedFlags:         assessment.RedFlags,
		EmergencyTypes:   assessment.EmergencyTypes,
		Mode:             domain.ModeOffline,
	}
}
