package triage

import (
	"strings"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// Composition is the text part of a guidance result.
type Composition struct {
	Guidance    string
	Confidence  domain.Confidence
	Disclaimers []string
}

// Compose builds the guidance text for an assessment in lang.
//
// With no symptoms the text is the "describe more" message and the
// disclaimer. An emergency returns only the emergency message. Otherwise
// each matched condition's advice is followed by one severity band
// message and the disclaimer, joined by single spaces.
func Compose(
	kb *domain.KnowledgeBase,
	symptoms []string,
	a domain.Assessment,
	lang domain.Language,
) Composition {
	disclaimer := kb.Message(domain.MessageDisclaimer, lang)
	out := Composition{Disclaimers: disclaimers(kb, lang)}

	switch {
	case a.NoSymptoms || len(symptoms) == 0:
		out.Guidance = joinNonEmpty(kb.Message(domain.MessageNoSymptoms, lang), disclaimer)
		out.Confidence = domain.ConfidenceLow

	case a.IsEmergency:
		out.Guidance = kb.Message(domain.MessageEmergency, lang)
		out.Confidence = domain.ConfidenceHigh

	default:
		parts := make([]string, 0, len(symptoms)+2)
		for _, id := range symptoms {
			if c, ok := kb.Condition(id); ok {
				parts = append(parts, c.AdviceFor(lang))
			}
		}
		parts = append(parts, kb.Message(bandKey(a.Severity), lang), disclaimer)
		out.Guidance = joinNonEmpty(parts...)
		out.Confidence = domain.ConfidenceHigh
	}
	return out
}

// bandKey selects the severity band message. Emergency never reaches here.
func bandKey(s domain.Severity) string {
	switch s {
	case domain.SeverityHigh, domain.SeverityEmergency:
		return domain.MessageBandHigh
	case domain.SeverityMedium:
		return domain.MessageBandMedium
	default:
		return domain.MessageBandLow
	}
}

func disclaimers(kb *domain.KnowledgeBase, lang domain.Language) []string {
	var out []string
	for _, key := range []string{domain.MessageDisclaimer, domain.MessageResultDisclaimer} {
		if text := kb.Message(key, lang); text != "" {
			out = append(out, text)
		}
	}
	return out
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
