package triage

import (
	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// intensityWords raise the urgency of a non-emergency assessment.
var intensityWords = []string{"severe", "intense", "extreme", "unbearable"}

// Assess aggregates matched conditions into one verdict.
//
// Severity and urgency are the maximum over the matched conditions.
// The result is forced to emergency/immediate when text contains any
// keyword of an emergency condition or any red flag of a matched
// condition. Otherwise an intensity word raises urgency one step, up to
// urgent. No symptoms yields low/routine with NoSymptoms set.
func Assess(kb *domain.KnowledgeBase, symptoms []string, text string) domain.Assessment {
	a := domain.Assessment{
		Severity: domain.SeverityLow,
		Urgency:  domain.UrgencyRoutine,
	}
	if len(symptoms) == 0 {
		a.NoSymptoms = true
		return a
	}

	for _, id := range symptoms {
		c, ok := kb.Condition(id)
		if !ok {
			continue
		}
		a.Severity = domain.MaxSeverity(a.Severity, c.Severity)
		a.Urgency = domain.MaxUrgency(a.Urgency, c.Urgency)
		a.RedFlags = appendUnique(a.RedFlags, findAll(text, c.RedFlags)...)
	}

	for _, c := range kb.EmergencyConditions() {
		a.EmergencyKeywords = appendUnique(a.EmergencyKeywords, findAll(text, c.AllKeywords())...)
	}

	for _, et := range kb.EmergencyTypes() {
		if containsAny(text, keywordsOf(et.Keywords)) != "" {
			a.EmergencyTypes = append(a.EmergencyTypes, et.Type)
		}
	}

	if len(a.RedFlags) > 0 || len(a.EmergencyKeywords) > 0 || a.Severity == domain.SeverityEmergency {
		a.IsEmergency = true
		a.Severity = domain.SeverityEmergency
		a.Urgency = domain.UrgencyImmediate
		return a
	}

	if containsAny(text, intensityWords) != "" {
		if raised := raiseUrgency(a.Urgency); raised != a.Urgency {
			a.Urgency = raised
			a.Intensified = true
		}
	}
	return a
}

// raiseUrgency moves one step up, never past urgent.
func raiseUrgency(u domain.Urgency) domain.Urgency {
	switch u {
	case domain.UrgencyRoutine:
		return domain.UrgencyMonitor
	case domain.UrgencyMonitor:
		return domain.UrgencyUrgent
	default:
		return u
	}
}

func keywordsOf(table map[domain.Language][]string) []string {
	var out []string
	for _, lang := range domain.AllLanguages() {
		out = append(out, table[lang]...)
	}
	return out
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		found := false
		for _, d := range dst {
			if d == v {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}
