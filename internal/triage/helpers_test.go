package triage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sahaaya/internal/adapters/driven/knowledge"
	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// defaultKB loads the embedded knowledge base.
func defaultKB(t *testing.T) *domain.KnowledgeBase {
	t.Helper()
	kb, err := knowledge.Default()
	require.NoError(t, err)
	return kb
}

// smallKB is a hand-built table with one condition per severity.
func smallKB(t *testing.T) *domain.KnowledgeBase {
	t.Helper()
	conditions := []domain.Condition{
		{
			ID:       "rash",
			Severity: domain.SeverityLow,
			Urgency:  domain.UrgencyRoutine,
			Keywords: map[domain.Language][]string{
				domain.LanguageEnglish: {"rash", "itch"},
				domain.LanguageHindi:   {"खुजली"},
			},
			Advice: map[domain.Language]string{
				domain.LanguageEnglish: "Keep the skin clean.",
				domain.LanguageHindi:   "त्वचा साफ रखें।",
			},
		},
		{
			ID:       "fever",
			Severity: domain.SeverityMedium,
			Urgency:  domain.UrgencyMonitor,
			Keywords: map[domain.Language][]string{
				domain.LanguageEnglish: {"fever", "chills"},
			},
			Advice:   map[domain.Language]string{domain.LanguageEnglish: "Rest and drink fluids."},
			RedFlags: []string{"stiff neck"},
		},
		{
			ID:       "jaundice",
			Severity: domain.SeverityHigh,
			Urgency:  domain.UrgencyMonitor,
			Keywords: map[domain.Language][]string{
				domain.LanguageEnglish: {"jaundice", "yellow eyes"},
			},
			Advice: map[domain.Language]string{domain.LanguageEnglish: "See a doctor for liver tests."},
		},
		{
			ID:        "emergency",
			Severity:  domain.SeverityEmergency,
			Urgency:   domain.UrgencyImmediate,
			Emergency: true,
			Keywords: map[domain.Language][]string{
				domain.LanguageEnglish: {"chest pain", "unconscious"},
			},
			Advice: map[domain.Language]string{domain.LanguageEnglish: "Call 108."},
		},
	}
	messages := domain.Messages{
		domain.MessageEmergency: {
			domain.LanguageEnglish: "EMERGENCY: call 108.",
			domain.LanguageHindi:   "आपातकाल: 108 पर कॉल करें।",
		},
		domain.MessageNoSymptoms:       {domain.LanguageEnglish: "Please describe more."},
		domain.MessageDisclaimer:       {domain.LanguageEnglish: "General guidance only.", domain.LanguageHindi: "केवल सामान्य मार्गदर्शन।"},
		domain.MessageResultDisclaimer: {domain.LanguageEnglish: "Not a diagnosis."},
		domain.MessageBandHigh:         {domain.LanguageEnglish: "See a doctor now."},
		domain.MessageBandMedium:       {domain.LanguageEnglish: "Monitor closely."},
		domain.MessageBandLow:          {domain.LanguageEnglish: "Mild symptoms."},
	}
	types := []domain.EmergencyType{
		{Type: domain.EmergencyCardiac, Keywords: map[domain.Language][]string{domain.LanguageEnglish: {"chest pain"}}},
		{Type: domain.EmergencyUnconscious, Keywords: map[domain.Language][]string{domain.LanguageEnglish: {"unconscious"}}},
	}

	kb, err := domain.NewKnowledgeBase("small", conditions, messages, types)
	require.NoError(t, err)
	return kb
}
