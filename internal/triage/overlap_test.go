package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

func TestKeywordOverlaps_DefaultKnowledgeBaseIsClean(t *testing.T) {
	kb := defaultKB(t)

	assert.Empty(t, KeywordOverlaps(kb))
}

func TestKeywordOverlaps_Detects(t *testing.T) {
	condition := func(id string, keywords ...string) domain.Condition {
		return domain.Condition{
			ID:       id,
			Severity: domain.SeverityMedium,
			Urgency:  domain.UrgencyMonitor,
			Keywords: map[domain.Language][]string{domain.LanguageEnglish: keywords},
			Advice:   map[domain.Language]string{domain.LanguageEnglish: "advice"},
		}
	}
	kb, err := domain.NewKnowledgeBase("v", []domain.Condition{
		condition("fever", "fever"),
		condition("dengue", "dengue fever", "dengue"),
	}, domain.Messages{
		domain.MessageEmergency:  {domain.LanguageEnglish: "e"},
		domain.MessageNoSymptoms: {domain.LanguageEnglish: "n"},
		domain.MessageDisclaimer: {domain.LanguageEnglish: "d"},
		domain.MessageBandHigh:   {domain.LanguageEnglish: "h"},
		domain.MessageBandMedium: {domain.LanguageEnglish: "m"},
		domain.MessageBandLow:    {domain.LanguageEnglish: "l"},
	}, nil)
	require.NoError(t, err)

	overlaps := KeywordOverlaps(kb)

	require.Len(t, overlaps, 1)
	assert.Equal(t, Overlap{Condition: "dengue", Keyword: "dengue fever", Other: "fever", Contained: "fever"}, overlaps[0])
	assert.Equal(t, `dengue keyword "dengue fever" contains fever keyword "fever"`, overlaps[0].String())
}
