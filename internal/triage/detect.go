package triage

import (
	"strings"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// scriptRule maps a Unicode block to a language.
type scriptRule struct {
	lang      domain.Language
	low, high rune
}

// scriptRules are tested in priority order over the whole text.
var scriptRules = []scriptRule{
	{domain.LanguageHindi, 0x0900, 0x097F},   // Devanagari
	{domain.LanguageTelugu, 0x0C00, 0x0C7F},  // Telugu
	{domain.LanguageTamil, 0x0B80, 0x0BFF},   // Tamil
	{domain.LanguageBengali, 0x0980, 0x09FF}, // Bengali
}

// DetectLanguage classifies text by script. The first rule with any
// matching character wins; text without Indic characters is English.
func DetectLanguage(text string) domain.Language {
	for _, rule := range scriptRules {
		if strings.ContainsFunc(text, func(r rune) bool {
			return r >= rule.low && r <= rule.high
		}) {
			return rule.lang
		}
	}
	return domain.DefaultLanguage
}

// ResolveLanguage picks the response language for a query.
// A supported non-English hint is honoured. Otherwise a non-English
// script in the text wins, then an explicit "en" hint, then fallback.
func ResolveLanguage(text, hint string, fallback domain.Language) domain.Language {
	hinted, err := domain.ParseLanguage(hint)
	if err == nil && hinted != domain.LanguageEnglish {
		return hinted
	}
	if detected := DetectLanguage(text); detected != domain.LanguageEnglish {
		return detected
	}
	if err == nil {
		return hinted
	}
	if fallback.IsValid() {
		return fallback
	}
	return domain.DefaultLanguage
}
