package domain

import "strings"

const unknownDescription = "Unknown"

// Language is a supported guidance language code.
type Language string

// Supported languages.
const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
	LanguageTelugu  Language = "te"
	LanguageTamil   Language = "ta"
	LanguageBengali Language = "bn"
)

// DefaultLanguage is used for empty input and as the fallback for
// missing translations.
const DefaultLanguage = LanguageEnglish

// IsValid returns true if the language is one of the five supported codes.
func (l Language) IsValid() bool {
	switch l {
	case LanguageEnglish, LanguageHindi, LanguageTelugu, LanguageTamil, LanguageBengali:
		return true
	default:
		return false
	}
}

// String returns the language code.
func (l Language) String() string {
	return string(l)
}

// Description returns the language name.
func (l Language) Description() string {
	switch l {
	case LanguageEnglish:
		return "English"
	case LanguageHindi:
		return "Hindi"
	case LanguageTelugu:
		return "Telugu"
	case LanguageTamil:
		return "Tamil"
	case LanguageBengali:
		return "Bengali"
	default:
		return unknownDescription
	}
}

// ParseLanguage normalises a user-supplied code.
// Returns ErrUnsupportedLanguage for anything outside the supported set.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if !l.IsValid() {
		return "", ErrUnsupportedLanguage
	}
	return l, nil
}

// AllLanguages returns the supported languages in keyword-table order.
func AllLanguages() []Language {
	return []Language{
		LanguageEnglish,
		LanguageHindi,
		LanguageTelugu,
		LanguageTamil,
		LanguageBengali,
	}
}
