package domain

// Condition is a named symptom cluster from the knowledge base.
// Conditions are immutable once the knowledge base is built.
type Condition struct {
	// ID is the stable identifier, e.g. "fever".
	ID string

	// Category groups conditions for display (respiratory, digestive, ...).
	Category string

	// Severity is the condition's own seriousness tier.
	Severity Severity

	// Urgency is the condition's own response timeframe.
	Urgency Urgency

	// Emergency marks the condition whose keywords force the emergency override.
	Emergency bool

	// Keywords holds ordered, lower-cased match strings per language.
	Keywords map[Language][]string

	// Advice holds the advice text per language. English is required.
	Advice map[Language]string

	// RedFlags are lower-cased phrases that escalate to emergency when
	// this condition is matched.
	RedFlags []string
}

// AdviceFor returns the advice in lang, falling back to English.
func (c Condition) AdviceFor(lang Language) string {
	if text := c.Advice[lang]; text != "" {
		return text
	}
	return c.Advice[DefaultLanguage]
}

// AllKeywords returns every keyword across languages, in language order
// and then declaration order.
func (c Condition) AllKeywords() []string {
	var out []string
	for _, lang := range AllLanguages() {
		out = append(out, c.Keywords[lang]...)
	}
	return out
}

// KeywordCount returns the total number of keywords across languages.
func (c Condition) KeywordCount() int {
	n := 0
	for _, kws := range c.Keywords {
		n += len(kws)
	}
	return n
}
