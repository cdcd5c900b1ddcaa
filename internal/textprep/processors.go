package textprep

import (
	"strings"

	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

// Built-in processor names.
const (
	Lowercase   = "lowercase"
	Whitespace  = "whitespace"
	Punctuation = "punctuation"
)

// Verify interface compliance.
var (
	_ driven.TextProcessor = lowercaseProcessor{}
	_ driven.TextProcessor = whitespaceProcessor{}
	_ driven.TextProcessor = punctuationProcessor{}
)

type lowercaseProcessor struct{}

func (lowercaseProcessor) Name() string { return Lowercase }

func (lowercaseProcessor) Process(text string) string {
	return strings.ToLower(text)
}

// whitespaceProcessor collapses runs of Unicode whitespace to one space
// and trims the ends.
type whitespaceProcessor struct{}

func (whitespaceProcessor) Name() string { return Whitespace }

func (whitespaceProcessor) Process(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// quoteFolder maps typographic quotes to ASCII so "can’t breathe"
// matches the keyword "can't breathe".
var quoteFolder = strings.NewReplacer(
	"\u2018", "'",
	"\u2019", "'",
	"\u201B", "'",
	"\u2032", "'",
	"\u201C", `"`,
	"\u201D", `"`,
	"\u201F", `"`,
	"\u2033", `"`,
)

type punctuationProcessor struct{}

func (punctuationProcessor) Name() string { return Punctuation }

func (punctuationProcessor) Process(text string) string {
	return quoteFolder.Replace(text)
}
