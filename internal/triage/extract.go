package triage

import (
	"strings"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// Extract returns the IDs of conditions with a keyword in text, in
// knowledge base order. text must already be lower-cased.
//
// Keywords of every language are checked regardless of the query
// language, so code-switched input still matches. Matching is by plain
// substring: "cold" also matches inside "scolded".
func Extract(kb *domain.KnowledgeBase, text string) []string {
	if text == "" {
		return nil
	}
	var matched []string
	for _, c := range kb.Conditions() {
		if containsAny(text, c.AllKeywords()) != "" {
			matched = append(matched, c.ID)
		}
	}
	return matched
}

// containsAny returns the first phrase found in text, or "".
func containsAny(text string, phrases []string) string {
	for _, p := range phrases {
		if p != "" && strings.Contains(text, p) {
			return p
		}
	}
	return ""
}

// findAll returns every phrase found in text, in order.
func findAll(text string, phrases []string) []string {
	var out []string
	for _, p := range phrases {
		if p != "" && strings.Contains(text, p) {
			out = append(out, p)
		}
	}
	return out
}
