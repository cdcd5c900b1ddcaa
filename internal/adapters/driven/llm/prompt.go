// Package llm holds what the advice enhancer adapters share: prompt
// rendering from a PromptStore with built-in fallbacks.
//
// Provider adapters live in subpackages (ollama, openai, anthropic).
package llm

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

// Fallback templates used when no PromptStore is configured or a
// stored template cannot be loaded.
const (
	DefaultSystemPrompt = `You are Sahaaya, a careful health guidance assistant.
Answer in %s. Give general self-care guidance only. Never diagnose and never name medicines or doses.
Keep to five short sentences or fewer. Do not add a disclaimer.`

	DefaultUserPrompt = `The user wrote:
%s

Conditions matched by the rule engine: %s

Rule-based guidance:
%s

Rewrite the guidance so it is clear, warm and specific to what the user wrote.`
)

// Prompts renders the system and user prompts for req.
// A nil store uses the default templates.
func Prompts(store driven.PromptStore, req driven.EnhanceRequest) (system, user string) {
	systemTmpl := load(store, driven.PromptEnhanceSystem, DefaultSystemPrompt)
	userTmpl := load(store, driven.PromptEnhanceUser, DefaultUserPrompt)

	symptoms := "none"
	if len(req.Symptoms) > 0 {
		symptoms = strings.Join(req.Symptoms, ", ")
	}

	system = fmt.Sprintf(systemTmpl, req.Language.Description())
	user = fmt.Sprintf(userTmpl, req.Text, symptoms, req.RuleBased)
	return system, user
}

func load(store driven.PromptStore, name, fallback string) string {
	if store == nil {
		return fallback
	}
	prompt, err := store.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
