package driven

import (
	"context"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// AdviceEnhancer rewrites rule-based advice into more natural guidance.
// This is an optional service - when nil, guidance stays rule-based.
//
// Implementations may include:
//   - OpenAI (and compatible APIs)
//   - Anthropic
//   - Ollama (local models)
type AdviceEnhancer interface {
	// Enhance returns improved advice for the user's text and matched
	// condition IDs. An empty string means no enhancement is offered.
	Enhance(ctx context.Context, req EnhanceRequest) (string, error)

	// ModelName returns the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	// Used at startup to decide whether auto mode goes online.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// EnhanceRequest carries the context an enhancer may use.
type EnhanceRequest struct {
	// Text is the user's original description.
	Text string

	// Symptoms are the matched condition IDs.
	Symptoms []string

	// Language is the language the answer should be written in.
	Language domain.Language

	// RuleBased is the guidance the engine would return on its own.
	RuleBased string
}

// EnhancerConfigValidator checks enhancer settings by contacting the provider.
type EnhancerConfigValidator interface {
	// ValidateEnhancer returns nil when settings are unconfigured or the
	// provider answers a ping.
	ValidateEnhancer(settings *domain.EnhancerSettings) error
}
