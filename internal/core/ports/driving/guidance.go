package driving

import (
	"context"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// GuidanceService evaluates free-text symptom descriptions.
type GuidanceService interface {
	// Evaluate returns guidance for text. languageHint may be empty.
	// The only error is a *domain.ConfigurationError when no knowledge
	// base is loaded; every other failure degrades into result warnings.
	Evaluate(ctx context.Context, text, languageHint string) (*domain.GuidanceResult, error)
}
