package driving

import (
	"context"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// KnowledgeService manages the active knowledge base snapshot.
type KnowledgeService interface {
	// Current returns the active snapshot. Never nil after construction.
	Current() *domain.KnowledgeBase

	// Reload loads a new snapshot. On failure the previous snapshot stays active.
	Reload(ctx context.Context) error

	// Validate loads the knowledge base without activating it.
	Validate(ctx context.Context) (*domain.KnowledgeBase, error)
}
