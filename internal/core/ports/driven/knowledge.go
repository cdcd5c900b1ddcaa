package driven

import (
	"context"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// KnowledgeSource loads the knowledge base.
// Implementations may read an embedded document, a file, or a store.
type KnowledgeSource interface {
	// Load builds a validated knowledge base snapshot.
	// Returns an error wrapping domain.ErrKnowledgeInvalid for a bad document.
	Load(ctx context.Context) (*domain.KnowledgeBase, error)

	// Describe names the source for logs, e.g. "embedded" or a file path.
	Describe() string
}

// KnowledgeWatcher notifies when the knowledge source changes.
type KnowledgeWatcher interface {
	// Watch calls onChange after each change until ctx is cancelled.
	Watch(ctx context.Context, onChange func()) error
}
