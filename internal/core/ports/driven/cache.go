package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// GuidanceCache stores evaluated results keyed by request fingerprint.
// Implementations must serialise writes.
type GuidanceCache interface {
	// Get returns the cached result for key.
	// Returns domain.ErrCacheMiss when absent or expired.
	Get(ctx context.Context, key string) (*domain.GuidanceResult, error)

	// Put stores result under key for ttl. Zero ttl means no expiry.
	Put(ctx context.Context, key string, result *domain.GuidanceResult, ttl time.Duration) error

	// Prune removes entries older than maxAge. Returns the number removed.
	// Backends with native expiry may return 0.
	Prune(ctx context.Context, maxAge time.Duration) (int, error)
}
