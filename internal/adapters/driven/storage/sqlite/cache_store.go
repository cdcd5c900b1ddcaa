package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

// guidanceCache implements driven.GuidanceCache on the api_cache table.
type guidanceCache struct {
	store *Store
	now   func() time.Time
}

var _ driven.GuidanceCache = (*guidanceCache)(nil)

// Get returns the cached result, or ErrCacheMiss when absent or expired.
func (c *guidanceCache) Get(ctx context.Context, key string) (*domain.GuidanceResult, error) {
	var data string
	var expiresAt sql.NullString
	err := c.store.db.QueryRowContext(ctx,
		"SELECT result, expires_at FROM api_cache WHERE key = ?", key).Scan(&data, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	if exp := parseNullableTime(expiresAt); !exp.IsZero() && !c.now().Before(exp) {
		return nil, domain.ErrCacheMiss
	}

	var result domain.GuidanceResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("decoding cached result: %w", err)
	}
	return &result, nil
}

// Put stores result under key, replacing any previous entry.
func (c *guidanceCache) Put(ctx context.Context, key string, result *domain.GuidanceResult, ttl time.Duration) error {
	if result == nil {
		return domain.ErrInvalidInput
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	now := c.now()
	var expiresAt any
	if ttl > 0 {
		expiresAt = formatTime(now.Add(ttl))
	}

	_, err = c.store.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO api_cache (key, result, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, key, string(data), formatTime(now), expiresAt)
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// Prune removes entries created before now-maxAge and entries already expired.
func (c *guidanceCache) Prune(ctx context.Context, maxAge time.Duration) (int, error) {
	now := c.now()
	res, err := c.store.db.ExecContext(ctx, `
		DELETE FROM api_cache
		WHERE created_at < ? OR (expires_at IS NOT NULL AND expires_at <= ?)
	`, formatTime(now.Add(-maxAge)), formatTime(now))
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	return int(n), nil
}
