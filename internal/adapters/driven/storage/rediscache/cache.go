// Package rediscache provides a GuidanceCache shared through Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

var _ driven.GuidanceCache = (*Cache)(nil)

// DefaultPrefix namespaces cache keys.
const DefaultPrefix = "sahaaya:guidance:"

// indexKey is a sorted set of cache keys scored by creation time.
const indexKey = "index"

// Cache stores guidance results as JSON strings.
// Expiry uses Redis TTLs; Prune also removes entries by age.
type Cache struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, opts Options) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis %s: %w", domain.ErrStoreUnavailable, opts.Addr, err)
	}
	return NewWithClient(client, opts.Prefix), nil
}

// NewWithClient wraps an existing client. An empty prefix uses DefaultPrefix.
func NewWithClient(client *redis.Client, prefix string) *Cache {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Cache{client: client, prefix: prefix, now: time.Now}
}

// Get returns the cached result for key.
func (c *Cache) Get(ctx context.Context, key string) (*domain.GuidanceResult, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var result domain.GuidanceResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decoding cached result: %w", err)
	}
	return &result, nil
}

// Put stores result under key. Zero ttl never expires.
func (c *Cache) Put(ctx context.Context, key string, result *domain.GuidanceResult, ttl time.Duration) error {
	if result == nil {
		return domain.ErrInvalidInput
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, c.prefix+key, data, ttl)
		pipe.ZAdd(ctx, c.prefix+indexKey, redis.Z{
			Score:  float64(c.now().Unix()),
			Member: key,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis put: %w", err)
	}
	return nil
}

// Prune removes entries created more than maxAge ago. Entries that
// Redis already expired are dropped from the index without counting.
func (c *Cache) Prune(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := c.now().Add(-maxAge).Unix()
	index := c.prefix + indexKey

	keys, err := c.client.ZRangeByScore(ctx, index, &redis.ZRangeBy{
		Min: "-inf",
		Max: "(" + strconv.FormatInt(cutoff, 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("redis prune scan: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	full := make([]string, len(keys))
	members := make([]any, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
		members[i] = k
	}

	var deleted *redis.IntCmd
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, full...)
		pipe.ZRem(ctx, index, members...)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis prune: %w", err)
	}
	return int(deleted.Val()), nil
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
