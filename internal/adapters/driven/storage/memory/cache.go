package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

// Ensure GuidanceCache implements the interface.
var _ driven.GuidanceCache = (*GuidanceCache)(nil)

type cacheEntry struct {
	result    domain.GuidanceResult
	createdAt time.Time
	expiresAt time.Time
}

// GuidanceCache is an in-memory implementation of driven.GuidanceCache.
// It lives for the process only.
type GuidanceCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewGuidanceCache creates an empty in-memory guidance cache.
func NewGuidanceCache() *GuidanceCache {
	return &GuidanceCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns a copy of the cached result for key.
func (c *GuidanceCache) Get(_ context.Context, key string) (*domain.GuidanceResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || e.expired(c.now()) {
		return nil, domain.ErrCacheMiss
	}
	result := copyResult(e.result)
	return &result, nil
}

// Put stores result under key. Zero ttl never expires.
func (c *GuidanceCache) Put(_ context.Context, key string, result *domain.GuidanceResult, ttl time.Duration) error {
	if result == nil {
		return domain.ErrInvalidInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	e := cacheEntry{result: copyResult(*result), createdAt: now}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	c.entries[key] = e
	return nil
}

// Prune removes entries older than maxAge and entries already expired.
func (c *GuidanceCache) Prune(_ context.Context, maxAge time.Duration) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	cutoff := now.Add(-maxAge)
	removed := 0
	for key, e := range c.entries {
		if e.createdAt.Before(cutoff) || e.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored entries, expired or not.
func (c *GuidanceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (e cacheEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

func copyResult(r domain.GuidanceResult) domain.GuidanceResult {
	r.DetectedSymptoms = append([]string(nil), r.DetectedSymptoms...)
	r.Disclaimers = append([]string(nil), r.Disclaimers...)
	r.EmergencyContacts = append([]domain.EmergencyContact(nil), r.EmergencyContacts...)
	r.RedFlags = append([]string(nil), r.RedFlags...)
	r.EmergencyTypes = append([]string(nil), r.EmergencyTypes...)
	r.Warnings = append([]string(nil), r.Warnings...)
	return r
}
