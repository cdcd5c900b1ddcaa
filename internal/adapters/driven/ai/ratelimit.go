package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

// Ensure RateLimited implements the interface.
var _ driven.AdviceEnhancer = (*RateLimited)(nil)

// defaultBackoff applies after a provider answers 429.
const defaultBackoff = 60 * time.Second

// RateLimitConfig holds rate limiting configuration for an enhancer.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// RateLimited wraps an enhancer with a token bucket. After a 429 from the
// provider, calls fail fast with ErrEnhancerUnavailable until the backoff
// expires, so guidance falls back to rule-based text instead of waiting.
type RateLimited struct {
	next    driven.AdviceEnhancer
	limiter *rate.Limiter
	backoff time.Duration

	mu      sync.Mutex
	retryAt time.Time
}

// NewRateLimited wraps next with the given limits.
func NewRateLimited(next driven.AdviceEnhancer, cfg RateLimitConfig) *RateLimited {
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
		backoff: defaultBackoff,
	}
}

// Enhance waits for a token, then calls the wrapped enhancer.
func (r *RateLimited) Enhance(ctx context.Context, req driven.EnhanceRequest) (string, error) {
	if r.inBackoff() {
		return "", fmt.Errorf("%w: rate limited by provider", domain.ErrEnhancerUnavailable)
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrEnhancerUnavailable, err)
	}

	out, err := r.next.Enhance(ctx, req)
	if err != nil && isRateLimited(err) {
		r.recordRateLimit(r.backoff)
	}
	return out, err
}

// ModelName returns the wrapped enhancer's model.
func (r *RateLimited) ModelName() string {
	return r.next.ModelName()
}

// Ping bypasses the limiter.
func (r *RateLimited) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}

// Close closes the wrapped enhancer.
func (r *RateLimited) Close() error {
	return r.next.Close()
}

// Allow reports whether a call could proceed right now.
func (r *RateLimited) Allow() bool {
	if r.inBackoff() {
		return false
	}
	return r.limiter.Allow()
}

func (r *RateLimited) inBackoff() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Now().Before(r.retryAt)
}

func (r *RateLimited) recordRateLimit(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retryAt = time.Now().Add(d)
}

// isRateLimited recognises 429s from go-openai and from the plain HTTP
// adapters, which put the status in the error text.
func isRateLimited(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	return strings.Contains(err.Error(), "status 429")
}
