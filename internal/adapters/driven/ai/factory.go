// Package ai provides factory functions for creating advice enhancers.
package ai

import (
	"context"
	"fmt"
	"time"

	anthropicllm "github.com/custodia-labs/sahaaya/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/custodia-labs/sahaaya/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/sahaaya/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the result of enhancer initialisation.
type InitResult struct {
	Enhancer driven.AdviceEnhancer
	Warnings []string // Non-fatal issues that caused fallback.
	FellBack bool     // True if guidance fell back to offline.
}

// Close releases resources held by the enhancer.
func (r *InitResult) Close() {
	if r.Enhancer != nil {
		r.Enhancer.Close()
	}
}

// promptSetter is implemented by enhancers that render stored prompts.
type promptSetter interface {
	SetPromptStore(store driven.PromptStore)
}

// Initialise creates the enhancer the guidance mode calls for.
//
// Offline never creates one. Auto drops the enhancer when the ping fails.
// Online keeps it, since every call falls back on failure anyway.
func Initialise(mode domain.GuidanceMode, settings *domain.EnhancerSettings, prompts driven.PromptStore) *InitResult {
	result := &InitResult{}
	if mode == domain.GuidanceModeOffline || settings == nil || !settings.IsConfigured() {
		return result
	}

	if mode == domain.GuidanceModeOnline {
		enhancer, err := CreateEnhancer(settings, prompts)
		if err != nil {
			result.Warnings = append(result.Warnings, err.Error())
			result.FellBack = true
			return result
		}
		if err := ping(enhancer); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s enhancer unreachable: %v", settings.Provider, err))
		}
		result.Enhancer = enhancer
		return result
	}

	enhancer, err := CreateAndValidateEnhancer(settings, prompts)
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
		result.FellBack = true
		return result
	}
	result.Enhancer = enhancer
	return result
}

// CreateAndValidateEnhancer creates an enhancer and validates connectivity.
// Returns nil without error when the enhancer is not configured.
func CreateAndValidateEnhancer(settings *domain.EnhancerSettings, prompts driven.PromptStore) (driven.AdviceEnhancer, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	enhancer, err := CreateEnhancer(settings, prompts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'sahaaya settings enhancer' to fix",
			domain.ErrEnhancerUnavailable, err)
	}

	if err := ping(enhancer); err != nil {
		enhancer.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'sahaaya settings enhancer' to fix",
			domain.ErrEnhancerUnavailable, err)
	}

	return enhancer, nil
}

// ValidateEnhancerConfig creates an enhancer from settings and pings it.
// Used by the settings command to check credentials before saving.
func ValidateEnhancerConfig(settings *domain.EnhancerSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	enhancer, err := CreateEnhancer(settings, nil)
	if err != nil {
		return err
	}
	defer enhancer.Close()

	return ping(enhancer)
}

// CreateEnhancer creates the enhancer for the configured provider, wrapped
// in a rate limiter when RatePerSecond is set.
// Returns nil if the provider is not configured.
func CreateEnhancer(settings *domain.EnhancerSettings, prompts driven.PromptStore) (driven.AdviceEnhancer, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	var (
		enhancer driven.AdviceEnhancer
		err      error
	)
	switch settings.Provider {
	case domain.AIProviderOllama:
		enhancer = createOllama(settings)
	case domain.AIProviderOpenAI:
		enhancer, err = createOpenAI(settings)
	case domain.AIProviderAnthropic:
		enhancer, err = createAnthropic(settings)
	default:
		return nil, fmt.Errorf("unsupported enhancer provider: %s", settings.Provider)
	}
	if err != nil {
		return nil, err
	}

	if setter, ok := enhancer.(promptSetter); ok && prompts != nil {
		setter.SetPromptStore(prompts)
	}

	if settings.RatePerSecond > 0 {
		enhancer = NewRateLimited(enhancer, RateLimitConfig{
			RequestsPerSecond: settings.RatePerSecond,
			BurstSize:         1,
		})
	}
	return enhancer, nil
}

func ping(enhancer driven.AdviceEnhancer) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return enhancer.Ping(ctx)
}

func createOllama(settings *domain.EnhancerSettings) driven.AdviceEnhancer {
	return ollamallm.NewEnhancer(ollamallm.Config{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

func createOpenAI(settings *domain.EnhancerSettings) (driven.AdviceEnhancer, error) {
	return openaillm.NewEnhancer(openaillm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

func createAnthropic(settings *domain.EnhancerSettings) (driven.AdviceEnhancer, error) {
	return anthropicllm.NewEnhancer(anthropicllm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}
