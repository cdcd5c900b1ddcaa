// Package openai provides an advice enhancer backed by the OpenAI chat
// completion API or any compatible endpoint.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/custodia-labs/sahaaya/internal/adapters/driven/llm"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

// Ensure Enhancer implements the interface.
var _ driven.AdviceEnhancer = (*Enhancer)(nil)

// Default configuration values.
const (
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 60 * time.Second
)

// Config holds configuration for the OpenAI enhancer.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL overrides the API base URL, e.g. for compatible servers.
	BaseURL string

	// Model is the chat model to use (default: gpt-4o-mini).
	Model string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// Enhancer rewrites guidance with chat completions.
type Enhancer struct {
	client      *openai.Client
	model       string
	promptStore driven.PromptStore
}

// NewEnhancer creates a new OpenAI enhancer.
func NewEnhancer(cfg Config) (*Enhancer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Enhancer{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}, nil
}

// Enhance asks the model to rewrite the rule-based guidance.
// An empty choice list yields an empty string.
func (e *Enhancer) Enhance(ctx context.Context, req driven.EnhanceRequest) (string, error) {
	system, user := llm.Prompts(e.promptStore, req)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   300,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// ModelName returns the name of the model being used.
func (e *Enhancer) ModelName() string {
	return e.model
}

// SetPromptStore sets the store for customisable prompts.
func (e *Enhancer) SetPromptStore(store driven.PromptStore) {
	e.promptStore = store
}

// Ping lists models, which validates the key without running inference.
func (e *Enhancer) Ping(ctx context.Context) error {
	if _, err := e.client.ListModels(ctx); err != nil {
		return fmt.Errorf("openai: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (e *Enhancer) Close() error {
	return nil
}
