package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

func TestNewConfigValidator(t *testing.T) {
	require.NotNil(t, NewConfigValidator())
}

func TestConfigValidator_ValidateEnhancer_NilConfig(t *testing.T) {
	assert.NoError(t, NewConfigValidator().ValidateEnhancer(nil))
}

func TestConfigValidator_ValidateEnhancer_Unconfigured(t *testing.T) {
	err := NewConfigValidator().ValidateEnhancer(&domain.EnhancerSettings{
		Provider: domain.AIProviderAnthropic,
		Model:    "claude-3-5-haiku-latest",
	})

	assert.NoError(t, err)
}

func TestConfigValidator_ValidateEnhancer_Unreachable(t *testing.T) {
	err := NewConfigValidator().ValidateEnhancer(&domain.EnhancerSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  "http://127.0.0.1:1",
	})

	assert.Error(t, err)
}
