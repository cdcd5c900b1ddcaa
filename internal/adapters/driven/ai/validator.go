package ai

import (
	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.EnhancerConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator validates enhancer configurations.
type ConfigValidator struct{}

// NewConfigValidator creates a new enhancer config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateEnhancer validates an enhancer configuration by pinging the provider.
func (v *ConfigValidator) ValidateEnhancer(settings *domain.EnhancerSettings) error {
	return ValidateEnhancerConfig(settings)
}
