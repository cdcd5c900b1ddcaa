package driving

import "github.com/custodia-labs/sahaaya/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetMode updates the guidance mode.
	SetMode(mode domain.GuidanceMode) error

	// SetDefaultLanguage updates the default guidance language.
	SetDefaultLanguage(lang domain.Language) error

	// SetEnhancer configures the advice enhancer provider.
	SetEnhancer(provider domain.AIProvider, model, apiKey string) error

	// DisableEnhancer clears the enhancer provider and API key.
	DisableEnhancer() error

	// ValidateEnhancerConfig pings the configured enhancer provider.
	ValidateEnhancerConfig() error

	// Validate checks that current settings are consistent.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
