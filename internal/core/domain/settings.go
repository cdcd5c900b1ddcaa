package domain

import "time"

// GuidanceMode selects whether an advice enhancer is consulted.
type GuidanceMode string

// Available guidance modes.
const (
	// GuidanceModeOffline uses only the rule-based engine.
	GuidanceModeOffline GuidanceMode = "offline"

	// GuidanceModeOnline always consults the configured enhancer.
	GuidanceModeOnline GuidanceMode = "online"

	// GuidanceModeAuto consults the enhancer only if it answered a ping at startup.
	GuidanceModeAuto GuidanceMode = "auto"
)

// IsValid returns true if the mode is recognised.
func (m GuidanceMode) IsValid() bool {
	switch m {
	case GuidanceModeOffline, GuidanceModeOnline, GuidanceModeAuto:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m GuidanceMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m GuidanceMode) Description() string {
	switch m {
	case GuidanceModeOffline:
		return "Offline (rule-based only)"
	case GuidanceModeOnline:
		return "Online (rule-based + advice enhancer)"
	case GuidanceModeAuto:
		return "Auto (enhancer when reachable)"
	default:
		return unknownDescription
	}
}

// AIProvider identifies an advice enhancer backend.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI API or a compatible endpoint.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// CacheBackend selects where evaluated results are cached.
type CacheBackend string

// Available cache backends.
const (
	CacheNone   CacheBackend = "none"
	CacheMemory CacheBackend = "memory"
	CacheSQLite CacheBackend = "sqlite"
	CacheRedis  CacheBackend = "redis"
)

// IsValid returns true if the backend is recognised.
func (b CacheBackend) IsValid() bool {
	switch b {
	case CacheNone, CacheMemory, CacheSQLite, CacheRedis:
		return true
	default:
		return false
	}
}

// GeneralSettings holds request defaults.
type GeneralSettings struct {
	// DefaultLanguage is used when no hint is given and detection yields English.
	DefaultLanguage Language

	// Region filters local resources and emergency contacts.
	Region string

	// Mode selects offline/online/auto guidance.
	Mode GuidanceMode
}

// KnowledgeSettings locates the knowledge base document.
type KnowledgeSettings struct {
	// Path is a YAML file overriding the built-in knowledge base. Empty uses the built-in.
	Path string

	// Watch reloads the knowledge base when Path changes.
	Watch bool
}

// EnhancerSettings holds advice enhancer configuration.
type EnhancerSettings struct {
	// Provider is the enhancer backend. Empty disables enhancement.
	Provider AIProvider

	// Model is the model name.
	Model string

	// BaseURL is the API endpoint override.
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// RatePerSecond caps enhancer calls. Zero means unlimited.
	RatePerSecond float64
}

// IsConfigured returns true if the enhancer provider is set up.
func (e EnhancerSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// CacheSettings holds response cache configuration.
type CacheSettings struct {
	Backend   CacheBackend
	TTL       time.Duration
	RedisAddr string
}

// SinkSettings holds optional consultation log sinks beyond SQLite.
type SinkSettings struct {
	// PostgresDSN enables the Postgres consultation log.
	PostgresDSN string

	// NATSURL enables consultation events on NATS.
	NATSURL string

	// NATSSubject is the subject consultation events are published on.
	NATSSubject string
}

// AppSettings holds all application settings.
type AppSettings struct {
	General   GeneralSettings
	Knowledge KnowledgeSettings
	Enhancer  EnhancerSettings
	Cache     CacheSettings
	Sinks     SinkSettings
	Scheduler SchedulerConfig
	Text      TextSettings

	// ResourceLimit caps ranked resource listings.
	ResourceLimit int
}

// TextSettings configures the text preparation pipeline.
type TextSettings struct {
	// Processors is the ordered list of processor names.
	Processors []string
}

// DefaultNATSSubject is where consultation events are published.
const DefaultNATSSubject = "sahaaya.consultations"

// DefaultAppSettings returns settings with sensible defaults.
// The enhancer is left unconfigured and guidance is offline until a mode
// is chosen.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		General: GeneralSettings{
			DefaultLanguage: DefaultLanguage,
			Region:          "",
			Mode:            GuidanceModeOffline,
		},
		Cache: CacheSettings{
			Backend: CacheSQLite,
			TTL:     24 * time.Hour,
		},
		Sinks: SinkSettings{
			NATSSubject: DefaultNATSSubject,
		},
		Scheduler:     DefaultSchedulerConfig(),
		Text:          TextSettings{Processors: DefaultTextProcessors()},
		ResourceLimit: DefaultResourceLimit,
	}
}

// DefaultTextProcessors returns the default text preparation pipeline.
func DefaultTextProcessors() []string {
	return []string{"punctuation", "lowercase", "whitespace"}
}

// AllGuidanceModes returns all available guidance modes.
func AllGuidanceModes() []GuidanceMode {
	return []GuidanceMode{GuidanceModeOffline, GuidanceModeOnline, GuidanceModeAuto}
}

// AllEnhancerProviders returns providers that can enhance advice.
func AllEnhancerProviders() []AIProvider {
	return []AIProvider{AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic}
}

// DefaultEnhancerModels returns default models for each provider.
func DefaultEnhancerModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-haiku-latest",
	}
}
