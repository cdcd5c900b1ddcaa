package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyDefaultLanguage   = "general.default_language"
	keyRegion            = "general.region"
	keyMode              = "general.mode"
	keyKnowledgePath     = "knowledge.path"
	keyKnowledgeWatch    = "knowledge.watch"
	keyResourceLimit     = "resources.limit"
	keyEnhancerProvider  = "enhancer.provider"
	keyEnhancerModel     = "enhancer.model"
	keyEnhancerBaseURL   = "enhancer.base_url"
	keyEnhancerAPIKey    = "enhancer.api_key"
	keyEnhancerRate      = "enhancer.rate_per_second"
	keyCacheBackend      = "cache.backend"
	keyCacheTTL          = "cache.ttl"
	keyCacheRedisAddr    = "cache.redis_addr"
	keyPostgresDSN       = "log.postgres_dsn"
	keyNATSURL           = "events.nats_url"
	keyNATSSubject       = "events.subject"
	keySchedulerEnabled  = "scheduler.enabled"
	keySchedulerRetain   = "scheduler.retention_days"
	keyTextProcessors    = "text.processors"
	providerNone         = "none"
	defaultOllamaBaseURL = "http://localhost:11434"
)

// schedulerTaskKeys maps task IDs to their TOML key under [scheduler].
var schedulerTaskKeys = map[string]string{
	domain.TaskIDCachePrune:   "scheduler.cache_prune",
	domain.TaskIDLogRetention: "scheduler.log_retention",
}

// setting is one key/value pair written by Save.
type setting struct {
	key   string
	value any
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	validator   driven.EnhancerConfigValidator
}

// NewSettingsService creates a new settings service.
// The validator is optional.
func NewSettingsService(configStore driven.ConfigStore, validator driven.EnhancerConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validator:   validator,
	}
}

// Get retrieves current application settings. Unset or unrecognised
// values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		General: domain.GeneralSettings{
			DefaultLanguage: s.getLanguage(defaults.General.DefaultLanguage),
			Region:          s.configStore.GetString(keyRegion),
			Mode:            s.getMode(defaults.General.Mode),
		},
		Knowledge: domain.KnowledgeSettings{
			Path:  s.configStore.GetString(keyKnowledgePath),
			Watch: s.getBool(keyKnowledgeWatch, defaults.Knowledge.Watch),
		},
		Enhancer: domain.EnhancerSettings{
			Provider:      s.getProvider(),
			Model:         s.configStore.GetString(keyEnhancerModel),
			BaseURL:       s.configStore.GetString(keyEnhancerBaseURL),
			APIKey:        s.configStore.GetString(keyEnhancerAPIKey),
			RatePerSecond: s.configStore.GetFloat(keyEnhancerRate),
		},
		Cache: domain.CacheSettings{
			Backend:   s.getCacheBackend(defaults.Cache.Backend),
			TTL:       s.getDuration(keyCacheTTL, defaults.Cache.TTL),
			RedisAddr: s.configStore.GetString(keyCacheRedisAddr),
		},
		Sinks: domain.SinkSettings{
			PostgresDSN: s.configStore.GetString(keyPostgresDSN),
			NATSURL:     s.configStore.GetString(keyNATSURL),
			NATSSubject: s.getString(keyNATSSubject, defaults.Sinks.NATSSubject),
		},
		Scheduler:     s.GetSchedulerConfig(),
		Text:          domain.TextSettings{Processors: defaults.Text.Processors},
		ResourceLimit: s.getInt(keyResourceLimit, defaults.ResourceLimit),
	}

	if processors := s.configStore.GetStringSlice(keyTextProcessors); len(processors) > 0 {
		settings.Text.Processors = processors
	}
	if settings.Enhancer.Provider.IsValid() && settings.Enhancer.Model == "" {
		settings.Enhancer.Model = domain.DefaultEnhancerModels()[settings.Enhancer.Provider]
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	provider := settings.Enhancer.Provider.String()
	if provider == "" {
		provider = providerNone
	}

	values := []setting{
		{keyDefaultLanguage, settings.General.DefaultLanguage.String()},
		{keyRegion, settings.General.Region},
		{keyMode, settings.General.Mode.String()},
		{keyKnowledgePath, settings.Knowledge.Path},
		{keyKnowledgeWatch, settings.Knowledge.Watch},
		{keyResourceLimit, settings.ResourceLimit},
		{keyEnhancerProvider, provider},
		{keyEnhancerModel, settings.Enhancer.Model},
		{keyEnhancerBaseURL, settings.Enhancer.BaseURL},
		{keyEnhancerRate, settings.Enhancer.RatePerSecond},
		{keyCacheBackend, string(settings.Cache.Backend)},
		{keyCacheTTL, settings.Cache.TTL.String()},
		{keyCacheRedisAddr, settings.Cache.RedisAddr},
		{keyNATSSubject, settings.Sinks.NATSSubject},
		{keySchedulerEnabled, settings.Scheduler.Enabled},
		{keySchedulerRetain, settings.Scheduler.RetentionDays},
		{keyTextProcessors, settings.Text.Processors},
	}
	// Secrets and connection strings are only written when set.
	for key, value := range map[string]string{
		keyEnhancerAPIKey: settings.Enhancer.APIKey,
		keyPostgresDSN:    settings.Sinks.PostgresDSN,
		keyNATSURL:        settings.Sinks.NATSURL,
	} {
		if value != "" {
			values = append(values, setting{key, value})
		}
	}
	for taskID, prefix := range schedulerTaskKeys {
		cfg := settings.Scheduler.GetTaskConfig(taskID)
		values = append(values,
			setting{prefix + ".enabled", cfg.Enabled},
			setting{prefix + ".schedule", cfg.Schedule},
		)
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	if err := s.configStore.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// SetMode updates the guidance mode.
func (s *SettingsService) SetMode(mode domain.GuidanceMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: guidance mode %q", domain.ErrInvalidInput, mode)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.General.Mode = mode
	return s.Save(settings)
}

// SetDefaultLanguage updates the default guidance language.
func (s *SettingsService) SetDefaultLanguage(lang domain.Language) error {
	if !lang.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, lang)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.General.DefaultLanguage = lang
	return s.Save(settings)
}

// SetEnhancer configures the advice enhancer provider. An empty model
// selects the provider default.
func (s *SettingsService) SetEnhancer(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: enhancer provider %q", domain.ErrInvalidInput, provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Enhancer.Provider = provider
	settings.Enhancer.Model = model
	if model == "" {
		settings.Enhancer.Model = domain.DefaultEnhancerModels()[provider]
	}

	if provider.IsLocal() {
		if settings.Enhancer.BaseURL == "" {
			settings.Enhancer.BaseURL = defaultOllamaBaseURL
		}
	} else {
		settings.Enhancer.BaseURL = ""
	}
	settings.Enhancer.APIKey = apiKey

	return s.Save(settings)
}

// DisableEnhancer clears the enhancer provider so guidance stays offline.
func (s *SettingsService) DisableEnhancer() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Enhancer = domain.EnhancerSettings{}
	if err := s.configStore.Set(keyEnhancerAPIKey, ""); err != nil {
		return fmt.Errorf("clear %s: %w", keyEnhancerAPIKey, err)
	}
	return s.Save(settings)
}

// Validate checks that current settings are consistent.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var errs []error
	if settings.General.Mode == domain.GuidanceModeOnline && !settings.Enhancer.IsConfigured() {
		errs = append(errs, fmt.Errorf("mode %q requires an enhancer provider", settings.General.Mode.Description()))
	}
	if settings.Cache.Backend == domain.CacheRedis && settings.Cache.RedisAddr == "" {
		errs = append(errs, errors.New("cache backend redis requires cache.redis_addr"))
	}
	if settings.ResourceLimit < 1 {
		errs = append(errs, fmt.Errorf("resources.limit must be positive, got %d", settings.ResourceLimit))
	}
	if settings.Scheduler.RetentionDays < 1 {
		errs = append(errs, fmt.Errorf("scheduler.retention_days must be positive, got %d", settings.Scheduler.RetentionDays))
	}
	return errors.Join(errs...)
}

// ValidateEnhancerConfig pings the configured enhancer provider.
func (s *SettingsService) ValidateEnhancerConfig() error {
	if s.validator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.validator.ValidateEnhancer(&settings.Enhancer)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// GetSchedulerConfig returns the scheduler configuration.
// Returns default configuration if nothing is configured.
func (s *SettingsService) GetSchedulerConfig() domain.SchedulerConfig {
	cfg := domain.DefaultSchedulerConfig()

	cfg.Enabled = s.getBool(keySchedulerEnabled, cfg.Enabled)
	cfg.RetentionDays = s.getInt(keySchedulerRetain, cfg.RetentionDays)

	for taskID, prefix := range schedulerTaskKeys {
		taskCfg := cfg.TaskConfigs[taskID]
		taskCfg.Enabled = s.getBool(prefix+".enabled", taskCfg.Enabled)
		taskCfg.Schedule = s.getString(prefix+".schedule", taskCfg.Schedule)
		cfg.TaskConfigs[taskID] = taskCfg
	}
	return cfg
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getLanguage(defaultVal domain.Language) domain.Language {
	lang, err := domain.ParseLanguage(s.configStore.GetString(keyDefaultLanguage))
	if err != nil {
		return defaultVal
	}
	return lang
}

func (s *SettingsService) getMode(defaultVal domain.GuidanceMode) domain.GuidanceMode {
	mode := domain.GuidanceMode(s.configStore.GetString(keyMode))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}

// getProvider returns the enhancer provider, or "" when unset or "none".
func (s *SettingsService) getProvider() domain.AIProvider {
	provider := domain.AIProvider(s.configStore.GetString(keyEnhancerProvider))
	if !provider.IsValid() {
		return ""
	}
	return provider
}

func (s *SettingsService) getCacheBackend(defaultVal domain.CacheBackend) domain.CacheBackend {
	backend := domain.CacheBackend(s.configStore.GetString(keyCacheBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
