// Command sahaaya gives multilingual health guidance from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/sahaaya/internal/adapters/driven/ai"
	"github.com/custodia-labs/sahaaya/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sahaaya/internal/adapters/driven/events/natsevents"
	"github.com/custodia-labs/sahaaya/internal/adapters/driven/knowledge"
	"github.com/custodia-labs/sahaaya/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sahaaya/internal/adapters/driven/storage/postgres"
	"github.com/custodia-labs/sahaaya/internal/adapters/driven/storage/rediscache"
	"github.com/custodia-labs/sahaaya/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sahaaya/internal/adapters/driving/cli"
	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
	"github.com/custodia-labs/sahaaya/internal/core/services"
	"github.com/custodia-labs/sahaaya/internal/logger"
	"github.com/custodia-labs/sahaaya/internal/textprep"
)

// version is set with -ldflags "-X main.version=...".
var version = ""

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// .env is optional
	_ = godotenv.Load()

	configDir, err := configDirectory()
	if err != nil {
		return err
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	prompts, err := file.NewPromptStore(filepath.Join(configDir, "prompts"))
	if err != nil {
		return fmt.Errorf("prompts: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	applyEnv(settings)

	source := knowledge.NewSource(settings.Knowledge.Path)
	knowledgeService, err := services.NewKnowledgeService(ctx, source)
	if err != nil {
		return fmt.Errorf("knowledge base: %w", err)
	}

	store, err := sqlite.NewStore(filepath.Join(configDir, "data"))
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer store.Close()

	cache, closeCache := openCache(ctx, settings.Cache, store)
	defer closeCache()

	pipeline, err := textprep.DefaultRegistry().BuildPipeline(settings.Text.Processors)
	if err != nil {
		return fmt.Errorf("text processors: %w", err)
	}

	guidance := services.NewGuidanceService(knowledgeService, pipeline, services.GuidanceConfig{
		Mode:            settings.General.Mode,
		DefaultLanguage: settings.General.DefaultLanguage,
		Region:          settings.General.Region,
		ContactLimit:    settings.ResourceLimit,
		CacheTTL:        settings.Cache.TTL,
	})
	guidance.SetResourceStore(store.ResourceStore())
	if cache != nil {
		guidance.SetCache(cache)
	}
	guidance.AddSink(store.ConsultationLog())

	closeSinks := addSinks(ctx, guidance, settings.Sinks)
	defer closeSinks()

	enhancer := ai.Initialise(settings.General.Mode, &settings.Enhancer, prompts)
	for _, w := range enhancer.Warnings {
		logger.Warn("%s", w)
	}
	if enhancer.Enhancer != nil && settings.Enhancer.RatePerSecond > 0 {
		enhancer.Enhancer = ai.NewRateLimited(enhancer.Enhancer, ai.RateLimitConfig{
			RequestsPerSecond: settings.Enhancer.RatePerSecond,
			BurstSize:         1,
		})
	}
	if enhancer.Enhancer != nil {
		guidance.SetEnhancer(ctx, enhancer.Enhancer)
	}
	defer enhancer.Close()

	scheduler := services.NewScheduler(
		settingsService.GetSchedulerConfig(),
		store.SchedulerStore(),
		cache,
		settings.Cache.TTL,
		store.ConsultationLog(),
	)

	var watch func(ctx context.Context) error
	if settings.Knowledge.Path != "" && settings.Knowledge.Watch {
		watcher := knowledge.NewWatcher(settings.Knowledge.Path)
		watch = func(ctx context.Context) error {
			return knowledgeService.Watch(ctx, watcher)
		}
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Guidance:        guidance,
		Emergency:       services.NewEmergencyService(store.ResourceStore(), store.ProtocolStore(), settings.ResourceLimit),
		History:         services.NewHistoryService(store.ConsultationLog()),
		Knowledge:       knowledgeService,
		Settings:        settingsService,
		Scheduler:       scheduler,
		SchedulerConfig: settingsService.GetSchedulerConfig(),
		WatchKnowledge:  watch,
		KnowledgeSource: source.Describe(),
		Region:          settings.General.Region,
	})

	return cli.Execute(ctx)
}

func configDirectory() (string, error) {
	if dir := os.Getenv("SAHAAYA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home directory: %w", err)
	}
	return filepath.Join(home, ".sahaaya"), nil
}

// applyEnv overlays secrets and endpoints from the environment onto the
// file settings. The environment wins when both are set.
func applyEnv(s *domain.AppSettings) {
	if v := os.Getenv("SAHAAYA_POSTGRES_DSN"); v != "" {
		s.Sinks.PostgresDSN = v
	}
	if v := os.Getenv("SAHAAYA_NATS_URL"); v != "" {
		s.Sinks.NATSURL = v
	}
	if v := os.Getenv("SAHAAYA_REDIS_ADDR"); v != "" {
		s.Cache.RedisAddr = v
	}
	if s.Enhancer.APIKey != "" {
		return
	}
	switch s.Enhancer.Provider {
	case domain.AIProviderOpenAI:
		s.Enhancer.APIKey = os.Getenv("OPENAI_API_KEY")
	case domain.AIProviderAnthropic:
		s.Enhancer.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
}

// openCache returns the configured guidance cache, or nil when caching is
// off. A Redis that cannot be reached falls back to the in-memory cache.
func openCache(ctx context.Context, cfg domain.CacheSettings, store *sqlite.Store) (driven.GuidanceCache, func()) {
	noop := func() {}
	switch cfg.Backend {
	case domain.CacheNone:
		return nil, noop
	case domain.CacheMemory:
		return memory.NewGuidanceCache(), noop
	case domain.CacheRedis:
		rc, err := rediscache.New(ctx, rediscache.Options{
			Addr:     cfg.RedisAddr,
			Password: os.Getenv("SAHAAYA_REDIS_PASSWORD"),
		})
		if err != nil {
			logger.Warn("redis cache unavailable, using memory: %v", err)
			return memory.NewGuidanceCache(), noop
		}
		return rc, func() { _ = rc.Close() }
	default:
		return store.GuidanceCache(), noop
	}
}

// addSinks attaches the optional Postgres and NATS consultation sinks.
// Unreachable sinks are skipped with a warning.
func addSinks(ctx context.Context, guidance *services.GuidanceService, cfg domain.SinkSettings) func() {
	var closers []func() error

	if cfg.PostgresDSN != "" {
		pg, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			logger.Warn("postgres sink disabled: %v", err)
		} else {
			guidance.AddSink(pg)
			closers = append(closers, pg.Close)
		}
	}

	if cfg.NATSURL != "" {
		pub, err := natsevents.Connect(natsevents.Config{URL: cfg.NATSURL, Subject: cfg.NATSSubject})
		if err != nil {
			logger.Warn("nats sink disabled: %v", err)
		} else {
			guidance.AddSink(pub)
			closers = append(closers, pub.Close)
		}
	}

	return func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Debug("closing sink: %v", err)
			}
		}
	}
}
