package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driving"
	"github.com/custodia-labs/sahaaya/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// historyKeep is the number of results kept per task.
const historyKeep = 100

// defaultCacheMaxAge applies when the cache TTL is zero (no expiry).
const defaultCacheMaxAge = 24 * time.Hour

// taskNames are the display names of the built-in tasks.
var taskNames = map[string]string{
	domain.TaskIDCachePrune:   "Cache Prune",
	domain.TaskIDLogRetention: "Consultation Log Retention",
}

// ErrUnknownTask is returned by RunNow for a task ID that is not built in.
var ErrUnknownTask = errors.New("unknown task")

// Scheduler runs maintenance tasks on cron schedules.
// Cache and history are optional; their tasks become no-ops when nil.
type Scheduler struct {
	config   domain.SchedulerConfig
	store    driven.SchedulerStore
	cache    driven.GuidanceCache
	cacheTTL time.Duration
	history  driven.ConsultationHistory
	now      func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// NewScheduler creates a scheduler with configuration.
func NewScheduler(
	config domain.SchedulerConfig,
	store driven.SchedulerStore,
	cache driven.GuidanceCache,
	cacheTTL time.Duration,
	history driven.ConsultationHistory,
) *Scheduler {
	return &Scheduler{
		config:   config,
		store:    store,
		cache:    cache,
		cacheTTL: cacheTTL,
		history:  history,
		now:      time.Now,
	}
}

// Start registers enabled tasks with cron and blocks until ctx is
// cancelled or Stop is called. Running jobs finish before it returns.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		logger.Info("Scheduler disabled")
		return nil
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(cronLogger{})))
	for _, id := range []string{domain.TaskIDCachePrune, domain.TaskIDLogRetention} {
		taskCfg := s.config.GetTaskConfig(id)
		if !taskCfg.Enabled {
			continue
		}
		if err := s.ensureTask(ctx, id, taskCfg); err != nil {
			logger.Warn("scheduler: failed to initialise task %s: %v", id, err)
		}
		taskID := id
		if _, err := c.AddFunc(taskCfg.Schedule, func() {
			if _, err := s.RunNow(ctx, taskID); err != nil {
				logger.Warn("scheduler: task %s failed: %v", taskID, err)
			}
		}); err != nil {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			return fmt.Errorf("schedule %s %q: %w", taskID, taskCfg.Schedule, err)
		}
		logger.Debug("scheduler: %s scheduled %q", taskID, taskCfg.Schedule)
	}

	c.Start()
	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case <-stopCh:
	}
	<-c.Stop().Done()

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	return err
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.stopCh == nil {
		return nil
	}
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	return nil
}

// Running reports whether Start is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// RunNow executes a task immediately and records the result.
func (s *Scheduler) RunNow(ctx context.Context, taskID string) (*domain.TaskResult, error) {
	result := &domain.TaskResult{TaskID: taskID, StartedAt: s.now()}

	var err error
	switch taskID {
	case domain.TaskIDCachePrune:
		result.ItemsProcessed, err = s.pruneCache(ctx)
	case domain.TaskIDLogRetention:
		result.ItemsProcessed, err = s.pruneConsultations(ctx)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTask, taskID)
	}

	result.EndedAt = s.now()
	result.Success = err == nil
	if err != nil {
		result.Error = err.Error()
	}
	logger.Debug("scheduler: %s processed %d items (success=%t)", taskID, result.ItemsProcessed, result.Success)

	s.record(ctx, result)
	return result, err
}

// ensureTask creates or updates a task in the store.
func (s *Scheduler) ensureTask(ctx context.Context, id string, cfg domain.TaskConfig) error {
	if s.store == nil {
		return nil
	}
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return err
	}
	if task == nil {
		task = &domain.ScheduledTask{ID: id, Name: taskNames[id]}
	}
	task.Schedule = cfg.Schedule
	task.Enabled = cfg.Enabled
	return s.store.SaveTask(ctx, task)
}

// record updates task state and history. Failures are logged only.
func (s *Scheduler) record(ctx context.Context, result *domain.TaskResult) {
	if s.store == nil {
		return
	}

	task, err := s.store.GetTask(ctx, result.TaskID)
	if err != nil {
		logger.Warn("scheduler: failed to load task %s: %v", result.TaskID, err)
	}
	if task == nil {
		task = &domain.ScheduledTask{
			ID:       result.TaskID,
			Name:     taskNames[result.TaskID],
			Schedule: s.config.GetTaskConfig(result.TaskID).Schedule,
			Enabled:  s.config.GetTaskConfig(result.TaskID).Enabled,
		}
	}
	task.LastRun = result.StartedAt
	task.LastError = result.Error
	if result.Success {
		task.LastSuccess = result.EndedAt
	}

	if err := s.store.SaveTask(ctx, task); err != nil {
		logger.Warn("scheduler: failed to save task %s: %v", task.ID, err)
	}
	if err := s.store.RecordResult(ctx, result); err != nil {
		logger.Warn("scheduler: failed to record result for %s: %v", task.ID, err)
	}
	if err := s.store.PruneHistory(ctx, historyKeep); err != nil {
		logger.Warn("scheduler: failed to prune history: %v", err)
	}
}

func (s *Scheduler) pruneCache(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	maxAge := s.cacheTTL
	if maxAge <= 0 {
		maxAge = defaultCacheMaxAge
	}
	return s.cache.Prune(ctx, maxAge)
}

func (s *Scheduler) pruneConsultations(ctx context.Context) (int, error) {
	if s.history == nil || s.config.RetentionDays <= 0 {
		return 0, nil
	}
	cutoff := s.now().AddDate(0, 0, -s.config.RetentionDays)
	return s.history.PruneBefore(ctx, cutoff)
}

// cronLogger routes cron's internal messages to the debug log.
type cronLogger struct{}

func (cronLogger) Printf(format string, args ...any) {
	logger.Debug("cron: "+format, args...)
}
