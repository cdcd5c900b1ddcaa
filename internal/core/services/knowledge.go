package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driving"
	"github.com/custodia-labs/sahaaya/internal/logger"
	"github.com/custodia-labs/sahaaya/internal/triage"
)

// Ensure KnowledgeService implements the interface.
var _ driving.KnowledgeService = (*KnowledgeService)(nil)

// KnowledgeService holds the active knowledge base snapshot.
// Readers get the snapshot that was current when they asked; a reload
// swaps the pointer and never mutates a published snapshot.
type KnowledgeService struct {
	source  driven.KnowledgeSource
	current atomic.Pointer[domain.KnowledgeBase]

	mu        sync.Mutex
	listeners []func(*domain.KnowledgeBase)
}

// NewKnowledgeService loads the initial snapshot. A load failure is
// returned as a *domain.ConfigurationError.
func NewKnowledgeService(ctx context.Context, source driven.KnowledgeSource) (*KnowledgeService, error) {
	if source == nil {
		return nil, domain.NewConfigurationError("load knowledge base", fmt.Errorf("no knowledge source"))
	}
	s := &KnowledgeService{source: source}
	kb, err := s.load(ctx)
	if err != nil {
		return nil, domain.NewConfigurationError("load knowledge base", err)
	}
	s.current.Store(kb)
	return s, nil
}

// NewStaticKnowledgeService wraps an already built knowledge base.
func NewStaticKnowledgeService(kb *domain.KnowledgeBase) *KnowledgeService {
	s := &KnowledgeService{}
	s.current.Store(kb)
	return s
}

// Current returns the active snapshot.
func (s *KnowledgeService) Current() *domain.KnowledgeBase {
	return s.current.Load()
}

// Reload loads a new snapshot and activates it. On failure the previous
// snapshot stays active and the error is returned.
func (s *KnowledgeService) Reload(ctx context.Context) error {
	if s.source == nil {
		return nil
	}
	kb, err := s.load(ctx)
	if err != nil {
		logger.Warn("knowledge base reload rejected, keeping version %s: %v", s.Current().Version(), err)
		return err
	}
	s.current.Store(kb)
	logger.Info("knowledge base reloaded from %s (version %s, %d conditions)",
		s.source.Describe(), kb.Version(), kb.Len())

	s.mu.Lock()
	listeners := append([]func(*domain.KnowledgeBase){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(kb)
	}
	return nil
}

// Validate loads the knowledge base without activating it.
func (s *KnowledgeService) Validate(ctx context.Context) (*domain.KnowledgeBase, error) {
	if s.source == nil {
		return s.Current(), nil
	}
	return s.load(ctx)
}

// OnReload registers fn to run after each successful reload.
func (s *KnowledgeService) OnReload(fn func(*domain.KnowledgeBase)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Watch reloads the snapshot whenever watcher reports a change.
// It blocks until ctx is cancelled.
func (s *KnowledgeService) Watch(ctx context.Context, watcher driven.KnowledgeWatcher) error {
	return watcher.Watch(ctx, func() {
		_ = s.Reload(ctx)
	})
}

// Source describes where the knowledge base is loaded from.
func (s *KnowledgeService) Source() string {
	if s.source == nil {
		return "static"
	}
	return s.source.Describe()
}

func (s *KnowledgeService) load(ctx context.Context) (*domain.KnowledgeBase, error) {
	kb, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if kb == nil || kb.Len() == 0 {
		return nil, fmt.Errorf("%w: no conditions", domain.ErrKnowledgeInvalid)
	}
	for _, o := range triage.KeywordOverlaps(kb) {
		logger.Debug("keyword overlap: %v", o)
	}
	return kb, nil
}
