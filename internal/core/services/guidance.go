package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driving"
	"github.com/custodia-labs/sahaaya/internal/logger"
	"github.com/custodia-labs/sahaaya/internal/textprep"
	"github.com/custodia-labs/sahaaya/internal/triage"
)

// Ensure GuidanceService implements the interface.
var _ driving.GuidanceService = (*GuidanceService)(nil)

// minEnhancedLength is the shortest enhancer output accepted as guidance.
const minEnhancedLength = 20

// Warnings attached to results when an auxiliary step degrades.
const (
	warnCacheUnavailable    = "response cache unavailable"
	warnEnhancerUnavailable = "advice enhancer unavailable"
	warnResourcesFallback   = "resource lookup unavailable, showing national hotlines"
)

// GuidanceConfig holds request defaults for the guidance service.
type GuidanceConfig struct {
	// Mode selects whether the enhancer is consulted.
	Mode domain.GuidanceMode

	// DefaultLanguage answers English-script text without a hint.
	DefaultLanguage domain.Language

	// Region filters emergency contacts.
	Region string

	// ContactLimit caps emergency contacts. Zero uses the resource default.
	ContactLimit int

	// CacheTTL is the lifetime of cached results. Zero means no expiry.
	CacheTTL time.Duration
}

// GuidanceService evaluates symptom descriptions.
// Every collaborator except the knowledge base is optional; a failing
// collaborator adds a warning to the result instead of failing the call.
type GuidanceService struct {
	knowledge driving.KnowledgeService
	config    GuidanceConfig
	pipeline  *textprep.Pipeline

	resources driven.ResourceStore
	enhancer  driven.AdviceEnhancer
	cache     driven.GuidanceCache
	sinks     []driven.ConsultationLog

	now   func() time.Time
	newID func() string
}

// NewGuidanceService creates a guidance service over the knowledge service.
// A nil pipeline uses the default text preparation pipeline.
func NewGuidanceService(
	knowledge driving.KnowledgeService,
	pipeline *textprep.Pipeline,
	config GuidanceConfig,
) *GuidanceService {
	if pipeline == nil {
		pipeline = textprep.DefaultPipeline()
	}
	if !config.Mode.IsValid() {
		config.Mode = domain.GuidanceModeOffline
	}
	if !config.DefaultLanguage.IsValid() {
		config.DefaultLanguage = domain.DefaultLanguage
	}
	return &GuidanceService{
		knowledge: knowledge,
		config:    config,
		pipeline:  pipeline,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// SetResourceStore sets the store emergency contacts are drawn from.
func (s *GuidanceService) SetResourceStore(store driven.ResourceStore) {
	s.resources = store
}

// SetCache sets the response cache.
func (s *GuidanceService) SetCache(cache driven.GuidanceCache) {
	s.cache = cache
}

// AddSink adds a consultation log. Every sink receives every consultation.
func (s *GuidanceService) AddSink(sink driven.ConsultationLog) {
	if sink != nil {
		s.sinks = append(s.sinks, sink)
	}
}

// SetEnhancer sets the advice enhancer. In auto mode the enhancer is
// pinged first and dropped if it does not answer.
func (s *GuidanceService) SetEnhancer(ctx context.Context, enhancer driven.AdviceEnhancer) {
	if enhancer == nil || s.config.Mode == domain.GuidanceModeOffline {
		s.enhancer = nil
		return
	}
	if s.config.Mode == domain.GuidanceModeAuto {
		if err := enhancer.Ping(ctx); err != nil {
			logger.Warn("advice enhancer %s unreachable, staying offline: %v", enhancer.ModelName(), err)
			s.enhancer = nil
			return
		}
	}
	logger.Debug("advice enhancer active: %s", enhancer.ModelName())
	s.enhancer = enhancer
}

// Online reports whether results may be rewritten by an enhancer.
func (s *GuidanceService) Online() bool {
	return s.enhancer != nil
}

// Evaluate returns guidance for text.
func (s *GuidanceService) Evaluate(ctx context.Context, text, languageHint string) (*domain.GuidanceResult, error) {
	logger.Section("Evaluate")

	kb := s.knowledge.Current()
	if kb == nil || kb.Len() == 0 {
		return nil, domain.NewConfigurationError("evaluate", errors.New("no knowledge base loaded"))
	}

	prepared := s.pipeline.Process(text)
	lang := triage.ResolveLanguage(text, languageHint, s.config.DefaultLanguage)
	logger.Debug("Language: %s (hint %q)", lang, languageHint)

	key := cacheKey(languageHint, prepared, kb.Fingerprint())
	result, cacheErr := s.fromCache(ctx, key)
	if result == nil {
		result = triage.Evaluate(kb, prepared, lang)
		logger.Debug("Symptoms: %v severity=%s urgency=%s", result.DetectedSymptoms, result.Severity, result.Urgency)

		if result.IsEmergency {
			s.attachContacts(ctx, result)
		} else {
			s.enhance(ctx, kb, text, result)
		}
		switch {
		case cacheErr != nil:
			result.AddWarning(warnCacheUnavailable)
		case result.Mode == domain.ModeFallback:
			// Retry the enhancer next time.
		default:
			s.toCache(ctx, key, result)
		}
	}

	result.EvaluatedAt = s.now()
	s.record(ctx, text, result)
	return result, nil
}

// fromCache returns a cached result, or nil on a miss. The error is
// non-nil only when the cache itself failed.
func (s *GuidanceService) fromCache(ctx context.Context, key string) (*domain.GuidanceResult, error) {
	if s.cache == nil {
		return nil, nil
	}
	result, err := s.cache.Get(ctx, key)
	switch {
	case err == nil && result != nil:
		logger.Debug("Cache hit: %s", key[:12])
		result.Cached = true
		result.Warnings = nil
		return result, nil
	case err == nil, errors.Is(err, domain.ErrCacheMiss):
		return nil, nil
	default:
		logger.Warn("cache lookup failed: %v", err)
		return nil, err
	}
}

func (s *GuidanceService) toCache(ctx context.Context, key string, result *domain.GuidanceResult) {
	if s.cache == nil {
		return
	}
	stored := *result
	stored.Warnings = nil
	if err := s.cache.Put(ctx, key, &stored, s.config.CacheTTL); err != nil {
		logger.Warn("cache store failed: %v", err)
		result.AddWarning(warnCacheUnavailable)
	}
}

// enhance rewrites non-emergency guidance when an enhancer is active.
func (s *GuidanceService) enhance(ctx context.Context, kb *domain.KnowledgeBase, text string, result *domain.GuidanceResult) {
	if s.config.Mode == domain.GuidanceModeOffline || len(result.DetectedSymptoms) == 0 {
		return
	}
	if s.enhancer == nil {
		if s.config.Mode == domain.GuidanceModeOnline {
			result.Mode = domain.ModeFallback
			result.AddWarning(warnEnhancerUnavailable)
		}
		return
	}

	enhanced, err := s.enhancer.Enhance(ctx, driven.EnhanceRequest{
		Text:      text,
		Symptoms:  result.DetectedSymptoms,
		Language:  result.Language,
		RuleBased: result.Guidance,
	})
	if err != nil {
		logger.Warn("advice enhancer failed, using rule-based guidance: %v", err)
		result.Mode = domain.ModeFallback
		result.AddWarning(warnEnhancerUnavailable)
		return
	}
	enhanced = strings.TrimSpace(enhanced)
	if utf8.RuneCountInString(enhanced) < minEnhancedLength {
		logger.Debug("Enhancer output too short (%d chars), using rule-based guidance", utf8.RuneCountInString(enhanced))
		result.Mode = domain.ModeFallback
		return
	}

	if disclaimer := kb.Message(domain.MessageDisclaimer, result.Language); disclaimer != "" {
		enhanced += "\n\n" + disclaimer
	}
	result.Guidance = enhanced
	result.Enhanced = true
	result.Mode = domain.ModeOnline
}

// attachContacts fills emergency contacts from the resource store,
// falling back to the national hotlines.
func (s *GuidanceService) attachContacts(ctx context.Context, result *domain.GuidanceResult) {
	result.EmergencyContacts = domain.HotlineContacts()
	if s.resources == nil {
		return
	}

	query := domain.ResourceQuery{
		Region:        s.config.Region,
		EmergencyOnly: true,
		Limit:         s.config.ContactLimit,
	}
	resources, err := s.resources.ListResources(ctx, query)
	if err != nil {
		logger.Warn("resource lookup failed: %v", err)
		result.AddWarning(warnResourcesFallback)
		return
	}
	ranked := triage.RankResources(resources, query)
	if len(ranked) == 0 {
		return
	}
	contacts := make([]domain.EmergencyContact, 0, len(ranked))
	for _, r := range ranked {
		contacts = append(contacts, r.AsContact())
	}
	result.EmergencyContacts = contacts
}

// record appends the consultation to every sink.
func (s *GuidanceService) record(ctx context.Context, text string, result *domain.GuidanceResult) {
	if len(s.sinks) == 0 {
		return
	}
	entry := domain.NewConsultation(s.newID(), text, result)
	for _, sink := range s.sinks {
		if err := sink.Append(ctx, entry); err != nil {
			logger.Warn("consultation log %s failed: %v", sink.Name(), err)
			result.AddWarning(fmt.Sprintf("consultation log %s unavailable", sink.Name()))
		}
	}
}

// cacheKey fingerprints a request. The knowledge base content digest is part
// of the key so a reload never serves stale guidance.
func cacheKey(hint, prepared, kbFingerprint string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(hint) + "|" + prepared + "|" + kbFingerprint))
	return hex.EncodeToString(sum[:])
}
