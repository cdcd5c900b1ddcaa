package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sahaaya/internal/adapters/driven/knowledge"
	"github.com/custodia-labs/sahaaya/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

// --- Mock implementations for guidance testing ---

type mockEnhancer struct {
	text    string
	err     error
	pingErr error
	calls   int
	last    driven.EnhanceRequest
}

func (m *mockEnhancer) Enhance(_ context.Context, req driven.EnhanceRequest) (string, error) {
	m.calls++
	m.last = req
	return m.text, m.err
}

func (m *mockEnhancer) ModelName() string           { return "mock" }
func (m *mockEnhancer) Ping(_ context.Context) error { return m.pingErr }
func (m *mockEnhancer) Close() error                 { return nil }

type failingSink struct{ name string }

func (f failingSink) Append(context.Context, domain.Consultation) error {
	return errors.New("disk full")
}

func (f failingSink) Name() string { return f.name }

type failingResourceStore struct {
	*memory.ResourceStore
}

func (failingResourceStore) ListResources(context.Context, domain.ResourceQuery) ([]domain.LocalResource, error) {
	return nil, domain.ErrStoreUnavailable
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (*domain.GuidanceResult, error) {
	return nil, domain.ErrStoreUnavailable
}

func (brokenCache) Put(context.Context, string, *domain.GuidanceResult, time.Duration) error {
	return domain.ErrStoreUnavailable
}

func (brokenCache) Prune(context.Context, time.Duration) (int, error) { return 0, nil }

func testKnowledgeBase(t *testing.T) *domain.KnowledgeBase {
	t.Helper()
	kb, err := knowledge.Default()
	require.NoError(t, err)
	return kb
}

func newTestGuidanceService(t *testing.T, cfg GuidanceConfig) *GuidanceService {
	t.Helper()
	s := NewGuidanceService(NewStaticKnowledgeService(testKnowledgeBase(t)), nil, cfg)
	s.now = fixedClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	return s
}

func TestGuidanceService_Evaluate_Fever(t *testing.T) {
	s := newTestGuidanceService(t, GuidanceConfig{})
	kb := testKnowledgeBase(t)

	result, err := s.Evaluate(context.Background(), "I have fever", "en")
	require.NoError(t, err)

	fever, ok := kb.Condition("fever")
	require.True(t, ok)

	assert.Equal(t, []string{"fever"}, result.DetectedSymptoms)
	assert.Equal(t, domain.SeverityMedium, result.Severity)
	assert.Equal(t, domain.UrgencyMonitor, result.Urgency)
	assert.Equal(t, domain.LanguageEnglish, result.Language)
	assert.Equal(t, domain.ConfidenceHigh, result.Confidence)
	assert.Contains(t, result.Guidance, fever.AdviceFor(domain.LanguageEnglish))
	assert.Contains(t, result.Guidance, kb.Message(domain.MessageBandMedium, domain.LanguageEnglish))
	assert.False(t, result.IsEmergency)
	assert.Empty(t, result.EmergencyContacts)
	assert.Equal(t, domain.ModeOffline, result.Mode)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), result.EvaluatedAt)
}

func TestGuidanceService_Evaluate_EmergencyUsesHotlinesWithoutStore(t *testing.T) {
	s := newTestGuidanceService(t, GuidanceConfig{})
	kb := testKnowledgeBase(t)

	result, err := s.Evaluate(context.Background(), "chest pain and difficulty breathing", "en")
	require.NoError(t, err)

	assert.True(t, result.IsEmergency)
	assert.Equal(t, domain.SeverityEmergency, result.Severity)
	assert.Equal(t, kb.Message(domain.MessageEmergency, domain.LanguageEnglish), result.Guidance)
	assert.Equal(t, domain.HotlineContacts(), result.EmergencyContacts)
}

func TestGuidanceService_Evaluate_HindiDetected(t *testing.T) {
	s := newTestGuidanceService(t, GuidanceConfig{})

	result, err := s.Evaluate(context.Background(), "मुझे सिरदर्द है", "")
	require.NoError(t, err)

	assert.Equal(t, domain.LanguageHindi, result.Language)
	assert.Equal(t, []string{"headache"}, result.DetectedSymptoms)
}

func TestGuidanceService_Evaluate_NoSymptoms(t *testing.T) {
	s := newTestGuidanceService(t, GuidanceConfig{})
	kb := testKnowledgeBase(t)

	for _, text := range []string{"", "xyzxyz nonsense"} {
		result, err := s.Evaluate(context.Background(), text, "")
		require.NoError(t, err)
		assert.Empty(t, result.DetectedSymptoms)
		assert.NotNil(t, result.DetectedSymptoms)
		assert.Equal(t, domain.ConfidenceLow, result.Confidence)
		assert.Contains(t, result.Guidance, kb.Message(domain.MessageNoSymptoms, domain.LanguageEnglish))
	}
}

func TestGuidanceService_Evaluate_DefaultLanguage(t *testing.T) {
	s := newTestGuidanceService(t, GuidanceConfig{DefaultLanguage: domain.LanguageTamil})

	result, err := s.Evaluate(context.Background(), "fever", "")
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageTamil, result.Language)

	result, err = s.Evaluate(context.Background(), "fever", "en")
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageEnglish, result.Language)
}

func TestGuidanceService_Evaluate_Idempotent(t *testing.T) {
	s := newTestGuidanceService(t, GuidanceConfig{})

	first, err := s.Evaluate(context.Background(), "cough and headache", "en")
	require.NoError(t, err)
	second, err := s.Evaluate(context.Background(), "cough and headache", "en")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGuidanceService_Evaluate_NoKnowledgeBase(t *testing.T) {
	s := NewGuidanceService(NewStaticKnowledgeService(nil), nil, GuidanceConfig{})

	_, err := s.Evaluate(context.Background(), "fever", "en")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	var cfgErr *domain.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestGuidanceService_Contacts(t *testing.T) {
	resources := memory.NewResourceStore(
		domain.LocalResource{Name: "District Hospital", Contact: "0870-111", EmergencyAvailable: true, DistanceKm: 8, Region: "rural", Availability: "24/7"},
		domain.LocalResource{Name: "Community Centre", Contact: "0870-222", EmergencyAvailable: true, DistanceKm: 3, Region: "rural", Availability: "24/7"},
		domain.LocalResource{Name: "Pharmacy", Contact: "0870-333", EmergencyAvailable: false, DistanceKm: 1, Region: "rural"},
		domain.LocalResource{Name: "City Hospital", Contact: "040-444", EmergencyAvailable: true, DistanceKm: 2, Region: "urban"},
	)

	t.Run("ranked emergency resources for region", func(t *testing.T) {
		s := newTestGuidanceService(t, GuidanceConfig{Region: "rural"})
		s.SetResourceStore(resources)

		result, err := s.Evaluate(context.Background(), "chest pain", "en")
		require.NoError(t, err)
		require.Len(t, result.EmergencyContacts, 2)
		assert.Equal(t, "Community Centre", result.EmergencyContacts[0].Name)
		assert.Equal(t, "District Hospital", result.EmergencyContacts[1].Name)
	})

	t.Run("contact limit", func(t *testing.T) {
		s := newTestGuidanceService(t, GuidanceConfig{Region: "rural", ContactLimit: 1})
		s.SetResourceStore(resources)

		result, err := s.Evaluate(context.Background(), "chest pain", "en")
		require.NoError(t, err)
		require.Len(t, result.EmergencyContacts, 1)
		assert.Equal(t, "Community Centre", result.EmergencyContacts[0].Name)
	})

	t.Run("no matches falls back to hotlines", func(t *testing.T) {
		s := newTestGuidanceService(t, GuidanceConfig{Region: "coastal"})
		s.SetResourceStore(memory.NewResourceStore(
			domain.LocalResource{Name: "City Hospital", EmergencyAvailable: true, Region: "urban"},
		))

		result, err := s.Evaluate(context.Background(), "chest pain", "en")
		require.NoError(t, err)
		assert.Equal(t, domain.HotlineContacts(), result.EmergencyContacts)
		assert.Empty(t, result.Warnings)
	})

	t.Run("store failure falls back with warning", func(t *testing.T) {
		s := newTestGuidanceService(t, GuidanceConfig{})
		s.SetResourceStore(failingResourceStore{memory.NewResourceStore()})

		result, err := s.Evaluate(context.Background(), "chest pain", "en")
		require.NoError(t, err)
		assert.Equal(t, domain.HotlineContacts(), result.EmergencyContacts)
		assert.Equal(t, []string{warnResourcesFallback}, result.Warnings)
	})

	t.Run("non-emergency has no contacts", func(t *testing.T) {
		s := newTestGuidanceService(t, GuidanceConfig{Region: "rural"})
		s.SetResourceStore(resources)

		result, err := s.Evaluate(context.Background(), "fever", "en")
		require.NoError(t, err)
		assert.Empty(t, result.EmergencyContacts)
	})
}

func TestGuidanceService_Enhancer(t *testing.T) {
	const enhancedText = "Rest well, drink fluids and check your temperature every few hours."

	t.Run("online rewrites guidance", func(t *testing.T) {
		kb := testKnowledgeBase(t)
		enhancer := &mockEnhancer{text: enhancedText}
		s := newTestGuidanceService(t, GuidanceConfig{Mode: domain.GuidanceModeOnline})
		s.SetEnhancer(context.Background(), enhancer)

		result, err := s.Evaluate(context.Background(), "I have fever", "en")
		require.NoError(t, err)

		assert.Equal(t, domain.ModeOnline, result.Mode)
		assert.True(t, result.Enhanced)
		assert.Equal(t, domain.ConfidenceHigh, result.Confidence)
		assert.Equal(t, enhancedText+"\n\n"+kb.Message(domain.MessageDisclaimer, domain.LanguageEnglish), result.Guidance)

		assert.Equal(t, "I have fever", enhancer.last.Text)
		assert.Equal(t, []string{"fever"}, enhancer.last.Symptoms)
		assert.Equal(t, domain.LanguageEnglish, enhancer.last.Language)
		assert.NotEmpty(t, enhancer.last.RuleBased)
	})

	t.Run("error falls back with warning", func(t *testing.T) {
		s := newTestGuidanceService(t, GuidanceConfig{Mode: domain.GuidanceModeOnline})
		s.SetEnhancer(context.Background(), &mockEnhancer{err: errors.New("timeout")})

		result, err := s.Evaluate(context.Background(), "I have fever", "en")
		require.NoError(t, err)
		assert.Equal(t, domain.ModeFallback, result.Mode)
		assert.False(t, result.Enhanced)
		assert.Equal(t, []string{warnEnhancerUnavailable}, result.Warnings)
	})

	t.Run("short output falls back", func(t *testing.T) {
		s := newTestGuidanceService(t, GuidanceConfig{Mode: domain.GuidanceModeOnline})
		s.SetEnhancer(context.Background(), &mockEnhancer{text: "  Rest.  "})

		result, err := s.Evaluate(context.Background(), "I have fever", "en")
		require.NoError(t, err)
		assert.Equal(t, domain.ModeFallback, result.Mode)
		assert.False(t, strings.HasPrefix(result.Guidance, "Rest."))
	})

	t.Run("emergency never enhanced", func(t *testing.T) {
		enhancer := &mockEnhancer{text: enhancedText}
		s := newTestGuidanceService(t, GuidanceConfig{Mode: domain.GuidanceModeOnline})
		s.SetEnhancer(context.Background(), enhancer)

		result, err := s.Evaluate(context.Background(), "chest pain", "en")
		require.NoError(t, err)
		assert.Zero(t, enhancer.calls)
		assert.Equal(t, domain.ModeOffline, result.Mode)
	})

	t.Run("no symptoms not enhanced", func(t *testing.T) {
		enhancer := &mockEnhancer{text: enhancedText}
		s := newTestGuidanceService(t, GuidanceConfig{Mode: domain.GuidanceModeOnline})
		s.SetEnhancer(context.Background(), enhancer)

		_, err := s.Evaluate(context.Background(), "xyzxyz", "en")
		require.NoError(t, err)
		assert.Zero(t, enhancer.calls)
	})

	t.Run("offline mode ignores enhancer", func(t *testing.T) {
		enhancer := &mockEnhancer{text: enhancedText}
		s := newTestGuidanceService(t, GuidanceConfig{Mode: domain.GuidanceModeOffline})
		s.SetEnhancer(context.Background(), enhancer)

		result, err := s.Evaluate(context.Background(), "fever", "en")
		require.NoError(t, err)
		assert.False(t, s.Online())
		assert.Zero(t, enhancer.calls)
		assert.Equal(t, domain.ModeOffline, result.Mode)
	})

	t.Run("online without enhancer is fallback", func(t *testing.T) {
		s := newTestGuidanceService(t, GuidanceConfig{Mode: domain.GuidanceModeOnline})

		result, err := s.Evaluate(context.Background(), "fever", "en")
		require.NoError(t, err)
		assert.Equal(t, domain.ModeFallback, result.Mode)
		assert.Equal(t, []string{warnEnhancerUnavailable}, result.Warnings)
	})

	t.Run("auto drops unreachable enhancer", func(t *testing.T) {
		enhancer := &mockEnhancer{text: enhancedText, pingErr: errors.New("connection refused")}
		s := newTestGuidanceService(t, GuidanceConfig{Mode: domain.GuidanceModeAuto})
		s.SetEnhancer(context.Background(), enhancer)

		result, err := s.Evaluate(context.Background(), "fever", "en")
		require.NoError(t, err)
		assert.False(t, s.Online())
		assert.Equal(t, domain.ModeOffline, result.Mode)
		assert.Empty(t, result.Warnings)
	})

	t.Run("auto keeps reachable enhancer", func(t *testing.T) {
		s := newTestGuidanceService(t, GuidanceConfig{Mode: domain.GuidanceModeAuto})
		s.SetEnhancer(context.Background(), &mockEnhancer{text: enhancedText})

		result, err := s.Evaluate(context.Background(), "fever", "en")
		require.NoError(t, err)
		assert.True(t, s.Online())
		assert.Equal(t, domain.ModeOnline, result.Mode)
	})
}

func TestGuidanceService_Cache(t *testing.T) {
	t.Run("second call is served from cache", func(t *testing.T) {
		cache := memory.NewGuidanceCache()
		enhancer := &mockEnhancer{text: "Drink plenty of fluids and rest for two days."}
		s := newTestGuidanceService(t, GuidanceConfig{Mode: domain.GuidanceModeOnline, CacheTTL: time.Hour})
		s.SetCache(cache)
		s.SetEnhancer(context.Background(), enhancer)

		first, err := s.Evaluate(context.Background(), "I have fever", "en")
		require.NoError(t, err)
		assert.False(t, first.Cached)
		assert.Equal(t, 1, cache.Len())

		second, err := s.Evaluate(context.Background(), "  I have FEVER ", "en")
		require.NoError(t, err)
		assert.True(t, second.Cached)
		assert.Equal(t, first.Guidance, second.Guidance)
		assert.Equal(t, 1, enhancer.calls)
	})

	t.Run("hint is part of the key", func(t *testing.T) {
		cache := memory.NewGuidanceCache()
		s := newTestGuidanceService(t, GuidanceConfig{})
		s.SetCache(cache)

		_, err := s.Evaluate(context.Background(), "fever", "en")
		require.NoError(t, err)
		result, err := s.Evaluate(context.Background(), "fever", "hi")
		require.NoError(t, err)
		assert.False(t, result.Cached)
		assert.Equal(t, domain.LanguageHindi, result.Language)
		assert.Equal(t, 2, cache.Len())
	})

	t.Run("fallback results are not cached", func(t *testing.T) {
		cache := memory.NewGuidanceCache()
		s := newTestGuidanceService(t, GuidanceConfig{Mode: domain.GuidanceModeOnline, CacheTTL: time.Hour})
		s.SetCache(cache)
		enhancer := &mockEnhancer{err: errors.New("timeout")}
		s.SetEnhancer(context.Background(), enhancer)

		first, err := s.Evaluate(context.Background(), "I have fever", "en")
		require.NoError(t, err)
		assert.Equal(t, domain.ModeFallback, first.Mode)
		assert.Zero(t, cache.Len())

		// The enhancer recovers and the next request uses it.
		enhancer.err = nil
		enhancer.text = "Drink plenty of fluids and rest for two days."
		second, err := s.Evaluate(context.Background(), "I have fever", "en")
		require.NoError(t, err)
		assert.False(t, second.Cached)
		assert.Equal(t, domain.ModeOnline, second.Mode)
		assert.Equal(t, 2, enhancer.calls)
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("edited knowledge base misses the cache", func(t *testing.T) {
		const oldAdvice = "Monitor your temperature."
		const newAdvice = "Sponge with lukewarm water and keep drinking fluids."

		path := filepath.Join(t.TempDir(), "kb.yaml")
		doc := knowledge.DefaultDocument()
		require.NoError(t, os.WriteFile(path, doc, 0o600))

		kbService, err := NewKnowledgeService(context.Background(), knowledge.NewSource(path))
		require.NoError(t, err)
		cache := memory.NewGuidanceCache()
		s := NewGuidanceService(kbService, nil, GuidanceConfig{CacheTTL: time.Hour})
		s.SetCache(cache)

		first, err := s.Evaluate(context.Background(), "I have fever", "en")
		require.NoError(t, err)
		require.Contains(t, first.Guidance, oldAdvice)
		before := kbService.Current()

		// Same version label, different advice.
		edited := bytes.Replace(doc, []byte(oldAdvice), []byte(newAdvice), 1)
		require.NoError(t, os.WriteFile(path, edited, 0o600))
		require.NoError(t, kbService.Reload(context.Background()))
		require.Equal(t, before.Version(), kbService.Current().Version())
		require.NotEqual(t, before.Fingerprint(), kbService.Current().Fingerprint())

		second, err := s.Evaluate(context.Background(), "I have fever", "en")
		require.NoError(t, err)
		assert.False(t, second.Cached)
		assert.Contains(t, second.Guidance, newAdvice)
		assert.NotContains(t, second.Guidance, oldAdvice)
	})

	t.Run("cache failure is a warning", func(t *testing.T) {
		s := newTestGuidanceService(t, GuidanceConfig{})
		s.SetCache(brokenCache{})

		result, err := s.Evaluate(context.Background(), "fever", "en")
		require.NoError(t, err)
		assert.Equal(t, []string{"fever"}, result.DetectedSymptoms)
		assert.Equal(t, []string{warnCacheUnavailable}, result.Warnings)
	})
}

func TestGuidanceService_Sinks(t *testing.T) {
	t.Run("every sink receives the consultation", func(t *testing.T) {
		first := memory.NewConsultationLog()
		second := memory.NewConsultationLog()
		s := newTestGuidanceService(t, GuidanceConfig{})
		s.newID = func() string { return "c-1" }
		s.AddSink(first)
		s.AddSink(second)
		s.AddSink(nil)

		result, err := s.Evaluate(context.Background(), "fever", "en")
		require.NoError(t, err)
		assert.Empty(t, result.Warnings)

		for _, log := range []*memory.ConsultationLog{first, second} {
			entries, err := log.Recent(context.Background(), 10)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "c-1", entries[0].ID)
			assert.Equal(t, "fever", entries[0].Query)
			assert.Equal(t, []string{"fever"}, entries[0].Symptoms)
			assert.Equal(t, result.EvaluatedAt, entries[0].CreatedAt)
		}
	})

	t.Run("each failing sink adds a warning", func(t *testing.T) {
		kept := memory.NewConsultationLog()
		s := newTestGuidanceService(t, GuidanceConfig{})
		s.AddSink(failingSink{name: "postgres"})
		s.AddSink(kept)
		s.AddSink(failingSink{name: "nats"})

		result, err := s.Evaluate(context.Background(), "fever", "en")
		require.NoError(t, err)
		assert.Equal(t, []string{
			"consultation log postgres unavailable",
			"consultation log nats unavailable",
		}, result.Warnings)
		assert.Equal(t, 1, kept.Len())
	})

	t.Run("ids are unique", func(t *testing.T) {
		log := memory.NewConsultationLog()
		s := newTestGuidanceService(t, GuidanceConfig{})
		s.AddSink(log)

		for range 3 {
			result, err := s.Evaluate(context.Background(), "fever", "en")
			require.NoError(t, err)
			assert.Empty(t, result.Warnings)
		}
		assert.Equal(t, 3, log.Len())
	})
}

func TestCacheKey(t *testing.T) {
	base := cacheKey("en", "fever", "v1")
	assert.Len(t, base, 64)
	assert.Equal(t, base, cacheKey("EN", "fever", "v1"))
	assert.NotEqual(t, base, cacheKey("hi", "fever", "v1"))
	assert.NotEqual(t, base, cacheKey("en", "cough", "v1"))
	assert.NotEqual(t, base, cacheKey("en", "fever", "v2"))
}
