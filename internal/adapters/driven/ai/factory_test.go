package ai

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

func ollamaServer(t *testing.T, status int) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func TestInitResult_Close_Nil(t *testing.T) {
	result := &InitResult{}
	result.Close()
}

func TestCreateEnhancer(t *testing.T) {
	tests := []struct {
		name        string
		settings    *domain.EnhancerSettings
		wantNil     bool
		wantErr     bool
		errContains string
	}{
		{
			name:    "nil settings returns nil",
			wantNil: true,
		},
		{
			name:     "unconfigured settings returns nil",
			settings: &domain.EnhancerSettings{},
			wantNil:  true,
		},
		{
			name:     "openai without key returns nil",
			settings: &domain.EnhancerSettings{Provider: domain.AIProviderOpenAI},
			wantNil:  true,
		},
		{
			name:     "ollama creates enhancer",
			settings: &domain.EnhancerSettings{Provider: domain.AIProviderOllama, Model: "llama3.2"},
		},
		{
			name:     "openai creates enhancer",
			settings: &domain.EnhancerSettings{Provider: domain.AIProviderOpenAI, APIKey: "sk-test"},
		},
		{
			name:     "anthropic creates enhancer",
			settings: &domain.EnhancerSettings{Provider: domain.AIProviderAnthropic, APIKey: "key"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enhancer, err := CreateEnhancer(tt.settings, nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, enhancer)
				return
			}
			require.NotNil(t, enhancer)
			assert.NoError(t, enhancer.Close())
		})
	}
}

func TestCreateEnhancer_ModelPassedThrough(t *testing.T) {
	enhancer, err := CreateEnhancer(&domain.EnhancerSettings{
		Provider: domain.AIProviderOllama,
		Model:    "phi3",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "phi3", enhancer.ModelName())
}

func TestCreateEnhancer_WrapsWithRateLimit(t *testing.T) {
	enhancer, err := CreateEnhancer(&domain.EnhancerSettings{
		Provider:      domain.AIProviderOllama,
		RatePerSecond: 2,
	}, nil)

	require.NoError(t, err)
	_, ok := enhancer.(*RateLimited)
	assert.True(t, ok)
}

func TestValidateEnhancerConfig(t *testing.T) {
	assert.NoError(t, ValidateEnhancerConfig(nil))
	assert.NoError(t, ValidateEnhancerConfig(&domain.EnhancerSettings{}))

	ok := &domain.EnhancerSettings{Provider: domain.AIProviderOllama, BaseURL: ollamaServer(t, http.StatusOK)}
	assert.NoError(t, ValidateEnhancerConfig(ok))

	down := &domain.EnhancerSettings{Provider: domain.AIProviderOllama, BaseURL: ollamaServer(t, http.StatusBadGateway)}
	assert.Error(t, ValidateEnhancerConfig(down))
}

func TestCreateAndValidateEnhancer(t *testing.T) {
	enhancer, err := CreateAndValidateEnhancer(&domain.EnhancerSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  ollamaServer(t, http.StatusOK),
	}, nil)
	require.NoError(t, err)
	assert.NotNil(t, enhancer)

	_, err = CreateAndValidateEnhancer(&domain.EnhancerSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  ollamaServer(t, http.StatusInternalServerError),
	}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEnhancerUnavailable)
}

func TestInitialise(t *testing.T) {
	up := &domain.EnhancerSettings{Provider: domain.AIProviderOllama, BaseURL: ollamaServer(t, http.StatusOK)}
	down := &domain.EnhancerSettings{Provider: domain.AIProviderOllama, BaseURL: ollamaServer(t, http.StatusServiceUnavailable)}

	tests := []struct {
		name         string
		mode         domain.GuidanceMode
		settings     *domain.EnhancerSettings
		wantEnhancer bool
		wantFellBack bool
		wantWarnings int
	}{
		{name: "offline ignores settings", mode: domain.GuidanceModeOffline, settings: up},
		{name: "unconfigured", mode: domain.GuidanceModeAuto, settings: &domain.EnhancerSettings{}},
		{name: "auto reachable", mode: domain.GuidanceModeAuto, settings: up, wantEnhancer: true},
		{name: "auto unreachable", mode: domain.GuidanceModeAuto, settings: down, wantFellBack: true, wantWarnings: 1},
		{name: "online reachable", mode: domain.GuidanceModeOnline, settings: up, wantEnhancer: true},
		{name: "online unreachable keeps enhancer", mode: domain.GuidanceModeOnline, settings: down, wantEnhancer: true, wantWarnings: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Initialise(tt.mode, tt.settings, nil)
			defer result.Close()

			assert.Equal(t, tt.wantEnhancer, result.Enhancer != nil)
			assert.Equal(t, tt.wantFellBack, result.FellBack)
			assert.Len(t, result.Warnings, tt.wantWarnings)
		})
	}
}
