package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

func TestNewEnhancer_Defaults(t *testing.T) {
	e := NewEnhancer(Config{})

	assert.Equal(t, DefaultModel, e.ModelName())
	assert.Equal(t, DefaultBaseURL, e.baseURL)
	assert.Equal(t, DefaultTimeout, e.client.Timeout)
	assert.NoError(t, e.Close())
}

func TestEnhancer_Enhance(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(chatResponse{
			Message: chatMessage{Role: "assistant", Content: "  Rest well and drink plenty of water.  "},
			Done:    true,
		})
	}))
	defer server.Close()

	e := NewEnhancer(Config{BaseURL: server.URL + "/", Model: "phi3"})
	out, err := e.Enhance(context.Background(), driven.EnhanceRequest{
		Text:      "i have fever",
		Symptoms:  []string{"fever"},
		Language:  domain.LanguageEnglish,
		RuleBased: "Rest.",
	})

	require.NoError(t, err)
	assert.Equal(t, "Rest well and drink plenty of water.", out)
	assert.Equal(t, "phi3", got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[1].Content, "i have fever")
}

func TestEnhancer_Enhance_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	e := NewEnhancer(Config{BaseURL: server.URL})
	_, err := e.Enhance(context.Background(), driven.EnhanceRequest{Language: domain.LanguageEnglish})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestEnhancer_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	assert.NoError(t, NewEnhancer(Config{BaseURL: server.URL}).Ping(context.Background()))
}

func TestEnhancer_Ping_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	err := NewEnhancer(Config{BaseURL: url}).Ping(context.Background())

	assert.Error(t, err)
}
