package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil guidance service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingGuidanceService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Guidance: &mockGuidanceService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
		assert.NotNil(t, server.Handler())
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil guidance service returns error", func(t *testing.T) {
		ports := &Ports{}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingGuidanceService)
	})

	t.Run("guidance only is valid", func(t *testing.T) {
		ports := &Ports{
			Guidance: &mockGuidanceService{},
		}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Guidance:  &mockGuidanceService{},
			Emergency: &mockEmergencyService{},
			Knowledge: &mockKnowledgeService{},
		}
		assert.NoError(t, ports.Validate())
	})
}
