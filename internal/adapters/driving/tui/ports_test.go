package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// MockGuidanceService implements driving.GuidanceService for testing.
type MockGuidanceService struct {
	EvaluateFunc func(ctx context.Context, text, hint string) (*domain.GuidanceResult, error)
	LastText     string
	LastHint     string
}

func (m *MockGuidanceService) Evaluate(ctx context.Context, text, hint string) (*domain.GuidanceResult, error) {
	m.LastText, m.LastHint = text, hint
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, text, hint)
	}
	return &domain.GuidanceResult{
		Guidance:         "Rest and drink fluids.",
		DetectedSymptoms: []string{"fever"},
		Severity:         domain.SeverityMedium,
		Urgency:          domain.UrgencyMonitor,
		Language:         domain.LanguageEnglish,
		Confidence:       domain.ConfidenceHigh,
		Mode:             domain.ModeOffline,
	}, nil
}

func TestNewPorts(t *testing.T) {
	guidance := &MockGuidanceService{}

	ports := NewPorts(guidance, nil)

	require.NotNil(t, ports)
	assert.Equal(t, guidance, ports.Guidance)
	assert.Nil(t, ports.Emergency)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{name: "nil ports", ports: nil, wantErr: ErrInvalidPorts},
		{name: "missing guidance", ports: &Ports{}, wantErr: ErrMissingGuidanceService},
		{name: "guidance only", ports: &Ports{Guidance: &MockGuidanceService{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
