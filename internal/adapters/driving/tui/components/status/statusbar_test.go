package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := NewBar(s, km)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.Count())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_Init(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Nil(t, bar.Init())
}

func TestStatusBar_Update(t *testing.T) {
	bar := NewBar(nil, nil)

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_Setters(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetState(StateEvaluating)
	bar.SetMessage("test message")
	bar.SetCount(42)
	bar.SetWidth(120)

	assert.Equal(t, StateEvaluating, bar.State())
	assert.Equal(t, "test message", bar.Message())
	assert.Equal(t, 42, bar.Count())
	assert.Equal(t, 120, bar.Width())
}

func TestStatusBar_Width(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Equal(t, 80, bar.Width()) // Default
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("error message")
	bar.SetCount(10)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.Count())
}

func TestStatusBar_View(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		message  string
		count    int
		contains []string
	}{
		{name: "ready", state: StateReady, contains: []string{"Ready", "evaluate"}},
		{name: "evaluating", state: StateEvaluating, contains: []string{"Evaluating"}},
		{name: "loading", state: StateLoading, contains: []string{"Loading"}},
		{name: "error", state: StateError, contains: []string{"Error"}},
		{name: "error with message", state: StateError, message: "store down", contains: []string{"Error", "store down"}},
		{name: "help", state: StateHelp, contains: []string{"Help"}},
		{name: "guidance", state: StateGuidance, message: "fever | medium", contains: []string{"fever | medium", "new question"}},
		{name: "resources", state: StateResources, count: 3, contains: []string{"3 resources", "emergency only"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(160)
			bar.SetState(tt.state)
			bar.SetMessage(tt.message)
			bar.SetCount(tt.count)

			view := bar.View()
			for _, want := range tt.contains {
				assert.Contains(t, view, want)
			}
		})
	}
}

func TestState_Constants(t *testing.T) {
	assert.Equal(t, State("ready"), StateReady)
	assert.Equal(t, State("evaluating"), StateEvaluating)
	assert.Equal(t, State("error"), StateError)
	assert.Equal(t, State("help"), StateHelp)
}
