package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSymptomInput(t *testing.T) {
	in := NewSymptomInput(nil)

	require.NotNil(t, in)
	assert.True(t, in.Focused())
	assert.Empty(t, in.Value())
	assert.Equal(t, 50, in.Width())
}

func TestSymptomInput_Init(t *testing.T) {
	in := NewSymptomInput(nil)

	assert.NotNil(t, in.Init())
}

func TestSymptomInput_Typing(t *testing.T) {
	in := NewSymptomInput(nil)

	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("fever")})

	assert.Equal(t, "fever", in.Value())
}

func TestSymptomInput_AcceptsNonLatinText(t *testing.T) {
	in := NewSymptomInput(nil)

	in.SetValue("मुझे बुखार है")

	assert.Equal(t, "मुझे बुखार है", in.Value())
}

func TestSymptomInput_FocusBlur(t *testing.T) {
	in := NewSymptomInput(nil)

	in.Blur()
	assert.False(t, in.Focused())

	in.Focus()
	assert.True(t, in.Focused())
}

func TestSymptomInput_SetWidth(t *testing.T) {
	in := NewSymptomInput(nil)

	in.SetWidth(100)
	assert.Equal(t, 100, in.Width())

	in.SetWidth(10)
	assert.Equal(t, 10, in.Width())
	assert.Equal(t, 20, in.textinput.Width)
}

func TestSymptomInput_Reset(t *testing.T) {
	in := NewSymptomInput(nil)
	in.SetValue("cough")

	in.Reset()

	assert.Empty(t, in.Value())
}

func TestSymptomInput_View(t *testing.T) {
	in := NewSymptomInput(nil)

	assert.Contains(t, in.View(), "Symptoms:")
}
