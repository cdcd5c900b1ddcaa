// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/styles"
)

// SymptomInput wraps a bubbles textinput for symptom descriptions.
type SymptomInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewSymptomInput creates a new symptom input component.
func NewSymptomInput(s *styles.Styles) *SymptomInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Describe your symptoms, e.g. fever and headache"
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 50

	return &SymptomInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the input.
func (s *SymptomInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *SymptomInput) Update(msg tea.Msg) (*SymptomInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the input.
func (s *SymptomInput) View() string {
	label := s.styles.Title.Render("Symptoms: ")
	input := s.styles.InputField.Render(s.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// Value returns the current input value.
func (s *SymptomInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value.
func (s *SymptomInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (s *SymptomInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SymptomInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SymptomInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the width of the input.
func (s *SymptomInput) SetWidth(width int) {
	s.width = width
	// Account for label and padding
	inputWidth := width - 14
	if inputWidth < 20 {
		inputWidth = 20
	}
	s.textinput.Width = inputWidth
}

// Width returns the current width.
func (s *SymptomInput) Width() int {
	return s.width
}

// Reset clears the input.
func (s *SymptomInput) Reset() {
	s.textinput.Reset()
}
