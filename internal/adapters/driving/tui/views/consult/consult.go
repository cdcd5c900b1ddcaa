// Package consult provides the symptom consultation view for the TUI.
package consult

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driving"
)

// View represents the consultation view with symptom input, guidance and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SymptomInput
	statusbar *status.Bar

	guidanceService  driving.GuidanceService
	emergencyService driving.EmergencyService
	languageHint     string
	ctx              context.Context

	result   *domain.GuidanceResult
	protocol *domain.EmergencyProtocol
	offset   int

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool
}

// NewView creates a new consult view. The emergency service may be nil.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	guidanceService driving.GuidanceService,
	emergencyService driving.EmergencyService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:           s,
		keymap:           km,
		input:            input.NewSymptomInput(s),
		statusbar:        status.NewBar(s, km),
		guidanceService:  guidanceService,
		emergencyService: emergencyService,
		ctx:              context.Background(),
		width:            80,
		height:           24,
		focusInput:       true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithLanguageHint sets the language hint passed to every evaluation.
func (v *View) WithLanguageHint(hint string) *View {
	v.languageHint = hint
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the consult view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.GuidanceCompleted:
		v.handleGuidanceCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			text := strings.TrimSpace(v.input.Value())
			if text == "" {
				return v, nil
			}
			v.statusbar.SetState(status.StateEvaluating)
			v.input.Blur()
			v.focusInput = false
			return v, v.evaluate(text)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch msg.String() {
	case "up", "k":
		if v.offset > 0 {
			v.offset--
		}
	case "down", "j":
		if v.offset < v.maxOffset() {
			v.offset++
		}
	case "n":
		v.Reset()
		return v, v.input.Focus()
	}
	return v, nil
}

// evaluate runs the guidance pipeline off the UI goroutine.
func (v *View) evaluate(text string) tea.Cmd {
	guidance := v.guidanceService
	emergency := v.emergencyService
	ctx := v.ctx
	hint := v.languageHint

	return func() tea.Msg {
		if guidance == nil {
			return messages.ErrorOccurred{Err: ErrNoGuidanceService}
		}

		result, err := guidance.Evaluate(ctx, text, hint)
		if err != nil {
			return messages.GuidanceCompleted{Err: err}
		}

		out := messages.GuidanceCompleted{Result: result}
		if result.IsEmergency && emergency != nil {
			protocol := emergency.ProtocolFor(ctx, result.EmergencyTypes)
			out.Protocol = &protocol
		}
		return out
	}
}

func (v *View) handleGuidanceCompleted(msg messages.GuidanceCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.result = nil
		v.protocol = nil
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.result = msg.Result
	v.protocol = msg.Protocol
	v.offset = 0
	v.focusInput = false
	v.input.Blur()

	v.statusbar.SetState(status.StateGuidance)
	v.statusbar.SetMessage(summaryLine(msg.Result))
}

func summaryLine(r *domain.GuidanceResult) string {
	if r == nil {
		return ""
	}
	symptoms := "no symptoms recognised"
	if len(r.DetectedSymptoms) > 0 {
		symptoms = strings.Join(r.DetectedSymptoms, ", ")
	}
	return fmt.Sprintf("%s | %s | %s", symptoms, r.Severity, r.Mode)
}

// View renders the consult view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("Describe your symptoms"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.result != nil {
		lines := v.guidanceLines()
		visible := v.visibleLines()
		end := v.offset + visible
		if end > len(lines) {
			end = len(lines)
		}
		start := v.offset
		if start > end {
			start = end
		}
		sections = append(sections, strings.Join(lines[start:end], "\n"))
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// guidanceLines renders the current result as scrollable lines.
func (v *View) guidanceLines() []string {
	r := v.result
	lines := make([]string, 0, 32)

	if r.IsEmergency {
		lines = append(lines, v.styles.Emergency.Render("EMERGENCY: seek help now"), "")
	}

	lines = append(lines,
		v.styles.Subtitle.Render("Severity: ")+v.styles.Severity(r.Severity).Render(string(r.Severity)),
		v.styles.Muted.Render(fmt.Sprintf("Urgency: %s | Confidence: %s | Language: %s", r.Urgency, r.Confidence, r.Language)),
		"",
	)

	lines = append(lines, wrap(r.Guidance, v.width-2)...)

	if len(r.RedFlags) > 0 {
		lines = append(lines, "", v.styles.Error.Render("Warning signs: "+strings.Join(r.RedFlags, ", ")))
	}

	if len(r.EmergencyContacts) > 0 {
		lines = append(lines, "", v.styles.Subtitle.Render("Contacts"))
		for _, c := range r.EmergencyContacts {
			line := fmt.Sprintf("  %s: %s", c.Name, c.Contact)
			if c.Availability != "" {
				line += " (" + c.Availability + ")"
			}
			lines = append(lines, v.styles.Normal.Render(line))
		}
	}

	if v.protocol != nil {
		p := v.protocol
		lines = append(lines, "", v.styles.Subtitle.Render(p.Title))
		lines = append(lines, v.styles.Warning.Render(p.ImmediateAction))
		for i, step := range p.Steps {
			lines = append(lines, v.styles.Normal.Render(fmt.Sprintf("  %d. %s", i+1, step)))
		}
		if len(p.DoNotDo) > 0 {
			lines = append(lines, v.styles.Muted.Render("Do not: "+strings.Join(p.DoNotDo, "; ")))
		}
	}

	if len(r.Disclaimers) > 0 {
		lines = append(lines, "")
		for _, d := range r.Disclaimers {
			lines = append(lines, v.styles.Muted.Render("Note: "+d))
		}
	}
	for _, w := range r.Warnings {
		lines = append(lines, v.styles.Warning.Render("Warning: "+w))
	}

	return lines
}

// wrap breaks text on spaces so no line exceeds width runes.
func wrap(text string, width int) []string {
	if width < 20 {
		width = 20
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len([]rune(line))+1+len([]rune(w)) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return lines
}

func (v *View) visibleLines() int {
	// header, input box, spacing and status bar
	n := v.height - 10
	if n < 3 {
		n = 3
	}
	return n
}

func (v *View) maxOffset() int {
	if v.result == nil {
		return 0
	}
	m := len(v.guidanceLines()) - v.visibleLines()
	if m < 0 {
		return 0
	}
	return m
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Text returns the current symptom text.
func (v *View) Text() string {
	return v.input.Value()
}

// SetText sets the symptom text.
func (v *View) SetText(text string) {
	v.input.SetValue(text)
}

// Result returns the last guidance result.
func (v *View) Result() *domain.GuidanceResult {
	return v.result
}

// Protocol returns the protocol shown with the last emergency result.
func (v *View) Protocol() *domain.EmergencyProtocol {
	return v.protocol
}

// Offset returns the scroll offset of the guidance panel.
func (v *View) Offset() int {
	return v.offset
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset returns the view to input mode.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.Reset()
	v.result = nil
	v.protocol = nil
	v.offset = 0
	v.err = nil
	v.statusbar.Clear()
}
