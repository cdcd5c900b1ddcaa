package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/views/consult"
	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/views/resources"
	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles

	menuView      *menu.View
	consultView   *consult.View
	resourcesView *resources.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		menuView:      menu.NewView(s),
		consultView:   consult.NewView(s, nil, ports.Guidance, ports.Emergency).WithLanguageHint(ports.LanguageHint),
		resourcesView: resources.NewView(s, nil, ports.Emergency, ports.Region),
		currentView:   messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.consultView.WithContext(ctx)
	a.resourcesView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("sahaaya - Health guidance"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewConsult:
			a.consultView, cmd = a.consultView.Update(msg)
			a.err = a.consultView.Err()
		case messages.ViewResources:
			a.resourcesView, cmd = a.resourcesView.Update(msg)
		case messages.ViewHotlines, messages.ViewHelp:
			if msg.Type == tea.KeyEsc || msg.String() == "q" {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewConsult:
			a.consultView.Reset()
			return a, a.consultView.Init()
		case messages.ViewResources:
			return a, a.resourcesView.Init()
		case messages.ViewMenu, messages.ViewHotlines, messages.ViewHelp:
		}
		return a, nil

	case messages.GuidanceCompleted:
		a.consultView, cmd = a.consultView.Update(msg)
		a.err = a.consultView.Err()
		return a, cmd

	case messages.ResourcesLoaded:
		a.resourcesView, cmd = a.resourcesView.Update(msg)
		a.err = a.resourcesView.Err()
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewConsult {
			a.consultView, cmd = a.consultView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink etc.) to the active view
	//nolint:exhaustive // static views ignore other messages
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewConsult:
		a.consultView, cmd = a.consultView.Update(msg)
	case messages.ViewResources:
		a.resourcesView, cmd = a.resourcesView.Update(msg)
	}

	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewConsult:
		return a.consultView.View()
	case messages.ViewResources:
		return a.resourcesView.View()
	case messages.ViewHotlines:
		return a.viewHotlines()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
		return a.menuView.View()
	default:
		return a.menuView.View()
	}
}

func (a *App) hotlines() []domain.Hotline {
	if a.ports.Emergency != nil {
		return a.ports.Emergency.Hotlines()
	}
	return domain.Hotlines()
}

// viewHotlines renders the national emergency numbers.
func (a *App) viewHotlines() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Emergency hotlines"))
	b.WriteString("\n\n")
	for _, h := range a.hotlines() {
		b.WriteString(a.styles.Emergency.Render(fmt.Sprintf("%-5s", h.Number)))
		b.WriteString(" ")
		b.WriteString(a.styles.Subtitle.Render(h.Service))
		b.WriteString("\n")
		b.WriteString(a.styles.Muted.Render(fmt.Sprintf("      %s. Call for: %s", h.Description, h.WhenToCall)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Describe symptoms:
  (type)      Describe how you feel, in any supported language
  enter       Get guidance
  j/k, ↑/↓    Scroll guidance
  n           Ask a new question

Nearby resources:
  j/k, ↑/↓    Navigate resources
  e           Toggle emergency care only

Guidance is not a diagnosis. In an emergency call 108.

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Result returns the last guidance result shown in the consult view.
func (a *App) Result() *domain.GuidanceResult {
	return a.consultView.Result()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.consultView.SetDimensions(width, height)
	a.resourcesView.SetDimensions(width, height)
}
