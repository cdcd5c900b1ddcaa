// Package resources provides the nearby healthcare resources view for the TUI.
package resources

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driving"
)

// ErrNoEmergencyService indicates that no emergency service was provided.
var ErrNoEmergencyService = errors.New("emergency service is required")

// View lists local healthcare resources ranked by distance.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.ResourceList
	statusbar *status.Bar

	service       driving.EmergencyService
	region        string
	emergencyOnly bool
	ctx           context.Context

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new resources view for the given region.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.EmergencyService, region string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		list:      list.NewResourceList(s),
		statusbar: status.NewBar(s, km),
		service:   service,
		region:    region,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the resource listing.
func (v *View) Init() tea.Cmd {
	return v.Load()
}

// Load returns a command that fetches resources for the current filter.
func (v *View) Load() tea.Cmd {
	service := v.service
	query := domain.ResourceQuery{Region: v.region, EmergencyOnly: v.emergencyOnly}
	ctx := v.ctx
	v.statusbar.SetState(status.StateLoading)

	return func() tea.Msg {
		if service == nil {
			return messages.ResourcesLoaded{Err: ErrNoEmergencyService}
		}
		resources, err := service.Resources(ctx, query)
		return messages.ResourcesLoaded{Resources: resources, Err: err}
	}
}

// Update handles messages for the resources view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ResourcesLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			v.list.SetResources(nil)
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.err = nil
		v.list.SetResources(msg.Resources)
		v.statusbar.SetState(status.StateResources)
		v.statusbar.SetCount(len(msg.Resources))
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case "e":
			v.emergencyOnly = !v.emergencyOnly
			return v, v.Load()
		}
		var cmd tea.Cmd
		v.list, cmd = v.list.Update(msg)
		return v, cmd
	}

	return v, nil
}

// View renders the resources view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	filter := "all resources"
	if v.emergencyOnly {
		filter = "emergency care only"
	}
	region := v.region
	if region == "" {
		region = "any region"
	}

	sections := []string{
		v.styles.Title.Render("Nearby resources"),
		v.styles.Muted.Render(region + " | " + filter),
		"",
	}
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}
	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.list.SetDimensions(width, height-8)
	v.statusbar.SetWidth(width)
}

// Resources returns the listed resources.
func (v *View) Resources() []domain.LocalResource {
	return v.list.Resources()
}

// EmergencyOnly reports whether the emergency filter is on.
func (v *View) EmergencyOnly() bool {
	return v.emergencyOnly
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
