// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// ResourceList displays local health resources in a navigable list.
type ResourceList struct {
	resources []domain.LocalResource
	selected  int
	styles    *styles.Styles
	width     int
	height    int
}

// NewResourceList creates a new resource list component.
func NewResourceList(s *styles.Styles) *ResourceList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResourceList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the resource list.
func (r *ResourceList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResourceList) Update(msg tea.Msg) (*ResourceList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the resource list.
func (r *ResourceList) View() string {
	if len(r.resources) == 0 {
		return r.styles.Muted.Render("No resources found")
	}

	lines := make([]string, 0, len(r.resources)+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Nearby resources (%d)", len(r.resources))), "")

	// Each entry takes two lines
	visibleCount := (r.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.resources) {
		end = len(r.resources)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResource(i, &r.resources[i]))
	}

	return strings.Join(lines, "\n")
}

func (r *ResourceList) renderResource(index int, res *domain.LocalResource) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	name := res.Name
	maxNameLen := r.width - 20
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len([]rune(name)) > maxNameLen {
		name = string([]rune(name)[:maxNameLen-3]) + "..."
	}

	distance := fmt.Sprintf("%5.1f km", res.DistanceKm)

	var nameLine string
	if index == r.selected {
		nameLine = r.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxNameLen, name, distance))
	} else {
		nameLine = r.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxNameLen, name)) +
			r.styles.Muted.Render(distance)
	}

	detail := res.Contact
	if res.Availability != "" {
		detail += " | " + res.Availability
	}
	detailLine := r.styles.Muted.Render("    " + detail)
	if res.EmergencyAvailable {
		detailLine += " " + r.styles.Error.Render("[emergency]")
	}

	return nameLine + "\n" + detailLine
}

// SetResources updates the list contents and resets the selection.
func (r *ResourceList) SetResources(resources []domain.LocalResource) {
	r.resources = resources
	r.selected = 0
}

// Resources returns the listed resources.
func (r *ResourceList) Resources() []domain.LocalResource {
	return r.resources
}

// Selected returns the index of the selected resource.
func (r *ResourceList) Selected() int {
	return r.selected
}

// SelectedResource returns the currently selected resource, or nil if none.
func (r *ResourceList) SelectedResource() *domain.LocalResource {
	if len(r.resources) == 0 || r.selected < 0 || r.selected >= len(r.resources) {
		return nil
	}
	return &r.resources[r.selected]
}

// MoveUp moves selection up.
func (r *ResourceList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResourceList) MoveDown() {
	if r.selected < len(r.resources)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResourceList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of resources.
func (r *ResourceList) Count() int {
	return len(r.resources)
}
