// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sahaaya/internal/adapters/driving/tui/styles"
)

// Item represents a single menu option.
type Item struct {
	Label string
	View  messages.ViewType
	Quit  bool // If true, selecting this item quits the app
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Describe symptoms", View: messages.ViewConsult},
			{Label: "Nearby resources", View: messages.ViewResources},
			{Label: "Emergency hotlines", View: messages.ViewHotlines},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		selected: 0,
		width:    80,
		height:   24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			return v, v.activate()

		case "q":
			return v, tea.Quit

		default:
			// Digits jump straight to an item.
			if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(v.items) {
				v.selected = n - 1
				return v, v.activate()
			}
		}
	}

	return v, nil
}

func (v *View) activate() tea.Cmd {
	item := v.items[v.selected]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	title := v.styles.Title.Render("Sahaaya")
	b.WriteString(title)
	b.WriteString("\n\n")

	subtitle := v.styles.Muted.Render("Health guidance, online or offline")
	b.WriteString(subtitle)
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		style := v.styles.Normal

		if i == v.selected {
			cursor = "> "
			style = v.styles.Title
		}

		fmt.Fprintf(&b, "%s%d %s\n", cursor, i+1, style.Render(item.Label))
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Emergency.Render("In an emergency call 108"))
	b.WriteString("\n\n")
	footer := v.styles.Help.Render("[j/k] Navigate  [1-5] Jump  [Enter] Select  [q] Quit")
	b.WriteString(footer)

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Items returns the menu items.
func (v *View) Items() []Item {
	return v.items
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
