// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// GuidanceCompleted carries an evaluation back to the model.
// Protocol is set for emergencies when an emergency service is available.
type GuidanceCompleted struct {
	Result   *domain.GuidanceResult
	Protocol *domain.EmergencyProtocol
	Err      error
}

// ResourcesLoaded carries a ranked resource listing.
type ResourcesLoaded struct {
	Resources []domain.LocalResource
	Err       error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewConsult is the symptom input and guidance view.
	ViewConsult
	// ViewResources lists nearby healthcare resources.
	ViewResources
	// ViewHotlines shows the national emergency numbers.
	ViewHotlines
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewConsult:
		return "consult"
	case ViewResources:
		return "resources"
	case ViewHotlines:
		return "hotlines"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
