package tui

import "errors"

// ErrMissingGuidanceService is returned when the guidance service is not provided.
var ErrMissingGuidanceService = errors.New("tui: guidance service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
