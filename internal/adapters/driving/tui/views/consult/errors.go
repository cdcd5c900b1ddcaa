package consult

import "errors"

// Error definitions for the consult view.
var (
	// ErrNoGuidanceService indicates that no guidance service was provided.
	ErrNoGuidanceService = errors.New("guidance service is required")
)
