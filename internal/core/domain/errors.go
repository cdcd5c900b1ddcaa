package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration indicates the engine cannot run at all,
	// typically because the knowledge base is missing or empty.
	ErrConfiguration = errors.New("configuration error")

	// ErrKnowledgeInvalid indicates a knowledge base document failed validation.
	ErrKnowledgeInvalid = errors.New("knowledge base invalid")

	// ErrUnsupportedLanguage indicates a language code outside en, hi, te, ta, bn.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrEnhancerUnavailable indicates the advice enhancer is not configured
	// or could not be reached. Guidance falls back to rule-based text.
	ErrEnhancerUnavailable = errors.New("advice enhancer unavailable")

	// ErrCacheMiss indicates no cached guidance exists for a fingerprint.
	ErrCacheMiss = errors.New("cache miss")

	// ErrStoreUnavailable indicates a storage collaborator is closed or unreachable.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ConfigurationError is the fatal error returned when the engine has no
// usable knowledge base. It matches ErrConfiguration with errors.Is.
type ConfigurationError struct {
	// Op names the step that failed, e.g. "load knowledge base".
	Op string

	// Err is the underlying cause.
	Err error
}

// NewConfigurationError wraps err as a ConfigurationError for op.
func NewConfigurationError(op string, err error) *ConfigurationError {
	return &ConfigurationError{Op: op, Err: err}
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("configuration error: %s", e.Op)
	}
	return fmt.Sprintf("configuration error: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
