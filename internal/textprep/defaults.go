package textprep

import (
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

// RegisterDefaults registers all built-in processors with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(Lowercase, func(map[string]any) (driven.TextProcessor, error) {
		return lowercaseProcessor{}, nil
	})
	r.Register(Whitespace, func(map[string]any) (driven.TextProcessor, error) {
		return whitespaceProcessor{}, nil
	})
	r.Register(Punctuation, func(map[string]any) (driven.TextProcessor, error) {
		return punctuationProcessor{}, nil
	})
}

// DefaultRegistry returns a registry with the built-in processors.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// DefaultPipeline folds quotes, lower-cases and collapses whitespace.
func DefaultPipeline() *Pipeline {
	return NewPipeline(punctuationProcessor{}, lowercaseProcessor{}, whitespaceProcessor{})
}
