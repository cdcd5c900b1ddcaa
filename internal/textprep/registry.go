package textprep

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

// BuilderFunc creates a TextProcessor from generic config.
type BuilderFunc func(cfg map[string]any) (driven.TextProcessor, error)

// Registry maps processor names to their builders.
// It allows pipelines to be assembled from the text.processors setting.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates an empty processor registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a processor builder to the registry.
// Name should match the processor's Name() return value.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates a processor by name with the given config.
// Returns error if the processor name is not registered.
func (r *Registry) Build(name string, cfg map[string]any) (driven.TextProcessor, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown text processor: %s", name)
	}
	return builder(cfg)
}

// BuildPipeline creates a pipeline from processor names, in order.
func (r *Registry) BuildPipeline(names []string) (*Pipeline, error) {
	p := NewPipeline()
	for _, name := range names {
		processor, err := r.Build(name, nil)
		if err != nil {
			return nil, err
		}
		p.Add(processor)
	}
	return p, nil
}

// Has returns true if a processor with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered processor names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
