// Package textprep normalises user text before keyword matching.
package textprep

import (
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

// Pipeline chains TextProcessors and runs them in order.
type Pipeline struct {
	processors []driven.TextProcessor
}

// NewPipeline creates a pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.TextProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs text through all processors in order.
func (p *Pipeline) Process(text string) string {
	for _, processor := range p.processors {
		text = processor.Process(text)
	}
	return text
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.TextProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}

// Names returns the processor names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, 0, len(p.processors))
	for _, processor := range p.processors {
		names = append(names, processor.Name())
	}
	return names
}
