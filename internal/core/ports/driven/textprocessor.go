package driven

// TextProcessor transforms input text before keyword matching.
// Processors are chained in a pipeline (lower-casing, whitespace, ...).
type TextProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process returns the transformed text.
	Process(text string) string
}
