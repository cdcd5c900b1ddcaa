package driven

// Prompt names used by advice enhancers.
const (
	// PromptEnhanceSystem is the system prompt. Placeholder: language name.
	PromptEnhanceSystem = "enhance_system"

	// PromptEnhanceUser is the user prompt. Placeholders: user text,
	// matched conditions, rule-based guidance.
	PromptEnhanceUser = "enhance_user"
)

// PromptStore provides user-customisable prompt templates.
// Templates use fmt placeholders and fall back to built-in defaults.
type PromptStore interface {
	// Load returns the template for name.
	Load(name string) (string, error)

	// Reload clears cached templates so the next Load reads from disk.
	Reload()

	// Dir returns the directory holding the template files.
	Dir() string
}
