// Package knowledge loads the symptom knowledge base from YAML.
//
// The built-in document is embedded in the binary. A file on disk can
// replace it (knowledge.path) and be watched for edits.
package knowledge

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

//go:embed default.yaml
var defaultDocument []byte

//go:embed schema.json
var schemaDocument []byte

// document mirrors the YAML layout.
type document struct {
	Version        string                       `yaml:"version"`
	Conditions     []conditionDoc               `yaml:"conditions"`
	Messages       map[string]map[string]string `yaml:"messages"`
	EmergencyTypes []emergencyTypeDoc           `yaml:"emergency_types"`
}

type conditionDoc struct {
	ID        string              `yaml:"id"`
	Category  string              `yaml:"category"`
	Severity  string              `yaml:"severity"`
	Urgency   string              `yaml:"urgency"`
	Emergency bool                `yaml:"emergency"`
	Keywords  map[string][]string `yaml:"keywords"`
	RedFlags  []string            `yaml:"red_flags"`
	Advice    map[string]string   `yaml:"advice"`
}

type emergencyTypeDoc struct {
	Type     string              `yaml:"type"`
	Keywords map[string][]string `yaml:"keywords"`
}

var compileSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaDocument))
})

// Default returns the embedded knowledge base.
func Default() (*domain.KnowledgeBase, error) {
	return Parse(defaultDocument)
}

// DefaultDocument returns a copy of the embedded YAML document.
func DefaultDocument() []byte {
	out := make([]byte, len(defaultDocument))
	copy(out, defaultDocument)
	return out
}

// Parse validates a YAML document against the schema and the semantic
// rules, then builds a knowledge base. Keywords and red flags are
// lower-cased. All errors wrap domain.ErrKnowledgeInvalid.
func Parse(data []byte) (*domain.KnowledgeBase, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrKnowledgeInvalid, err)
	}
	if err := checkSemantics(&doc); err != nil {
		return nil, err
	}
	return doc.build()
}

func validateSchema(data []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile knowledge schema: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrKnowledgeInvalid, err)
	}
	if raw == nil {
		return fmt.Errorf("%w: empty document", domain.ErrKnowledgeInvalid)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrKnowledgeInvalid, err)
	}
	if !result.Valid() {
		var lines []string
		for _, e := range result.Errors() {
			lines = append(lines, fmt.Sprintf("- %s", e))
		}
		return fmt.Errorf("%w: schema validation failed:\n%s",
			domain.ErrKnowledgeInvalid, strings.Join(lines, "\n"))
	}
	return nil
}

// checkSemantics covers rules the schema cannot express.
func checkSemantics(doc *document) error {
	var errs []error

	hasEmergency := false
	for _, c := range doc.Conditions {
		if c.Emergency {
			hasEmergency = true
		}
		if c.Emergency && c.Severity != string(domain.SeverityEmergency) {
			errs = append(errs, fmt.Errorf("condition %s: emergency condition must have severity emergency", c.ID))
		}
	}
	if !hasEmergency {
		errs = append(errs, errors.New("no condition is marked emergency"))
	}

	seen := make(map[string]bool)
	for _, et := range doc.EmergencyTypes {
		if seen[et.Type] {
			errs = append(errs, fmt.Errorf("emergency type %s: duplicate", et.Type))
		}
		seen[et.Type] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrKnowledgeInvalid, errors.Join(errs...))
	}
	return nil
}

func (doc *document) build() (*domain.KnowledgeBase, error) {
	conditions := make([]domain.Condition, 0, len(doc.Conditions))
	for _, c := range doc.Conditions {
		advice := make(map[domain.Language]string, len(c.Advice))
		for lang, text := range c.Advice {
			advice[domain.Language(lang)] = strings.TrimSpace(text)
		}
		conditions = append(conditions, domain.Condition{
			ID:        c.ID,
			Category:  c.Category,
			Severity:  domain.Severity(c.Severity),
			Urgency:   domain.Urgency(c.Urgency),
			Emergency: c.Emergency,
			Keywords:  keywordTable(c.Keywords),
			Advice:    advice,
			RedFlags:  lowerAll(c.RedFlags),
		})
	}

	messages := make(domain.Messages, len(doc.Messages))
	for key, texts := range doc.Messages {
		byLang := make(map[domain.Language]string, len(texts))
		for lang, text := range texts {
			byLang[domain.Language(lang)] = strings.TrimSpace(text)
		}
		messages[key] = byLang
	}

	types := make([]domain.EmergencyType, 0, len(doc.EmergencyTypes))
	for _, et := range doc.EmergencyTypes {
		types = append(types, domain.EmergencyType{
			Type:     et.Type,
			Keywords: keywordTable(et.Keywords),
		})
	}

	return domain.NewKnowledgeBase(doc.Version, conditions, messages, types)
}

func keywordTable(in map[string][]string) map[domain.Language][]string {
	out := make(map[domain.Language][]string, len(in))
	for lang, kws := range in {
		out[domain.Language(lang)] = lowerAll(kws)
	}
	return out
}

func lowerAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
