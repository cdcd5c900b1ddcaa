package knowledge

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.KnowledgeSource = (*Source)(nil)

// embeddedName is reported by Describe for the built-in document.
const embeddedName = "embedded"

// Source loads a knowledge base from the embedded document or a file.
type Source struct {
	path string
}

// NewSource returns a source for path. An empty path selects the
// embedded default knowledge base.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Load reads and validates the document.
func (s *Source) Load(ctx context.Context) (*domain.KnowledgeBase, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.path == "" {
		return Default()
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base %s: %w", s.path, err)
	}
	kb, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return kb, nil
}

// Describe returns the file path, or "embedded".
func (s *Source) Describe() string {
	if s.path == "" {
		return embeddedName
	}
	return s.path
}

// Path returns the file path; empty for the embedded document.
func (s *Source) Path() string {
	return s.path
}
