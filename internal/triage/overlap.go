package triage

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// Overlap is a keyword of one condition that contains a keyword of
// another. Any text matching Keyword also matches Other's condition.
type Overlap struct {
	Condition string
	Keyword   string
	Other     string
	Contained string
}

func (o Overlap) String() string {
	return fmt.Sprintf("%s keyword %q contains %s keyword %q", o.Condition, o.Keyword, o.Other, o.Contained)
}

// KeywordOverlaps lists cross-condition keyword containment. A knowledge
// base without overlaps maps every single keyword to exactly one condition.
func KeywordOverlaps(kb *domain.KnowledgeBase) []Overlap {
	conditions := kb.Conditions()
	var out []Overlap
	for _, a := range conditions {
		for _, kw := range a.AllKeywords() {
			for _, b := range conditions {
				if a.ID == b.ID {
					continue
				}
				for _, other := range b.AllKeywords() {
					if other != "" && strings.Contains(kw, other) {
						out = append(out, Overlap{
							Condition: a.ID,
							Keyword:   kw,
							Other:     b.ID,
							Contained: other,
						})
					}
				}
			}
		}
	}
	return out
}
