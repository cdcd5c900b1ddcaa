package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

// Ensure ConsultationLog implements the interfaces.
var (
	_ driven.ConsultationLog     = (*ConsultationLog)(nil)
	_ driven.ConsultationHistory = (*ConsultationLog)(nil)
)

const defaultRecentLimit = 20

// ConsultationLog is an in-memory consultation log.
type ConsultationLog struct {
	mu      sync.RWMutex
	entries []domain.Consultation
	ids     map[string]bool
	now     func() time.Time
}

// NewConsultationLog creates an empty in-memory consultation log.
func NewConsultationLog() *ConsultationLog {
	return &ConsultationLog{
		ids: make(map[string]bool),
		now: time.Now,
	}
}

// Name identifies the sink.
func (l *ConsultationLog) Name() string {
	return "memory"
}

// Append records one consultation. IDs must be unique.
func (l *ConsultationLog) Append(_ context.Context, entry domain.Consultation) error {
	if entry.ID == "" {
		return fmt.Errorf("%w: consultation id is required", domain.ErrInvalidInput)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ids[entry.ID] {
		return fmt.Errorf("%w: duplicate consultation %s", domain.ErrInvalidInput, entry.ID)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = l.now()
	}
	entry.Symptoms = append([]string(nil), entry.Symptoms...)
	l.ids[entry.ID] = true
	l.entries = append(l.entries, entry)
	return nil
}

// Recent returns up to limit consultations, newest first.
// A non-positive limit returns the default page size.
func (l *ConsultationLog) Recent(_ context.Context, limit int) ([]domain.Consultation, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	l.mu.RLock()
	out := make([]domain.Consultation, len(l.entries))
	copy(out, l.entries)
	l.mu.RUnlock()

	// Stable sort keeps later appends first among equal timestamps.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// PruneBefore deletes consultations created before cutoff.
func (l *ConsultationLog) PruneBefore(_ context.Context, cutoff time.Time) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.entries[:0]
	removed := 0
	for _, e := range l.entries {
		if e.CreatedAt.Before(cutoff) {
			delete(l.ids, e.ID)
			removed++
			continue
		}
		kept = append(kept, e)
	}
	l.entries = kept
	return removed, nil
}

// Len returns the number of stored consultations.
func (l *ConsultationLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
