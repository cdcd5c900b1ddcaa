package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// ConsultationLog is an append-only sink for evaluated queries.
// The core writes to it after producing a result and never reads back.
type ConsultationLog interface {
	// Append records one consultation.
	Append(ctx context.Context, entry domain.Consultation) error

	// Name identifies the sink in warnings and logs.
	Name() string
}

// ConsultationHistory reads back a consultation log for the history view.
type ConsultationHistory interface {
	// Recent returns up to limit consultations, newest first.
	Recent(ctx context.Context, limit int) ([]domain.Consultation, error)

	// PruneBefore deletes consultations older than cutoff.
	// Returns the number removed.
	PruneBefore(ctx context.Context, cutoff time.Time) (int, error)
}
