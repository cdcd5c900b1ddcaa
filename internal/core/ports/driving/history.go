package driving

import (
	"context"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// HistoryService reads the consultation log.
type HistoryService interface {
	// Recent returns up to limit consultations, newest first.
	Recent(ctx context.Context, limit int) ([]domain.Consultation, error)
}
