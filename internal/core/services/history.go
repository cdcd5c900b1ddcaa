package services

import (
	"context"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// defaultHistoryLimit applies when Recent is called with a non-positive limit.
const defaultHistoryLimit = 20

// HistoryService reads past consultations.
type HistoryService struct {
	history driven.ConsultationHistory
}

// NewHistoryService creates a history service. history may be nil.
func NewHistoryService(history driven.ConsultationHistory) *HistoryService {
	return &HistoryService{history: history}
}

// Recent returns up to limit consultations, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.Consultation, error) {
	if s.history == nil {
		return nil, domain.ErrStoreUnavailable
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.history.Recent(ctx, limit)
}
