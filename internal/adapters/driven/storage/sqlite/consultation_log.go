package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

var (
	_ driven.ConsultationLog     = (*ConsultationLog)(nil)
	_ driven.ConsultationHistory = (*ConsultationLog)(nil)
)

// ConsultationLog is the local append-only consultation record.
type ConsultationLog struct {
	store *Store
}

// Name identifies the sink.
func (l *ConsultationLog) Name() string {
	return "sqlite"
}

// Append records one consultation. Duplicate IDs are rejected.
func (l *ConsultationLog) Append(ctx context.Context, entry domain.Consultation) error {
	if entry.ID == "" {
		return domain.ErrInvalidInput
	}
	symptoms, err := marshalStrings(entry.Symptoms)
	if err != nil {
		return fmt.Errorf("marshalling symptoms: %w", err)
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = l.store.db.ExecContext(ctx, `
		INSERT INTO consultations (id, query, language, symptoms, severity, urgency,
			is_emergency, guidance, mode, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Query, string(entry.Language), symptoms, string(entry.Severity),
		string(entry.Urgency), boolToInt(entry.IsEmergency), entry.Guidance,
		string(entry.Mode), formatTime(createdAt))
	if err != nil {
		return fmt.Errorf("appending consultation: %w", err)
	}
	return nil
}

// Recent returns up to limit consultations, newest first.
func (l *ConsultationLog) Recent(ctx context.Context, limit int) ([]domain.Consultation, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.store.db.QueryContext(ctx, `
		SELECT id, query, language, symptoms, severity, urgency, is_emergency,
			guidance, mode, created_at
		FROM consultations
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying consultations: %w", err)
	}
	defer rows.Close()

	entries := []domain.Consultation{}
	for rows.Next() {
		var c domain.Consultation
		var language, symptoms, severity, urgency, mode, createdAt string
		var emergency int
		if err := rows.Scan(&c.ID, &c.Query, &language, &symptoms, &severity, &urgency,
			&emergency, &c.Guidance, &mode, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning consultation: %w", err)
		}
		c.Language = domain.Language(language)
		c.Symptoms = unmarshalStrings(symptoms)
		c.Severity = domain.Severity(severity)
		c.Urgency = domain.Urgency(urgency)
		c.IsEmergency = emergency == 1
		c.Mode = domain.ProcessingMode(mode)
		c.CreatedAt = parseTime(createdAt)
		entries = append(entries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating consultations: %w", err)
	}
	return entries, nil
}

// PruneBefore deletes consultations older than cutoff.
func (l *ConsultationLog) PruneBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := l.store.db.ExecContext(ctx, "DELETE FROM consultations WHERE created_at < ?", formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("pruning consultations: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning consultations: %w", err)
	}
	return int(n), nil
}
