// Package postgres provides a shared consultation log on PostgreSQL.
//
// It is an optional sink alongside the local SQLite log, for deployments
// where several clinics report into one database.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

var (
	_ driven.ConsultationLog     = (*ConsultationLog)(nil)
	_ driven.ConsultationHistory = (*ConsultationLog)(nil)
)

const schema = `
CREATE TABLE IF NOT EXISTS consultations (
	id           TEXT PRIMARY KEY,
	query        TEXT NOT NULL,
	language     TEXT NOT NULL,
	symptoms     TEXT[] NOT NULL DEFAULT '{}',
	severity     TEXT NOT NULL,
	urgency      TEXT NOT NULL,
	is_emergency BOOLEAN NOT NULL DEFAULT FALSE,
	guidance     TEXT NOT NULL,
	mode         TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_consultations_created_at ON consultations (created_at);
`

const defaultRecentLimit = 20

// ConsultationLog appends consultations to a PostgreSQL table.
type ConsultationLog struct {
	db *sql.DB
}

// Open connects to dsn and ensures the consultations table exists.
func Open(ctx context.Context, dsn string) (*ConsultationLog, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: postgres: %w", domain.ErrStoreUnavailable, err)
	}
	return New(ctx, db)
}

// New wraps an open database and ensures the schema exists.
func New(ctx context.Context, db *sql.DB) (*ConsultationLog, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("creating consultations table: %w", err)
	}
	return &ConsultationLog{db: db}, nil
}

// Name identifies the sink.
func (l *ConsultationLog) Name() string {
	return "postgres"
}

// Append records one consultation.
func (l *ConsultationLog) Append(ctx context.Context, entry domain.Consultation) error {
	if entry.ID == "" {
		return domain.ErrInvalidInput
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	symptoms := entry.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO consultations (id, query, language, symptoms, severity, urgency,
			is_emergency, guidance, mode, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, entry.ID, entry.Query, string(entry.Language), pq.Array(symptoms),
		string(entry.Severity), string(entry.Urgency), entry.IsEmergency,
		entry.Guidance, string(entry.Mode), createdAt.UTC())
	if err != nil {
		return fmt.Errorf("appending consultation: %w", err)
	}
	return nil
}

// Recent returns up to limit consultations, newest first.
func (l *ConsultationLog) Recent(ctx context.Context, limit int) ([]domain.Consultation, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, query, language, symptoms, severity, urgency, is_emergency,
			guidance, mode, created_at
		FROM consultations
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying consultations: %w", err)
	}
	defer rows.Close()

	entries := []domain.Consultation{}
	for rows.Next() {
		var (
			c                                 domain.Consultation
			language, severity, urgency, mode string
			symptoms                          pq.StringArray
		)
		if err := rows.Scan(&c.ID, &c.Query, &language, &symptoms, &severity, &urgency,
			&c.IsEmergency, &c.Guidance, &mode, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning consultation: %w", err)
		}
		c.Language = domain.Language(language)
		c.Symptoms = []string(symptoms)
		if c.Symptoms == nil {
			c.Symptoms = []string{}
		}
		c.Severity = domain.Severity(severity)
		c.Urgency = domain.Urgency(urgency)
		c.Mode = domain.ProcessingMode(mode)
		entries = append(entries, c)
	}
	return entries, rows.Err()
}

// PruneBefore deletes consultations created before cutoff.
func (l *ConsultationLog) PruneBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := l.db.ExecContext(ctx, `DELETE FROM consultations WHERE created_at < $1`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("pruning consultations: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned consultations: %w", err)
	}
	return int(n), nil
}

// Close closes the database connection.
func (l *ConsultationLog) Close() error {
	return l.db.Close()
}
