// Package natsevents publishes consultation events to a NATS subject.
//
// The publisher is a write-only consultation log sink: other services
// (dashboards, surveillance jobs) subscribe to the subject.
package natsevents

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
)

var _ driven.ConsultationLog = (*Publisher)(nil)

// Event is the JSON payload published for each consultation.
type Event struct {
	Type         string              `json:"type"`
	Consultation domain.Consultation `json:"consultation"`
	PublishedAt  time.Time           `json:"published_at"`
}

// EventTypeConsultation tags consultation events.
const EventTypeConsultation = "consultation.recorded"

// conn is the subset of *nats.Conn the publisher uses.
type conn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Drain() error
}

// Config configures the NATS connection.
type Config struct {
	URL     string
	Subject string
}

// Publisher sends consultation events to NATS.
type Publisher struct {
	nc      conn
	subject string
	now     func() time.Time
}

// Connect dials NATS and returns a publisher for cfg.Subject.
func Connect(cfg Config) (*Publisher, error) {
	url := cfg.URL
	if url == "" {
		url = nats.DefaultURL
	}
	nc, err := nats.Connect(url,
		nats.Name("sahaaya"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: nats %s: %w", domain.ErrStoreUnavailable, url, err)
	}
	return newPublisher(nc, cfg.Subject), nil
}

func newPublisher(nc conn, subject string) *Publisher {
	if subject == "" {
		subject = domain.DefaultNATSSubject
	}
	return &Publisher{nc: nc, subject: subject, now: time.Now}
}

// Name identifies the sink.
func (p *Publisher) Name() string {
	return "nats"
}

// Subject returns the subject events are published on.
func (p *Publisher) Subject() string {
	return p.subject
}

// Append publishes the consultation and waits for the server to
// acknowledge the flush.
func (p *Publisher) Append(ctx context.Context, entry domain.Consultation) error {
	if entry.Symptoms == nil {
		entry.Symptoms = []string{}
	}
	data, err := json.Marshal(Event{
		Type:         EventTypeConsultation,
		Consultation: entry,
		PublishedAt:  p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encoding consultation event: %w", err)
	}
	if err := p.nc.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publishing consultation event: %w", err)
	}
	if err := p.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flushing consultation event: %w", err)
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (p *Publisher) Close() error {
	return p.nc.Drain()
}
