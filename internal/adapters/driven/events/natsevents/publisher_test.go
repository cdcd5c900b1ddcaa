package natsevents

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

type fakeConn struct {
	subject    string
	data       []byte
	publishErr error
	flushErr   error
	drained    bool
}

func (c *fakeConn) Publish(subject string, data []byte) error {
	if c.publishErr != nil {
		return c.publishErr
	}
	c.subject = subject
	c.data = data
	return nil
}

func (c *fakeConn) FlushWithContext(context.Context) error { return c.flushErr }

func (c *fakeConn) Drain() error {
	c.drained = true
	return nil
}

func TestPublisher_Append(t *testing.T) {
	fc := &fakeConn{}
	p := newPublisher(fc, "")
	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	entry := domain.Consultation{
		ID:          "c-1",
		Query:       "chest pain",
		Language:    domain.LanguageEnglish,
		Symptoms:    []string{"emergency"},
		Severity:    domain.SeverityEmergency,
		Urgency:     domain.UrgencyImmediate,
		IsEmergency: true,
		Mode:        domain.ModeOffline,
	}
	require.NoError(t, p.Append(context.Background(), entry))

	assert.Equal(t, domain.DefaultNATSSubject, fc.subject)

	var evt Event
	require.NoError(t, json.Unmarshal(fc.data, &evt))
	assert.Equal(t, EventTypeConsultation, evt.Type)
	assert.Equal(t, "c-1", evt.Consultation.ID)
	assert.True(t, evt.Consultation.IsEmergency)
	assert.Equal(t, []string{"emergency"}, evt.Consultation.Symptoms)
	assert.True(t, evt.PublishedAt.Equal(fixed))
}

func TestPublisher_Append_NilSymptomsEncodedAsEmpty(t *testing.T) {
	fc := &fakeConn{}
	p := newPublisher(fc, "clinic.events")

	require.NoError(t, p.Append(context.Background(), domain.Consultation{ID: "c-2"}))

	assert.Equal(t, "clinic.events", fc.subject)
	assert.Contains(t, string(fc.data), `"symptoms":[]`)
}

func TestPublisher_Append_Errors(t *testing.T) {
	tests := []struct {
		name string
		conn *fakeConn
		want string
	}{
		{"publish", &fakeConn{publishErr: errors.New("connection closed")}, "publishing consultation event"},
		{"flush", &fakeConn{flushErr: context.DeadlineExceeded}, "flushing consultation event"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPublisher(tt.conn, "")
			err := p.Append(context.Background(), domain.Consultation{ID: "c"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPublisher_NameAndClose(t *testing.T) {
	fc := &fakeConn{}
	p := newPublisher(fc, "")

	assert.Equal(t, "nats", p.Name())
	assert.Equal(t, domain.DefaultNATSSubject, p.Subject())
	require.NoError(t, p.Close())
	assert.True(t, fc.drained)
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(Config{URL: "nats://127.0.0.1:1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
