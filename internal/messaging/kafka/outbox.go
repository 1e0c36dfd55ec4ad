package kafka

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
	// OutboxStatusDead rows exhausted MaxOutboxRetries and are no longer polled.
	OutboxStatusDead = "dead"

	MaxOutboxRetries = 10
)

var (
	errOutboxIDRequired      = errors.New("outbox id is required")
	errOutboxTopicRequired   = errors.New("outbox topic is required")
	errOutboxPayloadRequired = errors.New("outbox payload is required")
)

// OutboxEvent is one row of outbox_events. Rows are written in the same
// transaction as the state change they announce.
type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
	CreatedAt     time.Time
}

// NewOutboxEvent marshals payload into a pending event.
func NewOutboxEvent(requestID, aggregateType, aggregateID, eventType, topic string, payload any) (OutboxEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       raw,
		Status:        OutboxStatusPending,
	}, nil
}

func (e OutboxEvent) Validate() error {
	switch {
	case e.ID == "":
		return errOutboxIDRequired
	case e.Topic == "":
		return errOutboxTopicRequired
	case len(e.Payload) == 0:
		return errOutboxPayloadRequired
	}
	switch e.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed, OutboxStatusDead:
		return nil
	}
	return fmt.Errorf("invalid outbox status: %q", e.Status)
}

// Retryable reports whether the worker should still pick the row up.
func (e OutboxEvent) Retryable() bool {
	return e.Status == OutboxStatusPending || e.Status == OutboxStatusFailed
}

// dbtx is the subset shared by *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}
