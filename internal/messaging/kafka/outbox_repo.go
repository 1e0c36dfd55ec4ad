package kafka

import (
	"context"
	"database/sql"
	"slices"
	"time"
)

// leaseDuration hides claimed rows from other workers while they publish.
const leaseDuration = time.Minute

const insertOutboxSQL = `
INSERT INTO outbox_events (
	id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// claimOutboxSQL leases due rows by pushing next_retry_at forward. SKIP
// LOCKED lets several workers poll the same table.
const claimOutboxSQL = `
UPDATE outbox_events o
SET next_retry_at = NOW() + $4 * INTERVAL '1 second', updated_at = NOW()
FROM (
	SELECT id FROM outbox_events
	WHERE status IN ($1, $2)
		AND (next_retry_at IS NULL OR next_retry_at <= NOW())
	ORDER BY created_at
	LIMIT $3
	FOR UPDATE SKIP LOCKED
) due
WHERE o.id = due.id
RETURNING
	o.id::text, COALESCE(o.request_id, ''), o.aggregate_type, o.aggregate_id::text,
	o.event_type, o.topic, o.payload, o.status, o.retry_count, o.next_retry_at, o.created_at`

const markSentSQL = `
UPDATE outbox_events
SET status = $2, processed_at = NOW(), error_message = NULL, updated_at = NOW()
WHERE id = $1`

// markFailedSQL backs off linearly (15s per attempt, capped at 150s) and
// parks the row as dead once the retry budget is spent.
const markFailedSQL = `
UPDATE outbox_events
SET
	status = CASE WHEN retry_count + 1 >= $4 THEN $5 ELSE $2 END,
	retry_count = retry_count + 1,
	error_message = LEFT($3, 500),
	next_retry_at = NOW() + (LEAST(retry_count + 1, 10) * INTERVAL '15 seconds'),
	updated_at = NOW()
WHERE id = $1`

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

func (r *outboxRepository) conn() dbtx {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}
	_, err := r.conn().ExecContext(ctx, insertOutboxSQL,
		event.ID, event.RequestID, event.AggregateType, event.AggregateID,
		event.EventType, event.Topic, event.Payload, event.Status,
	)
	return err
}

// ListPending claims up to limit due rows, oldest first.
func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := r.conn().QueryContext(ctx, claimOutboxSQL,
		OutboxStatusPending, OutboxStatusFailed, limit, int(leaseDuration/time.Second),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	claimed := make([]OutboxEvent, 0, limit)
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(
			&e.ID, &e.RequestID, &e.AggregateType, &e.AggregateID,
			&e.EventType, &e.Topic, &e.Payload, &e.Status,
			&e.RetryCount, &e.NextRetryAt, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		claimed = append(claimed, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// RETURNING does not keep the subquery order.
	slices.SortStableFunc(claimed, func(a, b OutboxEvent) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return claimed, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	_, err := r.conn().ExecContext(ctx, markSentSQL, id, OutboxStatusSent)
	return err
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	_, err := r.conn().ExecContext(ctx, markFailedSQL,
		id, OutboxStatusFailed, reason, MaxOutboxRetries, OutboxStatusDead,
	)
	return err
}
