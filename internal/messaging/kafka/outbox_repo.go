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
	// OutboxStatusDead: sudah melewati MaxOutboxAttempts, tidak diambil lagi oleh relay.
	OutboxStatusDead = "dead"
)

const MaxOutboxAttempts = 10

var (
	ErrOutboxIDRequired      = errors.New("outbox id is required")
	ErrOutboxTopicRequired   = errors.New("outbox topic is required")
	ErrOutboxPayloadRequired = errors.New("outbox payload is required")
)

// OutboxEvent adalah satu baris outbox_events. AggregateID dipakai sebagai
// key pesan sehingga event slip/link yang sama tetap berurutan di partisi.
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
}

func NewOutboxEvent(requestID, aggregateType, aggregateID, eventType, topic string, payload any) (OutboxEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	ev := OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       raw,
		Status:        OutboxStatusPending,
	}
	return ev, ValidateOutboxEvent(ev)
}

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
	PurgeSent(ctx context.Context, before time.Time) (int64, error)
}

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
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

// Create harus dipanggil di transaksi yang sama dengan perubahan domainnya.
func (r *outboxRepository) Create(ctx context.Context, ev OutboxEvent) error {
	if err := ValidateOutboxEvent(ev); err != nil {
		return err
	}

	_, err := r.conn().ExecContext(ctx, `
INSERT INTO outbox_events (id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status)
VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8)`,
		ev.ID, ev.RequestID, ev.AggregateType, ev.AggregateID, ev.EventType, ev.Topic, ev.Payload, ev.Status,
	)
	return err
}

// ListPending mengambil event pending/failed yang sudah jatuh tempo.
// SKIP LOCKED supaya dua relay tidak mengirim event yang sama.
func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.conn().QueryContext(ctx, `
SELECT id::text, COALESCE(request_id, ''), aggregate_type, aggregate_id::text,
       event_type, topic, payload, status, retry_count, COALESCE(next_retry_at, created_at)
FROM outbox_events
WHERE status IN ($1, $2)
  AND (next_retry_at IS NULL OR next_retry_at <= NOW())
ORDER BY created_at ASC
LIMIT $3
FOR UPDATE SKIP LOCKED`, OutboxStatusPending, OutboxStatusFailed, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OutboxEvent
	for rows.Next() {
		var ev OutboxEvent
		if err := rows.Scan(
			&ev.ID, &ev.RequestID, &ev.AggregateType, &ev.AggregateID,
			&ev.EventType, &ev.Topic, &ev.Payload, &ev.Status, &ev.RetryCount, &ev.NextRetryAt,
		); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	_, err := r.conn().ExecContext(ctx, `
UPDATE outbox_events
SET status = $2, processed_at = NOW(), error_message = NULL, updated_at = NOW()
WHERE id = $1`, id, OutboxStatusSent)
	return err
}

// MarkFailed menjadwalkan ulang dengan backoff 15 detik per percobaan.
// Percobaan ke-MaxOutboxAttempts memindahkan event ke status dead.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	_, err := r.conn().ExecContext(ctx, `
UPDATE outbox_events
SET status = CASE WHEN retry_count + 1 >= $4 THEN $5 ELSE $2 END,
    retry_count = retry_count + 1,
    error_message = LEFT($3, 500),
    next_retry_at = NOW() + ((retry_count + 1) * INTERVAL '15 seconds'),
    updated_at = NOW()
WHERE id = $1`, id, OutboxStatusFailed, reason, MaxOutboxAttempts, OutboxStatusDead)
	return err
}

// PurgeSent menghapus event terkirim yang diproses sebelum `before`.
func (r *outboxRepository) PurgeSent(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.conn().ExecContext(ctx, `
DELETE FROM outbox_events WHERE status = $1 AND processed_at < $2`, OutboxStatusSent, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func ValidateOutboxEvent(ev OutboxEvent) error {
	switch {
	case ev.ID == "":
		return ErrOutboxIDRequired
	case ev.Topic == "":
		return ErrOutboxTopicRequired
	case len(ev.Payload) == 0:
		return ErrOutboxPayloadRequired
	}
	switch ev.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed, OutboxStatusDead:
		return nil
	}
	return fmt.Errorf("invalid outbox status: %q", ev.Status)
}
