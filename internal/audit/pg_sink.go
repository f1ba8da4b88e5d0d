package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const createEventLogs = `
CREATE TABLE IF NOT EXISTS session_event_logs (
	id          BIGSERIAL PRIMARY KEY,
	event_type  TEXT        NOT NULL,
	session_id  UUID        NOT NULL,
	payload     JSONB,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PgSink appends events to the session_event_logs table.
type PgSink struct {
	pool *pgxpool.Pool
}

func NewPgSink(pool *pgxpool.Pool) *PgSink {
	return &PgSink{pool: pool}
}

func (s *PgSink) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createEventLogs); err != nil {
		return fmt.Errorf("create session_event_logs: %w", err)
	}
	return nil
}

func (s *PgSink) Record(ctx context.Context, ev Event) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO session_event_logs (event_type, session_id, payload, created_at)
		VALUES ($1, $2, $3, COALESCE($4, now()))
	`, ev.Type, ev.SessionID, nullablePayload(ev.Payload), nullableTime(ev.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert session event: %w", err)
	}

	return nil
}

func nullablePayload(p []byte) *string {
	if len(p) == 0 {
		return nil
	}
	s := string(p)
	return &s
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
