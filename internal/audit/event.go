package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	EventSessionStarted     = "SESSION_STARTED"
	EventSessionEnded       = "SESSION_ENDED"
	EventSessionExpired     = "SESSION_EXPIRED"
	EventAppointmentBooked  = "APPOINTMENT_BOOKED"
	EventPatientRecordAdded = "PATIENT_RECORD_ADDED"
)

// Event is one entry of the session audit trail. Payloads carry identifiers
// and counts only, never form contents.
type Event struct {
	Type      string
	SessionID uuid.UUID
	Payload   []byte
	CreatedAt time.Time
}

type Sink interface {
	Record(ctx context.Context, ev Event) error
}

// NewEvent marshals payload into an Event stamped with the current time.
func NewEvent(eventType string, sessionID uuid.UUID, payload map[string]any) (Event, error) {
	ev := Event{
		Type:      eventType,
		SessionID: sessionID,
		CreatedAt: time.Now(),
	}
	if payload == nil {
		return ev, nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return ev, err
	}
	ev.Payload = data
	return ev, nil
}

// Emit builds and records an event, logging instead of failing the caller.
func Emit(ctx context.Context, sink Sink, logger zerolog.Logger, eventType string, sessionID uuid.UUID, payload map[string]any) {
	ev, err := NewEvent(eventType, sessionID, payload)
	if err != nil {
		logger.Warn().Err(err).Str("event", eventType).Msg("failed to marshal event payload")
	}

	if err := sink.Record(ctx, ev); err != nil {
		logger.Error().Err(err).
			Str("event", eventType).
			Str("session_id", sessionID.String()).
			Msg("failed to record event")
	}
}

// LogSink writes events to the structured log.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger.With().Str("component", "audit").Logger()}
}

func (s *LogSink) Record(_ context.Context, ev Event) error {
	e := s.logger.Info().
		Str("event", ev.Type).
		Str("session_id", ev.SessionID.String()).
		Time("created_at", ev.CreatedAt)
	if len(ev.Payload) > 0 {
		e = e.RawJSON("payload", ev.Payload)
	}
	e.Msg("session event")
	return nil
}

// Discard drops every event.
type Discard struct{}

func (Discard) Record(context.Context, Event) error { return nil }
