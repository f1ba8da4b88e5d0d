package clinic

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hackgods/healthcare-plus/internal/audit"
	"github.com/hackgods/healthcare-plus/internal/records"
	"github.com/hackgods/healthcare-plus/internal/session"
)

// Sessions is the part of session.Manager the service needs.
type Sessions interface {
	Turn(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, s *session.Session) error) error
}

type Service struct {
	sessions Sessions
	sink     audit.Sink
	logger   zerolog.Logger
}

func NewService(sessions Sessions, sink audit.Sink, logger zerolog.Logger) *Service {
	return &Service{
		sessions: sessions,
		sink:     sink,
		logger:   logger,
	}
}

// BookAppointment appends an appointment to the session's store.
func (s *Service) BookAppointment(ctx context.Context, sessionID uuid.UUID, in records.AppointmentInput) (records.Appointment, error) {
	var appt records.Appointment

	err := s.sessions.Turn(ctx, sessionID, func(turnCtx context.Context, sess *session.Session) error {
		created, err := sess.Store.AddAppointment(in)
		if err != nil {
			return err
		}
		appt = created

		audit.Emit(turnCtx, s.sink, s.logger, audit.EventAppointmentBooked, sessionID, map[string]any{
			"confirmation_id": created.ConfirmationID(),
			"department":      created.Department,
			"date":            created.Date.Format("2006-01-02"),
		})
		return nil
	})
	if err != nil {
		return records.Appointment{}, err
	}

	return appt, nil
}

func (s *Service) ListAppointments(ctx context.Context, sessionID uuid.UUID) ([]records.Appointment, error) {
	var out []records.Appointment
	err := s.sessions.Turn(ctx, sessionID, func(_ context.Context, sess *session.Session) error {
		out = sess.Store.ListAppointments()
		return nil
	})
	return out, err
}

// AddPatientRecord appends a patient record to the session's store.
func (s *Service) AddPatientRecord(ctx context.Context, sessionID uuid.UUID, in records.PatientRecordInput) (records.PatientRecord, error) {
	var rec records.PatientRecord

	err := s.sessions.Turn(ctx, sessionID, func(turnCtx context.Context, sess *session.Session) error {
		created, err := sess.Store.AddPatientRecord(in)
		if err != nil {
			return err
		}
		rec = created

		_, total := sess.Store.Counts()
		audit.Emit(turnCtx, s.sink, s.logger, audit.EventPatientRecordAdded, sessionID, map[string]any{
			"with_vitals": created.Vitals != nil,
			"records":     total,
		})
		return nil
	})
	if err != nil {
		return records.PatientRecord{}, err
	}

	return rec, nil
}

func (s *Service) SearchPatientRecords(ctx context.Context, sessionID uuid.UUID, term string) ([]records.PatientRecord, error) {
	var out []records.PatientRecord
	err := s.sessions.Turn(ctx, sessionID, func(_ context.Context, sess *session.Session) error {
		out = sess.Store.SearchPatientRecords(term)
		return nil
	})
	return out, err
}

// Summary reports the session's collection sizes.
func (s *Service) Summary(ctx context.Context, sessionID uuid.UUID) (appointments, patients int, err error) {
	err = s.sessions.Turn(ctx, sessionID, func(_ context.Context, sess *session.Session) error {
		appointments, patients = sess.Store.Counts()
		return nil
	})
	return appointments, patients, err
}
