package clinic

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hackgods/healthcare-plus/internal/audit"
	"github.com/hackgods/healthcare-plus/internal/records"
	"github.com/hackgods/healthcare-plus/internal/session"
)

type MockSink struct {
	RecordFunc func(ctx context.Context, ev audit.Event) error
}

func (m *MockSink) Record(ctx context.Context, ev audit.Event) error {
	return m.RecordFunc(ctx, ev)
}

var clock = func() time.Time { return time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC) }

func setupService(t *testing.T, sink audit.Sink) (*Service, uuid.UUID) {
	t.Helper()
	mgr := session.NewManager(time.Hour,
		session.WithClock(clock),
		session.WithStoreOptions(records.WithClock(clock)),
	)
	sess := mgr.Create(context.Background())
	return NewService(mgr, sink, zerolog.Nop()), sess.ID
}

func appointmentInput(name string) records.AppointmentInput {
	return records.AppointmentInput{
		Name:       name,
		Phone:      "555-0100",
		Email:      "a@example.com",
		Age:        40,
		Department: records.DeptNeurology,
		Date:       clock().AddDate(0, 0, 1),
		Time:       "10:00",
	}
}

func TestBookAppointment_EmitsEvent(t *testing.T) {
	var events []audit.Event
	sink := &MockSink{RecordFunc: func(_ context.Context, ev audit.Event) error {
		events = append(events, ev)
		return nil
	}}
	svc, sid := setupService(t, sink)

	appt, err := svc.BookAppointment(context.Background(), sid, appointmentInput("Ann"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.ConfirmationID() != "APT-0001" {
		t.Errorf("expected APT-0001, got %s", appt.ConfirmationID())
	}

	if len(events) != 1 || events[0].Type != audit.EventAppointmentBooked {
		t.Fatalf("unexpected events %+v", events)
	}
	var payload map[string]any
	if err := json.Unmarshal(events[0].Payload, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload["confirmation_id"] != "APT-0001" || payload["department"] != "Neurology" {
		t.Errorf("unexpected payload %v", payload)
	}
	if _, ok := payload["name"]; ok {
		t.Error("payload must not carry patient details")
	}
}

func TestBookAppointment_ValidationSkipsEvent(t *testing.T) {
	called := false
	sink := &MockSink{RecordFunc: func(context.Context, audit.Event) error {
		called = true
		return nil
	}}
	svc, sid := setupService(t, sink)

	in := appointmentInput("Ann")
	in.Phone = ""

	_, err := svc.BookAppointment(context.Background(), sid, in)
	if !errors.Is(err, records.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if called {
		t.Error("no event expected for a rejected form")
	}

	list, err := svc.ListAppointments(context.Background(), sid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected no appointments, got %d", len(list))
	}
}

func TestBookAppointment_SinkFailureIsNotFatal(t *testing.T) {
	sink := &MockSink{RecordFunc: func(context.Context, audit.Event) error {
		return errors.New("sink down")
	}}
	svc, sid := setupService(t, sink)

	if _, err := svc.BookAppointment(context.Background(), sid, appointmentInput("Ann")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, _, err := svc.Summary(context.Background(), sid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != 1 {
		t.Errorf("expected 1 appointment, got %d", a)
	}
}

func TestPatientRecords_AddAndSearch(t *testing.T) {
	var events []audit.Event
	sink := &MockSink{RecordFunc: func(_ context.Context, ev audit.Event) error {
		events = append(events, ev)
		return nil
	}}
	svc, sid := setupService(t, sink)
	ctx := context.Background()

	for _, name := range []string{"John Doe", "Jane Roe"} {
		_, err := svc.AddPatientRecord(ctx, sid, records.PatientRecordInput{
			Name: name, PatientID: "ID-" + name[:1], BloodGroup: "B-",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got, err := svc.SearchPatientRecords(ctx, sid, "doe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "John Doe" {
		t.Errorf("expected John Doe only, got %+v", got)
	}

	if len(events) != 2 || events[1].Type != audit.EventPatientRecordAdded {
		t.Errorf("unexpected events %+v", events)
	}
}

func TestService_UnknownSession(t *testing.T) {
	svc, _ := setupService(t, audit.Discard{})

	_, err := svc.ListAppointments(context.Background(), uuid.New())
	if !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}
