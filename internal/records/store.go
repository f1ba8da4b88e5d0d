package records

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Store is the append-only appointment and patient record log of one session.
// It is not safe for concurrent use; callers serialize access per session.
type Store struct {
	appointments []Appointment
	patients     []PatientRecord

	now      func() time.Time
	validate *validator.Validate
}

type Option func(*Store)

// WithClock overrides the time source used for date checks and date_added.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		now:      time.Now,
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddAppointment validates the form and appends a Scheduled appointment whose
// sequence number is the collection size plus one.
func (s *Store) AddAppointment(in AppointmentInput) (Appointment, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return Appointment{}, err
	}

	today := startOfDay(s.now())
	if in.Date.IsZero() {
		return Appointment{}, &ValidationError{Field: "date", Reason: "is required"}
	}
	// The form date is a calendar date; keep its day in the store clock's zone.
	y, m, d := in.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	if date.Before(today) {
		return Appointment{}, &ValidationError{Field: "date", Reason: "must be today or later"}
	}

	appt := Appointment{
		Seq:        len(s.appointments) + 1,
		Name:       in.Name,
		Phone:      in.Phone,
		Email:      in.Email,
		Age:        in.Age,
		Department: in.Department,
		Doctor:     in.Doctor,
		Date:       date,
		Time:       in.Time,
		Reason:     in.Reason,
		Insurance:  in.Insurance,
		Status:     StatusScheduled,
	}
	s.appointments = append(s.appointments, appt)

	return appt, nil
}

// AddPatientRecord validates the form and appends the record, attaching vitals
// only when the form asked for them.
func (s *Store) AddPatientRecord(in PatientRecordInput) (PatientRecord, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return PatientRecord{}, err
	}

	var vitals *Vitals
	if in.IncludeVitals {
		if err := validateStruct(s.validate, in.Vitals); err != nil {
			return PatientRecord{}, err
		}
		vitals = &Vitals{
			Systolic:     in.Vitals.Systolic,
			Diastolic:    in.Vitals.Diastolic,
			HeartRate:    in.Vitals.HeartRate,
			TemperatureF: in.Vitals.TemperatureF,
		}
	}

	now := s.now()
	lastCheckup := in.LastCheckup
	if lastCheckup.IsZero() {
		lastCheckup = now
	}

	rec := PatientRecord{
		Name:              in.Name,
		PatientID:         in.PatientID,
		BloodGroup:        in.BloodGroup,
		Allergies:         in.Allergies,
		ChronicConditions: in.ChronicConditions,
		Medications:       in.Medications,
		EmergencyContact:  in.EmergencyContact,
		LastCheckup:       startOfDay(lastCheckup),
		DateAdded:         now,
		Vitals:            vitals,
	}
	s.patients = append(s.patients, rec)

	return rec, nil
}

// ListAppointments returns a copy of all appointments in insertion order.
func (s *Store) ListAppointments() []Appointment {
	out := make([]Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}

// SearchPatientRecords returns records whose name or patient id contains term,
// ignoring case. An empty term matches everything. Insertion order is kept.
func (s *Store) SearchPatientRecords(term string) []PatientRecord {
	out := make([]PatientRecord, 0, len(s.patients))
	needle := strings.ToLower(term)

	for _, rec := range s.patients {
		if needle == "" ||
			strings.Contains(strings.ToLower(rec.Name), needle) ||
			strings.Contains(strings.ToLower(rec.PatientID), needle) {
			out = append(out, cloneRecord(rec))
		}
	}
	return out
}

func (s *Store) Counts() (appointments, patients int) {
	return len(s.appointments), len(s.patients)
}

func cloneRecord(rec PatientRecord) PatientRecord {
	if rec.Vitals != nil {
		v := *rec.Vitals
		rec.Vitals = &v
	}
	return rec
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
