package records

import (
	"fmt"
	"time"
)

type Department string

const (
	DeptGeneralMedicine Department = "General Medicine"
	DeptCardiology      Department = "Cardiology"
	DeptDermatology     Department = "Dermatology"
	DeptOrthopedics     Department = "Orthopedics"
	DeptGynecology      Department = "Gynecology"
	DeptPediatrics      Department = "Pediatrics"
	DeptNeurology       Department = "Neurology"
	DeptPsychiatry      Department = "Psychiatry"
)

var Departments = []Department{
	DeptGeneralMedicine,
	DeptCardiology,
	DeptDermatology,
	DeptOrthopedics,
	DeptGynecology,
	DeptPediatrics,
	DeptNeurology,
	DeptPsychiatry,
}

func (d Department) Valid() bool {
	for _, v := range Departments {
		if d == v {
			return true
		}
	}
	return false
}

type BloodGroup string

var BloodGroups = []BloodGroup{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

func (b BloodGroup) Valid() bool {
	for _, v := range BloodGroups {
		if b == v {
			return true
		}
	}
	return false
}

type AppointmentStatus string

const StatusScheduled AppointmentStatus = "Scheduled"

// TimeLayout is the time-of-day format accepted for appointments.
const TimeLayout = "15:04"

type Appointment struct {
	Seq        int
	Name       string
	Phone      string
	Email      string
	Age        int
	Department Department
	Doctor     string
	Date       time.Time
	Time       string
	Reason     string
	Insurance  bool
	Status     AppointmentStatus
}

// ConfirmationID renders the sequence number shown to the patient.
func (a Appointment) ConfirmationID() string {
	return FormatConfirmationID(a.Seq)
}

func FormatConfirmationID(seq int) string {
	return fmt.Sprintf("APT-%04d", seq)
}

type Vitals struct {
	Systolic     int
	Diastolic    int
	HeartRate    int
	TemperatureF float64
}

type PatientRecord struct {
	Name              string
	PatientID         string
	BloodGroup        BloodGroup
	Allergies         string
	ChronicConditions string
	Medications       string
	EmergencyContact  string
	LastCheckup       time.Time
	DateAdded         time.Time
	// Vitals is nil unless vitals were included at submission.
	Vitals *Vitals
}
