// Package fixtures generates realistic form submissions for the load
// simulator and for tests. Every generated input passes store validation.
package fixtures

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/hackgods/healthcare-plus/internal/content"
	"github.com/hackgods/healthcare-plus/internal/records"
)

var (
	allergies  = []string{"", "Penicillin", "Peanuts", "Latex", "Shellfish", "Pollen"}
	conditions = []string{"", "Hypertension", "Type 2 diabetes", "Asthma", "Hypothyroidism"}
	medication = []string{"", "Metformin 500mg", "Lisinopril 10mg", "Albuterol inhaler", "Levothyroxine 50mcg"}
	reasons    = []string{"Routine check-up", "Follow-up visit", "Persistent cough", "Skin rash", "Back pain", "Headaches"}
	slots      = []string{"09:00", "09:30", "10:00", "11:15", "13:00", "14:30", "16:45"}
)

// Appointment returns a booking dated between today and 30 days after now.
func Appointment(now time.Time) records.AppointmentInput {
	dept := records.Departments[gofakeit.Number(0, len(records.Departments)-1)]
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	return records.AppointmentInput{
		Name:       gofakeit.Name(),
		Phone:      gofakeit.Phone(),
		Email:      gofakeit.Email(),
		Age:        gofakeit.Number(1, 95),
		Department: dept,
		Doctor:     gofakeit.RandomString(content.Doctors),
		Date:       day.AddDate(0, 0, gofakeit.Number(0, 30)),
		Time:       gofakeit.RandomString(slots),
		Reason:     gofakeit.RandomString(reasons),
		Insurance:  gofakeit.Bool(),
	}
}

// PatientRecord returns a record; roughly half include vitals.
func PatientRecord(now time.Time) records.PatientRecordInput {
	group := records.BloodGroups[gofakeit.Number(0, len(records.BloodGroups)-1)]

	in := records.PatientRecordInput{
		Name:              gofakeit.Name(),
		PatientID:         PatientID(),
		BloodGroup:        group,
		Allergies:         gofakeit.RandomString(allergies),
		ChronicConditions: gofakeit.RandomString(conditions),
		Medications:       gofakeit.RandomString(medication),
		EmergencyContact:  fmt.Sprintf("%s %s", gofakeit.Name(), gofakeit.Phone()),
		LastCheckup:       now.AddDate(0, 0, -gofakeit.Number(0, 365)),
		IncludeVitals:     gofakeit.Bool(),
	}
	if in.IncludeVitals {
		in.Vitals = Vitals()
	}
	return in
}

func Vitals() records.VitalsInput {
	return records.VitalsInput{
		Systolic:     gofakeit.Number(95, 160),
		Diastolic:    gofakeit.Number(60, 100),
		HeartRate:    gofakeit.Number(55, 110),
		TemperatureF: float64(gofakeit.Number(970, 1010)) / 10,
	}
}

func PatientID() string {
	return fmt.Sprintf("P-%05d", gofakeit.Number(1, 99999))
}

// SearchTerm picks a term likely to hit something: part of a name or an id prefix.
func SearchTerm(rec records.PatientRecordInput) string {
	if gofakeit.Bool() {
		return strings.ToLower(strings.Fields(rec.Name)[0])
	}
	return rec.PatientID[:4]
}

// SymptomReport returns a valid report with one to four symptoms.
func SymptomReport() content.SymptomReport {
	n := gofakeit.Number(1, 4)
	picked := make([]string, 0, n)
	seen := make(map[string]bool, n)
	for len(picked) < n {
		s := gofakeit.RandomString(content.Symptoms)
		if seen[s] {
			continue
		}
		seen[s] = true
		picked = append(picked, s)
	}

	return content.SymptomReport{
		Age:      gofakeit.Number(1, 95),
		Gender:   gofakeit.RandomString(content.Genders),
		Duration: gofakeit.RandomString(content.Durations),
		Severity: gofakeit.RandomString(content.Severities),
		Fever:    gofakeit.Bool(),
		Pain:     gofakeit.Bool(),
		Symptoms: picked,
	}
}
