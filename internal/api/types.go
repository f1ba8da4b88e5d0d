package api

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/hackgods/healthcare-plus/internal/calculator"
	"github.com/hackgods/healthcare-plus/internal/records"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04"
)

type BMIRequest struct {
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
}

type BMIResponse struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
}

type BMRRequest struct {
	Gender   string  `json:"gender"`
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
	Age      int     `json:"age"`
}

type CalorieNeedResponse struct {
	Activity   string  `json:"activity"`
	Multiplier float64 `json:"multiplier"`
	Calories   float64 `json:"calories"`
}

type BMRResponse struct {
	BMR          float64               `json:"bmr"`
	CalorieNeeds []CalorieNeedResponse `json:"calorie_needs"`
}

type CalorieNeedsRequest struct {
	BMR float64 `json:"bmr"`
}

type CalorieNeedsResponse struct {
	CalorieNeeds []CalorieNeedResponse `json:"calorie_needs"`
}

type AgeRequest struct {
	Age int `json:"age"`
}

type HeartRateZoneResponse struct {
	Name       string `json:"name"`
	MinPercent int    `json:"min_percent"`
	MaxPercent int    `json:"max_percent"`
	MinBPM     int    `json:"min_bpm"`
	MaxBPM     int    `json:"max_bpm"`
}

type HeartRateZonesResponse struct {
	MaxHeartRate int                     `json:"max_heart_rate"`
	Zones        []HeartRateZoneResponse `json:"zones"`
}

type WaterIntakeRequest struct {
	WeightKg float64 `json:"weight_kg"`
}

type WaterIntakeResponse struct {
	Liters  float64 `json:"liters"`
	Glasses int     `json:"glasses"`
}

type SymptomRequest struct {
	Age            int      `json:"age"`
	Gender         string   `json:"gender"`
	Duration       string   `json:"duration"`
	Severity       string   `json:"severity"`
	Fever          bool     `json:"fever"`
	Pain           bool     `json:"pain"`
	Symptoms       []string `json:"symptoms"`
	AdditionalInfo string   `json:"additional_info"`
}

type SessionResponse struct {
	ID           uuid.UUID `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	LastSeen     time.Time `json:"last_seen"`
	Appointments int       `json:"appointments"`
	Records      int       `json:"patient_records"`
}

// AppointmentRequest is the booking form. Dates travel as YYYY-MM-DD.
type AppointmentRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Age        int    `json:"age"`
	Department string `json:"department"`
	Doctor     string `json:"doctor"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Reason     string `json:"reason"`
	Insurance  bool   `json:"insurance"`
}

func (r AppointmentRequest) toInput() (records.AppointmentInput, error) {
	in := records.AppointmentInput{
		Name:       r.Name,
		Phone:      r.Phone,
		Email:      r.Email,
		Age:        r.Age,
		Department: records.Department(r.Department),
		Doctor:     r.Doctor,
		Time:       r.Time,
		Reason:     r.Reason,
		Insurance:  r.Insurance,
	}
	if r.Date != "" {
		d, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			return records.AppointmentInput{}, &records.ValidationError{Field: "date", Reason: "must be formatted YYYY-MM-DD"}
		}
		in.Date = d
	}
	return in, nil
}

type AppointmentResponse struct {
	ConfirmationID string `json:"confirmation_id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Age            int    `json:"age"`
	Department     string `json:"department"`
	Doctor         string `json:"doctor"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Reason         string `json:"reason"`
	Insurance      bool   `json:"insurance"`
	Status         string `json:"status"`
}

func newAppointmentResponse(a records.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ConfirmationID: a.ConfirmationID(),
		Name:           a.Name,
		Phone:          a.Phone,
		Email:          a.Email,
		Age:            a.Age,
		Department:     string(a.Department),
		Doctor:         a.Doctor,
		Date:           a.Date.Format(dateLayout),
		Time:           a.Time,
		Reason:         a.Reason,
		Insurance:      a.Insurance,
		Status:         string(a.Status),
	}
}

type VitalsPayload struct {
	Systolic     int     `json:"bp_systolic"`
	Diastolic    int     `json:"bp_diastolic"`
	HeartRate    int     `json:"heart_rate"`
	TemperatureF float64 `json:"temperature"`
}

type PatientRecordRequest struct {
	Name              string         `json:"name"`
	PatientID         string         `json:"patient_id"`
	BloodGroup        string         `json:"blood_group"`
	Allergies         string         `json:"allergies"`
	ChronicConditions string         `json:"chronic_conditions"`
	Medications       string         `json:"medications"`
	EmergencyContact  string         `json:"emergency_contact"`
	LastCheckup       string         `json:"last_checkup"`
	IncludeVitals     bool           `json:"include_vitals"`
	Vitals            *VitalsPayload `json:"vitals"`
}

func (r PatientRecordRequest) toInput() (records.PatientRecordInput, error) {
	in := records.PatientRecordInput{
		Name:              r.Name,
		PatientID:         r.PatientID,
		BloodGroup:        records.BloodGroup(r.BloodGroup),
		Allergies:         r.Allergies,
		ChronicConditions: r.ChronicConditions,
		Medications:       r.Medications,
		EmergencyContact:  r.EmergencyContact,
		IncludeVitals:     r.IncludeVitals,
	}
	if r.LastCheckup != "" {
		d, err := time.Parse(dateLayout, r.LastCheckup)
		if err != nil {
			return records.PatientRecordInput{}, &records.ValidationError{Field: "last_checkup", Reason: "must be formatted YYYY-MM-DD"}
		}
		in.LastCheckup = d
	}
	if r.IncludeVitals {
		if r.Vitals == nil {
			return records.PatientRecordInput{}, &records.ValidationError{Field: "vitals", Reason: "is required when include_vitals is set"}
		}
		in.Vitals = records.VitalsInput{
			Systolic:     r.Vitals.Systolic,
			Diastolic:    r.Vitals.Diastolic,
			HeartRate:    r.Vitals.HeartRate,
			TemperatureF: r.Vitals.TemperatureF,
		}
	}
	return in, nil
}

type PatientRecordResponse struct {
	Name              string         `json:"name"`
	PatientID         string         `json:"patient_id"`
	BloodGroup        string         `json:"blood_group"`
	Allergies         string         `json:"allergies"`
	ChronicConditions string         `json:"chronic_conditions"`
	Medications       string         `json:"medications"`
	EmergencyContact  string         `json:"emergency_contact"`
	LastCheckup       string         `json:"last_checkup"`
	DateAdded         string         `json:"date_added"`
	Vitals            *VitalsPayload `json:"vitals,omitempty"`
}

func newPatientRecordResponse(rec records.PatientRecord) PatientRecordResponse {
	resp := PatientRecordResponse{
		Name:              rec.Name,
		PatientID:         rec.PatientID,
		BloodGroup:        string(rec.BloodGroup),
		Allergies:         rec.Allergies,
		ChronicConditions: rec.ChronicConditions,
		Medications:       rec.Medications,
		EmergencyContact:  rec.EmergencyContact,
		LastCheckup:       rec.LastCheckup.Format(dateLayout),
		DateAdded:         rec.DateAdded.Format(timestampLayout),
	}
	if rec.Vitals != nil {
		resp.Vitals = &VitalsPayload{
			Systolic:     rec.Vitals.Systolic,
			Diastolic:    rec.Vitals.Diastolic,
			HeartRate:    rec.Vitals.HeartRate,
			TemperatureF: rec.Vitals.TemperatureF,
		}
	}
	return resp
}

type ListResponse[T any] struct {
	Count int `json:"count"`
	Items []T `json:"items"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Field   string `json:"field,omitempty"`
}

func newCalorieNeeds(needs []calculator.CalorieNeed) []CalorieNeedResponse {
	out := make([]CalorieNeedResponse, 0, len(needs))
	for _, n := range needs {
		out = append(out, CalorieNeedResponse{
			Activity:   n.Level.String(),
			Multiplier: n.Multiplier,
			Calories:   math.Round(n.Calories),
		})
	}
	return out
}

// round1 rounds to one decimal place for display.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
