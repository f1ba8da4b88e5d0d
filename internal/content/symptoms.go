package content

import (
	"errors"
	"fmt"
	"slices"
)

var ErrInvalidReport = errors.New("invalid symptom report")

var (
	Genders    = []string{"Male", "Female", "Other"}
	Durations  = []string{"Less than 24 hours", "1-3 days", "4-7 days", "1-2 weeks", "More than 2 weeks"}
	Severities = []string{"Mild", "Moderate", "Severe"}
	Symptoms   = []string{
		"Headache", "Fever", "Cough", "Sore throat", "Nausea", "Vomiting",
		"Diarrhea", "Fatigue", "Dizziness", "Chest pain", "Shortness of breath",
		"Abdominal pain", "Back pain", "Joint pain", "Rash", "Swelling",
	}
)

type SymptomReport struct {
	Age            int
	Gender         string
	Duration       string
	Severity       string
	Fever          bool
	Pain           bool
	Symptoms       []string
	AdditionalInfo string
}

type Advisory struct {
	Level   string `json:"level"` // "warning" or "info"
	Title   string `json:"title"`
	Message string `json:"message"`
}

type Analysis struct {
	Disclaimer string     `json:"disclaimer"`
	Advisories []Advisory `json:"advisories"`
	Chart      *Chart     `json:"chart,omitempty"`
}

var generalAdvice = Advisory{
	Level:   "info",
	Title:   "General Recommendations",
	Message: "Rest and stay hydrated. Monitor symptoms. Contact your healthcare provider if symptoms worsen. " +
		"Seek immediate care for severe symptoms.",
}

// AnalyzeSymptoms turns a report into rule-based advisories. It is not a diagnosis.
func AnalyzeSymptoms(r SymptomReport) (Analysis, error) {
	if err := r.validate(); err != nil {
		return Analysis{}, err
	}

	a := Analysis{Disclaimer: disclaimer}

	if r.Fever || slices.Contains(r.Symptoms, "Fever") {
		a.Advisories = append(a.Advisories, Advisory{
			Level:   "warning",
			Title:   "Fever detected",
			Message: "Monitor temperature and stay hydrated. Consider seeing a doctor if fever persists or exceeds 101°F (38.3°C).",
		})
	}
	if slices.Contains(r.Symptoms, "Chest pain") {
		a.Advisories = append(a.Advisories, Advisory{
			Level:   "warning",
			Title:   "Chest pain",
			Message: "This could be serious. Consider seeking immediate medical attention if severe or accompanied by shortness of breath.",
		})
	}
	if r.Severity == "Severe" {
		a.Advisories = append(a.Advisories, Advisory{
			Level:   "warning",
			Title:   "Severe symptoms",
			Message: "Consider seeking medical attention promptly.",
		})
	}
	a.Advisories = append(a.Advisories, generalAdvice)

	if len(r.Symptoms) > 1 {
		ones := make([]float64, len(r.Symptoms))
		for i := range ones {
			ones[i] = 1
		}
		a.Chart = &Chart{
			Title:  "Reported Symptoms",
			Kind:   "bar",
			Labels: slices.Clone(r.Symptoms),
			Series: []Series{{Name: "Presence", Values: ones}},
		}
	}

	return a, nil
}

func (r SymptomReport) validate() error {
	if r.Age < 1 || r.Age > 120 {
		return fmt.Errorf("%w: age %d outside [1, 120]", ErrInvalidReport, r.Age)
	}
	if !slices.Contains(Genders, r.Gender) {
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidReport, r.Gender)
	}
	if !slices.Contains(Durations, r.Duration) {
		return fmt.Errorf("%w: unknown duration %q", ErrInvalidReport, r.Duration)
	}
	if !slices.Contains(Severities, r.Severity) {
		return fmt.Errorf("%w: unknown severity %q", ErrInvalidReport, r.Severity)
	}
	if len(r.Symptoms) == 0 {
		return fmt.Errorf("%w: select at least one symptom", ErrInvalidReport)
	}
	for _, s := range r.Symptoms {
		if !slices.Contains(Symptoms, s) {
			return fmt.Errorf("%w: unknown symptom %q", ErrInvalidReport, s)
		}
	}
	return nil
}
