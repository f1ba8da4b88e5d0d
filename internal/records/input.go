package records

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var ErrValidation = errors.New("validation failed")

// ValidationError names the first form field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

type AppointmentInput struct {
	Name       string     `json:"name" validate:"required"`
	Phone      string     `json:"phone" validate:"required"`
	Email      string     `json:"email" validate:"required"`
	Age        int        `json:"age" validate:"min=1,max=120"`
	Department Department `json:"department" validate:"department"`
	Doctor     string     `json:"doctor"`
	Date       time.Time  `json:"date"`
	Time       string     `json:"time" validate:"timeofday"`
	Reason     string     `json:"reason"`
	Insurance  bool       `json:"insurance"`
}

type VitalsInput struct {
	Systolic     int     `json:"bp_systolic" validate:"min=70,max=200"`
	Diastolic    int     `json:"bp_diastolic" validate:"min=40,max=130"`
	HeartRate    int     `json:"heart_rate" validate:"min=40,max=200"`
	TemperatureF float64 `json:"temperature" validate:"min=95,max=110"`
}

type PatientRecordInput struct {
	Name              string     `json:"name" validate:"required"`
	PatientID         string     `json:"patient_id" validate:"required"`
	BloodGroup        BloodGroup `json:"blood_group" validate:"bloodgroup"`
	Allergies         string     `json:"allergies"`
	ChronicConditions string     `json:"chronic_conditions"`
	Medications       string     `json:"medications"`
	EmergencyContact  string     `json:"emergency_contact"`
	// LastCheckup defaults to the current day when zero.
	LastCheckup   time.Time   `json:"last_checkup"`
	IncludeVitals bool        `json:"include_vitals"`
	Vitals        VitalsInput `json:"vitals" validate:"-"`
}

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		return Department(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("bloodgroup", func(fl validator.FieldLevel) bool {
		return BloodGroup(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(TimeLayout, fl.Field().String())
		return err == nil
	})

	return v
}

// validateStruct runs the tag rules and converts the first failure into a
// ValidationError. Field errors come back in struct declaration order.
func validateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate input: %w", err)
	}

	fe := verrs[0]
	return &ValidationError{Field: fe.Field(), Reason: describe(fe)}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "department":
		return "is not a known department"
	case "bloodgroup":
		return "is not a known blood group"
	case "timeofday":
		return "must be formatted HH:MM"
	default:
		return "failed " + fe.Tag()
	}
}
