package calculator

import (
	"errors"
	"fmt"
)

var ErrOutOfRange = errors.New("value out of range")

// RangeError reports a calculator input outside its accepted domain.
type RangeError struct {
	Param string
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s=%g outside [%g, %g]", e.Param, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// Accepted input ranges, mirroring the form bounds of the calculators page.
const (
	MinWeightKg = 1.0
	MaxWeightKg = 500.0
	MinHeightCm = 50.0
	MaxHeightCm = 250.0
	MinAgeYears = 1
	MaxAgeYears = 120
)

func checkRange(param string, v, min, max float64) error {
	// NaN fails both comparisons, so test the accepted interval directly.
	if v >= min && v <= max {
		return nil
	}
	return &RangeError{Param: param, Value: v, Min: min, Max: max}
}

func checkBody(weightKg, heightCm float64) error {
	if err := checkRange("weight_kg", weightKg, MinWeightKg, MaxWeightKg); err != nil {
		return err
	}
	return checkRange("height_cm", heightCm, MinHeightCm, MaxHeightCm)
}

func checkAge(ageYears int) error {
	return checkRange("age", float64(ageYears), MinAgeYears, MaxAgeYears)
}
