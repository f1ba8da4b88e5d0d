package calculator

import "math"

type HeartRateZone struct {
	Name       string
	MinPercent int
	MaxPercent int
	MinBPM     int
	MaxBPM     int
}

var zoneBands = []struct {
	name     string
	min, max int
}{
	{"Recovery", 50, 60},
	{"Fat burn", 60, 70},
	{"Aerobic", 70, 80},
	{"Anaerobic", 80, 90},
	{"Maximum", 90, 100},
}

// MaxHeartRate uses the 220 - age estimate.
func MaxHeartRate(ageYears int) (int, error) {
	if err := checkAge(ageYears); err != nil {
		return 0, err
	}
	return 220 - ageYears, nil
}

func HeartRateZones(ageYears int) ([]HeartRateZone, error) {
	maxHR, err := MaxHeartRate(ageYears)
	if err != nil {
		return nil, err
	}

	zones := make([]HeartRateZone, 0, len(zoneBands))
	for _, b := range zoneBands {
		zones = append(zones, HeartRateZone{
			Name:       b.name,
			MinPercent: b.min,
			MaxPercent: b.max,
			MinBPM:     int(math.Round(float64(maxHR*b.min) / 100)),
			MaxBPM:     int(math.Round(float64(maxHR*b.max) / 100)),
		})
	}
	return zones, nil
}

const (
	waterMlPerKg = 35
	glassMl      = 250
)

type WaterIntakeResult struct {
	Liters  float64
	Glasses int
}

// WaterIntake estimates daily fluid needs from body weight.
func WaterIntake(weightKg float64) (WaterIntakeResult, error) {
	if err := checkRange("weight_kg", weightKg, MinWeightKg, MaxWeightKg); err != nil {
		return WaterIntakeResult{}, err
	}

	ml := weightKg * waterMlPerKg
	return WaterIntakeResult{
		Liters:  ml / 1000,
		Glasses: int(math.Ceil(ml / glassMl)),
	}, nil
}
