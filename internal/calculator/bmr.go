package calculator

import (
	"fmt"
	"math"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case GenderMale, GenderFemale:
		return Gender(s), nil
	}
	return "", fmt.Errorf("gender %q: %w", s, ErrOutOfRange)
}

// BMR estimates basal metabolic rate in kcal/day with the Mifflin-St Jeor equation.
func BMR(gender Gender, weightKg, heightCm float64, ageYears int) (float64, error) {
	if _, err := ParseGender(string(gender)); err != nil {
		return 0, err
	}
	if err := checkBody(weightKg, heightCm); err != nil {
		return 0, err
	}
	if err := checkAge(ageYears); err != nil {
		return 0, err
	}

	base := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if gender == GenderMale {
		return base + 5, nil
	}
	return base - 161, nil
}

type ActivityLevel int

const (
	Sedentary ActivityLevel = iota
	LightlyActive
	ModeratelyActive
	VeryActive
	ExtremelyActive
)

var activityLevels = []struct {
	name       string
	multiplier float64
}{
	Sedentary:        {"Sedentary", 1.2},
	LightlyActive:    {"Lightly active", 1.375},
	ModeratelyActive: {"Moderately active", 1.55},
	VeryActive:       {"Very active", 1.725},
	ExtremelyActive:  {"Extremely active", 1.9},
}

// ActivityLevels returns every level in ascending order of activity.
func ActivityLevels() []ActivityLevel {
	levels := make([]ActivityLevel, len(activityLevels))
	for i := range levels {
		levels[i] = ActivityLevel(i)
	}
	return levels
}

func (l ActivityLevel) String() string {
	if l < 0 || int(l) >= len(activityLevels) {
		return fmt.Sprintf("ActivityLevel(%d)", int(l))
	}
	return activityLevels[l].name
}

func (l ActivityLevel) Multiplier() float64 {
	if l < 0 || int(l) >= len(activityLevels) {
		return 0
	}
	return activityLevels[l].multiplier
}

type CalorieNeed struct {
	Level      ActivityLevel
	Multiplier float64
	Calories   float64
}

// CalorieNeeds scales a BMR by each activity multiplier, preserving level order.
func CalorieNeeds(bmr float64) ([]CalorieNeed, error) {
	if !(bmr > 0) {
		return nil, &RangeError{Param: "bmr", Value: bmr, Min: 0, Max: math.Inf(1)}
	}

	needs := make([]CalorieNeed, 0, len(activityLevels))
	for _, level := range ActivityLevels() {
		m := level.Multiplier()
		needs = append(needs, CalorieNeed{
			Level:      level,
			Multiplier: m,
			Calories:   bmr * m,
		})
	}
	return needs, nil
}
