package calculator

// Category is the coarse BMI classification.
type Category string

const (
	CategoryUnderweight Category = "Underweight"
	CategoryNormal      Category = "Normal weight"
	CategoryOverweight  Category = "Overweight"
	CategoryObese       Category = "Obese"
)

type BMIResult struct {
	BMI      float64
	Category Category
}

// BMI computes weight / height² with height given in centimetres.
func BMI(weightKg, heightCm float64) (BMIResult, error) {
	if err := checkBody(weightKg, heightCm); err != nil {
		return BMIResult{}, err
	}

	m := heightCm / 100
	bmi := weightKg / (m * m)

	return BMIResult{BMI: bmi, Category: Categorize(bmi)}, nil
}

// Categorize maps a BMI onto half-open intervals, lower bound inclusive.
func Categorize(bmi float64) Category {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryNormal
	case bmi < 30:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}
