package content

import (
	"errors"
	"fmt"
)

const disclaimer = "This tool is for informational purposes only. Please consult a healthcare professional for proper diagnosis and treatment."

var DailyTips = []string{
	"Drink at least 8 glasses of water daily",
	"Take a 30-minute walk every day",
	"Include 5 servings of fruits and vegetables in your diet",
	"Get 7-9 hours of quality sleep",
	"Practice stress management techniques",
	"Schedule regular health check-ups",
}

var Doctors = []string{
	"Dr. Smith (General Medicine)",
	"Dr. Johnson (Cardiology)",
	"Dr. Brown (Dermatology)",
	"Dr. Davis (Orthopedics)",
}

var InfoCategories = []string{
	"General Health",
	"Nutrition",
	"Exercise",
	"Mental Health",
	"Preventive Care",
}

var ErrUnknownCategory = errors.New("unknown health information category")

var healthInfo = map[string][]Section{
	"General Health": {
		{"Daily Health Habits", []string{
			"Hydration: Drink 8-10 glasses of water daily",
			"Sleep: Aim for 7-9 hours of quality sleep",
			"Hygiene: Regular handwashing and dental care",
			"Stress Management: Practice relaxation techniques",
		}},
		{"Warning Signs to Watch For", []string{
			"Persistent fever above 101°F (38.3°C)",
			"Severe headaches or vision changes",
			"Chest pain or difficulty breathing",
			"Sudden weight loss or gain",
			"Changes in bowel or bladder habits",
		}},
	},
	"Nutrition": {
		{"Balanced Diet Basics", []string{
			"Fruits & Vegetables: 5-9 servings daily",
			"Whole Grains: 3-5 servings daily",
			"Protein: Lean meats, fish, beans, nuts",
			"Dairy: Low-fat options, 2-3 servings daily",
			"Healthy Fats: Olive oil, avocados, nuts",
		}},
		{"Foods to Limit", []string{
			"Processed and packaged foods",
			"Sugary drinks and snacks",
			"High-sodium foods",
			"Trans fats and saturated fats",
		}},
	},
	"Exercise": {
		{"Weekly Exercise Recommendations", []string{
			"Cardio: 150 minutes moderate or 75 minutes vigorous",
			"Strength Training: 2-3 sessions per week",
			"Flexibility: Daily stretching or yoga",
			"Balance: Especially important for older adults",
		}},
		{"Types of Exercise", []string{
			"Aerobic: Walking, swimming, cycling, dancing",
			"Strength: Weight lifting, resistance bands, bodyweight",
			"Flexibility: Stretching, yoga, tai chi",
			"Balance: Yoga, tai chi, balance exercises",
		}},
	},
	"Mental Health": {
		{"Everyday Mental Wellbeing", []string{
			"Keep a regular sleep and wake schedule",
			"Stay connected with friends and family",
			"Limit alcohol and avoid recreational drugs",
			"Call or text 988 if you are in crisis",
		}},
	},
	"Preventive Care": {
		{"Routine Screening", []string{
			"Annual check-up with your primary care doctor",
			"Blood pressure check at least every 2 years",
			"Dental check-up every 6 months",
			"Keep vaccinations up to date",
		}},
	},
}

// HealthInfo returns the sections of one information category.
func HealthInfo(category string) ([]Section, error) {
	sections, ok := healthInfo[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return sections, nil
}

var nutrientChart = Chart{
	Title:  "Recommended Daily Nutrient Distribution",
	Kind:   "pie",
	Labels: []string{"Carbs", "Protein", "Fats", "Vitamins", "Minerals"},
	Series: []Series{{Name: "percent", Values: []float64{45, 20, 30, 3, 2}}},
}

var exerciseChart = Chart{
	Title:  "Sample Weekly Exercise Schedule",
	Kind:   "bar",
	Labels: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
	Series: []Series{
		{Name: "Cardio (min)", Values: []float64{30, 0, 45, 0, 30, 60, 0}},
		{Name: "Strength (min)", Values: []float64{0, 45, 0, 45, 0, 0, 30}},
	},
}

var emergencySections = []Section{
	{"When to Call 911", []string{
		"Chest pain or heart attack symptoms",
		"Difficulty breathing or choking",
		"Severe bleeding or trauma",
		"Loss of consciousness",
		"Severe allergic reactions",
		"Stroke symptoms (FAST: Face, Arms, Speech, Time)",
		"Severe burns",
		"Drug overdose",
	}},
	{"Important Numbers", []string{
		"Emergency Services: 911 (US) / 108 (India)",
		"Poison Control: 1-800-222-1222",
		"Crisis/Suicide Hotline: 988",
		"Non-Emergency Medical: 311",
	}},
	{"Nearest Hospitals", []string{
		"City General Hospital: 2.1 miles, (555) 123-4567, Emergency Room 24/7",
		"Metro Medical Center: 3.5 miles, (555) 234-5678, Level 1 Trauma Center",
		"Community Health Hospital: 4.2 miles, (555) 345-6789, Pediatric Emergency",
	}},
	{"First Aid Basics", []string{
		"CPR: 30 compressions, 2 breaths",
		"Choking: Heimlich maneuver",
		"Bleeding: Apply direct pressure",
		"Burns: Cool water, no ice",
		"Poisoning: Call Poison Control first",
	}},
}
