package content

import (
	"errors"
	"fmt"

	"github.com/hackgods/healthcare-plus/internal/calculator"
	"github.com/hackgods/healthcare-plus/internal/records"
)

var ErrUnknownPage = errors.New("unknown page")

// Page is one screen of the application.
type Page int

const (
	PageHome Page = iota
	PageSymptomChecker
	PageCalculators
	PageAppointment
	PageRecords
	PageHealthInfo
	PageEmergency
)

var pageMeta = []struct {
	slug  string
	title string
}{
	PageHome:           {"home", "Home"},
	PageSymptomChecker: {"symptom_checker", "Symptom Checker"},
	PageCalculators:    {"calculators", "Health Calculators"},
	PageAppointment:    {"appointment", "Book Appointment"},
	PageRecords:        {"records", "Patient Records"},
	PageHealthInfo:     {"health_info", "Health Information"},
	PageEmergency:      {"emergency", "Emergency"},
}

func Pages() []Page {
	out := make([]Page, len(pageMeta))
	for i := range out {
		out[i] = Page(i)
	}
	return out
}

func ParsePage(slug string) (Page, error) {
	for i, m := range pageMeta {
		if m.slug == slug {
			return Page(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPage, slug)
}

func (p Page) valid() bool { return p >= 0 && int(p) < len(pageMeta) }

func (p Page) Slug() string {
	if !p.valid() {
		return ""
	}
	return pageMeta[p].slug
}

func (p Page) Title() string {
	if !p.valid() {
		return ""
	}
	return pageMeta[p].title
}

// View is the renderable content of a page. Sections not used by a page stay empty.
type View struct {
	Slug     string           `json:"slug"`
	Title    string           `json:"title"`
	Notice   string           `json:"notice,omitempty"`
	Metrics  []Metric         `json:"metrics,omitempty"`
	Tips     []string         `json:"tips,omitempty"`
	Sections []Section        `json:"sections,omitempty"`
	Options  map[string][]any `json:"options,omitempty"`
	Charts   []Chart          `json:"charts,omitempty"`
}

type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta"`
}

type Section struct {
	Heading string   `json:"heading"`
	Items   []string `json:"items"`
}

type Chart struct {
	Title  string   `json:"title"`
	Kind   string   `json:"kind"`
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Render builds the view for p. Each page kind has its own builder.
func Render(p Page) (View, error) {
	var v View
	switch p {
	case PageHome:
		v = homeView()
	case PageSymptomChecker:
		v = symptomCheckerView()
	case PageCalculators:
		v = calculatorsView()
	case PageAppointment:
		v = appointmentView()
	case PageRecords:
		v = recordsView()
	case PageHealthInfo:
		v = healthInfoView()
	case PageEmergency:
		v = emergencyView()
	default:
		return View{}, fmt.Errorf("%w: %d", ErrUnknownPage, int(p))
	}

	v.Slug = p.Slug()
	v.Title = p.Title()
	return v, nil
}

func homeView() View {
	return View{
		Notice: "Your comprehensive medical companion for better health management",
		Metrics: []Metric{
			{"Patients Served", "10,000+", "15%"},
			{"Doctors Available", "150+", "8%"},
			{"Partner Hospitals", "25", "3"},
			{"Satisfaction Rate", "98.5%", "2.1%"},
		},
		Tips: DailyTips,
	}
}

func symptomCheckerView() View {
	return View{
		Notice: disclaimer,
		Options: map[string][]any{
			"gender":   toAny(Genders),
			"duration": toAny(Durations),
			"severity": toAny(Severities),
			"symptoms": toAny(Symptoms),
		},
	}
}

func calculatorsView() View {
	levels := calculator.ActivityLevels()
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.String()
	}

	return View{
		Options: map[string][]any{
			"calculators":     {"BMI Calculator", "BMR Calculator", "Heart Rate Zones", "Water Intake Calculator"},
			"gender":          {string(calculator.GenderMale), string(calculator.GenderFemale)},
			"activity_levels": toAny(names),
		},
	}
}

func appointmentView() View {
	return View{
		Options: map[string][]any{
			"department": toAny(records.Departments),
			"doctor":     toAny(Doctors),
		},
	}
}

func recordsView() View {
	return View{
		Notice: "Add a record or search the records of this session by patient name or ID.",
		Options: map[string][]any{
			"blood_group": toAny(records.BloodGroups),
		},
	}
}

func healthInfoView() View {
	v := View{
		Options: map[string][]any{
			"category": toAny(InfoCategories),
		},
	}
	for _, c := range InfoCategories {
		v.Sections = append(v.Sections, healthInfo[c]...)
	}
	v.Charts = []Chart{nutrientChart, exerciseChart}
	return v
}

func emergencyView() View {
	return View{
		Notice:   "If this is a life-threatening emergency, call 911 immediately!",
		Sections: emergencySections,
	}
}

func toAny[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
