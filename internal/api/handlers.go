package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/hackgods/healthcare-plus/internal/calculator"
	"github.com/hackgods/healthcare-plus/internal/content"
)

type PageSummary struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

func listPagesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pages := content.Pages()
		out := make([]PageSummary, 0, len(pages))
		for _, p := range pages {
			out = append(out, PageSummary{Slug: p.Slug(), Title: p.Title()})
		}
		writeJSON(w, http.StatusOK, ListResponse[PageSummary]{Count: len(out), Items: out})
	}
}

func getPageHandler(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := content.ParsePage(chi.URLParam(r, "page"))
		if err != nil {
			handleError(w, logger, err)
			return
		}

		view, err := content.Render(page)
		if err != nil {
			handleError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}

func healthInfoHandler(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sections, err := content.HealthInfo(chi.URLParam(r, "category"))
		if err != nil {
			handleError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, ListResponse[content.Section]{Count: len(sections), Items: sections})
	}
}

func bmiHandler(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BMIRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		res, err := calculator.BMI(req.WeightKg, req.HeightCm)
		if err != nil {
			handleError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, BMIResponse{
			BMI:      round1(res.BMI),
			Category: string(res.Category),
		})
	}
}

func bmrHandler(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BMRRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		gender, err := calculator.ParseGender(req.Gender)
		if err != nil {
			handleError(w, logger, err)
			return
		}

		bmr, err := calculator.BMR(gender, req.WeightKg, req.HeightCm, req.Age)
		if err != nil {
			handleError(w, logger, err)
			return
		}

		needs, err := calculator.CalorieNeeds(bmr)
		if err != nil {
			handleError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, BMRResponse{
			BMR:          round1(bmr),
			CalorieNeeds: newCalorieNeeds(needs),
		})
	}
}

func calorieNeedsHandler(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CalorieNeedsRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		needs, err := calculator.CalorieNeeds(req.BMR)
		if err != nil {
			handleError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, CalorieNeedsResponse{CalorieNeeds: newCalorieNeeds(needs)})
	}
}

func heartRateZonesHandler(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AgeRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		maxHR, err := calculator.MaxHeartRate(req.Age)
		if err != nil {
			handleError(w, logger, err)
			return
		}
		zones, err := calculator.HeartRateZones(req.Age)
		if err != nil {
			handleError(w, logger, err)
			return
		}

		resp := HeartRateZonesResponse{MaxHeartRate: maxHR}
		for _, z := range zones {
			resp.Zones = append(resp.Zones, HeartRateZoneResponse{
				Name:       z.Name,
				MinPercent: z.MinPercent,
				MaxPercent: z.MaxPercent,
				MinBPM:     z.MinBPM,
				MaxBPM:     z.MaxBPM,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func waterIntakeHandler(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req WaterIntakeRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		res, err := calculator.WaterIntake(req.WeightKg)
		if err != nil {
			handleError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, WaterIntakeResponse{Liters: res.Liters, Glasses: res.Glasses})
	}
}

func analyzeSymptomsHandler(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SymptomRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		analysis, err := content.AnalyzeSymptoms(content.SymptomReport{
			Age:            req.Age,
			Gender:         req.Gender,
			Duration:       req.Duration,
			Severity:       req.Severity,
			Fever:          req.Fever,
			Pain:           req.Pain,
			Symptoms:       req.Symptoms,
			AdditionalInfo: req.AdditionalInfo,
		})
		if err != nil {
			handleError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, analysis)
	}
}
