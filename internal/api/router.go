package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hackgods/healthcare-plus/internal/clinic"
	"github.com/hackgods/healthcare-plus/internal/session"
)

type RouterConfig struct {
	Clinic   *clinic.Service
	Sessions *session.Manager
	PgPool   *pgxpool.Pool // optional
	Redis    *redis.Client // optional
	Logger   zerolog.Logger
	Env      string
	Version  string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Sessions, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Get("/pages", listPagesHandler())
	r.Get("/pages/{page}", getPageHandler(cfg.Logger))
	r.Get("/pages/health_info/{category}", healthInfoHandler(cfg.Logger))

	r.Route("/calculators", func(r chi.Router) {
		r.Post("/bmi", bmiHandler(cfg.Logger))
		r.Post("/bmr", bmrHandler(cfg.Logger))
		r.Post("/calorie-needs", calorieNeedsHandler(cfg.Logger))
		r.Post("/heart-rate-zones", heartRateZonesHandler(cfg.Logger))
		r.Post("/water-intake", waterIntakeHandler(cfg.Logger))
	})
	r.Post("/symptoms/analyze", analyzeSymptomsHandler(cfg.Logger))

	r.Post("/session", startSessionHandler(cfg.Sessions))
	r.Delete("/session", endSessionHandler(cfg.Sessions, cfg.Logger))

	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware(cfg.Sessions))

		r.Get("/session", describeSessionHandler(cfg.Sessions, cfg.Clinic, cfg.Logger))
		r.Post("/appointments", bookAppointmentHandler(cfg.Clinic, cfg.Logger))
		r.Get("/appointments", listAppointmentsHandler(cfg.Clinic, cfg.Logger))
		r.Post("/records", addPatientRecordHandler(cfg.Clinic, cfg.Logger))
		r.Get("/records", searchPatientRecordsHandler(cfg.Clinic, cfg.Logger))
	})

	return r
}
