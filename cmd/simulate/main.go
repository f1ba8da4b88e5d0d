package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/hackgods/healthcare-plus/internal/api"
	"github.com/hackgods/healthcare-plus/internal/fixtures"
	"github.com/hackgods/healthcare-plus/internal/records"
)

type SimConfig struct {
	APIBaseURL        string
	Duration          time.Duration
	Sessions          int
	WorkersPerSession int // more than one makes workers contend for the session turn
	WriteRatio        float64
	ReadRatio         float64
	CalcRatio         float64
}

type Simulator struct {
	config  SimConfig
	client  *http.Client
	logger  zerolog.Logger
	metrics Metrics
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := loadConfig()
	if err := validateConfig(cfg); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	logger.Info().
		Str("api", cfg.APIBaseURL).
		Dur("duration", cfg.Duration).
		Int("sessions", cfg.Sessions).
		Int("workers_per_session", cfg.WorkersPerSession).
		Float64("write", cfg.WriteRatio).
		Float64("read", cfg.ReadRatio).
		Float64("calc", cfg.CalcRatio).
		Msg("simulator starting")

	sim := &Simulator{
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}

	sim.Run(context.Background())
	sim.metrics.WriteReport(os.Stdout, cfg)
}

func loadConfig() SimConfig {
	_ = godotenv.Load()

	cfg := SimConfig{
		APIBaseURL:        getEnv("SIM_API_BASE_URL", "http://localhost:8080"),
		Duration:          getDuration("SIM_DURATION", 30*time.Second),
		Sessions:          getInt("SIM_SESSIONS", 10),
		WorkersPerSession: getInt("SIM_WORKERS_PER_SESSION", 1),
		WriteRatio:        getFloat("SIM_WRITE_RATIO", 0.4),
		ReadRatio:         getFloat("SIM_READ_RATIO", 0.4),
		CalcRatio:         getFloat("SIM_CALC_RATIO", 0.2),
	}

	total := cfg.WriteRatio + cfg.ReadRatio + cfg.CalcRatio
	if total > 0 {
		cfg.WriteRatio /= total
		cfg.ReadRatio /= total
		cfg.CalcRatio /= total
	}
	return cfg
}

func validateConfig(cfg SimConfig) error {
	if cfg.Sessions <= 0 {
		return fmt.Errorf("SIM_SESSIONS must be > 0")
	}
	if cfg.WorkersPerSession <= 0 {
		return fmt.Errorf("SIM_WORKERS_PER_SESSION must be > 0")
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("SIM_DURATION must be > 0")
	}
	if cfg.WriteRatio+cfg.ReadRatio+cfg.CalcRatio <= 0 {
		return fmt.Errorf("at least one of SIM_WRITE_RATIO, SIM_READ_RATIO, SIM_CALC_RATIO must be > 0")
	}
	return nil
}

func (s *Simulator) Run(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, s.config.Duration)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < s.config.Sessions; i++ {
		sid, ok := s.startSession(ctx)
		if !ok {
			continue
		}

		var sessionWG sync.WaitGroup
		for j := 0; j < s.config.WorkersPerSession; j++ {
			sessionWG.Add(1)
			go func() {
				defer sessionWG.Done()
				s.worker(ctx, sid)
			}()
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			sessionWG.Wait()
			s.endSession(sid)
		}()
	}

	wg.Wait()
	s.logger.Info().Msg("simulation complete")
}

func (s *Simulator) worker(ctx context.Context, sid string) {
	var added []records.PatientRecordInput

	for ctx.Err() == nil {
		r := gofakeit.Float64()
		switch {
		case r < s.config.WriteRatio:
			if gofakeit.Bool() {
				s.bookAppointment(ctx, sid)
			} else if rec, ok := s.addRecord(ctx, sid); ok {
				added = append(added, rec)
			}
		case r < s.config.WriteRatio+s.config.ReadRatio:
			if len(added) > 0 && gofakeit.Bool() {
				s.searchRecords(ctx, sid, fixtures.SearchTerm(added[gofakeit.Number(0, len(added)-1)]))
			} else {
				s.listAppointments(ctx, sid)
			}
		default:
			if gofakeit.Bool() {
				s.calculate(ctx)
			} else {
				s.analyzeSymptoms(ctx)
			}
		}
	}
}

func (s *Simulator) startSession(ctx context.Context) (string, bool) {
	start := time.Now()
	resp, err := s.do(ctx, http.MethodPost, "/session", "", nil)
	status := statusOf(resp)
	s.metrics.StartSession.Record(time.Since(start), classify(status, err, http.StatusCreated))
	if err != nil || status != http.StatusCreated {
		s.logger.Error().Err(err).Int("status", status).Msg("could not start session")
		return "", false
	}
	return resp.Header.Get(api.SessionHeader), true
}

func (s *Simulator) endSession(sid string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	resp, err := s.do(ctx, http.MethodDelete, "/session", sid, nil)
	s.metrics.EndSession.Record(time.Since(start), classify(statusOf(resp), err, http.StatusNoContent))
}

func (s *Simulator) bookAppointment(ctx context.Context, sid string) {
	in := fixtures.Appointment(time.Now())
	body := api.AppointmentRequest{
		Name:       in.Name,
		Phone:      in.Phone,
		Email:      in.Email,
		Age:        in.Age,
		Department: string(in.Department),
		Doctor:     in.Doctor,
		Date:       in.Date.Format("2006-01-02"),
		Time:       in.Time,
		Reason:     in.Reason,
		Insurance:  in.Insurance,
	}

	start := time.Now()
	resp, err := s.do(ctx, http.MethodPost, "/appointments", sid, body)
	s.record(ctx, &s.metrics.BookAppointment, start, resp, err, http.StatusCreated)
}

func (s *Simulator) listAppointments(ctx context.Context, sid string) {
	start := time.Now()
	resp, err := s.do(ctx, http.MethodGet, "/appointments", sid, nil)
	s.record(ctx, &s.metrics.ListAppointments, start, resp, err, http.StatusOK)
}

func (s *Simulator) addRecord(ctx context.Context, sid string) (records.PatientRecordInput, bool) {
	in := fixtures.PatientRecord(time.Now())
	body := api.PatientRecordRequest{
		Name:              in.Name,
		PatientID:         in.PatientID,
		BloodGroup:        string(in.BloodGroup),
		Allergies:         in.Allergies,
		ChronicConditions: in.ChronicConditions,
		Medications:       in.Medications,
		EmergencyContact:  in.EmergencyContact,
		LastCheckup:       in.LastCheckup.Format("2006-01-02"),
		IncludeVitals:     in.IncludeVitals,
	}
	if in.IncludeVitals {
		body.Vitals = &api.VitalsPayload{
			Systolic:     in.Vitals.Systolic,
			Diastolic:    in.Vitals.Diastolic,
			HeartRate:    in.Vitals.HeartRate,
			TemperatureF: in.Vitals.TemperatureF,
		}
	}

	start := time.Now()
	resp, err := s.do(ctx, http.MethodPost, "/records", sid, body)
	ok := s.record(ctx, &s.metrics.AddRecord, start, resp, err, http.StatusCreated)
	return in, ok
}

func (s *Simulator) searchRecords(ctx context.Context, sid, term string) {
	start := time.Now()
	resp, err := s.do(ctx, http.MethodGet, "/records?q="+url.QueryEscape(term), sid, nil)
	s.record(ctx, &s.metrics.SearchRecords, start, resp, err, http.StatusOK)
}

// calculate occasionally sends an out-of-range weight to exercise rejections.
func (s *Simulator) calculate(ctx context.Context) {
	weight := float64(gofakeit.Number(40, 140))
	if gofakeit.Number(1, 20) == 1 {
		weight = 0
	}

	var (
		resp *http.Response
		err  error
	)
	start := time.Now()
	if gofakeit.Bool() {
		resp, err = s.do(ctx, http.MethodPost, "/calculators/bmi", "", api.BMIRequest{
			WeightKg: weight,
			HeightCm: float64(gofakeit.Number(150, 200)),
		})
	} else {
		resp, err = s.do(ctx, http.MethodPost, "/calculators/bmr", "", api.BMRRequest{
			Gender:   gofakeit.RandomString([]string{"Male", "Female"}),
			WeightKg: weight,
			HeightCm: float64(gofakeit.Number(150, 200)),
			Age:      gofakeit.Number(18, 80),
		})
	}
	s.record(ctx, &s.metrics.Calculator, start, resp, err, http.StatusOK)
}

func (s *Simulator) analyzeSymptoms(ctx context.Context) {
	r := fixtures.SymptomReport()
	body := api.SymptomRequest{
		Age:      r.Age,
		Gender:   r.Gender,
		Duration: r.Duration,
		Severity: r.Severity,
		Fever:    r.Fever,
		Pain:     r.Pain,
		Symptoms: r.Symptoms,
	}

	start := time.Now()
	resp, err := s.do(ctx, http.MethodPost, "/symptoms/analyze", "", body)
	s.record(ctx, &s.metrics.Symptoms, start, resp, err, http.StatusOK)
}

func (s *Simulator) record(ctx context.Context, om *OperationMetrics, start time.Time, resp *http.Response, err error, want int) bool {
	// Requests cut off by the end of the run are not counted.
	if err != nil && ctx.Err() != nil {
		return false
	}
	outcome := classify(statusOf(resp), err, want)
	om.Record(time.Since(start), outcome)
	return outcome == OutcomeSuccess
}

func (s *Simulator) do(ctx context.Context, method, path, sid string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.config.APIBaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.Header.Set(api.SessionHeader, sid)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return resp, nil
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
