package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hackgods/healthcare-plus/internal/audit"
	"github.com/hackgods/healthcare-plus/internal/clinic"
	"github.com/hackgods/healthcare-plus/internal/records"
	redisclient "github.com/hackgods/healthcare-plus/internal/redis"
	"github.com/hackgods/healthcare-plus/internal/session"
)

var testNow = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

type MockLocker struct {
	WithSessionLockFunc func(ctx context.Context, id uuid.UUID, fn func(ctx context.Context) error) error
}

func (m *MockLocker) WithSessionLock(ctx context.Context, id uuid.UUID, fn func(ctx context.Context) error) error {
	return m.WithSessionLockFunc(ctx, id, fn)
}

func newTestServer(t *testing.T, opts ...session.Option) (*httptest.Server, *session.Manager) {
	t.Helper()

	clock := func() time.Time { return testNow }
	opts = append([]session.Option{
		session.WithClock(clock),
		session.WithStoreOptions(records.WithClock(clock)),
	}, opts...)

	mgr := session.NewManager(30*time.Minute, opts...)
	svc := clinic.NewService(mgr, audit.Discard{}, zerolog.Nop())

	srv := httptest.NewServer(NewRouter(RouterConfig{
		Clinic:   svc,
		Sessions: mgr,
		Logger:   zerolog.Nop(),
		Env:      "test",
		Version:  "v0.0.0",
	}))
	t.Cleanup(srv.Close)
	return srv, mgr
}

func do(t *testing.T, srv *httptest.Server, method, path, sid string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sid != "" {
		req.Header.Set(SessionHeader, sid)
	}

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d", want, resp.StatusCode)
	}
}

func validAppointment() AppointmentRequest {
	return AppointmentRequest{
		Name:       "Jane Doe",
		Phone:      "555-0100",
		Email:      "jane@example.com",
		Age:        34,
		Department: "Cardiology",
		Doctor:     "Dr. Johnson (Cardiology)",
		Date:       "2026-03-12",
		Time:       "10:30",
		Reason:     "Palpitations",
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/health/live", "", nil)
	expectStatus(t, resp, http.StatusOK)
	if got := decode[LivenessResponse](t, resp); got.Version != "v0.0.0" {
		t.Errorf("expected version v0.0.0, got %s", got.Version)
	}

	resp = do(t, srv, http.MethodGet, "/health/ready", "", nil)
	expectStatus(t, resp, http.StatusOK)
	ready := decode[ReadinessResponse](t, resp)
	if ready.Status != "ok" || ready.Dependencies["postgres"] != "disabled" || ready.Dependencies["redis"] != "disabled" {
		t.Errorf("unexpected readiness %+v", ready)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/health/live", "", nil)
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("expected a generated request id")
	}
}

func TestPages(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/pages", "", nil)
	expectStatus(t, resp, http.StatusOK)
	if got := decode[ListResponse[PageSummary]](t, resp); got.Count != 7 {
		t.Errorf("expected 7 pages, got %d", got.Count)
	}

	resp = do(t, srv, http.MethodGet, "/pages/emergency", "", nil)
	expectStatus(t, resp, http.StatusOK)

	resp = do(t, srv, http.MethodGet, "/pages/billing", "", nil)
	expectStatus(t, resp, http.StatusNotFound)

	resp = do(t, srv, http.MethodGet, "/pages/health_info/Nutrition", "", nil)
	expectStatus(t, resp, http.StatusOK)

	resp = do(t, srv, http.MethodGet, "/pages/health_info/Astrology", "", nil)
	expectStatus(t, resp, http.StatusNotFound)
}

func TestCalculatorBMI(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/calculators/bmi", "", BMIRequest{WeightKg: 70, HeightCm: 170})
	expectStatus(t, resp, http.StatusOK)
	got := decode[BMIResponse](t, resp)
	if got.BMI != 24.2 || got.Category != "Normal weight" {
		t.Errorf("expected 24.2 Normal weight, got %v %s", got.BMI, got.Category)
	}

	resp = do(t, srv, http.MethodPost, "/calculators/bmi", "", BMIRequest{WeightKg: 0, HeightCm: 170})
	expectStatus(t, resp, http.StatusUnprocessableEntity)
	if e := decode[ErrorResponse](t, resp); e.Field != "weight_kg" {
		t.Errorf("expected field weight_kg, got %q", e.Field)
	}
}

func TestCalculatorBMR(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/calculators/bmr", "", BMRRequest{Gender: "Male", WeightKg: 70, HeightCm: 175, Age: 30})
	expectStatus(t, resp, http.StatusOK)
	got := decode[BMRResponse](t, resp)
	if got.BMR != 1648.8 {
		t.Errorf("expected 1648.8, got %v", got.BMR)
	}
	if len(got.CalorieNeeds) != 5 || got.CalorieNeeds[0].Activity != "Sedentary" || got.CalorieNeeds[4].Activity != "Extremely active" {
		t.Errorf("unexpected calorie table %+v", got.CalorieNeeds)
	}

	resp = do(t, srv, http.MethodPost, "/calculators/bmr", "", BMRRequest{Gender: "Robot", WeightKg: 70, HeightCm: 175, Age: 30})
	expectStatus(t, resp, http.StatusUnprocessableEntity)

	resp = do(t, srv, http.MethodPost, "/calculators/calorie-needs", "", CalorieNeedsRequest{BMR: 1500})
	expectStatus(t, resp, http.StatusOK)
	needs := decode[CalorieNeedsResponse](t, resp)
	if needs.CalorieNeeds[0].Calories != 1800 {
		t.Errorf("expected 1800, got %v", needs.CalorieNeeds[0].Calories)
	}
}

func TestCalculatorFitness(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/calculators/heart-rate-zones", "", AgeRequest{Age: 30})
	expectStatus(t, resp, http.StatusOK)
	zones := decode[HeartRateZonesResponse](t, resp)
	if zones.MaxHeartRate != 190 || len(zones.Zones) != 5 {
		t.Errorf("unexpected zones %+v", zones)
	}

	resp = do(t, srv, http.MethodPost, "/calculators/water-intake", "", WaterIntakeRequest{WeightKg: 70})
	expectStatus(t, resp, http.StatusOK)
	if got := decode[WaterIntakeResponse](t, resp); got.Glasses != 10 {
		t.Errorf("expected 10 glasses, got %d", got.Glasses)
	}
}

func TestInvalidJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/calculators/bmi", bytes.NewBufferString("{"))
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusBadRequest)
}

func TestOversizedBody(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"weight_kg": 70, "height_cm": 170, "note": "` + strings.Repeat("a", maxRequestBody) + `"}`
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/calculators/bmi", strings.NewReader(body))
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusRequestEntityTooLarge)
}

func TestReadinessWithoutSessionManager(t *testing.T) {
	h := NewHealthHandler(nil, nil, nil, "test", "v0.0.0")

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got ReadinessResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ActiveSessions != 0 {
		t.Errorf("expected 0 active sessions, got %d", got.ActiveSessions)
	}
}

func TestAnalyzeSymptoms(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/symptoms/analyze", "", SymptomRequest{
		Age: 40, Gender: "Male", Duration: "1-3 days", Severity: "Severe",
		Symptoms: []string{"Chest pain", "Fatigue"},
	})
	expectStatus(t, resp, http.StatusOK)

	resp = do(t, srv, http.MethodPost, "/symptoms/analyze", "", SymptomRequest{
		Age: 40, Gender: "Male", Duration: "1-3 days", Severity: "Mild",
	})
	expectStatus(t, resp, http.StatusBadRequest)
}

func TestAppointmentsPerSession(t *testing.T) {
	srv, mgr := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/appointments", "", validAppointment())
	expectStatus(t, resp, http.StatusCreated)
	sid := resp.Header.Get(SessionHeader)
	if sid == "" {
		t.Fatal("expected a session id to be issued")
	}
	if got := decode[AppointmentResponse](t, resp); got.ConfirmationID != "APT-0001" || got.Status != "Scheduled" {
		t.Errorf("unexpected appointment %+v", got)
	}

	resp = do(t, srv, http.MethodPost, "/appointments", sid, validAppointment())
	expectStatus(t, resp, http.StatusCreated)
	if got := decode[AppointmentResponse](t, resp); got.ConfirmationID != "APT-0002" {
		t.Errorf("expected APT-0002, got %s", got.ConfirmationID)
	}

	resp = do(t, srv, http.MethodGet, "/appointments", sid, nil)
	expectStatus(t, resp, http.StatusOK)
	list := decode[ListResponse[AppointmentResponse]](t, resp)
	if list.Count != 2 || list.Items[0].Date != "2026-03-12" {
		t.Errorf("unexpected list %+v", list)
	}

	// a second session numbers from one again
	resp = do(t, srv, http.MethodPost, "/appointments", "", validAppointment())
	expectStatus(t, resp, http.StatusCreated)
	if got := decode[AppointmentResponse](t, resp); got.ConfirmationID != "APT-0001" {
		t.Errorf("expected APT-0001 in a new session, got %s", got.ConfirmationID)
	}

	if mgr.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", mgr.Len())
	}
}

func TestAppointmentValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name   string
		mutate func(*AppointmentRequest)
		field  string
	}{
		{"missing phone", func(r *AppointmentRequest) { r.Phone = "" }, "phone"},
		{"name before email", func(r *AppointmentRequest) { r.Name = ""; r.Email = "" }, "name"},
		{"unknown department", func(r *AppointmentRequest) { r.Department = "Astrology" }, "department"},
		{"past date", func(r *AppointmentRequest) { r.Date = "2026-03-09" }, "date"},
		{"malformed date", func(r *AppointmentRequest) { r.Date = "12/03/2026" }, "date"},
		{"malformed time", func(r *AppointmentRequest) { r.Time = "half past ten" }, "time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validAppointment()
			tt.mutate(&req)

			resp := do(t, srv, http.MethodPost, "/appointments", "", req)
			expectStatus(t, resp, http.StatusBadRequest)
			if e := decode[ErrorResponse](t, resp); e.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, e.Field)
			}
		})
	}
}

func TestPatientRecords(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/records", "", PatientRecordRequest{
		Name:          "John Doe",
		PatientID:     "P-001",
		BloodGroup:    "O+",
		IncludeVitals: true,
		Vitals:        &VitalsPayload{Systolic: 120, Diastolic: 80, HeartRate: 72, TemperatureF: 98.6},
	})
	expectStatus(t, resp, http.StatusCreated)
	sid := resp.Header.Get(SessionHeader)
	rec := decode[PatientRecordResponse](t, resp)
	if rec.Vitals == nil || rec.DateAdded != "2026-03-10 14:30" || rec.LastCheckup != "2026-03-10" {
		t.Errorf("unexpected record %+v", rec)
	}

	resp = do(t, srv, http.MethodPost, "/records", sid, PatientRecordRequest{
		Name:       "Mary Smith",
		PatientID:  "P-002",
		BloodGroup: "A-",
		Vitals:     &VitalsPayload{Systolic: 500},
	})
	expectStatus(t, resp, http.StatusCreated)
	if got := decode[PatientRecordResponse](t, resp); got.Vitals != nil {
		t.Error("vitals must be dropped when include_vitals is not set")
	}

	resp = do(t, srv, http.MethodGet, "/records?q=DOE", sid, nil)
	expectStatus(t, resp, http.StatusOK)
	if got := decode[ListResponse[PatientRecordResponse]](t, resp); got.Count != 1 || got.Items[0].PatientID != "P-001" {
		t.Errorf("unexpected search result %+v", got)
	}

	resp = do(t, srv, http.MethodGet, "/records", sid, nil)
	if got := decode[ListResponse[PatientRecordResponse]](t, resp); got.Count != 2 {
		t.Errorf("expected 2 records for empty query, got %d", got.Count)
	}

	resp = do(t, srv, http.MethodPost, "/records", sid, PatientRecordRequest{
		Name: "Al", PatientID: "P-003", BloodGroup: "B+", IncludeVitals: true,
		Vitals: &VitalsPayload{Systolic: 120, Diastolic: 80, HeartRate: 300, TemperatureF: 98.6},
	})
	expectStatus(t, resp, http.StatusBadRequest)
	if e := decode[ErrorResponse](t, resp); e.Field != "heart_rate" {
		t.Errorf("expected field heart_rate, got %q", e.Field)
	}
}

func TestSessionLifecycle(t *testing.T) {
	srv, mgr := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/session", "", nil)
	expectStatus(t, resp, http.StatusCreated)
	created := decode[SessionResponse](t, resp)
	sid := created.ID.String()

	do(t, srv, http.MethodPost, "/appointments", sid, validAppointment())

	resp = do(t, srv, http.MethodGet, "/session", sid, nil)
	expectStatus(t, resp, http.StatusOK)
	if got := decode[SessionResponse](t, resp); got.ID != created.ID || got.Appointments != 1 {
		t.Errorf("unexpected session %+v", got)
	}

	resp = do(t, srv, http.MethodDelete, "/session", sid, nil)
	expectStatus(t, resp, http.StatusNoContent)

	resp = do(t, srv, http.MethodDelete, "/session", sid, nil)
	expectStatus(t, resp, http.StatusNotFound)

	if mgr.Len() != 0 {
		t.Errorf("expected no sessions, got %d", mgr.Len())
	}
}

func TestUnknownSessionStartsFresh(t *testing.T) {
	srv, _ := newTestServer(t)

	stale := uuid.New().String()
	resp := do(t, srv, http.MethodGet, "/appointments", stale, nil)
	expectStatus(t, resp, http.StatusOK)
	if got := resp.Header.Get(SessionHeader); got == "" || got == stale {
		t.Errorf("expected a fresh session id, got %q", got)
	}
}

func TestSessionCookie(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, srv, http.MethodPost, "/appointments", "", validAppointment())
	expectStatus(t, resp, http.StatusCreated)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookie {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected session cookie")
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/appointments", nil)
	req.AddCookie(cookie)
	resp2, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp2.Body.Close()

	if got := decode[ListResponse[AppointmentResponse]](t, resp2); got.Count != 1 {
		t.Errorf("expected cookie to resolve the same session, got %d appointments", got.Count)
	}
}

func TestBusySession(t *testing.T) {
	locker := &MockLocker{
		WithSessionLockFunc: func(ctx context.Context, id uuid.UUID, fn func(ctx context.Context) error) error {
			return redisclient.ErrLockNotAcquired
		},
	}
	srv, _ := newTestServer(t, session.WithLocker(locker))

	resp := do(t, srv, http.MethodPost, "/appointments", "", validAppointment())
	expectStatus(t, resp, http.StatusConflict)
	if e := decode[ErrorResponse](t, resp); e.Error != "session_busy" {
		t.Errorf("expected session_busy, got %s", e.Error)
	}
}
