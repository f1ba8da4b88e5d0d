package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hackgods/healthcare-plus/internal/api"
	"github.com/hackgods/healthcare-plus/internal/audit"
	"github.com/hackgods/healthcare-plus/internal/clinic"
	"github.com/hackgods/healthcare-plus/internal/session"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		status int
		err    error
		want   Outcome
	}{
		{201, nil, OutcomeSuccess},
		{409, nil, OutcomeConflict},
		{400, nil, OutcomeRejected},
		{422, nil, OutcomeRejected},
		{500, nil, OutcomeError},
		{0, errors.New("connection refused"), OutcomeError},
	}

	for _, tt := range tests {
		if got := classify(tt.status, tt.err, 201); got != tt.want {
			t.Errorf("classify(%d, %v): expected %d, got %d", tt.status, tt.err, tt.want, got)
		}
	}
}

func TestOperationMetricsStats(t *testing.T) {
	var om OperationMetrics
	for i := 1; i <= 100; i++ {
		om.Record(time.Duration(i)*time.Millisecond, OutcomeSuccess)
	}
	om.Record(time.Millisecond, OutcomeConflict)

	avg, min, max, p50, p95 := om.Stats()
	if min != time.Millisecond || max != 100*time.Millisecond {
		t.Errorf("unexpected min/max %s/%s", min, max)
	}
	if p50 != 50*time.Millisecond || p95 != 95*time.Millisecond {
		t.Errorf("unexpected percentiles p50=%s p95=%s", p50, p95)
	}
	if avg <= 0 {
		t.Errorf("expected positive average, got %s", avg)
	}
	if om.Total != 101 || om.Success != 100 || om.Conflict != 1 {
		t.Errorf("unexpected counters %d/%d/%d", om.Total, om.Success, om.Conflict)
	}
}

func TestSimulatorAgainstServer(t *testing.T) {
	mgr := session.NewManager(time.Minute)
	srv := httptest.NewServer(api.NewRouter(api.RouterConfig{
		Clinic:   clinic.NewService(mgr, audit.Discard{}, zerolog.Nop()),
		Sessions: mgr,
		Logger:   zerolog.Nop(),
	}))
	defer srv.Close()

	cfg := SimConfig{
		APIBaseURL:        srv.URL,
		Duration:          300 * time.Millisecond,
		Sessions:          3,
		WorkersPerSession: 2,
		WriteRatio:        0.5,
		ReadRatio:         0.3,
		CalcRatio:         0.2,
	}
	if err := validateConfig(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sim := &Simulator{config: cfg, client: srv.Client(), logger: zerolog.Nop()}
	sim.Run(context.Background())

	if sim.metrics.StartSession.Success != 3 {
		t.Errorf("expected 3 sessions started, got %d", sim.metrics.StartSession.Success)
	}
	if sim.metrics.EndSession.Success != 3 {
		t.Errorf("expected 3 sessions ended, got %d", sim.metrics.EndSession.Success)
	}
	if sim.metrics.BookAppointment.Error != 0 || sim.metrics.AddRecord.Error != 0 {
		t.Errorf("unexpected server errors: book=%d record=%d",
			sim.metrics.BookAppointment.Error, sim.metrics.AddRecord.Error)
	}
	if mgr.Len() != 0 {
		t.Errorf("expected all sessions ended, got %d", mgr.Len())
	}

	var out bytes.Buffer
	sim.metrics.WriteReport(&out, cfg)
	if !strings.Contains(out.String(), "SIMULATION REPORT") || !strings.Contains(out.String(), "Start session") {
		t.Errorf("unexpected report %q", out.String())
	}
}

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(SimConfig{Duration: time.Second, Sessions: 0, WorkersPerSession: 1, ReadRatio: 1}); err == nil {
		t.Error("expected error for zero sessions")
	}
	if err := validateConfig(SimConfig{Duration: time.Second, Sessions: 1, WorkersPerSession: 1}); err == nil {
		t.Error("expected error when every ratio is zero")
	}
}
