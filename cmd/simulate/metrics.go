package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type OperationMetrics struct {
	Total     int64
	Success   int64
	Conflict  int64
	Rejected  int64
	Error     int64
	Latencies []time.Duration
	mu        sync.Mutex
}

// Outcome classifies one response for the report.
type Outcome int

const (
	OutcomeSuccess  Outcome = iota
	OutcomeConflict         // 409, session busy
	OutcomeRejected         // 4xx validation or range rejection
	OutcomeError
)

func classify(status int, err error, want int) Outcome {
	switch {
	case err != nil:
		return OutcomeError
	case status == want:
		return OutcomeSuccess
	case status == 409:
		return OutcomeConflict
	case status >= 400 && status < 500:
		return OutcomeRejected
	default:
		return OutcomeError
	}
}

func (om *OperationMetrics) Record(latency time.Duration, outcome Outcome) {
	atomic.AddInt64(&om.Total, 1)
	switch outcome {
	case OutcomeSuccess:
		atomic.AddInt64(&om.Success, 1)
	case OutcomeConflict:
		atomic.AddInt64(&om.Conflict, 1)
	case OutcomeRejected:
		atomic.AddInt64(&om.Rejected, 1)
	default:
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.Latencies = append(om.Latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, min, max, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.Latencies) == 0 {
		return 0, 0, 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.Latencies))
	copy(latencies, om.Latencies)
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	min = latencies[0]
	max = latencies[len(latencies)-1]
	p50 = latencies[percentileIndex(len(latencies), 50)]
	p95 = latencies[percentileIndex(len(latencies), 95)]
	return avg, min, max, p50, p95
}

func percentileIndex(n, pct int) int {
	idx := n * pct / 100
	if idx >= n {
		idx = n - 1
	}
	return idx
}

type Metrics struct {
	StartSession     OperationMetrics
	BookAppointment  OperationMetrics
	ListAppointments OperationMetrics
	AddRecord        OperationMetrics
	SearchRecords    OperationMetrics
	Calculator       OperationMetrics
	Symptoms         OperationMetrics
	EndSession       OperationMetrics
}

func (m *Metrics) WriteReport(w io.Writer, cfg SimConfig) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 80))
	fmt.Fprintln(w, "SIMULATION REPORT")
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "Duration: %s\n", cfg.Duration)
	fmt.Fprintf(w, "Sessions: %d  Workers per session: %d\n", cfg.Sessions, cfg.WorkersPerSession)
	fmt.Fprintln(w)

	writeOperation(w, "Start session", &m.StartSession)
	writeOperation(w, "Book appointment", &m.BookAppointment)
	writeOperation(w, "List appointments", &m.ListAppointments)
	writeOperation(w, "Add patient record", &m.AddRecord)
	writeOperation(w, "Search patient records", &m.SearchRecords)
	writeOperation(w, "Calculator", &m.Calculator)
	writeOperation(w, "Symptom checker", &m.Symptoms)
	writeOperation(w, "End session", &m.EndSession)
}

func writeOperation(w io.Writer, name string, om *OperationMetrics) {
	total := atomic.LoadInt64(&om.Total)
	if total == 0 {
		return
	}

	pct := func(n int64) float64 { return float64(n) / float64(total) * 100 }
	success := atomic.LoadInt64(&om.Success)
	conflict := atomic.LoadInt64(&om.Conflict)
	rejected := atomic.LoadInt64(&om.Rejected)
	errs := atomic.LoadInt64(&om.Error)

	avg, min, max, p50, p95 := om.Stats()

	fmt.Fprintf(w, "%s:\n", name)
	fmt.Fprintf(w, "  Total: %d\n", total)
	fmt.Fprintf(w, "  Success: %d (%.1f%%)\n", success, pct(success))
	if conflict > 0 {
		fmt.Fprintf(w, "  Busy: %d (%.1f%%)\n", conflict, pct(conflict))
	}
	if rejected > 0 {
		fmt.Fprintf(w, "  Rejected: %d (%.1f%%)\n", rejected, pct(rejected))
	}
	if errs > 0 {
		fmt.Fprintf(w, "  Errors: %d (%.1f%%)\n", errs, pct(errs))
	}
	fmt.Fprintf(w, "  Latency: avg=%s min=%s max=%s p50=%s p95=%s\n",
		avg.Round(time.Millisecond), min.Round(time.Millisecond), max.Round(time.Millisecond),
		p50.Round(time.Millisecond), p95.Round(time.Millisecond))
	fmt.Fprintln(w)
}
