package domain

import "time"

// DiagnosticStatus classifies a single probe result.
type DiagnosticStatus string

const (
	DiagnosticPass DiagnosticStatus = "pass"
	DiagnosticWarn DiagnosticStatus = "warn"
	DiagnosticFail DiagnosticStatus = "fail"
)

// DiagnosticResult captures one environment check outcome.
type DiagnosticResult struct {
	Category       string           `json:"category"`
	Name           string           `json:"name"`
	Status         DiagnosticStatus `json:"status"`
	Message        string           `json:"message"`
	Value          string           `json:"value,omitempty"`
	Recommendation string           `json:"recommendation,omitempty"`
}

// DiagnosticReport aggregates an ordered probe battery run.
type DiagnosticReport struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Elapsed     time.Duration      `json:"elapsed_ns"`
	Results     []DiagnosticResult `json:"results"`
}

// Counts returns pass/warn/fail totals in that order.
func (r DiagnosticReport) Counts() (passed, warned, failed int) {
	for _, res := range r.Results {
		switch res.Status {
		case DiagnosticPass:
			passed++
		case DiagnosticWarn:
			warned++
		case DiagnosticFail:
			failed++
		}
	}
	return passed, warned, failed
}
