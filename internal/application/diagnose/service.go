// Package diagnose runs the ordered battery of environment probes that
// explain why a local shell environment is slow.
package diagnose

import (
	"context"
	"fmt"
	"time"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
	"github.com/mdcognizant/cursor-sub001/internal/ports"
)

// Engine executes probes strictly sequentially so their individual time
// budgets compose additively: total wall time is bounded by the sum of the
// per-probe caps.
type Engine struct {
	Probes []ports.Probe
	Logger ports.Logger
}

// NewEngine wires the full probe battery in its documented order.
func NewEngine(factory ports.ProcessFactory, logger ports.Logger) *Engine {
	timer := &CommandTimer{Factory: factory}
	return &Engine{
		Logger: logger,
		Probes: []ports.Probe{
			&ShellEnvironmentProbe{},
			&ProfileProbe{Timer: timer},
			&PathProbe{},
			&VCSProbe{Timer: timer},
			&BaselineProbe{Timer: timer},
			&ResourcesProbe{},
		},
	}
}

// Run executes every probe, each bounded by the configured cap. A probe
// that fails or overruns is recorded as fail and never aborts the rest of
// the battery.
func (e *Engine) Run(ctx context.Context, cfg domain.Config) domain.DiagnosticReport {
	started := time.Now()
	report := domain.DiagnosticReport{GeneratedAt: started}

	for _, probe := range e.Probes {
		report.Results = append(report.Results, e.runBounded(ctx, probe, cfg)...)
	}

	report.Elapsed = time.Since(started)
	if e.Logger != nil {
		passed, warned, failed := report.Counts()
		e.Logger.Debug("diagnostics finished", map[string]interface{}{
			"pass": passed, "warn": warned, "fail": failed, "elapsed": report.Elapsed.String(),
		})
	}
	return report
}

// runBounded caps one probe at the configured budget. The probe runs in its
// own goroutine so a stuck check cannot stall the battery past its cap.
func (e *Engine) runBounded(ctx context.Context, probe ports.Probe, cfg domain.Config) []domain.DiagnosticResult {
	budget := cfg.ProbeTimeout()
	probeCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	done := make(chan []domain.DiagnosticResult, 1)
	go func() {
		done <- probe.Run(probeCtx, cfg)
	}()

	select {
	case results := <-done:
		return results
	case <-probeCtx.Done():
		return []domain.DiagnosticResult{{
			Category: probe.Category(),
			Name:     "probe budget",
			Status:   domain.DiagnosticFail,
			Message:  fmt.Sprintf("probe did not finish within %s", budget),
		}}
	}
}

func pass(category, name, message string) domain.DiagnosticResult {
	return domain.DiagnosticResult{Category: category, Name: name, Status: domain.DiagnosticPass, Message: message}
}

func warn(category, name, message, recommendation string) domain.DiagnosticResult {
	return domain.DiagnosticResult{Category: category, Name: name, Status: domain.DiagnosticWarn, Message: message, Recommendation: recommendation}
}

func fail(category, name, message, recommendation string) domain.DiagnosticResult {
	return domain.DiagnosticResult{Category: category, Name: name, Status: domain.DiagnosticFail, Message: message, Recommendation: recommendation}
}
