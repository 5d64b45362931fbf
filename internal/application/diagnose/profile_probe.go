package diagnose

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
	"github.com/mdcognizant/cursor-sub001/internal/infrastructure/shellinfo"
)

const categoryProfile = "Interactive profile"

// ProfileProbe locates startup scripts and measures the shell's interactive
// cold-start time. Heavy profiles are the single most common cause of a
// slow-feeling terminal.
type ProfileProbe struct {
	Timer *CommandTimer
}

func (p *ProfileProbe) Category() string { return categoryProfile }

func (p *ProfileProbe) Run(ctx context.Context, cfg domain.Config) []domain.DiagnosticResult {
	var results []domain.DiagnosticResult

	shell := shellinfo.Detect()
	for _, profile := range shellinfo.ProfilesFor(shell) {
		if !profile.Exists {
			continue
		}
		result := pass(categoryProfile, "profile script",
			fmt.Sprintf("%s (%s)", profile.Path, humanize.Bytes(uint64(profile.Bytes))))
		result.Value = fmt.Sprintf("%d", profile.Bytes)
		results = append(results, result)
	}
	if len(results) == 0 {
		results = append(results, pass(categoryProfile, "profile script", "no profile scripts to load"))
	}

	shellPath := shellinfo.ShellPath()
	if shellPath == "" || p.Timer == nil {
		results = append(results, warn(categoryProfile, "cold start",
			"$SHELL unset, skipping interactive cold-start measurement", ""))
		return results
	}

	elapsed, _, err := p.Timer.Time(ctx, shellPath+" -i -c exit", cfg.ProbeTimeout(), false)
	if err != nil {
		results = append(results, fail(categoryProfile, "cold start",
			fmt.Sprintf("interactive shell did not start cleanly: %v", err),
			"run the shell with -x to find the blocking profile line"))
		return results
	}

	result := pass(categoryProfile, "cold start", fmt.Sprintf("interactive shell started in %s", elapsed.Round(time.Millisecond)))
	result.Value = elapsed.Round(time.Millisecond).String()
	switch {
	case elapsed.Seconds() > cfg.Diagnostics.ProfileFailSeconds:
		result.Status = domain.DiagnosticFail
		result.Recommendation = "profile startup is pathological; bisect your startup scripts"
	case elapsed.Seconds() > cfg.Diagnostics.ProfileWarnSeconds:
		result.Status = domain.DiagnosticWarn
		result.Recommendation = "consider lazy-loading completions and version managers"
	}
	results = append(results, result)
	return results
}
