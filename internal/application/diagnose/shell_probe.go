package diagnose

import (
	"context"
	"fmt"
	"os"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
	"github.com/mdcognizant/cursor-sub001/internal/infrastructure/shellinfo"
)

const categoryShell = "Shell environment"

// envWarnCount flags an unusually crowded environment; very large
// environments slow every fork+exec down.
const envWarnCount = 200

// ShellEnvironmentProbe identifies the active shell and sizes up the
// environment it passes to every child.
type ShellEnvironmentProbe struct{}

func (p *ShellEnvironmentProbe) Category() string { return categoryShell }

func (p *ShellEnvironmentProbe) Run(ctx context.Context, cfg domain.Config) []domain.DiagnosticResult {
	var results []domain.DiagnosticResult

	shell := shellinfo.Detect()
	if shell == domain.ShellUnknown {
		results = append(results, warn(categoryShell, "active shell",
			"could not detect the active shell from $SHELL or the parent process",
			"set $SHELL to your login shell"))
	} else {
		result := pass(categoryShell, "active shell", fmt.Sprintf("detected %s", shell))
		result.Value = string(shell)
		results = append(results, result)
	}

	count := len(os.Environ())
	envResult := pass(categoryShell, "environment size", fmt.Sprintf("%d environment variables", count))
	envResult.Value = fmt.Sprintf("%d", count)
	if count > envWarnCount {
		envResult.Status = domain.DiagnosticWarn
		envResult.Recommendation = "prune exported variables from your profile scripts"
	}
	results = append(results, envResult)

	profiles := shellinfo.ProfilesFor(shell)
	present := 0
	for _, profile := range profiles {
		if profile.Exists {
			present++
		}
	}
	if present == 0 {
		results = append(results, pass(categoryShell, "startup scripts", "no startup scripts found"))
	} else {
		results = append(results, pass(categoryShell, "startup scripts",
			fmt.Sprintf("%d of %d known startup scripts present", present, len(profiles))))
	}
	return results
}
