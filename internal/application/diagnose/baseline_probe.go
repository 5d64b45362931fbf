package diagnose

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
)

const categoryBaseline = "Command baseline"

// baselineWarn flags a trivial command taking long enough that the shell
// itself, not the command, is the bottleneck.
const baselineWarn = 500 * time.Millisecond

// baselineCommands is the fixed reference set; each should be effectively
// instant on a healthy system.
func baselineCommands() []string {
	if runtime.GOOS == "windows" {
		return []string{"echo baseline", "cd", "ver"}
	}
	return []string{"echo baseline", "pwd", "true"}
}

// BaselineProbe times a fixed set of trivial commands to establish what
// "fast" means on this machine.
type BaselineProbe struct {
	Timer *CommandTimer
}

func (p *BaselineProbe) Category() string { return categoryBaseline }

func (p *BaselineProbe) Run(ctx context.Context, cfg domain.Config) []domain.DiagnosticResult {
	if p.Timer == nil {
		return []domain.DiagnosticResult{warn(categoryBaseline, "reference commands", "no command timer wired", "")}
	}

	var results []domain.DiagnosticResult
	for _, command := range baselineCommands() {
		elapsed, code, err := p.Timer.Time(ctx, command, cfg.ProbeTimeout(), false)
		name := fmt.Sprintf("%q", command)
		if err != nil {
			results = append(results, fail(categoryBaseline, name,
				fmt.Sprintf("did not finish: %v", err), ""))
			continue
		}
		result := pass(categoryBaseline, name, fmt.Sprintf("exit %d in %s", code, elapsed.Round(time.Millisecond)))
		result.Value = elapsed.Round(time.Millisecond).String()
		if elapsed > baselineWarn {
			result.Status = domain.DiagnosticWarn
			result.Recommendation = "trivial commands are slow; suspect shell startup or PATH resolution"
		}
		results = append(results, result)
	}
	return results
}
