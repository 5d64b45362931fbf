package diagnose

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mdcognizant/cursor-sub001/internal/ports"
)

// CommandTimer times a command through the same process machinery the
// supervisor uses, bounded by the caller's budget.
type CommandTimer struct {
	Factory ports.ProcessFactory
}

// Time runs command under the given budget and reports how long it took.
// The process tree is killed on overrun and an error returned.
func (t *CommandTimer) Time(ctx context.Context, command string, budget time.Duration, cleanEnv bool) (time.Duration, int, error) {
	runCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	started := time.Now()
	handle, err := t.Factory.Spawn(runCtx, ports.SpawnSpec{
		Command:  command,
		CleanEnv: cleanEnv,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	})
	if err != nil {
		return 0, 0, err
	}

	select {
	case <-handle.Done():
		state := handle.Poll()
		return time.Since(started), state.ExitCode, nil
	case <-runCtx.Done():
		_ = handle.ForceKill()
		return time.Since(started), 0, fmt.Errorf("%q exceeded %s", command, budget)
	}
}
