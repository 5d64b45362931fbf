package supervise

import (
	"context"
	"time"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
	"github.com/mdcognizant/cursor-sub001/internal/ports"
)

// DiagnoseFunc runs the full diagnostic battery synchronously and renders
// the report. Wired by the container; nil disables the Diagnose choice.
type DiagnoseFunc func(ctx context.Context) error

// Result pairs the terminal execution with the output captured for it.
type Result struct {
	Execution *domain.CommandExecution
	Output    string
}

// Service owns the supervision path for one foreground command: spawn,
// tick, breach, prompt, resolve. It is the sole mutator of execution status
// before a terminal state.
type Service struct {
	Executor *Executor
	Config   domain.Config
	Prompter ports.RecoveryPrompter
	Display  ports.ProgressDisplay
	History  ports.HistoryRepository
	Diagnose DiagnoseFunc
	Logger   ports.Logger

	// Tick overrides the clock resolution; tests shrink it.
	Tick time.Duration
	// Grace overrides the terminate-to-kill escalation window.
	Grace time.Duration
}

type outcome int

const (
	outcomeDone outcome = iota
	outcomeRetry
	outcomeQuit
)

// Run supervises req until a terminal state, following retry lineage across
// attempts. Startup and spawn errors abort the invocation and leave nothing
// in history. ErrUserQuit is returned when the user quits at the prompt.
func (s *Service) Run(ctx context.Context, req Request) (Result, error) {
	threshold := s.Config.ResolveTimeout(req.Command, req.TimeoutSeconds)

	attempt := 0
	parentID := ""
	for {
		running, err := s.Executor.Start(ctx, req, threshold, attempt, parentID)
		if err != nil {
			return Result{}, err
		}

		out := s.superviseOne(ctx, running, threshold)
		s.archive(running.Execution)

		switch out {
		case outcomeRetry:
			attempt++
			parentID = running.Execution.ID
			continue
		case outcomeQuit:
			return Result{Execution: running.Execution, Output: running.OutputTail()}, domain.ErrUserQuit
		default:
			return Result{Execution: running.Execution, Output: running.OutputTail()}, nil
		}
	}
}

// superviseOne drives one attempt to a terminal state. Each pass of the
// outer loop is a fresh countdown: Continue re-enters it with the same
// threshold rather than accumulating time already spent.
func (s *Service) superviseOne(ctx context.Context, running *Running, threshold time.Duration) outcome {
	execution := running.Execution
	handle := running.Handle

	for {
		if exited := s.waitForBreach(ctx, running, threshold); exited {
			if s.Display != nil {
				s.Display.Clear()
			}
			s.finishNatural(execution, handle)
			return outcomeDone
		}

		// First breach of this countdown.
		if err := execution.Transition(domain.StatusTimedOut); err != nil {
			// Already terminal via the natural-exit race.
			return outcomeDone
		}
		if s.Display != nil {
			s.Display.Clear()
		}
		s.logBreach(execution, threshold)

		choice, exited := s.promptOnce(ctx, execution, handle)
		if exited {
			s.finishNatural(execution, handle)
			return outcomeDone
		}

		switch choice {
		case domain.ChoiceRetry:
			s.killTree(execution, handle)
			return outcomeRetry
		case domain.ChoiceKill:
			s.killTree(execution, handle)
			return outcomeDone
		case domain.ChoiceQuit:
			s.killTree(execution, handle)
			return outcomeQuit
		case domain.ChoiceContinue:
			// Fresh countdown at the same threshold.
			continue
		}
	}
}

// waitForBreach ticks once a second, feeding the elapsed display, until the
// countdown expires or the child exits. Returns true on natural exit.
func (s *Service) waitForBreach(ctx context.Context, running *Running, threshold time.Duration) bool {
	execution := running.Execution
	handle := running.Handle
	deadline := time.Now().Add(threshold)

	ticker := time.NewTicker(s.tick())
	defer ticker.Stop()

	for {
		select {
		case <-handle.Done():
			return true
		case <-ctx.Done():
			s.killTree(execution, handle)
			return false
		case <-ticker.C:
			elapsed := time.Since(execution.StartedAt)
			if s.Display != nil {
				s.Display.Tick(execution, elapsed, threshold)
			}
			if !time.Now().Before(deadline) {
				return false
			}
		}
	}
}

// promptOnce collects exactly one actionable decision for this breach.
// Diagnose suspends the prompt, runs the battery, and re-presents the same
// choices. The second return is true when the child exited naturally while
// the prompt was pending, which short-circuits any pending decision.
func (s *Service) promptOnce(ctx context.Context, execution *domain.CommandExecution, handle ports.ProcessHandle) (domain.RecoveryChoice, bool) {
	for {
		if !handle.Poll().Running {
			return "", true
		}
		if s.Prompter == nil {
			execution.Unattended = true
			return domain.ChoiceKill, false
		}
		if !s.Prompter.Interactive() {
			// Nobody to decide; the prompter reports the auto-kill.
			execution.Unattended = true
		}

		elapsed := time.Since(execution.StartedAt)
		choice, err := s.Prompter.Ask(execution, elapsed, handle.Done())
		if !handle.Poll().Running {
			return "", true
		}
		if err != nil {
			if s.Logger != nil {
				s.Logger.Warn("recovery prompt unavailable, killing process tree", map[string]interface{}{"id": execution.ID, "error": err.Error()})
			}
			execution.Unattended = true
			return domain.ChoiceKill, false
		}

		if choice == domain.ChoiceDiagnose {
			if s.Diagnose == nil {
				continue
			}
			if err := s.Diagnose(ctx); err != nil && s.Logger != nil {
				s.Logger.Warn("diagnostics failed", map[string]interface{}{"error": err.Error()})
			}
			continue
		}
		return choice, false
	}
}

// finishNatural records a natural exit: completed on zero, failed otherwise.
// The exit code is recorded either way; "failed" is advisory, not a tool
// error.
func (s *Service) finishNatural(execution *domain.CommandExecution, handle ports.ProcessHandle) {
	code := handle.Wait()
	execution.ExitCode = &code
	execution.EndedAt = time.Now()
	next := domain.StatusCompleted
	if code != 0 {
		next = domain.StatusFailed
	}
	_ = execution.Transition(next)
}

// killTree terminates the full process tree, escalating after the grace
// period, and marks the execution killed.
func (s *Service) killTree(execution *domain.CommandExecution, handle ports.ProcessHandle) {
	if err := handle.KillTree(s.grace()); err != nil {
		if s.Logger != nil {
			s.Logger.Error("process tree not fully terminated", err, map[string]interface{}{"id": execution.ID, "pid": handle.PID()})
		}
	}
	if state := handle.Poll(); !state.Running {
		code := state.ExitCode
		execution.ExitCode = &code
	}
	execution.EndedAt = time.Now()
	_ = execution.Transition(domain.StatusKilled)
}

// archive snapshots a terminal execution into history. History failures are
// logged, never fatal.
func (s *Service) archive(execution *domain.CommandExecution) {
	if s.History == nil || !execution.Status.Terminal() {
		return
	}
	if err := s.History.Append(domain.SnapshotExecution(execution)); err != nil && s.Logger != nil {
		s.Logger.Warn("history append failed", map[string]interface{}{"id": execution.ID, "error": err.Error()})
	}
}

func (s *Service) logBreach(execution *domain.CommandExecution, threshold time.Duration) {
	if s.Logger == nil {
		return
	}
	s.Logger.Info("timeout threshold breached", map[string]interface{}{
		"id": execution.ID, "command": execution.Command, "threshold": threshold.String(),
	})
}

func (s *Service) tick() time.Duration {
	if s.Tick > 0 {
		return s.Tick
	}
	return domain.TickInterval
}

func (s *Service) grace() time.Duration {
	if s.Grace > 0 {
		return s.Grace
	}
	return domain.KillGracePeriod
}
