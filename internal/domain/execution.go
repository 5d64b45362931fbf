// Package domain defines core business entities and value objects for cmdwatch.
//
// This file contains the supervised command execution model and its status
// machine. The domain layer is independent of infrastructure concerns and
// represents pure business logic and data structures.
package domain

import "time"

// ExecutionStatus tracks where a supervised command is in its lifecycle.
type ExecutionStatus string

const (
	StatusCreated   ExecutionStatus = "created"
	StatusRunning   ExecutionStatus = "running"
	StatusCompleted ExecutionStatus = "completed"
	StatusTimedOut  ExecutionStatus = "timed_out"
	StatusKilled    ExecutionStatus = "killed"
	StatusFailed    ExecutionStatus = "failed"
)

// Terminal reports whether the status is final. A terminal execution is
// never mutated again and is the only kind archived into history.
func (s ExecutionStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusKilled, StatusFailed:
		return true
	}
	return false
}

// CanTransitionTo enforces the monotonic status machine:
// created -> running -> {completed, failed, timed_out};
// timed_out -> {running (retry), killed, timed_out (another breach)};
// and the natural-exit race where a timed_out execution turns out to have
// finished on its own while the prompt was pending.
func (s ExecutionStatus) CanTransitionTo(next ExecutionStatus) bool {
	if s.Terminal() {
		return false
	}
	switch s {
	case StatusCreated:
		return next == StatusRunning
	case StatusRunning:
		return next == StatusCompleted || next == StatusFailed || next == StatusTimedOut
	case StatusTimedOut:
		switch next {
		case StatusRunning, StatusKilled, StatusTimedOut, StatusCompleted, StatusFailed:
			return true
		}
	}
	return false
}

// CommandExecution is one supervised run of a user-supplied command.
// It is created by the run operation, mutated by the executor (output, exit
// code) and the timeout controller (status), and archived on reaching a
// terminal state.
type CommandExecution struct {
	ID             string
	Command        string
	Shell          string
	WorkDir        string
	CleanEnv       bool
	TimeoutSeconds int
	StartedAt      time.Time
	EndedAt        time.Time
	ExitCode       *int
	Status         ExecutionStatus
	Attempt        int
	ParentID       string
	// Unattended marks a breach that was resolved by killing the tree
	// because no user was attached to decide.
	Unattended bool
}

// Duration is only meaningful once the execution is terminal.
func (e *CommandExecution) Duration() time.Duration {
	if !e.Status.Terminal() || e.EndedAt.IsZero() {
		return 0
	}
	return e.EndedAt.Sub(e.StartedAt)
}

// Transition applies a status change, refusing anything the state machine
// forbids so callers cannot silently corrupt lineage or history.
func (e *CommandExecution) Transition(next ExecutionStatus) error {
	if !e.Status.CanTransitionTo(next) {
		return &StateError{From: e.Status, To: next}
	}
	e.Status = next
	return nil
}

// RecoveryChoice is one of the five decisions offered when a supervised
// command breaches its timeout threshold.
type RecoveryChoice string

const (
	ChoiceRetry    RecoveryChoice = "retry"
	ChoiceKill     RecoveryChoice = "kill"
	ChoiceDiagnose RecoveryChoice = "diagnose"
	ChoiceContinue RecoveryChoice = "continue"
	ChoiceQuit     RecoveryChoice = "quit"
)
