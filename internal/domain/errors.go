package domain

import (
	"errors"
	"fmt"
)

// Exit codes reserved by the supervisor. A command's own exit code is passed
// through on natural exit; these mark outcomes the child never produced.
const (
	ExitOK       = 0
	ExitToolErr  = 1   // startup/spawn or other tool-level failure
	ExitTimedOut = 124 // breach auto-killed with no user attached to decide
	ExitQuit     = 130 // user chose Quit at the recovery prompt
	ExitKilled   = 137 // user chose Kill at the recovery prompt
)

// StartupError means the requested shell or interpreter could not be
// resolved before the process was ever created.
type StartupError struct {
	Shell string
	Err   error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("shell %q could not be resolved: %v", e.Shell, e.Err)
}

func (e *StartupError) Unwrap() error { return e.Err }

// SpawnError means the OS failed to create the process.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn %q: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// TerminationError means the process tree survived both graceful terminate
// and the force-kill escalation. Reported, never fatal to the tool.
type TerminationError struct {
	PID       int
	Survivors int
	Err       error
}

func (e *TerminationError) Error() string {
	return fmt.Sprintf("process tree of pid %d not fully terminated (%d survivors): %v", e.PID, e.Survivors, e.Err)
}

func (e *TerminationError) Unwrap() error { return e.Err }

// StateError marks an attempted illegal status transition.
type StateError struct {
	From ExecutionStatus
	To   ExecutionStatus
}

func (e *StateError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}

// ErrConfigCorrupt and ErrHistoryCorrupt tag recoverable persistence
// problems. Both are logged and recovered to defaults/empty, never fatal.
var (
	ErrConfigCorrupt  = errors.New("persisted configuration is malformed")
	ErrHistoryCorrupt = errors.New("persisted history is malformed")
)

// ErrUserQuit propagates the Quit recovery choice up through the CLI so it
// can exit with a cancellation code distinct from command failure.
var ErrUserQuit = errors.New("cancelled by user")
