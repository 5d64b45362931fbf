// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and
// external adapters (infrastructure). Following the Ports and Adapters
// pattern, these interfaces keep the supervisor independent of the concrete
// OS process layer, persistence backends, and terminal I/O.
package ports

import (
	"context"
	"io"
	"time"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
)

// SpawnSpec describes one process to create.
type SpawnSpec struct {
	Command  string
	Shell    string
	Dir      string
	CleanEnv bool
	Stdout   io.Writer
	Stderr   io.Writer
}

// PollState is the answer to "is it still running".
type PollState struct {
	Running  bool
	ExitCode int
}

// ProcessHandle abstracts a process and everything it spawned.
type ProcessHandle interface {
	PID() int
	Poll() PollState
	// Wait blocks until the process exits and returns its exit code.
	Wait() int
	// Done is closed once the process has exited.
	Done() <-chan struct{}
	IsAlive() bool
	// Terminate asks the whole process tree to exit gracefully.
	Terminate() error
	// ForceKill kills the whole process tree without ceremony.
	ForceKill() error
	// Descendants enumerates live PIDs in the tree, the handle included.
	Descendants() []int
	// KillTree escalates Terminate to ForceKill after the grace period.
	KillTree(grace time.Duration) error
}

// ProcessFactory creates handles. Implementations resolve the shell and
// report domain.StartupError / domain.SpawnError.
type ProcessFactory interface {
	Spawn(ctx context.Context, spec SpawnSpec) (ProcessHandle, error)
}

// RecoveryPrompter collects the user's decision after a timeout breach.
type RecoveryPrompter interface {
	// Interactive reports whether a user is attached to answer prompts.
	// When false the supervisor resolves breaches without asking.
	Interactive() bool
	// Ask presents the five recovery choices for the given execution and
	// blocks until one is selected. cancel is closed when the child exits
	// naturally while the prompt is pending; implementations should then
	// return promptly with any choice (it will be discarded).
	Ask(execution *domain.CommandExecution, elapsed time.Duration, cancel <-chan struct{}) (domain.RecoveryChoice, error)
}

// LineSource hands out interactive input lines from a single reader
// goroutine, so the recovery prompt and the interactive loop never compete
// for the same descriptor.
type LineSource interface {
	// Lines returns the shared channel of input lines; closed at EOF.
	Lines() <-chan string
	// Discard drops one buffered line, if any.
	Discard()
}

// ProgressDisplay receives elapsed-time updates from the tick loop.
type ProgressDisplay interface {
	Tick(execution *domain.CommandExecution, elapsed, threshold time.Duration)
	Clear()
}

// HistoryRepository archives terminal executions in a FIFO ring capped at
// max_history. A corrupted or missing backing store reads as empty.
type HistoryRepository interface {
	Append(entry domain.HistoryEntry) error
	Recent(n int) ([]domain.HistoryEntry, error)
	Slow(threshold time.Duration) ([]domain.HistoryEntry, error)
	All() ([]domain.HistoryEntry, error)
	Clear() error
}

// ConfigRepository loads and persists user settings.
type ConfigRepository interface {
	Load() (domain.Config, error)
	Save(domain.Config) error
	// Reset restores documented defaults and persists them immediately.
	Reset() (domain.Config, error)
}

// ReportStore persists diagnostic reports as timestamped files.
type ReportStore interface {
	Save(report domain.DiagnosticReport) (string, error)
}

// Probe is one independent, time-bounded environment check.
type Probe interface {
	Category() string
	Run(ctx context.Context, cfg domain.Config) []domain.DiagnosticResult
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
