// Package supervise runs one command at a time under a deadline, drives the
// elapsed-time clock, and resolves timeout breaches through the interactive
// recovery prompt.
package supervise

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
	"github.com/mdcognizant/cursor-sub001/internal/ports"
)

// Request describes one run invocation.
type Request struct {
	Command        string
	Shell          string
	Dir            string
	CleanEnv       bool
	TimeoutSeconds int // explicit per-invocation timeout, 0 resolves from config
	Passthrough    io.Writer
}

// Running couples a live CommandExecution with its process handle.
type Running struct {
	Execution *domain.CommandExecution
	Handle    ports.ProcessHandle
	tail      *tailBuffer
}

// OutputTail returns the captured end of the child's combined output.
func (r *Running) OutputTail() string { return r.tail.String() }

// Executor turns a command string into a running CommandExecution. It
// returns immediately; output capture happens on the exec pipes while the
// timeout clock runs elsewhere.
type Executor struct {
	Factory ports.ProcessFactory
	Logger  ports.Logger
}

// Start spawns the command. attempt and parentID carry retry lineage.
func (e *Executor) Start(ctx context.Context, req Request, threshold time.Duration, attempt int, parentID string) (*Running, error) {
	execution := &domain.CommandExecution{
		ID:             uuid.NewString(),
		Command:        req.Command,
		Shell:          req.Shell,
		WorkDir:        req.Dir,
		CleanEnv:       req.CleanEnv,
		TimeoutSeconds: int(threshold / time.Second),
		Status:         domain.StatusCreated,
		Attempt:        attempt,
		ParentID:       parentID,
	}

	tail := newTailBuffer(domain.OutputTailBytes)
	var out io.Writer = tail
	if req.Passthrough != nil {
		out = io.MultiWriter(req.Passthrough, tail)
	}

	handle, err := e.Factory.Spawn(ctx, ports.SpawnSpec{
		Command:  req.Command,
		Shell:    req.Shell,
		Dir:      req.Dir,
		CleanEnv: req.CleanEnv,
		Stdout:   out,
		Stderr:   out,
	})
	if err != nil {
		return nil, err
	}

	execution.StartedAt = time.Now()
	if err := execution.Transition(domain.StatusRunning); err != nil {
		return nil, err
	}
	if e.Logger != nil {
		e.Logger.Debug("spawned command", map[string]interface{}{
			"id": execution.ID, "pid": handle.PID(), "command": req.Command, "attempt": attempt,
		})
	}
	return &Running{Execution: execution, Handle: handle, tail: tail}, nil
}

// tailBuffer keeps the last cap bytes written to it. Stdout and stderr share
// one writer, so writes are serialized here.
type tailBuffer struct {
	mu  sync.Mutex
	cap int
	buf []byte
}

func newTailBuffer(capacity int) *tailBuffer {
	return &tailBuffer{cap: capacity}
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if overflow := len(t.buf) - t.cap; overflow > 0 {
		t.buf = t.buf[overflow:]
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}
