package process

import (
	"context"
	"os/exec"
	"sync"
	"time"

	gops "github.com/shirou/gopsutil/v3/process"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
	"github.com/mdcognizant/cursor-sub001/internal/ports"
)

// Handle wraps one spawned process tree.
type Handle struct {
	cmd  *exec.Cmd
	done chan struct{}

	mu       sync.Mutex
	exitCode int
	exited   bool
}

func newHandle(cmd *exec.Cmd) *Handle {
	return &Handle{cmd: cmd, done: make(chan struct{})}
}

// reap waits for the process and records its exit code exactly once.
func (h *Handle) reap() {
	err := h.cmd.Wait()
	code := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		code = exitErr.ExitCode()
	} else if err != nil {
		code = -1
	}
	h.mu.Lock()
	h.exitCode = code
	h.exited = true
	h.mu.Unlock()
	close(h.done)
}

// watchContext force-kills the tree if the surrounding context is cancelled
// before the process exits.
func (h *Handle) watchContext(ctx context.Context) {
	select {
	case <-ctx.Done():
		_ = h.ForceKill()
	case <-h.done:
	}
}

// PID implements ports.ProcessHandle.
func (h *Handle) PID() int {
	if h.cmd.Process == nil {
		return 0
	}
	return h.cmd.Process.Pid
}

// Poll implements ports.ProcessHandle.
func (h *Handle) Poll() ports.PollState {
	select {
	case <-h.done:
		h.mu.Lock()
		defer h.mu.Unlock()
		return ports.PollState{Running: false, ExitCode: h.exitCode}
	default:
		return ports.PollState{Running: true}
	}
}

// Wait implements ports.ProcessHandle.
func (h *Handle) Wait() int {
	<-h.done
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.exitCode
}

// Done implements ports.ProcessHandle.
func (h *Handle) Done() <-chan struct{} { return h.done }

// IsAlive implements ports.ProcessHandle.
func (h *Handle) IsAlive() bool { return h.Poll().Running }

// Descendants enumerates the live PIDs of the tree, root included.
func (h *Handle) Descendants() []int {
	pid := h.PID()
	if pid == 0 {
		return nil
	}
	var pids []int
	if h.IsAlive() {
		pids = append(pids, pid)
	}
	root, err := gops.NewProcess(int32(pid))
	if err != nil {
		return pids
	}
	pids = append(pids, collectChildren(root)...)
	return pids
}

func collectChildren(p *gops.Process) []int {
	children, err := p.Children()
	if err != nil {
		return nil
	}
	var pids []int
	for _, child := range children {
		pids = append(pids, int(child.Pid))
		pids = append(pids, collectChildren(child)...)
	}
	return pids
}

// Terminate asks the whole tree to exit gracefully. The process group gets
// the signal first; a descendant sweep catches grandchildren that detached
// into their own group.
func (h *Handle) Terminate() error {
	if !h.IsAlive() {
		return nil
	}
	err := terminateGroup(h.cmd)
	h.sweep(func(p *gops.Process) error { return p.Terminate() })
	return err
}

// ForceKill kills the whole tree without ceremony.
func (h *Handle) ForceKill() error {
	select {
	case <-h.done:
		return nil
	default:
	}
	err := killGroup(h.cmd)
	h.sweep(func(p *gops.Process) error { return p.Kill() })
	return err
}

func (h *Handle) sweep(action func(*gops.Process) error) {
	root, err := gops.NewProcess(int32(h.PID()))
	if err != nil {
		return
	}
	for _, pid := range collectChildren(root) {
		if p, err := gops.NewProcess(int32(pid)); err == nil {
			_ = action(p)
		}
	}
}

// KillTree escalates from graceful terminate to force-kill after the grace
// period. It returns domain.TerminationError when survivors remain.
func (h *Handle) KillTree(grace time.Duration) error {
	if !h.IsAlive() {
		return nil
	}
	termErr := h.Terminate()

	select {
	case <-h.done:
	case <-time.After(grace):
		_ = h.ForceKill()
		select {
		case <-h.done:
		case <-time.After(grace):
		}
	}

	if survivors := h.Descendants(); len(survivors) > 0 {
		return &domain.TerminationError{PID: h.PID(), Survivors: len(survivors), Err: termErr}
	}
	return nil
}

var _ ports.ProcessHandle = (*Handle)(nil)
