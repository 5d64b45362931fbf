package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
	"github.com/mdcognizant/cursor-sub001/internal/ports"
)

// ElapsedDisplay rewrites one terminal line with the live elapsed time of
// the supervised command. On a non-TTY it stays silent.
type ElapsedDisplay struct {
	writer io.Writer
	tty    bool
	mu     sync.Mutex
	dirty  bool
}

// NewElapsedDisplay creates a display on stderr so it never mixes with the
// child's captured stdout.
func NewElapsedDisplay() *ElapsedDisplay {
	return &ElapsedDisplay{
		writer: os.Stderr,
		tty:    isatty.IsTerminal(os.Stderr.Fd()),
	}
}

// Tick implements ports.ProgressDisplay.
func (d *ElapsedDisplay) Tick(execution *domain.CommandExecution, elapsed, threshold time.Duration) {
	if !d.tty {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.writer, "\r\033[K⏱  %s / %s  %s",
		elapsed.Round(time.Second), threshold, truncate(execution.Command, 60))
	d.dirty = true
}

// Clear erases the elapsed line before a prompt or result block is printed.
func (d *ElapsedDisplay) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dirty {
		fmt.Fprintf(d.writer, "\r\033[K")
		d.dirty = false
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

var _ ports.ProgressDisplay = (*ElapsedDisplay)(nil)
