// Package console owns the one reader goroutine over interactive input.
// Both the recovery prompt and the interactive loop consume lines from the
// same source; two scanners over one descriptor would steal each other's
// input.
package console

import (
	"bufio"
	"io"
	"sync"

	"github.com/mdcognizant/cursor-sub001/internal/ports"
)

// Source pumps lines from a reader into a shared channel. The pump starts
// on first use, so an invocation that never reads leaves the input
// untouched.
type Source struct {
	in    io.Reader
	once  sync.Once
	lines chan string
}

// New creates a Source over in.
func New(in io.Reader) *Source {
	return &Source{in: in, lines: make(chan string)}
}

// Lines returns the shared channel of input lines; closed at EOF.
func (s *Source) Lines() <-chan string {
	s.once.Do(func() {
		go func() {
			defer close(s.lines)
			scanner := bufio.NewScanner(s.in)
			for scanner.Scan() {
				s.lines <- scanner.Text()
			}
		}()
	})
	return s.lines
}

// Discard drops one buffered line, if any. Used to shed an answer typed
// for a prompt that was cancelled by a natural exit.
func (s *Source) Discard() {
	select {
	case <-s.Lines():
	default:
	}
}

var _ ports.LineSource = (*Source)(nil)
