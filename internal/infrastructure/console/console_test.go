package console

import (
	"strings"
	"testing"
	"time"
)

func TestLinesDeliveredInOrderAcrossConsumers(t *testing.T) {
	src := New(strings.NewReader("first\nsecond\nthird\n"))

	for _, want := range []string{"first", "second", "third"} {
		select {
		case line, ok := <-src.Lines():
			if !ok {
				t.Fatalf("source closed before %q", want)
			}
			if line != want {
				t.Fatalf("line = %q, want %q", line, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}

	select {
	case _, ok := <-src.Lines():
		if ok {
			t.Fatal("expected closed channel after EOF")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed at EOF")
	}
}

func TestDiscardDoesNotBlockWhenEmpty(t *testing.T) {
	src := New(strings.NewReader(""))
	done := make(chan struct{})
	go func() {
		src.Discard()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Discard blocked on an empty source")
	}
}
