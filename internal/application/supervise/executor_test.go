package supervise

import (
	"context"
	"testing"
	"time"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
)

func TestTailBufferKeepsOnlyTheEnd(t *testing.T) {
	tail := newTailBuffer(8)
	if _, err := tail.Write([]byte("0123456789abcdef")); err != nil {
		t.Fatal(err)
	}
	if got := tail.String(); got != "89abcdef" {
		t.Fatalf("tail = %q, want the last 8 bytes", got)
	}
	if _, err := tail.Write([]byte("XY")); err != nil {
		t.Fatal(err)
	}
	if got := tail.String(); got != "abcdefXY" {
		t.Fatalf("tail after second write = %q", got)
	}
}

func TestExecutorStartReturnsLiveHandle(t *testing.T) {
	factory := &fakeFactory{} // runs until killed
	executor := &Executor{Factory: factory}

	started := time.Now()
	running, err := executor.Start(context.Background(), Request{Command: "sleep 100"}, 30*time.Second, 0, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	// Non-blocking contract: Start returns while the command still runs.
	if waited := time.Since(started); waited > 500*time.Millisecond {
		t.Fatalf("Start blocked for %s", waited)
	}
	if running.Execution.Status != domain.StatusRunning {
		t.Fatalf("status = %s, want running", running.Execution.Status)
	}
	if running.Execution.ID == "" {
		t.Fatal("execution has no id")
	}
	if running.Execution.TimeoutSeconds != 30 {
		t.Fatalf("threshold seconds = %d, want 30", running.Execution.TimeoutSeconds)
	}
	if !running.Handle.IsAlive() {
		t.Fatal("handle not alive after Start")
	}
	_ = running.Handle.ForceKill()
}
