package supervise

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
	"github.com/mdcognizant/cursor-sub001/internal/infrastructure/history"
	"github.com/mdcognizant/cursor-sub001/internal/ports"
)

// fakeHandle is a controllable process stand-in.
type fakeHandle struct {
	mu       sync.Mutex
	done     chan struct{}
	exitCode int
	exited   bool
	killed   bool
}

func newFakeHandle() *fakeHandle {
	return &fakeHandle{done: make(chan struct{})}
}

func (h *fakeHandle) exit(code int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.exited {
		return
	}
	h.exited = true
	h.exitCode = code
	close(h.done)
}

func (h *fakeHandle) PID() int { return 4242 }

func (h *fakeHandle) Poll() ports.PollState {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.exited {
		return ports.PollState{Running: false, ExitCode: h.exitCode}
	}
	return ports.PollState{Running: true}
}

func (h *fakeHandle) Wait() int {
	<-h.done
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.exitCode
}

func (h *fakeHandle) Done() <-chan struct{} { return h.done }
func (h *fakeHandle) IsAlive() bool         { return h.Poll().Running }

func (h *fakeHandle) Terminate() error { return nil }

func (h *fakeHandle) ForceKill() error {
	h.mu.Lock()
	h.killed = true
	h.mu.Unlock()
	h.exit(domain.ExitKilled)
	return nil
}

func (h *fakeHandle) Descendants() []int {
	if h.IsAlive() {
		return []int{4242}
	}
	return nil
}

func (h *fakeHandle) KillTree(grace time.Duration) error { return h.ForceKill() }

func (h *fakeHandle) wasKilled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.killed
}

// fakeFactory scripts one handle per attempt: a non-negative duration exits
// with the paired code after that long, a negative one runs until killed.
type fakeFactory struct {
	mu        sync.Mutex
	durations []time.Duration
	exitCodes []int
	spawnErr  error
	handles   []*fakeHandle
}

func (f *fakeFactory) Spawn(ctx context.Context, spec ports.SpawnSpec) (ports.ProcessHandle, error) {
	if f.spawnErr != nil {
		return nil, f.spawnErr
	}
	f.mu.Lock()
	attempt := len(f.handles)
	h := newFakeHandle()
	f.handles = append(f.handles, h)
	var d time.Duration = -1
	if attempt < len(f.durations) {
		d = f.durations[attempt]
	}
	code := 0
	if attempt < len(f.exitCodes) {
		code = f.exitCodes[attempt]
	}
	f.mu.Unlock()

	if d >= 0 {
		go func() {
			time.Sleep(d)
			h.exit(code)
		}()
	}
	return h, nil
}

// scriptedPrompter returns pre-planned choices and counts prompts.
type scriptedPrompter struct {
	mu              sync.Mutex
	choices         []domain.RecoveryChoice
	asks            int
	blockUntilExit  bool
	blockedOnCancel bool
	detached        bool
}

func (p *scriptedPrompter) Interactive() bool { return !p.detached }

func (p *scriptedPrompter) Ask(execution *domain.CommandExecution, elapsed time.Duration, cancel <-chan struct{}) (domain.RecoveryChoice, error) {
	p.mu.Lock()
	p.asks++
	block := p.blockUntilExit
	var choice domain.RecoveryChoice = domain.ChoiceKill
	if len(p.choices) > 0 {
		choice = p.choices[0]
		p.choices = p.choices[1:]
	}
	p.mu.Unlock()

	if block {
		<-cancel
		p.mu.Lock()
		p.blockedOnCancel = true
		p.mu.Unlock()
		return domain.ChoiceContinue, nil
	}
	return choice, nil
}

func (p *scriptedPrompter) askCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.asks
}

// spyDisplay counts tick and clear calls.
type spyDisplay struct {
	mu     sync.Mutex
	ticks  int
	clears int
}

func (d *spyDisplay) Tick(execution *domain.CommandExecution, elapsed, threshold time.Duration) {
	d.mu.Lock()
	d.ticks++
	d.mu.Unlock()
}

func (d *spyDisplay) Clear() {
	d.mu.Lock()
	d.clears++
	d.mu.Unlock()
}

func (d *spyDisplay) clearCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clears
}

func newService(factory *fakeFactory, prompter ports.RecoveryPrompter, store ports.HistoryRepository) *Service {
	return &Service{
		Executor: &Executor{Factory: factory},
		Config:   domain.DefaultConfig(),
		Prompter: prompter,
		History:  store,
		Tick:     20 * time.Millisecond,
		Grace:    50 * time.Millisecond,
	}
}

func TestRunCompletesBeforeThresholdWithoutPrompt(t *testing.T) {
	factory := &fakeFactory{durations: []time.Duration{50 * time.Millisecond}}
	prompter := &scriptedPrompter{}
	store := history.NewMemoryStore(10)
	svc := newService(factory, prompter, store)

	res, err := svc.Run(context.Background(), Request{Command: "true", TimeoutSeconds: 10})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Execution.Status != domain.StatusCompleted {
		t.Fatalf("status = %s, want completed", res.Execution.Status)
	}
	if res.Execution.ExitCode == nil || *res.Execution.ExitCode != 0 {
		t.Fatalf("exit code = %v, want 0", res.Execution.ExitCode)
	}
	if d := res.Execution.Duration(); d <= 0 || d > time.Second {
		t.Fatalf("duration = %s, want positive and under 1s", d)
	}
	if prompter.askCount() != 0 {
		t.Fatalf("prompt invoked %d times, want 0", prompter.askCount())
	}
	if entries, _ := store.All(); len(entries) != 1 {
		t.Fatalf("history entries = %d, want 1", len(entries))
	}
}

func TestRunNonZeroExitRecordsFailed(t *testing.T) {
	factory := &fakeFactory{durations: []time.Duration{10 * time.Millisecond}, exitCodes: []int{3}}
	svc := newService(factory, &scriptedPrompter{}, history.NewMemoryStore(10))

	res, err := svc.Run(context.Background(), Request{Command: "false", TimeoutSeconds: 10})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Execution.Status != domain.StatusFailed {
		t.Fatalf("status = %s, want failed", res.Execution.Status)
	}
	if res.Execution.ExitCode == nil || *res.Execution.ExitCode != 3 {
		t.Fatalf("exit code = %v, want 3", res.Execution.ExitCode)
	}
}

func TestBreachPromptsExactlyOnceAndKillClearsTree(t *testing.T) {
	factory := &fakeFactory{} // runs until killed
	prompter := &scriptedPrompter{choices: []domain.RecoveryChoice{domain.ChoiceKill}}
	store := history.NewMemoryStore(10)
	svc := newService(factory, prompter, store)

	res, err := svc.Run(context.Background(), Request{Command: "sleep 10", TimeoutSeconds: 1})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Execution.Status != domain.StatusKilled {
		t.Fatalf("status = %s, want killed", res.Execution.Status)
	}
	if prompter.askCount() != 1 {
		t.Fatalf("prompt invoked %d times, want exactly 1", prompter.askCount())
	}
	if got := factory.handles[0].Descendants(); len(got) != 0 {
		t.Fatalf("descendants alive after kill: %v", got)
	}
	if !factory.handles[0].wasKilled() {
		t.Fatal("process tree was not killed")
	}
}

func TestRetryLinksLineage(t *testing.T) {
	factory := &fakeFactory{
		// First two attempts hang, third finishes quickly.
		durations: []time.Duration{-1, -1, 30 * time.Millisecond},
	}
	prompter := &scriptedPrompter{choices: []domain.RecoveryChoice{domain.ChoiceRetry, domain.ChoiceRetry}}
	store := history.NewMemoryStore(10)
	svc := newService(factory, prompter, store)

	res, err := svc.Run(context.Background(), Request{Command: "flaky", TimeoutSeconds: 1})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Execution.Status != domain.StatusCompleted {
		t.Fatalf("final status = %s, want completed", res.Execution.Status)
	}
	if res.Execution.Attempt != 2 {
		t.Fatalf("final attempt = %d, want 2", res.Execution.Attempt)
	}

	entries, _ := store.All()
	if len(entries) != 3 {
		t.Fatalf("history entries = %d, want 3 (N+1 linked records)", len(entries))
	}
	if entries[0].ParentID != "" {
		t.Fatalf("first attempt has parent %q, want none", entries[0].ParentID)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].ParentID != entries[i-1].ID {
			t.Fatalf("entry %d parent = %q, want %q", i, entries[i].ParentID, entries[i-1].ID)
		}
		if entries[i].ID == entries[i-1].ID {
			t.Fatalf("entry %d shares an id with its parent", i)
		}
	}
	for i := 0; i < 2; i++ {
		if entries[i].Status != domain.StatusKilled {
			t.Fatalf("retried attempt %d status = %s, want killed", i, entries[i].Status)
		}
	}
}

func TestContinueRestartsFreshCountdown(t *testing.T) {
	factory := &fakeFactory{}
	prompter := &scriptedPrompter{choices: []domain.RecoveryChoice{domain.ChoiceContinue, domain.ChoiceKill}}
	svc := newService(factory, prompter, history.NewMemoryStore(10))

	started := time.Now()
	res, err := svc.Run(context.Background(), Request{Command: "slow", TimeoutSeconds: 1})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Execution.Status != domain.StatusKilled {
		t.Fatalf("status = %s, want killed", res.Execution.Status)
	}
	if prompter.askCount() != 2 {
		t.Fatalf("prompt invoked %d times, want 2 (one per breach)", prompter.askCount())
	}
	// Two full countdowns must have elapsed: Continue resets, it does not
	// keep accumulating time already spent.
	if elapsed := time.Since(started); elapsed < 2*time.Second {
		t.Fatalf("elapsed = %s, want at least two full countdowns", elapsed)
	}
}

func TestNaturalExitDuringPromptShortCircuits(t *testing.T) {
	factory := &fakeFactory{durations: []time.Duration{1300 * time.Millisecond}}
	prompter := &scriptedPrompter{blockUntilExit: true}
	store := history.NewMemoryStore(10)
	svc := newService(factory, prompter, store)

	res, err := svc.Run(context.Background(), Request{Command: "nearly-done", TimeoutSeconds: 1})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Execution.Status != domain.StatusCompleted {
		t.Fatalf("status = %s, want completed (real exit wins over pending prompt)", res.Execution.Status)
	}
	if res.Execution.ExitCode == nil || *res.Execution.ExitCode != 0 {
		t.Fatalf("exit code = %v, want the real 0", res.Execution.ExitCode)
	}
	if prompter.askCount() != 1 {
		t.Fatalf("prompt invoked %d times, want 1", prompter.askCount())
	}
}

func TestQuitPropagatesCancellation(t *testing.T) {
	factory := &fakeFactory{}
	prompter := &scriptedPrompter{choices: []domain.RecoveryChoice{domain.ChoiceQuit}}
	store := history.NewMemoryStore(10)
	svc := newService(factory, prompter, store)

	res, err := svc.Run(context.Background(), Request{Command: "stuck", TimeoutSeconds: 1})
	if !errors.Is(err, domain.ErrUserQuit) {
		t.Fatalf("err = %v, want ErrUserQuit", err)
	}
	if res.Execution.Status != domain.StatusKilled {
		t.Fatalf("status = %s, want killed", res.Execution.Status)
	}
	if entries, _ := store.All(); len(entries) != 1 {
		t.Fatalf("history entries = %d, want 1", len(entries))
	}
}

func TestNaturalExitClearsElapsedDisplay(t *testing.T) {
	factory := &fakeFactory{durations: []time.Duration{80 * time.Millisecond}}
	display := &spyDisplay{}
	svc := newService(factory, &scriptedPrompter{}, history.NewMemoryStore(10))
	svc.Display = display

	res, err := svc.Run(context.Background(), Request{Command: "quick", TimeoutSeconds: 10})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Execution.Status != domain.StatusCompleted {
		t.Fatalf("status = %s, want completed", res.Execution.Status)
	}
	// The elapsed line must be erased before the result block prints.
	if display.clearCount() == 0 {
		t.Fatal("display never cleared after natural exit")
	}
}

func TestDetachedBreachResolvesAsUnattendedKill(t *testing.T) {
	factory := &fakeFactory{} // runs until killed
	prompter := &scriptedPrompter{detached: true}
	store := history.NewMemoryStore(10)
	svc := newService(factory, prompter, store)

	res, err := svc.Run(context.Background(), Request{Command: "sleep 10", TimeoutSeconds: 1})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Execution.Status != domain.StatusKilled {
		t.Fatalf("status = %s, want killed", res.Execution.Status)
	}
	if !res.Execution.Unattended {
		t.Fatal("execution not marked unattended")
	}
	if !factory.handles[0].wasKilled() {
		t.Fatal("process tree was not killed")
	}
}

func TestSpawnErrorLeavesHistoryEmpty(t *testing.T) {
	spawnErr := &domain.StartupError{Shell: "no-such-shell", Err: errors.New("not found")}
	factory := &fakeFactory{spawnErr: spawnErr}
	store := history.NewMemoryStore(10)
	svc := newService(factory, &scriptedPrompter{}, store)

	_, err := svc.Run(context.Background(), Request{Command: "whatever", TimeoutSeconds: 1})
	var startupErr *domain.StartupError
	if !errors.As(err, &startupErr) {
		t.Fatalf("err = %v, want StartupError", err)
	}
	if entries, _ := store.All(); len(entries) != 0 {
		t.Fatalf("history entries = %d, want 0 after startup failure", len(entries))
	}
}
