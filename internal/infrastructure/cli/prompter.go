package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
	"github.com/mdcognizant/cursor-sub001/internal/ports"
)

// RecoveryPrompt implements ports.RecoveryPrompter over stdio: the five
// Retry/Kill/Diagnose/Continue/Quit choices offered on a timeout breach.
// It reads from a shared LineSource rather than stdin directly, so the
// interactive loop and the prompt never compete for the same descriptor.
type RecoveryPrompt struct {
	out         io.Writer
	input       ports.LineSource
	interactive bool
}

// NewRecoveryPrompt constructs a prompter over the shared input source.
func NewRecoveryPrompt(input ports.LineSource, out io.Writer, interactive bool) *RecoveryPrompt {
	return &RecoveryPrompt{input: input, out: out, interactive: interactive}
}

// Interactive implements ports.RecoveryPrompter.
func (p *RecoveryPrompt) Interactive() bool {
	return p.interactive && p.input != nil
}

// Ask implements ports.RecoveryPrompter. On a non-interactive stdin there
// is nobody to decide, so the tree is killed rather than hanging forever.
func (p *RecoveryPrompt) Ask(execution *domain.CommandExecution, elapsed time.Duration, cancel <-chan struct{}) (domain.RecoveryChoice, error) {
	if !p.Interactive() {
		fmt.Fprintf(p.out, "\ntimeout after %s with no terminal attached, killing %q\n",
			elapsed.Round(time.Second), execution.Command)
		return domain.ChoiceKill, nil
	}

	fmt.Fprintf(p.out, "\n⏱  %q still running after %s (threshold %ds, attempt %d)\n",
		execution.Command, elapsed.Round(time.Second), execution.TimeoutSeconds, execution.Attempt+1)
	fmt.Fprintln(p.out, "  [r] retry     kill the process tree and start a fresh attempt")
	fmt.Fprintln(p.out, "  [k] kill      terminate the process tree")
	fmt.Fprintln(p.out, "  [d] diagnose  run environment diagnostics, then decide")
	fmt.Fprintln(p.out, "  [c] continue  keep waiting with a fresh countdown")
	fmt.Fprintln(p.out, "  [q] quit      kill the process tree and cancel the invocation")

	for {
		fmt.Fprint(p.out, "choice [r/k/d/c/q]: ")
		select {
		case line, ok := <-p.input.Lines():
			if !ok {
				return "", io.EOF
			}
			if choice, ok := parseChoice(line); ok {
				return choice, nil
			}
			fmt.Fprintf(p.out, "unrecognized choice %q\n", strings.TrimSpace(line))
		case <-cancel:
			// The command exited on its own; the decision is moot. Shed an
			// answer that landed at the same instant so it is not replayed
			// to the next consumer.
			p.input.Discard()
			fmt.Fprintln(p.out, "\ncommand finished while waiting for a decision")
			return domain.ChoiceContinue, nil
		}
	}
}

func parseChoice(line string) (domain.RecoveryChoice, bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "r", "retry":
		return domain.ChoiceRetry, true
	case "k", "kill":
		return domain.ChoiceKill, true
	case "d", "diag", "diagnose":
		return domain.ChoiceDiagnose, true
	case "c", "continue":
		return domain.ChoiceContinue, true
	case "q", "quit":
		return domain.ChoiceQuit, true
	}
	return "", false
}

var _ ports.RecoveryPrompter = (*RecoveryPrompt)(nil)
