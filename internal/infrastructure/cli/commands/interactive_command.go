package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mdcognizant/cursor-sub001/internal/app"
	"github.com/mdcognizant/cursor-sub001/internal/application/supervise"
	"github.com/mdcognizant/cursor-sub001/internal/domain"
	"github.com/mdcognizant/cursor-sub001/internal/infrastructure/console"
)

// NewInteractiveCommand creates the interactive command: a REPL that
// supervises entered commands one after another, never concurrently.
func NewInteractiveCommand(container *app.Container) *cobra.Command {
	var autoDiagnose bool

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Supervise commands one at a time in a prompt loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			wireDiagnose(container, cmd, false, false)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "cmdwatch interactive mode; type a command, or exit to leave")

			if container.Stdin == nil {
				container.Stdin = console.New(cmd.InOrStdin())
			}
			for {
				fmt.Fprint(out, "cmdwatch> ")
				raw, ok := <-container.Stdin.Lines()
				if !ok {
					return nil
				}
				line := strings.TrimSpace(raw)
				switch line {
				case "":
					continue
				case "exit", "quit":
					return nil
				}

				res, err := container.Supervisor.Run(cmd.Context(), supervise.Request{
					Command:     line,
					Shell:       container.Config.Shell,
					Passthrough: out,
				})
				if err != nil && !errors.Is(err, domain.ErrUserQuit) {
					// Startup/spawn problems abort this entry only.
					fmt.Fprintf(out, "error: %v\n", err)
					continue
				}

				RenderResult(out, res)
				if shouldAutoDiagnose(container, autoDiagnose, res.Execution) {
					runDiagnostics(cmd.Context(), container, cmd, false)
				}
				if errors.Is(err, domain.ErrUserQuit) {
					return ExitCodeError{Code: domain.ExitQuit, Msg: "cancelled"}
				}
			}
		},
	}

	cmd.Flags().BoolVar(&autoDiagnose, "auto-diagnose", false, "Run diagnostics after a killed execution")
	return cmd
}

func shouldAutoDiagnose(container *app.Container, flag bool, execution *domain.CommandExecution) bool {
	if execution == nil {
		return false
	}
	if !flag && !container.Config.AutoDiagnose {
		return false
	}
	return execution.Status == domain.StatusKilled
}

func runDiagnostics(ctx context.Context, container *app.Container, cmd *cobra.Command, verbose bool) {
	report := container.Engine.Run(ctx, container.Config)
	RenderReport(cmd.OutOrStdout(), report, verbose)
}
