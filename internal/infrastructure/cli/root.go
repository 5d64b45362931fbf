package cli

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mdcognizant/cursor-sub001/internal/app"
	"github.com/mdcognizant/cursor-sub001/internal/infrastructure/cli/commands"
	"github.com/mdcognizant/cursor-sub001/internal/infrastructure/console"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	// One line source for everything that reads stdin: the recovery prompt
	// and the interactive loop must not run separate scanners over one fd.
	container.Stdin = console.New(os.Stdin)
	container.Supervisor.Prompter = NewRecoveryPrompt(container.Stdin, os.Stdout, isatty.IsTerminal(os.Stdin.Fd()))
	container.Supervisor.Display = NewElapsedDisplay()

	root := &cobra.Command{
		Use:   "cmdwatch",
		Short: "cmdwatch - shell command supervisor",
		Long: "cmdwatch runs a command under a deadline, detects hangs before they become\n" +
			"indefinite, offers an interactive recovery decision, and diagnoses why the\n" +
			"local shell environment is slow.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(commands.NewRunCommand(container))
	root.AddCommand(commands.NewDiagnoseCommand(container))
	root.AddCommand(commands.NewInteractiveCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewStatsCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, nil
}
