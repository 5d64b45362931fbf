// Package commands contains one file per cobra subcommand.
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
	"github.com/mdcognizant/cursor-sub001/internal/pkg/logger"
)

// ExitCodeError carries a reserved process exit code up to main.
type ExitCodeError struct {
	Code int
	Msg  string
}

func (e ExitCodeError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Msg
}

// NewRunCommand creates the run command: supervise one command under a
// deadline.
func NewRunCommand(container *app.Container) *cobra.Command {
	var (
		timeout       int
		clean         bool
		shellName     string
		cwd           string
		verbose       bool
		logFile       string
		noDiagnostics bool
	)

	cmd := &cobra.Command{
		Use:   "run <command...>",
		Short: "Run a command under supervision",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose || logFile != "" {
				applyLogging(container, verbose, logFile)
			}
			wireDiagnose(container, cmd, noDiagnostics, verbose)

			res, err := container.Supervisor.Run(cmd.Context(), supervise.Request{
				Command:        strings.Join(args, " "),
				Shell:          resolveShellName(container, shellName),
				Dir:            cwd,
				CleanEnv:       clean,
				TimeoutSeconds: timeout,
				Passthrough:    cmd.OutOrStdout(),
			})
			if err != nil && !errors.Is(err, domain.ErrUserQuit) {
				return err
			}

			RenderResult(cmd.OutOrStdout(), res)
			maybeAutoDiagnose(container, cmd, res, noDiagnostics, verbose)

			if errors.Is(err, domain.ErrUserQuit) {
				return ExitCodeError{Code: domain.ExitQuit, Msg: "cancelled"}
			}
			if code := exitCodeFor(res.Execution); code != 0 {
				return ExitCodeError{Code: code}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&timeout, "timeout", "t", 0, "Timeout in seconds (default from config)")
	cmd.Flags().BoolVar(&clean, "clean", false, "Run with a minimal environment (PATH plus essentials)")
	cmd.Flags().StringVar(&shellName, "shell", "", "Shell to run the command with")
	cmd.Flags().StringVar(&cwd, "cwd", "", "Working directory")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	cmd.Flags().BoolVar(&noDiagnostics, "no-diagnostics", false, "Disable the Diagnose choice and auto-diagnose")
	return cmd
}

// exitCodeFor maps a terminal execution to the process exit code: the
// child's own code on natural exit, reserved codes otherwise.
func exitCodeFor(execution *domain.CommandExecution) int {
	if execution == nil {
		return domain.ExitToolErr
	}
	switch execution.Status {
	case domain.StatusCompleted, domain.StatusFailed:
		if execution.ExitCode != nil {
			return *execution.ExitCode
		}
		return domain.ExitOK
	case domain.StatusKilled:
		if execution.Unattended {
			// Breach resolved by auto-kill, the timeout(1) convention.
			return domain.ExitTimedOut
		}
		return domain.ExitKilled
	case domain.StatusTimedOut:
		return domain.ExitTimedOut
	}
	return domain.ExitToolErr
}

func applyLogging(container *app.Container, verbose bool, logFile string) {
	if logFile == "" {
		logFile = container.Config.LogFile
	}
	log := logger.NewWithFile(verbose || container.Config.Verbose, logFile)
	container.Logger = log
	container.Supervisor.Logger = log
	container.Supervisor.Executor.Logger = log
	container.Engine.Logger = log
}

// wireDiagnose connects the Diagnose recovery choice to the engine.
func wireDiagnose(container *app.Container, cmd *cobra.Command, disabled, verbose bool) {
	if disabled {
		container.Supervisor.Diagnose = nil
		return
	}
	container.Supervisor.Diagnose = func(ctx context.Context) error {
		report := container.Engine.Run(ctx, container.Config)
		RenderReport(cmd.OutOrStdout(), report, verbose)
		return nil
	}
}

// maybeAutoDiagnose runs the battery after an unhealthy outcome when the
// user opted in via config.
func maybeAutoDiagnose(container *app.Container, cmd *cobra.Command, res supervise.Result, disabled, verbose bool) {
	if disabled || !container.Config.AutoDiagnose || res.Execution == nil {
		return
	}
	if res.Execution.Status != domain.StatusKilled {
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\nRunning diagnostics (auto_diagnose is on)...")
	report := container.Engine.Run(cmd.Context(), container.Config)
	RenderReport(cmd.OutOrStdout(), report, verbose)
}

func resolveShellName(container *app.Container, flag string) string {
	if flag != "" {
		return flag
	}
	return container.Config.Shell
}
