// Package process implements the ProcessHandle port: spawn, poll and
// terminate a process and everything it spawned.
package process

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
	"github.com/mdcognizant/cursor-sub001/internal/ports"
)

// Factory creates OS process handles. Platform specifics (process groups,
// signal delivery) are selected once at build time via the per-OS files.
type Factory struct{}

// NewFactory builds the production process factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Spawn implements ports.ProcessFactory.
func (f *Factory) Spawn(ctx context.Context, spec ports.SpawnSpec) (ports.ProcessHandle, error) {
	shellPath, err := resolveShell(spec.Shell)
	if err != nil {
		return nil, &domain.StartupError{Shell: spec.Shell, Err: err}
	}

	cmd := exec.Command(shellPath, shellArgs(shellPath, spec.Command)...)
	cmd.Dir = spec.Dir
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr
	if spec.CleanEnv {
		cmd.Env = minimalEnv()
	}
	setProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		return nil, &domain.SpawnError{Command: spec.Command, Err: err}
	}

	h := newHandle(cmd)
	go h.reap()
	go h.watchContext(ctx)
	return h, nil
}

// resolveShell maps a requested shell name to an executable path.
// Empty or "auto" falls back to $SHELL, then /bin/sh, matching how the
// command executor has always defaulted.
func resolveShell(name string) (string, error) {
	switch strings.TrimSpace(name) {
	case "", "auto":
		if env := os.Getenv("SHELL"); env != "" {
			if path, err := exec.LookPath(env); err == nil {
				return path, nil
			}
		}
		return exec.LookPath(defaultShell)
	default:
		return exec.LookPath(name)
	}
}

// minimalEnv keeps only the variables a child needs to run at all,
// ruling out profile-induced slowness when comparing runs.
func minimalEnv() []string {
	var env []string
	for _, key := range essentialEnvKeys {
		if value, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+value)
		}
	}
	return env
}

var _ ports.ProcessFactory = (*Factory)(nil)
