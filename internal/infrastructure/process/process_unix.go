//go:build unix

package process

import (
	"os/exec"
	"strings"
	"syscall"
)

const defaultShell = "/bin/sh"

var essentialEnvKeys = []string{"PATH", "HOME", "TERM", "LANG", "USER", "TMPDIR"}

// setProcessGroup puts the child in its own process group so signals reach
// the whole tree.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func shellArgs(shellPath, command string) []string {
	_ = shellPath
	return []string{"-c", command}
}

// terminateGroup sends SIGTERM to the entire process group.
func terminateGroup(cmd *exec.Cmd) error {
	return signalGroup(cmd, syscall.SIGTERM)
}

// killGroup sends SIGKILL to the entire process group.
func killGroup(cmd *exec.Cmd) error {
	return signalGroup(cmd, syscall.SIGKILL)
}

func signalGroup(cmd *exec.Cmd, sig syscall.Signal) error {
	if cmd.Process == nil {
		return nil
	}
	pgid, err := syscall.Getpgid(cmd.Process.Pid)
	if err != nil {
		return cmd.Process.Signal(sig)
	}
	if err := syscall.Kill(-pgid, sig); err != nil && !isGone(err) {
		return err
	}
	return nil
}

// isGone treats "no such process" as success: the tree already exited.
func isGone(err error) bool {
	return err == syscall.ESRCH || strings.Contains(err.Error(), "process already finished")
}
