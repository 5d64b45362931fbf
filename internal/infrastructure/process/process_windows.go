//go:build windows

package process

import (
	"os/exec"
	"strconv"
	"strings"
)

const defaultShell = "cmd.exe"

var essentialEnvKeys = []string{"PATH", "Path", "HOME", "USERPROFILE", "SystemRoot", "ComSpec", "TEMP", "TMP"}

// setProcessGroup is a no-op on Windows; tree termination goes through
// taskkill /T instead of process groups.
func setProcessGroup(cmd *exec.Cmd) {}

func shellArgs(shellPath, command string) []string {
	if strings.Contains(strings.ToLower(shellPath), "powershell") || strings.Contains(strings.ToLower(shellPath), "pwsh") {
		return []string{"-NoProfile", "-Command", command}
	}
	return []string{"/C", command}
}

// terminateGroup asks the tree to exit via taskkill without /F.
func terminateGroup(cmd *exec.Cmd) error {
	return taskkill(cmd, false)
}

// killGroup forcefully kills the tree via taskkill /F.
func killGroup(cmd *exec.Cmd) error {
	return taskkill(cmd, true)
}

func taskkill(cmd *exec.Cmd, force bool) error {
	if cmd.Process == nil {
		return nil
	}
	args := []string{"/T", "/PID", strconv.Itoa(cmd.Process.Pid)}
	if force {
		args = append(args, "/F")
	}
	return exec.Command("taskkill", args...).Run()
}
