package diagnose

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
)

const categoryVCS = "VCS environment"

// heavyHookBytes flags hooks large enough to suggest real work (linters,
// formatters, test suites) running on every commit.
const heavyHookBytes = 8 * 1024

// vcsBattery is the fixed set of read-only git commands timed against the
// working tree.
var vcsBattery = []string{
	"git status --porcelain",
	"git log --oneline -5",
	"git branch --list",
}

// VCSProbe verifies the git client, enumerates repository hooks and times a
// small battery of read-only commands.
type VCSProbe struct {
	Timer *CommandTimer
}

func (p *VCSProbe) Category() string { return categoryVCS }

func (p *VCSProbe) Run(ctx context.Context, cfg domain.Config) []domain.DiagnosticResult {
	var results []domain.DiagnosticResult

	gitPath, err := exec.LookPath("git")
	if err != nil {
		return append(results, warn(categoryVCS, "client", "git not found on PATH",
			"install git or add it to PATH"))
	}

	version := "unknown"
	if out, err := exec.CommandContext(ctx, gitPath, "--version").Output(); err == nil {
		version = strings.TrimSpace(string(out))
	}
	clientResult := pass(categoryVCS, "client", version)
	clientResult.Value = version
	results = append(results, clientResult)

	root := repositoryRoot(ctx, gitPath)
	if root == "" {
		return append(results, pass(categoryVCS, "repository", "not inside a git repository"))
	}
	results = append(results, pass(categoryVCS, "repository", root))
	results = append(results, hookCheck(filepath.Join(root, ".git", "hooks")))

	if p.Timer != nil {
		results = append(results, p.timeBattery(ctx, cfg))
	}
	return results
}

func repositoryRoot(ctx context.Context, gitPath string) string {
	out, err := exec.CommandContext(ctx, gitPath, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func hookCheck(hooksDir string) domain.DiagnosticResult {
	entries, err := os.ReadDir(hooksDir)
	if err != nil {
		return pass(categoryVCS, "hooks", "no hooks directory")
	}
	var active, heavy []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), ".sample") {
			continue
		}
		active = append(active, entry.Name())
		if info, err := entry.Info(); err == nil && info.Size() > heavyHookBytes {
			heavy = append(heavy, entry.Name())
		}
	}
	if len(active) == 0 {
		return pass(categoryVCS, "hooks", "no active hooks")
	}
	result := pass(categoryVCS, "hooks", fmt.Sprintf("%d active hooks: %s", len(active), strings.Join(active, ", ")))
	result.Value = fmt.Sprintf("%d", len(active))
	if len(heavy) > 0 {
		result.Status = domain.DiagnosticWarn
		result.Message = fmt.Sprintf("%d active hooks, heavy: %s", len(active), strings.Join(heavy, ", "))
		result.Recommendation = "heavy hooks run on every commit; profile them"
	}
	return result
}

func (p *VCSProbe) timeBattery(ctx context.Context, cfg domain.Config) domain.DiagnosticResult {
	var total time.Duration
	for _, command := range vcsBattery {
		elapsed, _, err := p.Timer.Time(ctx, command, cfg.ProbeTimeout(), false)
		total += elapsed
		if err != nil {
			return fail(categoryVCS, "command latency",
				fmt.Sprintf("%q did not finish: %v", command, err),
				"a hung VCS command usually means lock contention or a slow filesystem")
		}
	}
	result := pass(categoryVCS, "command latency",
		fmt.Sprintf("%d read-only commands in %s", len(vcsBattery), total.Round(time.Millisecond)))
	result.Value = total.Round(time.Millisecond).String()
	if total.Seconds() > cfg.Diagnostics.VCSWarnSeconds {
		result.Status = domain.DiagnosticWarn
		result.Recommendation = "large repositories benefit from git status caching (core.untrackedCache)"
	}
	return result
}
