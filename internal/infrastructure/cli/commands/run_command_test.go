package commands

import (
	"testing"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
)

func intPtr(n int) *int { return &n }

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name      string
		execution *domain.CommandExecution
		want      int
	}{
		{"completed passes child code through", &domain.CommandExecution{Status: domain.StatusCompleted, ExitCode: intPtr(0)}, 0},
		{"failed passes child code through", &domain.CommandExecution{Status: domain.StatusFailed, ExitCode: intPtr(42)}, 42},
		{"killed uses reserved code", &domain.CommandExecution{Status: domain.StatusKilled, ExitCode: intPtr(0)}, domain.ExitKilled},
		{"unattended kill reports the timeout code", &domain.CommandExecution{Status: domain.StatusKilled, Unattended: true}, domain.ExitTimedOut},
		{"timed out uses reserved code", &domain.CommandExecution{Status: domain.StatusTimedOut}, domain.ExitTimedOut},
		{"nil execution is a tool error", nil, domain.ExitToolErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.execution); got != tt.want {
				t.Fatalf("exitCodeFor = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTopCommands(t *testing.T) {
	entries := []domain.HistoryEntry{
		{Command: "git status"},
		{Command: "git push"},
		{Command: "npm install"},
		{Command: "git pull"},
		{Command: "npm test"},
		{Command: "ls"},
	}
	stats := topCommands(entries, 2)
	if len(stats) != 2 {
		t.Fatalf("len = %d, want 2", len(stats))
	}
	if stats[0].Command != "git" || stats[0].Count != 3 {
		t.Fatalf("top = %+v, want git x3", stats[0])
	}
	if stats[1].Command != "npm" || stats[1].Count != 2 {
		t.Fatalf("second = %+v, want npm x2", stats[1])
	}
}

func TestTopCommandsStableOrderOnTies(t *testing.T) {
	entries := []domain.HistoryEntry{
		{Command: "beta run"},
		{Command: "alpha run"},
	}
	stats := topCommands(entries, 0)
	if stats[0].Command != "alpha" || stats[1].Command != "beta" {
		t.Fatalf("tie order = %v, want alphabetical", stats)
	}
}
