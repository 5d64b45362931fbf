package domain_test

import (
	"testing"
	"time"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
)

// TestConfig_ResolveTimeout verifies the explicit > per-command > default
// precedence.
func TestConfig_ResolveTimeout(t *testing.T) {
	cfg := domain.Config{
		DefaultTimeoutSeconds: 30,
		CommandTimeouts:       map[string]int{"npm": 300},
	}

	tests := []struct {
		name     string
		command  string
		explicit int
		want     time.Duration
	}{
		{"explicit wins over override", "npm install", 7, 7 * time.Second},
		{"per-command override", "npm install", 0, 300 * time.Second},
		{"global default", "ls -la", 0, 30 * time.Second},
		{"empty command falls back to default", "", 0, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.ResolveTimeout(tt.command, tt.explicit); got != tt.want {
				t.Fatalf("ResolveTimeout(%q, %d) = %s, want %s", tt.command, tt.explicit, got, tt.want)
			}
		})
	}
}

func TestConfig_ResolveTimeoutZeroDefault(t *testing.T) {
	var cfg domain.Config
	if got := cfg.ResolveTimeout("ls", 0); got != domain.DefaultTimeoutSeconds*time.Second {
		t.Fatalf("zero default resolved to %s", got)
	}
}

func TestDefaultConfigDocumentedValues(t *testing.T) {
	cfg := domain.DefaultConfig()
	if cfg.DefaultTimeoutSeconds != 30 {
		t.Errorf("default_timeout = %d, want 30", cfg.DefaultTimeoutSeconds)
	}
	if cfg.MaxHistory != 100 {
		t.Errorf("max_history = %d, want 100", cfg.MaxHistory)
	}
	if cfg.Diagnostics.ProfileWarnSeconds != 2.0 || cfg.Diagnostics.ProfileFailSeconds != 5.0 {
		t.Errorf("profile thresholds = %v/%v, want 2/5",
			cfg.Diagnostics.ProfileWarnSeconds, cfg.Diagnostics.ProfileFailSeconds)
	}
	if cfg.Diagnostics.PathWarnEntries != 50 {
		t.Errorf("path_warn_entries = %d, want 50", cfg.Diagnostics.PathWarnEntries)
	}
}

func TestComputeHistoryStats(t *testing.T) {
	code0, code1 := 0, 1
	entries := []domain.HistoryEntry{
		{Status: domain.StatusCompleted, ExitCode: &code0, DurationMS: 100},
		{Status: domain.StatusCompleted, ExitCode: &code0, DurationMS: 6000},
		{Status: domain.StatusFailed, ExitCode: &code1, DurationMS: 200},
		{Status: domain.StatusKilled, DurationMS: 9000},
	}
	stats := domain.ComputeHistoryStats(entries, 5*time.Second)
	if stats.Total != 4 {
		t.Fatalf("total = %d, want 4", stats.Total)
	}
	if stats.ByStatus[domain.StatusCompleted] != 2 {
		t.Fatalf("completed = %d, want 2", stats.ByStatus[domain.StatusCompleted])
	}
	if stats.SlowCount != 2 {
		t.Fatalf("slow = %d, want 2", stats.SlowCount)
	}
	if rate := stats.SuccessRate(); rate != 50.0 {
		t.Fatalf("success rate = %.1f, want 50.0", rate)
	}
}
