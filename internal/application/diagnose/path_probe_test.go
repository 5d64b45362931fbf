package diagnose

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
)

func TestAnalyzePath(t *testing.T) {
	allExist := func(string) bool { return true }

	tests := []struct {
		name          string
		entries       []string
		exists        func(string) bool
		wantTotal     int
		wantDups      int
		wantMissing   int
	}{
		{
			name:      "clean path",
			entries:   []string{"/usr/bin", "/bin", "/usr/local/bin"},
			exists:    allExist,
			wantTotal: 3,
		},
		{
			name:      "duplicates counted as redundant occurrences",
			entries:   []string{"/usr/bin", "/bin", "/usr/bin", "/usr/bin"},
			exists:    allExist,
			wantTotal: 4,
			wantDups:  2,
		},
		{
			name:        "missing directories flagged once",
			entries:     []string{"/usr/bin", "/nope", "/also/nope"},
			exists:      func(p string) bool { return p == "/usr/bin" },
			wantTotal:   3,
			wantMissing: 2,
		},
		{
			name:      "trailing slash normalized into duplicate",
			entries:   []string{"/usr/bin", "/usr/bin/"},
			exists:    allExist,
			wantTotal: 2,
			wantDups:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := AnalyzePath(tt.entries, tt.exists)
			if analysis.Total != tt.wantTotal {
				t.Errorf("total = %d, want %d", analysis.Total, tt.wantTotal)
			}
			if analysis.DuplicateCount() != tt.wantDups {
				t.Errorf("duplicates = %d, want %d", analysis.DuplicateCount(), tt.wantDups)
			}
			if len(analysis.Missing) != tt.wantMissing {
				t.Errorf("missing = %d, want %d", len(analysis.Missing), tt.wantMissing)
			}
		})
	}
}

// TestPathProbeSixtyEntriesTenDuplicates mirrors the sizing scenario: 60
// entries with 10 duplicates must warn with both counts in the message.
func TestPathProbeSixtyEntriesTenDuplicates(t *testing.T) {
	dir := t.TempDir()
	var entries []string
	for i := 0; i < 50; i++ {
		sub := filepath.Join(dir, fmt.Sprintf("d%02d", i))
		if err := os.MkdirAll(sub, 0o755); err != nil {
			t.Fatal(err)
		}
		entries = append(entries, sub)
	}
	// Repeat the first ten to make 60 entries including 10 duplicates.
	entries = append(entries, entries[:10]...)
	t.Setenv("PATH", strings.Join(entries, string(os.PathListSeparator)))

	probe := &PathProbe{}
	results := probe.Run(context.Background(), domain.DefaultConfig())

	byName := map[string]domain.DiagnosticResult{}
	for _, result := range results {
		byName[result.Name] = result
	}

	count := byName["entry count"]
	if count.Status != domain.DiagnosticWarn {
		t.Fatalf("entry count status = %s, want warn for 60 entries", count.Status)
	}
	if !strings.Contains(count.Message, "60") {
		t.Fatalf("entry count message %q missing total", count.Message)
	}

	dups := byName["duplicates"]
	if dups.Status != domain.DiagnosticWarn {
		t.Fatalf("duplicates status = %s, want warn", dups.Status)
	}
	if !strings.Contains(dups.Message, "10") || !strings.Contains(dups.Message, "60") {
		t.Fatalf("duplicates message %q missing counts", dups.Message)
	}
}

// TestPathProbeDeterministic runs the probe twice on an unchanged
// environment; the classification must not move.
func TestPathProbeDeterministic(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PATH", strings.Join([]string{dir, dir, filepath.Join(dir, "gone")}, string(os.PathListSeparator)))

	probe := &PathProbe{}
	cfg := domain.DefaultConfig()
	first := probe.Run(context.Background(), cfg)
	second := probe.Run(context.Background(), cfg)

	if len(first) != len(second) {
		t.Fatalf("result count changed between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Status != second[i].Status || first[i].Name != second[i].Name {
			t.Fatalf("result %d changed: %+v vs %+v", i, first[i], second[i])
		}
	}
}
