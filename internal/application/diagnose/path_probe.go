package diagnose

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
)

const categoryPath = "PATH hygiene"

// PathProbe parses PATH and flags duplicates, dead directories and
// excessive length. Every PATH entry is a stat() on each command lookup.
type PathProbe struct{}

func (p *PathProbe) Category() string { return categoryPath }

func (p *PathProbe) Run(ctx context.Context, cfg domain.Config) []domain.DiagnosticResult {
	entries := splitPath(os.Getenv("PATH"))
	analysis := AnalyzePath(entries, statDir)

	var results []domain.DiagnosticResult

	countResult := pass(categoryPath, "entry count", fmt.Sprintf("%d PATH entries", analysis.Total))
	countResult.Value = fmt.Sprintf("%d", analysis.Total)
	if analysis.Total > cfg.Diagnostics.PathWarnEntries {
		countResult.Status = domain.DiagnosticWarn
		countResult.Message = fmt.Sprintf("%d PATH entries exceeds %d", analysis.Total, cfg.Diagnostics.PathWarnEntries)
		countResult.Recommendation = "trim PATH; long lookup chains slow every command resolution"
	}
	results = append(results, countResult)

	if len(analysis.Duplicates) == 0 {
		results = append(results, pass(categoryPath, "duplicates", "no duplicate entries"))
	} else {
		results = append(results, warn(categoryPath, "duplicates",
			fmt.Sprintf("%d duplicate entries out of %d: %s", analysis.DuplicateCount(), analysis.Total, strings.Join(analysis.Duplicates, ", ")),
			"deduplicate PATH in your profile"))
	}

	if len(analysis.Missing) == 0 {
		results = append(results, pass(categoryPath, "missing directories", "all entries exist"))
	} else {
		results = append(results, warn(categoryPath, "missing directories",
			fmt.Sprintf("%d entries do not exist: %s", len(analysis.Missing), strings.Join(analysis.Missing, ", ")),
			"remove stale directories from PATH"))
	}
	return results
}

// PathAnalysis is the deterministic classification of one PATH value.
type PathAnalysis struct {
	Total      int
	Duplicates []string // each duplicated entry listed once, in first-seen order
	dupTotal   int
	Missing    []string
}

// DuplicateCount is the number of redundant entries (occurrences beyond the
// first of each duplicated directory).
func (a PathAnalysis) DuplicateCount() int { return a.dupTotal }

// AnalyzePath classifies PATH entries. exists is injectable for tests.
func AnalyzePath(entries []string, exists func(string) bool) PathAnalysis {
	analysis := PathAnalysis{Total: len(entries)}
	seen := make(map[string]int, len(entries))
	for _, entry := range entries {
		clean := filepath.Clean(entry)
		seen[clean]++
		if seen[clean] == 2 {
			analysis.Duplicates = append(analysis.Duplicates, clean)
		}
		if seen[clean] > 1 {
			analysis.dupTotal++
			continue
		}
		if !exists(clean) {
			analysis.Missing = append(analysis.Missing, clean)
		}
	}
	return analysis
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	var entries []string
	for _, entry := range filepath.SplitList(path) {
		if entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

func statDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
