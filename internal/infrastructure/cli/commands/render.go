package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mdcognizant/cursor-sub001/internal/application/supervise"
	"github.com/mdcognizant/cursor-sub001/internal/domain"
)

// RenderResult prints the structured result block every terminal execution
// gets.
func RenderResult(out io.Writer, res supervise.Result) {
	execution := res.Execution
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("─", 48))
	fmt.Fprintf(out, "command:  %s\n", execution.Command)
	fmt.Fprintf(out, "status:   %s\n", execution.Status)
	fmt.Fprintf(out, "duration: %s\n", execution.Duration().Round(time.Millisecond))
	if execution.ExitCode != nil {
		fmt.Fprintf(out, "exit:     %d\n", *execution.ExitCode)
	} else {
		fmt.Fprintf(out, "exit:     n/a\n")
	}
	if execution.Attempt > 0 {
		fmt.Fprintf(out, "attempt:  %d (previous %s)\n", execution.Attempt+1, execution.ParentID)
	}
	fmt.Fprintln(out, strings.Repeat("─", 48))
}

// RenderReport prints the categorized diagnostic summary. verbose includes
// recommendations and measured values.
func RenderReport(out io.Writer, report domain.DiagnosticReport, verbose bool) {
	category := ""
	for _, result := range report.Results {
		if result.Category != category {
			category = result.Category
			fmt.Fprintf(out, "\n%s\n", category)
		}
		fmt.Fprintf(out, "  [%s] %s - %s\n", statusTag(result.Status), result.Name, result.Message)
		if verbose && result.Recommendation != "" {
			fmt.Fprintf(out, "         ↪ %s\n", result.Recommendation)
		}
	}
	passed, warned, failed := report.Counts()
	fmt.Fprintf(out, "\n%d passed, %d warnings, %d failures in %s\n",
		passed, warned, failed, report.Elapsed.Round(time.Millisecond))
}

func statusTag(status domain.DiagnosticStatus) string {
	return strings.ToUpper(string(status))
}

// RenderHistory prints archived entries, newest first.
func RenderHistory(out io.Writer, entries []domain.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No history recorded yet.")
		return
	}
	for _, entry := range entries {
		exit := "-"
		if entry.ExitCode != nil {
			exit = fmt.Sprintf("%d", *entry.ExitCode)
		}
		fmt.Fprintf(out, "%s  %-9s exit=%-3s %8s  %s\n",
			humanize.Time(entry.StartedAt),
			entry.Status,
			exit,
			(time.Duration(entry.DurationMS) * time.Millisecond).Round(time.Millisecond),
			entry.Command)
	}
}
