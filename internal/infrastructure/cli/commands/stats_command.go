package commands

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mdcognizant/cursor-sub001/internal/app"
	"github.com/mdcognizant/cursor-sub001/internal/domain"
)

const statsTopCommands = 5

// NewStatsCommand creates the stats command.
func NewStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Aggregate statistics over the execution history",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := container.HistoryStore.All()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No history recorded yet.")
				return nil
			}

			stats := domain.ComputeHistoryStats(entries, container.Config.SlowThreshold())
			fmt.Fprintf(out, "executions:   %d\n", stats.Total)
			for _, status := range []domain.ExecutionStatus{domain.StatusCompleted, domain.StatusFailed, domain.StatusKilled} {
				if n := stats.ByStatus[status]; n > 0 {
					fmt.Fprintf(out, "  %-11s %d\n", string(status)+":", n)
				}
			}
			fmt.Fprintf(out, "success rate: %.1f%%\n", stats.SuccessRate())
			fmt.Fprintf(out, "avg duration: %s\n", (time.Duration(stats.AvgDurationMS) * time.Millisecond).Round(time.Millisecond))
			fmt.Fprintf(out, "slow (>=%s):  %d\n", container.Config.SlowThreshold(), stats.SlowCount)

			fmt.Fprintln(out, "\ntop commands:")
			for _, stat := range topCommands(entries, statsTopCommands) {
				fmt.Fprintf(out, "  %3dx %s\n", stat.Count, stat.Command)
			}
			return nil
		},
	}
}

// CommandStatistic represents usage statistics for a command.
type CommandStatistic struct {
	Command string
	Count   int
}

// topCommands returns the most frequent command names, ties broken
// alphabetically so output is stable.
func topCommands(entries []domain.HistoryEntry, limit int) []CommandStatistic {
	frequency := make(map[string]int)
	for _, entry := range entries {
		if name := firstWord(entry.Command); name != "" {
			frequency[name]++
		}
	}
	stats := make([]CommandStatistic, 0, len(frequency))
	for command, count := range frequency {
		stats = append(stats, CommandStatistic{Command: command, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Command < stats[j].Command
		}
		return stats[i].Count > stats[j].Count
	})
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

func firstWord(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
