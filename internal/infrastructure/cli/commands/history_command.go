package commands

import (
	"github.com/spf13/cobra"

	"github.com/mdcognizant/cursor-sub001/internal/app"
	"github.com/mdcognizant/cursor-sub001/internal/domain"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(container *app.Container) *cobra.Command {
	var (
		slowOnly bool
		count    int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List supervised executions",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := queryHistory(container, slowOnly, count)
			if err != nil {
				return err
			}
			RenderHistory(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().BoolVar(&slowOnly, "slow-only", false, "Only executions at or above the slow threshold")
	cmd.Flags().IntVarP(&count, "count", "n", domain.DefaultHistoryListLimit, "Max entries to show")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the execution history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return container.HistoryStore.Clear()
		},
	})
	return cmd
}

func queryHistory(container *app.Container, slowOnly bool, count int) ([]domain.HistoryEntry, error) {
	if slowOnly {
		entries, err := container.HistoryStore.Slow(container.Config.SlowThreshold())
		if err != nil {
			return nil, err
		}
		if count > 0 && len(entries) > count {
			entries = entries[:count]
		}
		return entries, nil
	}
	return container.HistoryStore.Recent(count)
}
