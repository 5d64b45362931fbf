package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdcognizant/cursor-sub001/internal/app"
)

// NewDiagnoseCommand creates the diagnose command.
func NewDiagnoseCommand(container *app.Container) *cobra.Command {
	var (
		verbose    bool
		saveReport bool
	)

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Diagnose why the shell environment is slow",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := container.Engine.Run(cmd.Context(), container.Config)
			RenderReport(cmd.OutOrStdout(), report, verbose)

			if saveReport {
				path, err := container.ReportStore.Save(report)
				if err != nil {
					return fmt.Errorf("could not save report: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "report saved to %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Include recommendations in the summary")
	cmd.Flags().BoolVar(&saveReport, "save-report", false, "Persist the report as a timestamped JSON file")
	return cmd
}
