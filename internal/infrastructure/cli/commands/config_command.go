package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mdcognizant/cursor-sub001/internal/app"
)

// NewConfigCommand creates the config command. Mutations persist
// immediately; reset restores the documented built-in defaults.
func NewConfigCommand(container *app.Container) *cobra.Command {
	var (
		show       bool
		reset      bool
		setTimeout int
		setLogFile string
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change persisted settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if reset {
				cfg, err := container.ConfigStore.Reset()
				if err != nil {
					return fmt.Errorf("reset failed: %w", err)
				}
				container.Config = cfg
				container.Supervisor.Config = cfg
				fmt.Fprintln(out, "configuration reset to defaults")
				return nil
			}

			mutated := false
			cfg := container.Config
			if setTimeout != 0 {
				if setTimeout < 0 {
					return fmt.Errorf("--set-timeout must be > 0")
				}
				cfg.DefaultTimeoutSeconds = setTimeout
				mutated = true
			}
			if cmd.Flags().Changed("set-log-file") {
				cfg.LogFile = setLogFile
				mutated = true
			}
			if mutated {
				if err := container.ConfigStore.Save(cfg); err != nil {
					return fmt.Errorf("save failed: %w", err)
				}
				container.Config = cfg
				container.Supervisor.Config = cfg
				fmt.Fprintln(out, "configuration saved")
				if !show {
					return nil
				}
			}

			raw, err := yaml.Marshal(container.Config)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "# %s\n%s", container.ConfigStore.Path(), raw)
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print the active configuration")
	cmd.Flags().BoolVar(&reset, "reset", false, "Restore documented defaults and persist them")
	cmd.Flags().IntVar(&setTimeout, "set-timeout", 0, "Set the global default timeout in seconds")
	cmd.Flags().StringVar(&setLogFile, "set-log-file", "", "Set the log file path (empty to disable)")
	return cmd
}
