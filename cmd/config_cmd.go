// Package cmd implements the moolah CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/moolah/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [General]")
	fmt.Fprintf(out, "    Horizon days: %d\n", cfg.General.HorizonDays)
	if cfg.General.Scenario != "" {
		fmt.Fprintf(out, "    Scenario:     %s\n", cfg.General.Scenario)
	} else {
		fmt.Fprintln(out, "    Scenario:     not set")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Store]")
	fmt.Fprintf(out, "    Database: %s\n", cfg.DBPath())
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Log]")
	fmt.Fprintf(out, "    Level:  %s\n", cfg.Log.Level)
	fmt.Fprintf(out, "    Format: %s\n", cfg.Log.Format)
	fmt.Fprintf(out, "    Output: %s\n", cfg.Log.Output)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Appearance]")
	fmt.Fprintf(out, "    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Run `moolah setup` to reconfigure.")
	return nil
}
