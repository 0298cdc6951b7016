package cmd

import (
	"fmt"

	"github.com/theirongolddev/moolah/internal/scenario"
	"github.com/theirongolddev/moolah/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the forecast interactively",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	p, sc, src, err := loadPrediction()
	if err != nil {
		return err
	}

	// Background fills only render under a color profile; pipes report Ascii.
	lipgloss.SetColorProfile(termenv.TrueColor)

	save := func(rec scenario.Record) error { return appendRecord(sc, src, rec) }
	app := tui.NewApp(p, horizonDays(), save)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
