package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/moolah/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a delta to the scenario with a form",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	p, sc, src, err := loadPrediction()
	if err != nil {
		return err
	}

	v := tui.NewDeltaValues(p.Start())
	if err := tui.NewDeltaForm(v).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	rec, err := v.Record()
	if err != nil {
		return err
	}
	if _, err := rec.Delta(); err != nil {
		return err
	}
	if err := appendRecord(sc, src, rec); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Added %s to %s\n", rec.Name, src)
	return nil
}
