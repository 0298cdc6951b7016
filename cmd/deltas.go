package cmd

import (
	"fmt"

	"github.com/theirongolddev/moolah/internal/cli"
	"github.com/theirongolddev/moolah/internal/prediction"
	"github.com/theirongolddev/moolah/internal/scenario"

	"github.com/spf13/cobra"
)

var deltasCmd = &cobra.Command{
	Use:   "deltas",
	Short: "List the scenario's deltas with their occurrences in the window",
	Args:  cobra.NoArgs,
	RunE:  runDeltas,
}

func init() {
	rootCmd.AddCommand(deltasCmd)
}

func runDeltas(cmd *cobra.Command, _ []string) error {
	p, _, _, err := loadPrediction()
	if err != nil {
		return err
	}

	end := p.Horizon(horizonDays())
	schedules := p.Schedules(end)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("DELTAS  %s  %s → %s", p.Name(), p.Start(), end)))
	fmt.Fprintln(out)
	if len(schedules) == 0 {
		fmt.Fprintln(out, "  No deltas.")
		return nil
	}
	fmt.Fprint(out, renderDeltaTable(schedules))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Net flow  %s\n\n", cli.FormatSignedMoney(netFlow(schedules)))
	return nil
}

func renderDeltaTable(schedules []prediction.Schedule) string {
	total := prediction.TotalFlow(schedules)
	rows := make([][]string, 0, len(schedules))
	for _, s := range schedules {
		d := s.Delta
		rows = append(rows, []string{
			d.Name(),
			string(scenario.FromDelta(d).Kind),
			cli.FormatSignedMoney(d.Value()),
			d.Uncertainty().String(),
			cli.FormatRange(d.Min(), d.Max()),
			cli.FormatNumber(int64(s.Count)),
			cli.FormatDate(s.Next),
			cli.FormatSignedMoney(s.Flow),
			fmt.Sprintf("%.0f%%", s.Share(total)*100),
		})
	}

	return cli.RenderTable(cli.Table{
		Headers: []string{"Name", "Kind", "Value", "Uncertainty", "Bounds", "Count", "Next", "Flow", "Share"},
		Rows:    rows,
		Left:    []int{1, 3, 4, 6},
	})
}

func netFlow(schedules []prediction.Schedule) float64 {
	var net float64
	for _, s := range schedules {
		net += s.Flow
	}
	return net
}
