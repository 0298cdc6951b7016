package cmd

import (
	"fmt"
	"io"

	"github.com/theirongolddev/moolah/internal/cli"
	"github.com/theirongolddev/moolah/internal/prediction"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"
)

var flagAll bool

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Print the balance forecast",
	Long: "Print the cumulative balance with its min/max range on every date a delta\n" +
		"lands, or on every day with --all.",
	Args: cobra.NoArgs,
	RunE: runForecast,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, forecastCmd} {
		c.Flags().BoolVarP(&flagAll, "all", "a", false, "Show every day, carrying the balance forward")
	}
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, _ []string) error {
	p, _, _, err := loadPrediction()
	if err != nil {
		return err
	}

	end := p.Horizon(horizonDays())
	forecast := p.Predict(end)
	rows := forecast
	if flagAll {
		rows = forecast.Daily(end)
	}
	log.Debug().Int("points", forecast.Len()).Str("end", end.String()).Msg("forecast computed")

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("FORECAST  %s  %s → %s", p.Name(), p.Start(), end)))
	fmt.Fprintln(out)
	fmt.Fprint(out, renderForecastTable(rows))
	fmt.Fprintln(out)
	printSummary(out, p, forecast, end)
	return nil
}

func renderForecastTable(f prediction.Forecast) string {
	rows := make([][]string, 0, len(f))
	for _, pt := range f {
		rows = append(rows, []string{
			cli.FormatDate(pt.Date),
			cli.FormatDayOfWeek(pt.Date),
			cli.Money(pt.State.Value),
			cli.FormatMoney(pt.State.Min),
			cli.FormatMoney(pt.State.Max),
			cli.FormatNames(pt.State.Deltas, 3),
		})
	}

	return cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Balance", "Min", "Max", "Deltas"},
		Rows:    rows,
		Left:    []int{1, 5},
	})
}

func printSummary(out io.Writer, p *prediction.Prediction, f prediction.Forecast, end civil.Date) {
	last, ok := f.Last()
	if !ok {
		return
	}
	low, _ := f.Lowest()

	values := make([]float64, 0, end.DaysSince(p.Start())+1)
	for _, pt := range f.Daily(end) {
		values = append(values, pt.State.Value)
	}

	fmt.Fprintf(out, "  Start    %s\n", cli.Money(p.InitialValue()))
	fmt.Fprintf(out, "  Final    %s  %s\n", cli.Money(last.State.Value),
		cli.Muted(cli.FormatRange(last.State.Min, last.State.Max)))

	lowest := cli.FormatMoney(low.State.Min)
	if low.State.Min < 0 {
		lowest = cli.Warn(lowest)
	}
	fmt.Fprintf(out, "  Lowest   %s  %s\n", lowest, cli.Muted("on "+cli.FormatDate(low.Date)))
	fmt.Fprintf(out, "  Change   %s\n", cli.FormatSignedMoney(last.State.Value-p.InitialValue()))
	if len(values) > 1 {
		fmt.Fprintf(out, "  Trend    %s\n", cli.RenderSparkline(sampleValues(values, 60)))
	}
	fmt.Fprintln(out)
}

// sampleValues thins a series to at most n points, keeping both ends.
func sampleValues(values []float64, n int) []float64 {
	if len(values) <= n || n < 2 {
		return values
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = values[i*(len(values)-1)/(n-1)]
	}
	return out
}
