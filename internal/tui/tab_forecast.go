package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/moolah/internal/cli"
	"github.com/theirongolddev/moolah/internal/prediction"
	"github.com/theirongolddev/moolah/internal/tui/components"
	"github.com/theirongolddev/moolah/internal/tui/theme"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	dateColW  = 10
	dayColW   = 3
	moneyColW = 13
)

func forecastColumns(width int) []table.Column {
	// each column carries one cell of padding on both sides
	fixed := dateColW + dayColW + 3*moneyColW + 2*6
	return []table.Column{
		{Title: "Date", Width: dateColW},
		{Title: "Day", Width: dayColW},
		{Title: fmt.Sprintf("%*s", moneyColW, "Balance"), Width: moneyColW},
		{Title: fmt.Sprintf("%*s", moneyColW, "Min"), Width: moneyColW},
		{Title: fmt.Sprintf("%*s", moneyColW, "Max"), Width: moneyColW},
		{Title: "Deltas", Width: max(8, width-fixed)},
	}
}

func forecastRows(f prediction.Forecast) []table.Row {
	rows := make([]table.Row, len(f))
	for i, p := range f {
		rows[i] = table.Row{
			cli.FormatDate(p.Date),
			cli.FormatDayOfWeek(p.Date),
			fmt.Sprintf("%*s", moneyColW, cli.FormatMoney(p.State.Value)),
			fmt.Sprintf("%*s", moneyColW, cli.FormatMoney(p.State.Min)),
			fmt.Sprintf("%*s", moneyColW, cli.FormatMoney(p.State.Max)),
			cli.FormatNames(p.State.Deltas, 0),
		}
	}
	return rows
}

func (a App) forecastMetrics() []components.Metric {
	t := theme.Active
	initial := a.pred.InitialValue()

	metrics := []components.Metric{{
		Label:  "Start",
		Value:  cli.FormatMoney(initial),
		Detail: cli.FormatDate(a.pred.Start()),
	}}

	last, ok := a.forecast.Last()
	if !ok {
		return metrics
	}
	low, _ := a.forecast.Lowest()

	lowColor := t.Gain
	if low.State.Min < 0 {
		lowColor = t.Loss
	} else if low.State.Min < initial {
		lowColor = t.Warning
	}

	return append(metrics,
		components.Metric{
			Label:  "Final",
			Value:  cli.FormatMoney(last.State.Value),
			Detail: cli.FormatRange(last.State.Min, last.State.Max),
			Color:  t.ForValue(last.State.Value),
		},
		components.Metric{
			Label:  "Lowest",
			Value:  cli.FormatMoney(low.State.Min),
			Detail: cli.FormatDate(low.Date),
			Color:  lowColor,
		},
		components.Metric{
			Label:  "Change",
			Value:  cli.FormatSignedMoney(last.State.Value - initial),
			Detail: fmt.Sprintf("%d event dates", max(0, a.forecast.Len()-1)),
			Color:  t.ForValue(last.State.Value - initial),
		},
	)
}

// chartLabels marks the first day of each month.
func chartLabels(f prediction.Forecast) []string {
	labels := make([]string, len(f))
	for i, p := range f {
		if i == 0 || p.Date.Day == 1 {
			labels[i] = p.Date.Month.String()[:3]
			if p.Date.Month == 1 || i == 0 {
				labels[i] += fmt.Sprintf(" %02d", p.Date.Year%100)
			}
		}
	}
	return labels
}

func (a App) renderForecastTab(cw int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)

	var b strings.Builder
	b.WriteString(components.MetricCardRow(a.forecastMetrics(), cw))
	b.WriteString("\n")

	values := make([]float64, len(a.daily))
	for i, p := range a.daily {
		values[i] = p.State.Value
	}
	chart := components.BalanceChart(values, chartLabels(a.daily), inner, a.chartHeight())
	b.WriteString(components.ContentCard("Balance", chart, cw))
	b.WriteString("\n")

	title := fmt.Sprintf("Forecast · %d dates", len(a.rows))
	if a.allDays {
		title = fmt.Sprintf("Forecast · %d days", len(a.rows))
	}
	body := a.forecastTable.View() + "\n" + a.selectedPointDetail(inner)
	b.WriteString(components.ContentCard(title, body, cw))

	return lipgloss.NewStyle().Background(t.Background).Render(b.String())
}

func (a App) selectedPointDetail(width int) string {
	t := theme.Active
	i := a.forecastTable.Cursor()
	if i < 0 || i >= len(a.rows) {
		return ""
	}
	p := a.rows[i]

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.ForValue(p.State.Value)).Background(t.Surface).Bold(true)
	sp := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	line := muted.Render(cli.FormatDate(p.Date)) + sp +
		value.Render(cli.FormatMoney(p.State.Value)) + sp +
		components.BandBar(p.State.Min, p.State.Value, p.State.Max, 20) + sp +
		muted.Render(cli.FormatRange(p.State.Min, p.State.Max))

	if names := cli.FormatNames(p.State.Deltas, 0); names != "" {
		room := width - lipgloss.Width(line) - 3
		if room > 4 {
			line += sp + muted.Render("· "+truncStr(names, room))
		}
	}
	return line
}
