package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/moolah/internal/cli"
	"github.com/theirongolddev/moolah/internal/prediction"
	"github.com/theirongolddev/moolah/internal/scenario"
	"github.com/theirongolddev/moolah/internal/tui/components"
	"github.com/theirongolddev/moolah/internal/tui/theme"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const maxListedDates = 6

func deltaColumns(width int) []table.Column {
	fixed := 8 + 12 + 23 + 5 + dateColW + moneyColW + 2*7
	return []table.Column{
		{Title: "Name", Width: max(8, width-fixed)},
		{Title: "Kind", Width: 8},
		{Title: fmt.Sprintf("%12s", "Value"), Width: 12},
		{Title: "Bounds", Width: 23},
		{Title: "Count", Width: 5},
		{Title: "Next", Width: dateColW},
		{Title: fmt.Sprintf("%*s", moneyColW, "Flow"), Width: moneyColW},
	}
}

func deltaRows(schedules []prediction.Schedule) []table.Row {
	rows := make([]table.Row, len(schedules))
	for i, s := range schedules {
		d := s.Delta
		rows[i] = table.Row{
			d.Name(),
			string(scenario.FromDelta(d).Kind),
			fmt.Sprintf("%12s", cli.FormatSignedMoney(d.Value())),
			cli.FormatRange(d.Min(), d.Max()),
			fmt.Sprintf("%5d", s.Count),
			cli.FormatDate(s.Next),
			fmt.Sprintf("%*s", moneyColW, cli.FormatSignedMoney(s.Flow)),
		}
	}
	return rows
}

// describeSchedule renders a record's schedule in words.
func describeSchedule(r scenario.Record) string {
	every := func(unit string) string {
		if r.Skip == 0 {
			return "every " + unit
		}
		return fmt.Sprintf("every %d %ss", r.Skip+1, unit)
	}

	switch r.Kind {
	case scenario.KindOnce:
		return "once on " + r.On.String()
	case scenario.KindCustom:
		return fmt.Sprintf("on %d custom dates", len(r.Dates))
	case scenario.KindDaily:
		return fmt.Sprintf("%s, %s → %s", every("day"), r.Start, r.End)
	case scenario.KindWeekly:
		return fmt.Sprintf("%s on %s, %s → %s", every("week"), r.Weekday, r.Start, r.End)
	case scenario.KindMonthly:
		return fmt.Sprintf("%s on day %d, %s → %s", every("month"), r.MonthDay, r.Start, r.End)
	case scenario.KindYearly:
		return fmt.Sprintf("%s, %s → %s", every("year"), r.Start, r.End)
	}
	return string(r.Kind)
}

func (a App) renderDeltasTab(cw int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)

	if len(a.schedules) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render("No deltas yet. Press n to add one.")
		return components.ContentCard("Deltas", empty, cw)
	}

	var b strings.Builder
	b.WriteString(components.ContentCard(fmt.Sprintf("Deltas · %d", len(a.schedules)), a.deltaTable.View(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Selected", a.selectedDeltaDetail(inner), cw))
	return b.String()
}

func (a App) selectedDeltaDetail(width int) string {
	t := theme.Active
	i := a.deltaTable.Cursor()
	if i < 0 || i >= len(a.schedules) {
		return ""
	}
	s := a.schedules[i]
	d := s.Delta
	rec := scenario.FromDelta(d)

	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	name := lipgloss.NewStyle().Foreground(t.ForValue(d.Value())).Background(t.Surface).Bold(true)

	row := func(k, v string) string {
		return label.Render(fmt.Sprintf("%-12s", k)) + value.Render(truncStr(v, width-12))
	}

	var dates []string
	for _, date := range d.Dates() {
		if date.Before(a.pred.Start()) || date.After(a.end) {
			continue
		}
		if len(dates) == maxListedDates {
			dates = append(dates, "…")
			break
		}
		dates = append(dates, date.String())
	}
	if len(dates) == 0 {
		dates = []string{"none in window"}
	}

	share := s.Share(prediction.TotalFlow(a.schedules))

	lines := []string{
		name.Render(d.Name()) + label.Render("  "+cli.FormatSignedMoney(d.Value())),
		row("Schedule", describeSchedule(rec)),
		row("Uncertainty", d.Uncertainty().String()),
		row("In window", strconv.Itoa(s.Count)+" × "+cli.FormatRange(d.Min(), d.Max())+" = "+cli.FormatSignedMoney(s.Flow)),
		row("Dates", strings.Join(dates, " ")),
		label.Render(fmt.Sprintf("%-12s", "Share")) + components.ShareBar(share, t.ForValue(d.Value()), min(30, width-18)),
	}
	return strings.Join(lines, "\n")
}
