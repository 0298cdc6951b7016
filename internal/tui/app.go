// Package tui provides the interactive Bubble Tea forecast viewer for moolah.
package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/moolah/internal/prediction"
	"github.com/theirongolddev/moolah/internal/scenario"
	"github.com/theirongolddev/moolah/internal/tui/components"
	"github.com/theirongolddev/moolah/internal/tui/theme"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// SaveFunc persists a delta record added from the viewer. A nil SaveFunc
// keeps additions in memory only.
type SaveFunc func(scenario.Record) error

// App is the root Bubble Tea model.
type App struct {
	pred    *prediction.Prediction
	horizon int
	end     civil.Date
	allDays bool

	forecast  prediction.Forecast // dates with events
	daily     prediction.Forecast // every day, carried forward
	rows      prediction.Forecast // what the forecast table shows
	schedules []prediction.Schedule

	forecastTable table.Model
	deltaTable    table.Model

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	notice    string

	// Add-delta form
	addForm *huh.Form
	addVals *DeltaValues
	save    SaveFunc
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 180
	minContentHeight = 5

	horizonStep     = 30
	horizonYearStep = 365
	metricsHeight   = 5 // border (2) + label, value, detail
)

// NewApp creates a viewer for p covering horizonDays from its start.
func NewApp(p *prediction.Prediction, horizonDays int, save SaveFunc) App {
	a := App{
		pred:          p,
		horizon:       max(1, horizonDays),
		save:          save,
		forecastTable: newTable(forecastColumns(100)),
		deltaTable:    newTable(deltaColumns(100)),
	}
	a.recompute()
	return a
}

func newTable(cols []table.Column) table.Model {
	t := theme.Active

	tbl := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Foreground(t.Accent).
		Bold(true)
	s.Cell = s.Cell.Foreground(t.TextPrimary)
	s.Selected = s.Selected.
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true)
	tbl.SetStyles(s)
	return tbl
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.EnableMouseCellMotion
}

// recompute rebuilds the forecast for the current horizon and refreshes both
// tables, keeping the cursors in range.
func (a *App) recompute() {
	a.end = a.pred.Horizon(a.horizon)
	a.forecast = a.pred.Predict(a.end)
	a.daily = a.forecast.Daily(a.end)
	a.rows = a.forecast
	if a.allDays {
		a.rows = a.daily
	}
	a.schedules = a.pred.Schedules(a.end)

	a.forecastTable.SetRows(forecastRows(a.rows))
	a.deltaTable.SetRows(deltaRows(a.schedules))
	clampCursor(&a.forecastTable)
	clampCursor(&a.deltaTable)
}

func clampCursor(t *table.Model) {
	n := len(t.Rows())
	if t.Cursor() >= n {
		t.SetCursor(max(0, n-1))
	}
}

func (a *App) setHorizon(days int) {
	days = max(1, days)
	if days == a.horizon {
		return
	}
	a.horizon = days
	a.recompute()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		if a.addForm != nil {
			a.addForm = a.addForm.WithWidth(min(msg.Width, 80)).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.addForm != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.activeTable().MoveUp(1)
		case tea.MouseButtonWheelDown:
			a.activeTable().MoveDown(1)
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// The add form intercepts all other keys
		if a.addForm != nil {
			return a.updateAddForm(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		a.notice = ""

		switch key {
		case "q":
			return a, tea.Quit
		case "tab", "right", "l":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		case "shift+tab", "left", "h":
			a.activeTab = (a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)
			return a, nil
		case "+", "=":
			a.setHorizon(a.horizon + horizonStep)
			return a, nil
		case "-", "_":
			a.setHorizon(a.horizon - horizonStep)
			return a, nil
		case "]":
			a.setHorizon(a.horizon + horizonYearStep)
			return a, nil
		case "[":
			a.setHorizon(a.horizon - horizonYearStep)
			return a, nil
		case "a":
			a.allDays = !a.allDays
			a.recompute()
			return a, nil
		case "n":
			a.addVals = NewDeltaValues(a.pred.Start())
			a.addForm = NewDeltaForm(a.addVals)
			if a.width > 0 {
				a.addForm = a.addForm.WithWidth(min(a.width, 80)).WithHeight(a.height)
			}
			return a, a.addForm.Init()
		}

		if len(msg.Runes) == 1 {
			if tab := components.TabIdxByKey(msg.Runes[0]); tab >= 0 {
				a.activeTab = tab
				return a, nil
			}
		}

		var cmd tea.Cmd
		if a.activeTab == 0 {
			a.forecastTable, cmd = a.forecastTable.Update(msg)
		} else {
			a.deltaTable, cmd = a.deltaTable.Update(msg)
		}
		return a, cmd
	}

	if a.addForm != nil {
		return a.updateAddForm(msg)
	}
	return a, nil
}

func (a *App) activeTable() *table.Model {
	if a.activeTab == 0 {
		return &a.forecastTable
	}
	return &a.deltaTable
}

func (a App) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.addForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.addForm = f
	}

	switch a.addForm.State {
	case huh.StateCompleted:
		a.addForm = nil
		rec, err := a.addVals.Record()
		if err == nil {
			err = a.addDelta(rec)
		}
		if err != nil {
			a.notice = "not added: " + err.Error()
		} else {
			a.notice = "added " + rec.Name
		}
		return a, nil
	case huh.StateAborted:
		a.addForm = nil
		return a, nil
	}

	return a, cmd
}

// addDelta validates rec by building its delta, persists it through the save
// hook and rebuilds the forecast with it appended.
func (a *App) addDelta(rec scenario.Record) error {
	d, err := rec.Delta()
	if err != nil {
		return err
	}
	if a.save != nil {
		if err := a.save(rec); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	deltas := append(a.pred.Deltas(), d)
	a.pred = prediction.New(a.pred.Name(), a.pred.Start(), a.pred.InitialValue(), deltas...)
	a.recompute()
	return nil
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) contentHeight() int {
	// tab bar + status bar
	return max(minContentHeight, a.height-2)
}

func (a App) chartHeight() int {
	return max(4, (a.contentHeight()-metricsHeight)/3)
}

// layout sizes both tables to the space left by the surrounding cards.
func (a *App) layout() {
	cw := a.contentWidth()
	inner := components.CardInnerWidth(cw)
	h := a.contentHeight()

	// chart card: border, title, chart rows, baseline and axis labels
	// table card: border, title, detail line
	forecastH := h - metricsHeight - (a.chartHeight() + 5) - 4
	a.forecastTable.SetColumns(forecastColumns(inner))
	a.forecastTable.SetWidth(inner)
	a.forecastTable.SetHeight(max(3, forecastH))

	// table card: border, title; detail card: border, title, six lines
	deltaH := h - 3 - 9
	a.deltaTable.SetColumns(deltaColumns(inner))
	a.deltaTable.SetWidth(inner)
	a.deltaTable.SetHeight(max(3, deltaH))
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.addForm != nil {
		return a.viewForm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(5, a.height)

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  moolah needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewForm() string {
	t := theme.Active
	title := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true).Render("◈ Add delta to " + a.pred.Name())
	body := title + "\n\n" + a.addForm.View()
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, body)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Band).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"1 2", "Jump to tab"},
			{"tab ← →", "Previous / Next tab"},
			{"j k", "Move through rows"},
			{"g G", "First / Last row"},
			{"^d ^u", "Half-page scroll"},
		}},
		{"Forecast", []struct{ key, desc string }{
			{"+ -", "Horizon ± 30 days"},
			{"] [", "Horizon ± 1 year"},
			{"a", "Event dates / every day"},
			{"n", "Add a delta"},
		}},
		{"General", []struct{ key, desc string }{
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, a.pred.Name(), w)

	window := fmt.Sprintf("%s → %s · %dd", a.pred.Start(), a.end, a.horizon)
	if a.allDays {
		window += " · all days"
	}
	statusBar := components.RenderStatusBar(w, window, a.notice)

	contentH := max(minContentHeight, h-lipgloss.Height(header)-lipgloss.Height(statusBar))

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderForecastTab(cw)
	case 1:
		content = a.renderDeltasTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
