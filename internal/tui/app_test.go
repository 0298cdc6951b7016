package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/theirongolddev/moolah/internal/delta"
	"github.com/theirongolddev/moolah/internal/prediction"
	"github.com/theirongolddev/moolah/internal/scenario"

	"cloud.google.com/go/civil"
	tea "github.com/charmbracelet/bubbletea"
)

func day(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := civil.ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// newTestApp builds a viewer over a small budget: a salary on the 1st and a
// weekly grocery run, starting 2024-01-01.
func newTestApp(t *testing.T, horizon int) App {
	t.Helper()
	salary, err := delta.NewMonthly("salary", 3000, nil, day(t, "2024-01-01"), day(t, "2024-12-31"), 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	groceries, err := delta.NewWeekly("groceries", -150, nil, day(t, "2024-01-01"), day(t, "2024-12-31"), 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	p := prediction.New("household", day(t, "2024-01-01"), 500, salary, groceries)
	return NewApp(p, horizon, nil)
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ := a.Update(msg)
		a = m.(App)
	}
	return a
}

func TestNewApp_ComputesWindow(t *testing.T) {
	a := newTestApp(t, 30)
	if a.end != day(t, "2024-01-31") {
		t.Fatalf("end = %s", a.end)
	}
	if len(a.daily) != 31 {
		t.Fatalf("daily points = %d, want 31", len(a.daily))
	}
	if len(a.rows) != len(a.forecast) {
		t.Fatal("event rows should be shown by default")
	}
	if got := len(a.forecastTable.Rows()); got != len(a.forecast) {
		t.Fatalf("table rows = %d, want %d", got, len(a.forecast))
	}
	if got := len(a.schedules); got != 2 {
		t.Fatalf("schedules = %d", got)
	}
}

func TestHorizonKeys(t *testing.T) {
	a := newTestApp(t, 30)

	a = press(t, a, "+")
	if a.horizon != 60 || a.end != day(t, "2024-03-01") {
		t.Fatalf("after + horizon=%d end=%s", a.horizon, a.end)
	}
	a = press(t, a, "]")
	if a.horizon != 425 {
		t.Fatalf("after ] horizon=%d", a.horizon)
	}
	a = press(t, a, "[", "-", "-", "-")
	if a.horizon != 1 {
		t.Fatalf("horizon should bottom out at 1 day, got %d", a.horizon)
	}
}

func TestAllDaysToggle(t *testing.T) {
	a := press(t, newTestApp(t, 30), "j", "j", "a")
	if len(a.rows) != 31 || len(a.forecastTable.Rows()) != 31 {
		t.Fatalf("rows = %d, want every day", len(a.rows))
	}
	a = press(t, a, "G", "a")
	if got, last := a.forecastTable.Cursor(), len(a.forecast)-1; got > last {
		t.Fatalf("cursor %d out of range after toggling back (last %d)", got, last)
	}
}

func TestTabSwitching(t *testing.T) {
	a := newTestApp(t, 30)
	if a = press(t, a, "2"); a.activeTab != 1 {
		t.Fatalf("activeTab = %d after 2", a.activeTab)
	}
	if a = press(t, a, "tab"); a.activeTab != 0 {
		t.Fatalf("activeTab = %d after tab wrap", a.activeTab)
	}
	if a = press(t, a, "?"); !a.showHelp {
		t.Fatal("? should open help")
	}
	if a = press(t, a, "x"); a.showHelp {
		t.Fatal("any key should close help")
	}
}

func TestQuit(t *testing.T) {
	_, cmd := newTestApp(t, 30).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should quit")
	}
}

func TestView(t *testing.T) {
	a := newTestApp(t, 90)
	if a.View() != "" {
		t.Fatal("view before the first resize should be empty")
	}

	m, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	if !strings.Contains(m.(App).View(), "too narrow") {
		t.Fatal("narrow terminal should be reported")
	}

	m, _ = a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.(App).View()
	for _, s := range []string{"Forecast", "Deltas", "household", "Final", "Lowest", "salary"} {
		if !strings.Contains(view, s) {
			t.Errorf("forecast view missing %q", s)
		}
	}
	if lines := strings.Count(view, "\n") + 1; lines != 40 {
		t.Errorf("view has %d lines, want 40", lines)
	}

	view = press(t, m.(App), "2").View()
	for _, s := range []string{"groceries", "weekly", "Schedule", "Share"} {
		if !strings.Contains(view, s) {
			t.Errorf("deltas view missing %q", s)
		}
	}
}

func TestAddDelta(t *testing.T) {
	var saved []scenario.Record
	a := newTestApp(t, 30)
	a.save = func(r scenario.Record) error {
		saved = append(saved, r)
		return nil
	}

	rec := scenario.Record{Name: "bonus", Kind: scenario.KindOnce, Value: 1000, On: scenario.NewDate(day(t, "2024-01-15"))}
	if err := a.addDelta(rec); err != nil {
		t.Fatal(err)
	}
	if len(saved) != 1 || saved[0].Name != "bonus" {
		t.Fatalf("saved = %+v", saved)
	}
	if len(a.schedules) != 3 {
		t.Fatalf("schedules = %d, want 3", len(a.schedules))
	}
	st, ok := a.forecast.At(day(t, "2024-01-15"))
	if !ok || len(st.Deltas) != 1 || st.Deltas[0] != "bonus" {
		t.Fatalf("bonus missing from forecast: %+v", st)
	}
}

func TestAddDelta_Rejected(t *testing.T) {
	a := newTestApp(t, 30)

	bad := scenario.Record{Name: "broken", Kind: scenario.KindDaily, Value: 1,
		Start: scenario.NewDate(day(t, "2024-02-01")), End: scenario.NewDate(day(t, "2024-01-01"))}
	if err := a.addDelta(bad); !errors.Is(err, delta.ErrStartAfterEnd) {
		t.Fatalf("err = %v, want ErrStartAfterEnd", err)
	}

	a.save = func(scenario.Record) error { return errors.New("disk full") }
	ok := scenario.Record{Name: "tip", Kind: scenario.KindOnce, Value: 5, On: scenario.NewDate(day(t, "2024-01-02"))}
	if err := a.addDelta(ok); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("err = %v", err)
	}
	if len(a.schedules) != 2 {
		t.Fatal("a failed save must not change the prediction")
	}
}

func TestOpenAddForm(t *testing.T) {
	a := press(t, newTestApp(t, 30), "n")
	if a.addForm == nil || a.addVals == nil {
		t.Fatal("n should open the add form")
	}
	if a.addVals.On != "2024-01-01" {
		t.Fatalf("form should default to the start date, got %q", a.addVals.On)
	}

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if m.(App).addForm == nil {
		t.Fatal("keys go to the form while it is open")
	}
}
