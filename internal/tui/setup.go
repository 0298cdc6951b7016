package tui

import (
	"strconv"

	"github.com/theirongolddev/moolah/internal/config"
	"github.com/theirongolddev/moolah/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers collected by the setup form.
type SetupValues struct {
	Scenario string
	Horizon  string
	Theme    string
	LogLevel string
}

var horizonOptions = []struct {
	label string
	days  int
}{
	{"1 month", 30},
	{"3 months", 90},
	{"6 months", 180},
	{"1 year", 365},
	{"2 years", 730},
}

// NewSetupValues seeds the form from an existing config.
func NewSetupValues(cfg config.Config) *SetupValues {
	return &SetupValues{
		Scenario: cfg.General.Scenario,
		Horizon:  strconv.Itoa(cfg.General.HorizonDays),
		Theme:    cfg.Appearance.Theme,
		LogLevel: cfg.Log.Level,
	}
}

// NewSetupForm builds the first-run form. Answers are written into v.
func NewSetupForm(v *SetupValues) *huh.Form {
	horizons := make([]huh.Option[string], 0, len(horizonOptions)+1)
	known := false
	for _, o := range horizonOptions {
		val := strconv.Itoa(o.days)
		known = known || val == v.Horizon
		horizons = append(horizons, huh.NewOption(o.label, val))
	}
	if !known && v.Horizon != "" {
		horizons = append(horizons, huh.NewOption(v.Horizon+" days", v.Horizon))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to moolah").
				Description("Forecast your balance from scheduled income and expenses.\nThese settings are saved to "+config.ConfigPath()),
			huh.NewInput().
				Title("Default scenario file").
				Description("TOML or YAML. Leave empty to pass --scenario each time.").
				Placeholder("~/budget.toml").
				Value(&v.Scenario),
			huh.NewSelect[string]().
				Title("Forecast horizon").
				Options(horizons...).
				Value(&v.Horizon),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&v.Theme),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&v.LogLevel),
		),
	).WithTheme(huh.ThemeDracula())
}

// Apply copies the answers into cfg.
func (v *SetupValues) Apply(cfg *config.Config) {
	cfg.General.Scenario = v.Scenario
	if days, err := strconv.Atoi(v.Horizon); err == nil && days > 0 {
		cfg.General.HorizonDays = days
	}
	cfg.Appearance.Theme = v.Theme
	cfg.Log.Level = v.LogLevel
}
