package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/moolah/internal/scenario"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/huh"
)

const noUncertainty = "none"

// DeltaValues holds the raw answers of the add-delta form. Everything is kept
// as text so the inputs can be bound directly and parsed once at the end.
type DeltaValues struct {
	Name     string
	Kind     string
	Value    string
	On       string
	Dates    string
	Start    string
	End      string
	Weekday  string
	MonthDay string
	Skip     string

	Mode   string
	Unit   string
	Amount string
	Low    string
	High   string
}

// NewDeltaValues returns form values with a one-time delta on start preselected.
func NewDeltaValues(start civil.Date) *DeltaValues {
	s := ""
	if start.IsValid() {
		s = start.String()
	}
	return &DeltaValues{
		Kind:  string(scenario.KindOnce),
		On:    s,
		Start: s,
		Skip:  "0",
		Mode:  noUncertainty,
		Unit:  "dollars",
	}
}

// NewDeltaForm builds the add-delta form. Groups for other schedule kinds and
// for the uncertainty details stay hidden until they apply.
func NewDeltaForm(v *DeltaValues) *huh.Form {
	kinds := make([]string, len(scenario.Kinds))
	for i, k := range scenario.Kinds {
		kinds[i] = string(k)
	}
	isKind := func(ks ...scenario.Kind) func() bool {
		return func() bool {
			for _, k := range ks {
				if v.Kind == string(k) {
					return false
				}
			}
			return true
		}
	}
	ranged := isKind(scenario.KindDaily, scenario.KindWeekly, scenario.KindMonthly, scenario.KindYearly)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("rent").
				Value(&v.Name).
				Validate(required("name")),
			huh.NewInput().
				Title("Value").
				Description("Positive for income, negative for expenses.").
				Placeholder("-1200").
				Value(&v.Value).
				Validate(validFloat),
			huh.NewSelect[string]().
				Title("Schedule").
				Options(huh.NewOptions(kinds...)...).
				Value(&v.Kind),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("On").
				Placeholder("2024-01-31").
				Value(&v.On).
				Validate(validDate),
		).WithHideFunc(isKind(scenario.KindOnce)),
		huh.NewGroup(
			huh.NewText().
				Title("Dates").
				Description("Space or newline separated YYYY-MM-DD dates.").
				Value(&v.Dates).
				Validate(validDates),
		).WithHideFunc(isKind(scenario.KindCustom)),
		huh.NewGroup(
			huh.NewInput().
				Title("Start").
				Placeholder("2024-01-01").
				Value(&v.Start).
				Validate(validDate),
			huh.NewInput().
				Title("End").
				Placeholder("2024-12-31").
				Value(&v.End).
				Validate(validDate),
			huh.NewInput().
				Title("Skip").
				Description("Periods to skip between occurrences.").
				Value(&v.Skip).
				Validate(validCount),
		).WithHideFunc(ranged),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Weekday").
				Options(
					huh.NewOption("same as start", ""),
					huh.NewOption("Monday", "monday"),
					huh.NewOption("Tuesday", "tuesday"),
					huh.NewOption("Wednesday", "wednesday"),
					huh.NewOption("Thursday", "thursday"),
					huh.NewOption("Friday", "friday"),
					huh.NewOption("Saturday", "saturday"),
					huh.NewOption("Sunday", "sunday"),
				).
				Value(&v.Weekday),
		).WithHideFunc(isKind(scenario.KindWeekly)),
		huh.NewGroup(
			huh.NewInput().
				Title("Day of month").
				Description("1-31. Short months use their last day.").
				Value(&v.MonthDay).
				Validate(validMonthDay),
		).WithHideFunc(isKind(scenario.KindMonthly)),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Uncertainty").
				Options(
					huh.NewOption("exact", noUncertainty),
					huh.NewOption("balanced (± amount)", "balanced"),
					huh.NewOption("unbalanced (- low / + high)", "unbalanced"),
					huh.NewOption("absolute bounds", "bounds"),
				).
				Value(&v.Mode),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Unit").
				Options(huh.NewOptions("dollars", "percent")...).
				Value(&v.Unit),
			huh.NewInput().
				Title("Amount").
				Value(&v.Amount).
				Validate(validFloat),
		).WithHideFunc(func() bool { return v.Mode != "balanced" }),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Unit").
				Description("Applies to both the low and the high side.").
				Options(huh.NewOptions("dollars", "percent")...).
				Value(&v.Unit),
		).WithHideFunc(func() bool { return v.Mode != "unbalanced" }),
		huh.NewGroup(
			huh.NewInput().
				Title("Low").
				Value(&v.Low).
				Validate(validFloat),
			huh.NewInput().
				Title("High").
				Value(&v.High).
				Validate(validFloat),
		).WithHideFunc(func() bool { return v.Mode != "unbalanced" && v.Mode != "bounds" }),
	).WithTheme(huh.ThemeDracula())
}

// Record converts the answers into a scenario record. The caller should still
// build the delta to catch schedule errors such as a start after its end.
func (v *DeltaValues) Record() (scenario.Record, error) {
	rec := scenario.Record{
		Name: strings.TrimSpace(v.Name),
		Kind: scenario.Kind(v.Kind),
	}

	var err error
	if rec.Value, err = parseFloat(v.Value); err != nil {
		return scenario.Record{}, fmt.Errorf("value: %w", err)
	}

	switch rec.Kind {
	case scenario.KindOnce:
		if rec.On, err = parseDate(v.On); err != nil {
			return scenario.Record{}, fmt.Errorf("on: %w", err)
		}
	case scenario.KindCustom:
		for _, f := range strings.Fields(v.Dates) {
			d, err := parseDate(f)
			if err != nil {
				return scenario.Record{}, fmt.Errorf("dates: %w", err)
			}
			rec.Dates = append(rec.Dates, d)
		}
	default:
		if rec.Start, err = parseDate(v.Start); err != nil {
			return scenario.Record{}, fmt.Errorf("start: %w", err)
		}
		if rec.End, err = parseDate(v.End); err != nil {
			return scenario.Record{}, fmt.Errorf("end: %w", err)
		}
		if rec.Skip, err = parseCount(v.Skip); err != nil {
			return scenario.Record{}, fmt.Errorf("skip: %w", err)
		}
		if rec.Kind == scenario.KindWeekly {
			rec.Weekday = v.Weekday
		}
		if rec.Kind == scenario.KindMonthly {
			if rec.MonthDay, err = strconv.Atoi(strings.TrimSpace(v.MonthDay)); err != nil {
				return scenario.Record{}, fmt.Errorf("month day: %w", err)
			}
		}
	}

	if rec.Uncertainty, err = v.uncertainty(); err != nil {
		return scenario.Record{}, err
	}
	return rec, nil
}

func (v *DeltaValues) uncertainty() (*scenario.UncertaintyRecord, error) {
	u := &scenario.UncertaintyRecord{
		Mode:     v.Mode,
		Unit:     "dollars",
		LowUnit:  "dollars",
		HighUnit: "dollars",
	}
	var err error

	switch v.Mode {
	case noUncertainty, "":
		return nil, nil
	case "balanced":
		u.Unit = v.Unit
		if u.Amount, err = parseFloat(v.Amount); err != nil {
			return nil, fmt.Errorf("uncertainty amount: %w", err)
		}
	case "unbalanced", "bounds":
		if v.Mode == "unbalanced" {
			u.LowUnit, u.HighUnit = v.Unit, v.Unit
		}
		if u.Low, err = parseFloat(v.Low); err != nil {
			return nil, fmt.Errorf("uncertainty low: %w", err)
		}
		if u.High, err = parseFloat(v.High); err != nil {
			return nil, fmt.Errorf("uncertainty high: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown uncertainty mode %q", v.Mode)
	}
	return u, nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validFloat(s string) error {
	_, err := parseFloat(s)
	return err
}

func validDate(s string) error {
	_, err := parseDate(s)
	return err
}

func validDates(s string) error {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return errors.New("at least one date is required")
	}
	for _, f := range fields {
		if _, err := parseDate(f); err != nil {
			return err
		}
	}
	return nil
}

func validCount(s string) error {
	_, err := parseCount(s)
	return err
}

func validMonthDay(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 31 {
		return errors.New("enter a day between 1 and 31")
	}
	return nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return f, nil
}

func parseDate(s string) (scenario.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return scenario.Date{}, fmt.Errorf("%q is not a YYYY-MM-DD date", s)
	}
	return scenario.NewDate(d), nil
}

func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%q is not a whole number >= 0", s)
	}
	return n, nil
}
