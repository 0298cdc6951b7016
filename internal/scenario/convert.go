package scenario

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/moolah/internal/delta"
	"github.com/theirongolddev/moolah/internal/prediction"

	"cloud.google.com/go/civil"
)

// ErrConversion is matched by every ConversionError.
var ErrConversion = errors.New("delta conversion failed")

// ConversionError is returned when a record lacks what its kind needs.
type ConversionError struct {
	Delta  string
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("delta %q: %s", e.Delta, e.Reason)
}

func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

// Prediction builds the prediction the scenario describes. fallback is used
// as the start date when the scenario does not set one.
func (s *Scenario) Prediction(fallback civil.Date) (*prediction.Prediction, error) {
	start := fallback
	if s.Start.Set() {
		start = s.Start.Date
	}
	deltas := make([]delta.Delta, 0, len(s.Deltas))
	for i, r := range s.Deltas {
		d, err := r.Delta()
		if err != nil {
			return nil, fmt.Errorf("deltas[%d]: %w", i, err)
		}
		deltas = append(deltas, d)
	}
	return prediction.New(s.Name, start, s.InitialValue, deltas...), nil
}

// Delta turns the record into a validated delta.
func (r Record) Delta() (delta.Delta, error) {
	u, err := r.Uncertainty.uncertainty()
	if err != nil {
		return nil, r.wrap(err)
	}

	switch r.Kind {
	case KindOnce, "":
		on := r.On
		if !on.Set() {
			on = r.Start
		}
		if !on.Set() {
			return nil, r.missing("on")
		}
		d, err := delta.NewOneTime(r.Name, r.Value, u, on.Date)
		return r.result(d, err)

	case KindCustom:
		if len(r.Dates) == 0 {
			return nil, r.missing("dates")
		}
		d, err := delta.NewCustom(r.Name, r.Value, u, dates(r.Dates))
		return r.result(d, err)
	}

	if !r.Start.Set() {
		return nil, r.missing("start")
	}
	if !r.End.Set() {
		return nil, r.missing("end")
	}
	start, end := r.Start.Date, r.End.Date

	switch r.Kind {
	case KindDaily:
		d, err := delta.NewDaily(r.Name, r.Value, u, start, end, r.Skip)
		return r.result(d, err)
	case KindWeekly:
		wd, err := ParseWeekday(r.Weekday)
		if err != nil {
			return nil, &ConversionError{Delta: r.Name, Reason: err.Error()}
		}
		d, err := delta.NewWeekly(r.Name, r.Value, u, start, end, wd, r.Skip)
		return r.result(d, err)
	case KindMonthly:
		if r.MonthDay == 0 {
			return nil, r.missing("month_day")
		}
		d, err := delta.NewMonthly(r.Name, r.Value, u, start, end, r.MonthDay, r.Skip)
		return r.result(d, err)
	case KindYearly:
		d, err := delta.NewYearly(r.Name, r.Value, u, start, end, r.Skip)
		return r.result(d, err)
	default:
		return nil, &ConversionError{Delta: r.Name, Reason: fmt.Sprintf("unknown kind %q", r.Kind)}
	}
}

// result avoids returning a typed nil inside the Delta interface.
func (r Record) result(d delta.Delta, err error) (delta.Delta, error) {
	if err != nil {
		return nil, r.wrap(err)
	}
	return d, nil
}

func (r Record) wrap(err error) error {
	return fmt.Errorf("delta %q: %w", r.Name, err)
}

func (r Record) missing(field string) error {
	return &ConversionError{Delta: r.Name, Reason: fmt.Sprintf("%s delta has no %s", r.Kind, field)}
}

func (u *UncertaintyRecord) uncertainty() (*delta.Uncertainty, error) {
	if u == nil {
		return nil, nil
	}
	switch u.Mode {
	case "balanced":
		t, err := uncertaintyType(u.Unit, u.Amount)
		if err != nil {
			return nil, err
		}
		return delta.Balanced(t), nil
	case "unbalanced":
		low, err := uncertaintyType(u.LowUnit, u.Low)
		if err != nil {
			return nil, err
		}
		high, err := uncertaintyType(u.HighUnit, u.High)
		if err != nil {
			return nil, err
		}
		return delta.Unbalanced(low, high), nil
	case "bounds":
		return delta.Bounds(u.Low, u.High), nil
	default:
		return nil, fmt.Errorf("unknown uncertainty mode %q", u.Mode)
	}
}

func uncertaintyType(unit string, amount float64) (delta.UncertaintyType, error) {
	p, err := delta.NewPositiveValue(amount)
	if err != nil {
		return delta.UncertaintyType{}, err
	}
	if unit == "percent" {
		return delta.Percent(p), nil
	}
	return delta.Dollars(p), nil
}

// ParseWeekday accepts full or three-letter English names in any case. An
// empty string means the start date's weekday.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return delta.StartWeekday, nil
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := strings.ToLower(wd.String())
		if s == name || s == name[:3] {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// FromDelta converts a delta back into a record. It is the inverse of
// Record.Delta for every variant.
func FromDelta(d delta.Delta) Record {
	r := Record{Name: d.Name(), Value: d.Value(), Uncertainty: fromUncertainty(d.Uncertainty())}
	switch v := d.(type) {
	case *delta.OneTime:
		r.Kind = KindOnce
		r.On = NewDate(v.On())
	case *delta.Custom:
		r.Kind = KindCustom
		for _, date := range v.Dates() {
			r.Dates = append(r.Dates, NewDate(date))
		}
	case *delta.Daily:
		r.Kind = KindDaily
		r.Start, r.End, r.Skip = NewDate(v.Start()), NewDate(v.End()), v.SkipDays()
	case *delta.Weekly:
		r.Kind = KindWeekly
		r.Start, r.End, r.Skip = NewDate(v.Start()), NewDate(v.End()), v.SkipWeeks()
		r.Weekday = strings.ToLower(v.Weekday().String())
	case *delta.Monthly:
		r.Kind = KindMonthly
		r.Start, r.End, r.Skip = NewDate(v.Start()), NewDate(v.End()), v.SkipMonths()
		r.MonthDay = v.MonthDay()
	case *delta.Yearly:
		r.Kind = KindYearly
		r.Start, r.End, r.Skip = NewDate(v.Start()), NewDate(v.End()), v.SkipYears()
	}
	return r
}

func fromUncertainty(u *delta.Uncertainty) *UncertaintyRecord {
	if u == nil {
		return nil
	}
	switch u.Kind() {
	case delta.KindBalanced:
		return &UncertaintyRecord{Mode: "balanced", Unit: u.Low().Unit().String(), Amount: u.Low().Amount()}
	case delta.KindUnbalanced:
		return &UncertaintyRecord{
			Mode:     "unbalanced",
			LowUnit:  u.Low().Unit().String(),
			Low:      u.Low().Amount(),
			HighUnit: u.High().Unit().String(),
			High:     u.High().Amount(),
		}
	default:
		low, high := u.BoundValues()
		return &UncertaintyRecord{Mode: "bounds", Low: low, High: high}
	}
}
