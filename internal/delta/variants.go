package delta

import (
	"slices"
	"time"

	"github.com/theirongolddev/moolah/internal/calendar"

	"cloud.google.com/go/civil"
)

// OneTime happens on a single date.
type OneTime struct {
	base
	on civil.Date
}

// NewOneTime builds a delta that lands on exactly one date.
func NewOneTime(name string, value float64, u *Uncertainty, on civil.Date) (*OneTime, error) {
	b, err := newBase(name, value, u)
	if err != nil {
		return nil, err
	}
	if err := checkDate(on); err != nil {
		return nil, err
	}
	b.dates = []civil.Date{on}
	return &OneTime{base: b, on: on}, nil
}

// On returns the date of the event.
func (d *OneTime) On() civil.Date { return d.on }

// Custom happens on caller-supplied dates. Order and uniqueness are not checked;
// a date listed twice contributes twice.
type Custom struct {
	base
}

// NewCustom builds a delta on an arbitrary list of dates.
func NewCustom(name string, value float64, u *Uncertainty, dates []civil.Date) (*Custom, error) {
	b, err := newBase(name, value, u)
	if err != nil {
		return nil, err
	}
	for _, d := range dates {
		if err := checkDate(d); err != nil {
			return nil, err
		}
	}
	b.dates = slices.Clone(dates)
	return &Custom{base: b}, nil
}

// Daily repeats every SkipDays+1 days from start through end.
type Daily struct {
	base
	start, end civil.Date
	skipDays   int
}

// NewDaily builds a delta on start, start+(skipDays+1), ... up to end inclusive.
func NewDaily(name string, value float64, u *Uncertainty, start, end civil.Date, skipDays int) (*Daily, error) {
	b, err := newBase(name, value, u)
	if err != nil {
		return nil, err
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	if err := checkSkip("skip_days", skipDays); err != nil {
		return nil, err
	}

	every := skipDays + 1
	n := end.DaysSince(start) / every
	b.dates = make([]civil.Date, 0, n+1)
	for k := 0; k <= n; k++ {
		b.dates = append(b.dates, start.AddDays(k*every))
	}
	return &Daily{base: b, start: start, end: end, skipDays: skipDays}, nil
}

// Schedule accessors, as passed to NewDaily.
func (d *Daily) Start() civil.Date { return d.start }
func (d *Daily) End() civil.Date   { return d.end }
func (d *Daily) SkipDays() int     { return d.skipDays }

// StartWeekday asks NewWeekly to repeat on the start date's own weekday.
const StartWeekday time.Weekday = -1

// Weekly repeats on one weekday every SkipWeeks+1 weeks.
type Weekly struct {
	base
	start, end civil.Date
	weekday    time.Weekday
	skipWeeks  int
}

// NewWeekly rounds start forward and end back to weekday, then steps by
// skipWeeks+1 weeks between them inclusive. Pass StartWeekday to use start's
// weekday. If rounding crosses the bounds over, the delta has no dates.
func NewWeekly(name string, value float64, u *Uncertainty, start, end civil.Date, weekday time.Weekday, skipWeeks int) (*Weekly, error) {
	b, err := newBase(name, value, u)
	if err != nil {
		return nil, err
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	if err := checkSkip("skip_weeks", skipWeeks); err != nil {
		return nil, err
	}
	if weekday == StartWeekday {
		weekday = calendar.Weekday(start)
	}
	if weekday < time.Sunday || weekday > time.Saturday {
		return nil, ErrInvalidWeekday
	}

	first := calendar.NextWeekday(start, weekday)
	last := calendar.PrevWeekday(end, weekday)
	if !first.After(last) {
		step := 7 * (skipWeeks + 1)
		n := last.DaysSince(first) / step
		b.dates = make([]civil.Date, 0, n+1)
		for k := 0; k <= n; k++ {
			b.dates = append(b.dates, first.AddDays(k*step))
		}
	}
	return &Weekly{base: b, start: start, end: end, weekday: weekday, skipWeeks: skipWeeks}, nil
}

// Schedule accessors. Weekday is the resolved target day, defaulting to
// start's weekday.
func (d *Weekly) Start() civil.Date     { return d.start }
func (d *Weekly) End() civil.Date       { return d.end }
func (d *Weekly) Weekday() time.Weekday { return d.weekday }
func (d *Weekly) SkipWeeks() int        { return d.skipWeeks }

// Monthly repeats on a day of the month every SkipMonths+1 months.
type Monthly struct {
	base
	start, end civil.Date
	monthDay   int
	skipMonths int
}

// NewMonthly anchors start forward and end back to monthDay, then steps by
// skipMonths+1 months. Months shorter than monthDay clamp to their last day;
// each step re-targets monthDay so later months recover it.
func NewMonthly(name string, value float64, u *Uncertainty, start, end civil.Date, monthDay, skipMonths int) (*Monthly, error) {
	b, err := newBase(name, value, u)
	if err != nil {
		return nil, err
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	if monthDay < 1 || monthDay > 31 {
		return nil, &MonthDayError{Day: monthDay}
	}
	if err := checkSkip("skip_months", skipMonths); err != nil {
		return nil, err
	}

	b.dates, err = monthlyDates(start, end, monthDay, skipMonths+1)
	if err != nil {
		return nil, err
	}
	return &Monthly{base: b, start: start, end: end, monthDay: monthDay, skipMonths: skipMonths}, nil
}

func monthlyDates(start, end civil.Date, day, every int) ([]civil.Date, error) {
	first, err := calendar.Clamped(start.Year, start.Month, day)
	if err != nil {
		return nil, err
	}
	if first.Before(start) {
		if first, err = calendar.AddMonthsOn(first, 1, day); err != nil {
			return nil, err
		}
	}

	// End keeps its own month only once it has reached monthDay itself; a
	// clamped day at the end of a short month does not count.
	last, err := calendar.Clamped(end.Year, end.Month, day)
	if err != nil {
		return nil, err
	}
	if end.Day < day {
		if last, err = calendar.AddMonthsOn(last, -1, day); err != nil {
			return nil, err
		}
	}

	if first.After(last) {
		return nil, nil
	}

	n := calendar.MonthsBetween(first, last) / every
	dates := make([]civil.Date, 0, n+1)
	for k := 0; k <= n; k++ {
		d, err := calendar.AddMonthsOn(first, k*every, day)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// Schedule accessors, as passed to NewMonthly.
func (d *Monthly) Start() civil.Date { return d.start }
func (d *Monthly) End() civil.Date   { return d.end }
func (d *Monthly) MonthDay() int     { return d.monthDay }
func (d *Monthly) SkipMonths() int   { return d.skipMonths }

// Yearly repeats on start's month and day every SkipYears+1 years.
type Yearly struct {
	base
	start, end civil.Date
	skipYears  int
}

// NewYearly steps skipYears+1 years from start through end. A Feb 29 start
// lands on Feb 28 in non-leap years.
func NewYearly(name string, value float64, u *Uncertainty, start, end civil.Date, skipYears int) (*Yearly, error) {
	b, err := newBase(name, value, u)
	if err != nil {
		return nil, err
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	if err := checkSkip("skip_years", skipYears); err != nil {
		return nil, err
	}

	every := skipYears + 1
	n := (end.Year - start.Year) / every
	b.dates = make([]civil.Date, 0, n+1)
	for k := 0; k <= n; k++ {
		d, err := calendar.AddYears(start, k*every)
		if err != nil {
			return nil, err
		}
		if d.After(end) {
			break
		}
		b.dates = append(b.dates, d)
	}
	return &Yearly{base: b, start: start, end: end, skipYears: skipYears}, nil
}

// Schedule accessors, as passed to NewYearly.
func (d *Yearly) Start() civil.Date { return d.start }
func (d *Yearly) End() civil.Date   { return d.end }
func (d *Yearly) SkipYears() int    { return d.skipYears }
