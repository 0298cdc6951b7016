// Package calendar provides rolling arithmetic over timezone-less calendar dates.
//
// Adding months or years targets a day-of-month that may not exist in the
// destination month. The result is clamped back to the month's last day, and
// callers that step repeatedly re-target the original day from the original
// month so a clamp never drifts later results (Jan 31 -> Feb 28 -> Mar 31).
package calendar

import (
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Supported calendar range. Rolling outside it is reported as ErrDateUnreachable.
const (
	MinYear = 1
	MaxYear = 9999
)

// maxClampSteps bounds the walk from a target day back to a month's last day.
// Four steps covers 31 -> 28 with room to spare.
const maxClampSteps = 4

// ErrDateUnreachable is matched by errors from rolling a date outside the
// supported calendar.
var ErrDateUnreachable = errors.New("date unreachable")

// UnreachableError describes the date that could not be produced.
type UnreachableError struct {
	Year  int
	Month time.Month
	Day   int
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("date %04d-%02d-%02d cannot be reached in the supported calendar [%d, %d]",
		e.Year, int(e.Month), e.Day, MinYear, MaxYear)
}

// Is reports whether target is ErrDateUnreachable.
func (e *UnreachableError) Is(target error) bool {
	return target == ErrDateUnreachable
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsLeap reports whether year is a leap year.
func IsLeap(year int) bool {
	return DaysIn(year, time.February) == 29
}

// Check returns an error if d lies outside the supported calendar range.
func Check(d civil.Date) error {
	if d.Year < MinYear || d.Year > MaxYear {
		return &UnreachableError{Year: d.Year, Month: d.Month, Day: d.Day}
	}
	return nil
}

// Clamped returns the date on day of the given month, moved back to the
// month's last day when the month is too short. month may overflow or
// underflow [1, 12]; it is normalized into the year.
func Clamped(year int, month time.Month, day int) (civil.Date, error) {
	y, m := normalize(year, int(month))
	if y < MinYear || y > MaxYear {
		return civil.Date{}, &UnreachableError{Year: y, Month: m, Day: day}
	}

	d := civil.Date{Year: y, Month: m, Day: day}
	for step := 0; step <= maxClampSteps; step++ {
		if d.IsValid() {
			return d, nil
		}
		d.Day--
	}
	return civil.Date{}, &UnreachableError{Year: y, Month: m, Day: day}
}

// AddMonths adds n months to d, targeting d's own day-of-month.
func AddMonths(d civil.Date, n int) (civil.Date, error) {
	return AddMonthsOn(d, n, d.Day)
}

// AddMonthsOn adds n months to d's month and lands on day, clamped to the
// destination month's length. The day of d itself is ignored.
func AddMonthsOn(d civil.Date, n, day int) (civil.Date, error) {
	const span = (MaxYear - MinYear + 1) * 12
	if n > span || n < -span {
		return civil.Date{}, &UnreachableError{Year: d.Year + n/12, Month: d.Month, Day: day}
	}
	return Clamped(d.Year, d.Month+time.Month(n), day)
}

// AddYears adds n years to d. Feb 29 lands on Feb 28 in non-leap years.
func AddYears(d civil.Date, n int) (civil.Date, error) {
	const span = MaxYear - MinYear + 1
	if n > span || n < -span {
		return civil.Date{}, &UnreachableError{Year: d.Year, Month: d.Month, Day: d.Day}
	}
	return Clamped(d.Year+n, d.Month, d.Day)
}

// MonthsBetween returns the number of whole calendar months from a's month to b's month.
func MonthsBetween(a, b civil.Date) int {
	return (b.Year-a.Year)*12 + int(b.Month) - int(a.Month)
}

// Weekday returns the day of the week d falls on.
func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

// NextWeekday rounds d forward to the first wd on or after d.
func NextWeekday(d civil.Date, wd time.Weekday) civil.Date {
	diff := (int(wd) - int(Weekday(d)) + 7) % 7
	return d.AddDays(diff)
}

// PrevWeekday rounds d back to the last wd on or before d.
func PrevWeekday(d civil.Date, wd time.Weekday) civil.Date {
	diff := (int(Weekday(d)) - int(wd) + 7) % 7
	return d.AddDays(-diff)
}

// Max returns the later of a and b.
func Max(a, b civil.Date) civil.Date {
	if a.After(b) {
		return a
	}
	return b
}

// Min returns the earlier of a and b.
func Min(a, b civil.Date) civil.Date {
	if a.Before(b) {
		return a
	}
	return b
}

func normalize(year, month int) (int, time.Month) {
	total := year*12 + month - 1
	y := total / 12
	m := total % 12
	if m < 0 {
		m += 12
		y--
	}
	return y, time.Month(m + 1)
}
