package delta

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
)

// Sentinels matched with errors.Is against the typed errors below.
var (
	ErrNegativeValue      = errors.New("unexpected negative value")
	ErrIllogicalBounds    = errors.New("illogical uncertainty bounds")
	ErrStartAfterEnd      = errors.New("start after end")
	ErrMonthDayOutOfRange = errors.New("month day out of range")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidWeekday     = errors.New("invalid weekday")
)

// NegativeValueError is returned when a quantity that must be >= 0 is negative.
type NegativeValueError struct {
	Field string
	Value float64
}

func (e *NegativeValueError) Error() string {
	return fmt.Sprintf("%s cannot be negative, got %g", e.Field, e.Value)
}

func (e *NegativeValueError) Is(target error) bool { return target == ErrNegativeValue }

// BoundsError is returned when explicit bounds do not enclose the nominal value.
type BoundsError struct {
	Low, High, Value float64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("illogical bounded uncertainty [%g, %g] for value %g", e.Low, e.High, e.Value)
}

func (e *BoundsError) Is(target error) bool { return target == ErrIllogicalBounds }

// StartAfterEndError is returned by ranged deltas whose start is later than their end.
type StartAfterEndError struct {
	Start, End civil.Date
}

func (e *StartAfterEndError) Error() string {
	return fmt.Sprintf("start (%s) cannot be after end (%s)", e.Start, e.End)
}

func (e *StartAfterEndError) Is(target error) bool { return target == ErrStartAfterEnd }

// MonthDayError is returned when a monthly day-of-month is outside [1, 31].
type MonthDayError struct {
	Day int
}

func (e *MonthDayError) Error() string {
	return fmt.Sprintf("month day %d must be in range [1, 31]", e.Day)
}

func (e *MonthDayError) Is(target error) bool { return target == ErrMonthDayOutOfRange }

// InvalidDateError is returned for dates that do not exist, like 2023-02-30.
type InvalidDateError struct {
	Date civil.Date
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("%04d-%02d-%02d is not a calendar date", e.Date.Year, int(e.Date.Month), e.Date.Day)
}

func (e *InvalidDateError) Is(target error) bool { return target == ErrInvalidDate }
