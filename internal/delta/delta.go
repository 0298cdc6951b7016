// Package delta models scheduled income and expense events.
//
// Every variant validates its inputs and computes its full list of dates once,
// at construction. A successfully built Delta never changes and never fails
// afterwards, so it is safe to share between goroutines for reading.
package delta

import (
	"slices"

	"github.com/theirongolddev/moolah/internal/calendar"

	"cloud.google.com/go/civil"
)

// Delta is a schedule-bound adjustment: a nominal value applied on each of its dates.
type Delta interface {
	Name() string
	Value() float64
	// Uncertainty returns nil when the value is exact.
	Uncertainty() *Uncertainty
	// Dates returns a copy of the occurrence dates.
	Dates() []civil.Date
	// Min and Max are the per-occurrence bounds derived from the uncertainty.
	Min() float64
	Max() float64
}

// base holds what every variant shares and implements Delta.
type base struct {
	name        string
	value       float64
	uncertainty *Uncertainty
	dates       []civil.Date
}

// Delta implementation shared by every variant.
func (b *base) Name() string              { return b.name }
func (b *base) Value() float64            { return b.value }
func (b *base) Uncertainty() *Uncertainty { return b.uncertainty }
func (b *base) Dates() []civil.Date       { return slices.Clone(b.dates) }
func (b *base) Min() float64              { return b.uncertainty.Min(b.value) }
func (b *base) Max() float64              { return b.uncertainty.Max(b.value) }

// Occurrences returns the number of dates without copying them.
func (b *base) Occurrences() int { return len(b.dates) }

func newBase(name string, value float64, u *Uncertainty) (base, error) {
	if err := u.validate(value); err != nil {
		return base{}, err
	}
	return base{name: name, value: value, uncertainty: u}, nil
}

func checkDate(d civil.Date) error {
	if !d.IsValid() {
		return &InvalidDateError{Date: d}
	}
	return calendar.Check(d)
}

func checkRange(start, end civil.Date) error {
	if err := checkDate(start); err != nil {
		return err
	}
	if err := checkDate(end); err != nil {
		return err
	}
	if start.After(end) {
		return &StartAfterEndError{Start: start, End: end}
	}
	return nil
}

func checkSkip(field string, skip int) error {
	if skip < 0 {
		return &NegativeValueError{Field: field, Value: float64(skip)}
	}
	return nil
}
