// Package prediction folds a starting value and a set of deltas into a
// date-ordered series of cumulative forecast states.
package prediction

import (
	"slices"

	"github.com/theirongolddev/moolah/internal/delta"

	"cloud.google.com/go/civil"
)

// Prediction is a starting balance plus the deltas that move it.
// It is immutable after New and safe for concurrent Predict calls.
type Prediction struct {
	name         string
	start        civil.Date
	initialValue float64
	deltas       []delta.Delta
}

// New builds a prediction. The deltas slice is copied.
func New(name string, start civil.Date, initialValue float64, deltas ...delta.Delta) *Prediction {
	return &Prediction{
		name:         name,
		start:        start,
		initialValue: initialValue,
		deltas:       slices.Clone(deltas),
	}
}

// Name, Start and InitialValue return the values given to New.
func (p *Prediction) Name() string          { return p.name }
func (p *Prediction) Start() civil.Date     { return p.start }
func (p *Prediction) InitialValue() float64 { return p.initialValue }

// Deltas returns the deltas in supply order.
func (p *Prediction) Deltas() []delta.Delta { return slices.Clone(p.deltas) }

// Horizon returns the date days after start.
func (p *Prediction) Horizon(days int) civil.Date { return p.start.AddDays(days) }

// State is the cumulative forecast on one date.
type State struct {
	Value float64
	Min   float64
	Max   float64
	// Deltas names the deltas that landed on this date, in supply order.
	Deltas []string
}

// Point pairs a date with its State.
type Point struct {
	Date  civil.Date
	State State
}

type bucket struct {
	value, min, max float64
	names           []string
}

func (b *bucket) add(d delta.Delta) {
	b.value += d.Value()
	b.min += d.Min()
	b.max += d.Max()
	if !slices.Contains(b.names, d.Name()) {
		b.names = append(b.names, d.Name())
	}
}

// Predict computes the forecast from start through end inclusive. The start
// date is always present. If end is before start only the start point is
// returned. Every call recomputes from scratch.
func (p *Prediction) Predict(end civil.Date) Forecast {
	buckets := map[civil.Date]*bucket{p.start: {}}

	for _, d := range p.deltas {
		for _, date := range d.Dates() {
			if date.Before(p.start) || date.After(end) {
				continue
			}
			b, ok := buckets[date]
			if !ok {
				b = &bucket{}
				buckets[date] = b
			}
			b.add(d)
		}
	}

	dates := make([]civil.Date, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	slices.SortFunc(dates, compareDates)

	forecast := make(Forecast, 0, len(dates))
	value, lo, hi := p.initialValue, p.initialValue, p.initialValue
	for _, date := range dates {
		b := buckets[date]
		value += b.value
		lo += b.min
		hi += b.max
		forecast = append(forecast, Point{
			Date:  date,
			State: State{Value: value, Min: lo, Max: hi, Deltas: b.names},
		})
	}
	return forecast
}

func compareDates(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
