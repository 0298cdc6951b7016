package prediction

import (
	"slices"

	"cloud.google.com/go/civil"
)

// Forecast is the output of Predict, in ascending date order.
type Forecast []Point

// Len returns the number of dated points.
func (f Forecast) Len() int { return len(f) }

// Dates returns the dates in order.
func (f Forecast) Dates() []civil.Date {
	out := make([]civil.Date, len(f))
	for i, p := range f {
		out[i] = p.Date
	}
	return out
}

// At returns the state recorded exactly on date.
func (f Forecast) At(date civil.Date) (State, bool) {
	i, ok := slices.BinarySearchFunc(f, date, func(p Point, d civil.Date) int {
		return compareDates(p.Date, d)
	})
	if !ok {
		return State{}, false
	}
	return f[i].State, true
}

// Balance returns the cumulative state in effect on date: the latest point on
// or before it, with no contributors unless something landed that day.
func (f Forecast) Balance(date civil.Date) (State, bool) {
	i, found := slices.BinarySearchFunc(f, date, func(p Point, d civil.Date) int {
		return compareDates(p.Date, d)
	})
	if found {
		return f[i].State, true
	}
	if i == 0 {
		return State{}, false
	}
	s := f[i-1].State
	s.Deltas = nil
	return s, true
}

// Last returns the final point.
func (f Forecast) Last() (Point, bool) {
	if len(f) == 0 {
		return Point{}, false
	}
	return f[len(f)-1], true
}

// Lowest returns the earliest point with the smallest Min.
func (f Forecast) Lowest() (Point, bool) {
	if len(f) == 0 {
		return Point{}, false
	}
	low := f[0]
	for _, p := range f[1:] {
		if p.State.Min < low.State.Min {
			low = p
		}
	}
	return low, true
}

// Daily expands the forecast into one point per calendar day from the first
// point through end, carrying the balance forward over days with no events.
func (f Forecast) Daily(end civil.Date) Forecast {
	if len(f) == 0 {
		return nil
	}
	first := f[0].Date
	if end.Before(first) {
		return Forecast{f[0]}
	}
	out := make(Forecast, 0, end.DaysSince(first)+1)
	i := 0
	var carry State
	for day := first; !day.After(end); day = day.AddDays(1) {
		if i < len(f) && f[i].Date == day {
			carry = f[i].State
			out = append(out, f[i])
			i++
			continue
		}
		out = append(out, Point{Date: day, State: State{Value: carry.Value, Min: carry.Min, Max: carry.Max}})
	}
	return out
}
