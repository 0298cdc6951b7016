package prediction

import (
	"math"

	"github.com/theirongolddev/moolah/internal/delta"

	"cloud.google.com/go/civil"
)

// Schedule summarizes one delta within a forecast window.
type Schedule struct {
	Delta delta.Delta
	// Count is the number of occurrences between the start and end, inclusive.
	Count int
	// Next is the first occurrence in the window, or the zero date if none.
	Next civil.Date
	// Flow is the nominal value summed over the window's occurrences.
	Flow float64
}

// Share returns the schedule's fraction of total absolute flow.
func (s Schedule) Share(total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.Abs(s.Flow) / total
}

// Schedules returns a summary for each delta, in supply order, restricted to
// the window from the prediction start through end.
func (p *Prediction) Schedules(end civil.Date) []Schedule {
	out := make([]Schedule, len(p.deltas))
	for i, d := range p.deltas {
		s := Schedule{Delta: d}
		for _, date := range d.Dates() {
			if date.Before(p.start) || date.After(end) {
				continue
			}
			if s.Count == 0 || date.Before(s.Next) {
				s.Next = date
			}
			s.Count++
		}
		s.Flow = float64(s.Count) * d.Value()
		out[i] = s
	}
	return out
}

// TotalFlow sums the absolute flow of every schedule.
func TotalFlow(schedules []Schedule) float64 {
	var total float64
	for _, s := range schedules {
		total += math.Abs(s.Flow)
	}
	return total
}
