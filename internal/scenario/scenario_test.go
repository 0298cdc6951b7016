package scenario

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/moolah/internal/delta"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const householdTOML = `
name = "household"
start = 2024-01-01
initial_value = 2500.0

[[deltas]]
name = "salary"
kind = "monthly"
value = 4200
start = 2024-01-01
end = 2024-12-31
month_day = 25
  [deltas.uncertainty]
  mode = "balanced"
  unit = "percent"
  amount = 2

[[deltas]]
name = "groceries"
kind = "weekly"
value = -120
start = "2024-01-01"
end = 2024-03-31
weekday = "sat"
  [deltas.uncertainty]
  mode = "unbalanced"
  low_unit = "dollars"
  low = 30
  high_unit = "percent"
  high = 10

[[deltas]]
name = "car repair"
value = -600
on = 2024-02-14
  [deltas.uncertainty]
  mode = "bounds"
  low = -900
  high = -400

[[deltas]]
name = "gifts"
kind = "custom"
value = -50
dates = [2024-05-12, 2024-12-20]
`

const householdYAML = `
name: household
start: 2024-01-01
initial_value: 2500
deltas:
  - name: salary
    kind: monthly
    value: 4200
    start: 2024-01-01
    end: 2024-12-31
    month_day: 25
    uncertainty:
      mode: balanced
      unit: percent
      amount: 2
  - name: groceries
    kind: weekly
    value: -120
    start: 2024-01-01
    end: 2024-03-31
    weekday: Saturday
    uncertainty:
      mode: unbalanced
      low: 30
      high_unit: percent
      high: 10
  - name: car repair
    value: -600
    on: 2024-02-14
    uncertainty:
      mode: bounds
      low: -900
      high: -400
  - name: gifts
    kind: custom
    value: -50
    dates: [2024-05-12, 2024-12-20]
`

func date(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := civil.ParseDate(s)
	require.NoError(t, err)
	return d
}

func assertHousehold(t *testing.T, s *Scenario) {
	t.Helper()
	assert.Equal(t, "household", s.Name)
	assert.Equal(t, date(t, "2024-01-01"), s.Start.Date)
	assert.Equal(t, 2500.0, s.InitialValue)
	require.Len(t, s.Deltas, 4)

	salary := s.Deltas[0]
	assert.Equal(t, KindMonthly, salary.Kind)
	assert.Equal(t, 25, salary.MonthDay)
	require.NotNil(t, salary.Uncertainty)
	assert.Equal(t, "percent", salary.Uncertainty.Unit)

	groceries := s.Deltas[1]
	assert.Equal(t, date(t, "2024-01-01"), groceries.Start.Date)
	assert.Equal(t, "dollars", groceries.Uncertainty.LowUnit, "low_unit defaults to dollars")

	repair := s.Deltas[2]
	assert.Equal(t, KindOnce, repair.Kind, "kind defaults to once")
	assert.Equal(t, date(t, "2024-02-14"), repair.On.Date)

	assert.Equal(t, []Date{NewDate(date(t, "2024-05-12")), NewDate(date(t, "2024-12-20"))}, s.Deltas[3].Dates)
}

func TestParse(t *testing.T) {
	tests := []struct {
		format Format
		data   string
	}{
		{FormatTOML, householdTOML},
		{FormatYAML, householdYAML},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			s, err := Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)
			assertHousehold(t, s)
		})
	}
}

func TestPrediction(t *testing.T) {
	s, err := Parse([]byte(householdTOML), FormatTOML)
	require.NoError(t, err)

	p, err := s.Prediction(date(t, "1999-01-01"))
	require.NoError(t, err)
	assert.Equal(t, date(t, "2024-01-01"), p.Start(), "scenario start wins over fallback")
	require.Len(t, p.Deltas(), 4)

	f := p.Predict(date(t, "2024-01-31"))
	// Start, four Saturdays of groceries and the salary on the 25th.
	require.Equal(t, 6, f.Len())

	st, ok := f.At(date(t, "2024-01-25"))
	require.True(t, ok)
	assert.Equal(t, []string{"salary"}, st.Deltas)
	assert.InDelta(t, 2500-120*3+4200, st.Value, 1e-9)

	sat, ok := f.At(date(t, "2024-01-06"))
	require.True(t, ok)
	assert.InDelta(t, 2380, sat.Value, 1e-9)
	assert.InDelta(t, 2350, sat.Min, 1e-9)
	assert.InDelta(t, 2392, sat.Max, 1e-9)
}

func TestPrediction_FallbackStart(t *testing.T) {
	s := &Scenario{Name: "no start", InitialValue: 10}
	p, err := s.Prediction(date(t, "2030-06-01"))
	require.NoError(t, err)
	assert.Equal(t, date(t, "2030-06-01"), p.Start())
}

func TestValidate(t *testing.T) {
	_, err := Parse([]byte(`
initial_value = 1
[[deltas]]
kind = "fortnightly"
skip = -1
[deltas.uncertainty]
mode = "wide"
`), FormatTOML)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{
		"name",
		"deltas[0].name",
		"deltas[0].kind",
		"deltas[0].skip",
		"deltas[0].uncertainty.mode",
	}, fields)
	assert.Contains(t, err.Error(), "deltas[0].kind must be one of")
}

func TestRecordDelta_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		reason string
	}{
		{"once", Record{Name: "a", Kind: KindOnce}, "once delta has no on"},
		{"custom", Record{Name: "b", Kind: KindCustom}, "custom delta has no dates"},
		{"daily start", Record{Name: "c", Kind: KindDaily}, "daily delta has no start"},
		{"weekly end", Record{Name: "d", Kind: KindWeekly, Start: NewDate(civil.Date{Year: 2024, Month: 1, Day: 1})}, "weekly delta has no end"},
		{"monthly day", Record{Name: "e", Kind: KindMonthly,
			Start: NewDate(civil.Date{Year: 2024, Month: 1, Day: 1}),
			End:   NewDate(civil.Date{Year: 2024, Month: 2, Day: 1})}, "monthly delta has no month_day"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.record.Delta()
			assert.Nil(t, d)
			require.ErrorIs(t, err, ErrConversion)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestRecordDelta_CoreErrorsPassThrough(t *testing.T) {
	r := Record{
		Name:        "bad bounds",
		Kind:        KindOnce,
		Value:       10,
		On:          NewDate(civil.Date{Year: 2024, Month: 1, Day: 1}),
		Uncertainty: &UncertaintyRecord{Mode: "bounds", Low: 20, High: 30},
	}
	_, err := r.Delta()
	assert.ErrorIs(t, err, delta.ErrIllogicalBounds)

	r = Record{
		Name:  "backwards",
		Kind:  KindYearly,
		Start: NewDate(civil.Date{Year: 2025, Month: 1, Day: 1}),
		End:   NewDate(civil.Date{Year: 2024, Month: 1, Day: 1}),
	}
	_, err = r.Delta()
	assert.ErrorIs(t, err, delta.ErrStartAfterEnd)

	r = Record{Name: "neg", On: NewDate(civil.Date{Year: 2024, Month: 1, Day: 1}),
		Uncertainty: &UncertaintyRecord{Mode: "balanced", Unit: "dollars", Amount: -1}}
	_, err = r.Delta()
	assert.ErrorIs(t, err, delta.ErrNegativeValue)

	r = Record{Name: "weekday", Kind: KindWeekly, Weekday: "caturday",
		Start: NewDate(civil.Date{Year: 2024, Month: 1, Day: 1}),
		End:   NewDate(civil.Date{Year: 2024, Month: 2, Day: 1})}
	_, err = r.Delta()
	assert.ErrorIs(t, err, ErrConversion)
}

func TestParseWeekday(t *testing.T) {
	for in, want := range map[string]time.Weekday{
		"":          delta.StartWeekday,
		"mon":       time.Monday,
		"Monday":    time.Monday,
		" SUN ":     time.Sunday,
		"wednesday": time.Wednesday,
		"Sat":       time.Saturday,
	} {
		got, err := ParseWeekday(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseWeekday("mo")
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	orig, err := Parse([]byte(householdTOML), FormatTOML)
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"household.toml", "household.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "nested", name)
			require.NoError(t, Save(path, orig))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, orig, got)
		})
	}
}

func TestSave_WritesBareTOMLDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.toml")
	s := &Scenario{Name: "x", Start: NewDate(civil.Date{Year: 2024, Month: 3, Day: 9})}
	require.NoError(t, Save(path, s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "start = 2024-03-09")
}

func TestLoad_UnknownExtension(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "scenario.json"))
	assert.ErrorContains(t, err, "unknown scenario format")
}

func TestFromDelta(t *testing.T) {
	s, err := Parse([]byte(householdTOML), FormatTOML)
	require.NoError(t, err)

	for _, r := range s.Deltas {
		d, err := r.Delta()
		require.NoError(t, err)

		back := FromDelta(d)
		again, err := back.Delta()
		require.NoError(t, err, r.Name)
		assert.Equal(t, d.Dates(), again.Dates(), r.Name)
		assert.Equal(t, d.Min(), again.Min(), r.Name)
		assert.Equal(t, d.Max(), again.Max(), r.Name)
	}
}
