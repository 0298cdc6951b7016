package cli

import (
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{1234.5, "$1,234.50"},
		{-12, "-$12.00"},
		{-0.001, "$0.00"},
		{0.1 + 0.2, "$0.30"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := FormatSignedMoney(5); got != "+$5.00" {
		t.Errorf("FormatSignedMoney(5) = %q", got)
	}
	if got := FormatSignedMoney(-5); got != "-$5.00" {
		t.Errorf("FormatSignedMoney(-5) = %q", got)
	}
}

func TestFormatCompactMoney(t *testing.T) {
	tests := map[float64]string{
		12:         "$12",
		1234:       "$1.2K",
		-2_500_000: "-$2.5M",
		3e9:        "$3.0B",
	}
	for in, want := range tests {
		if got := FormatCompactMoney(in); got != want {
			t.Errorf("FormatCompactMoney(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatRange(t *testing.T) {
	if got := FormatRange(10, 10); got != "$10.00" {
		t.Errorf("FormatRange equal = %q", got)
	}
	if got := FormatRange(-5, 7.5); got != "-$5.00 … $7.50" {
		t.Errorf("FormatRange = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-9876543: "-9,876,543",
	}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDates(t *testing.T) {
	d := civil.Date{Year: 2024, Month: time.February, Day: 29}
	if got := FormatDate(d); got != "2024-02-29" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDate(civil.Date{}); got != "-" {
		t.Errorf("FormatDate(zero) = %q", got)
	}
	if got := FormatDayOfWeek(d); got != "Thu" {
		t.Errorf("FormatDayOfWeek = %q", got)
	}
	if got := FormatDayOfWeek(civil.Date{Year: 2023, Month: time.February, Day: 29}); got != "???" {
		t.Errorf("FormatDayOfWeek(invalid) = %q", got)
	}
}

func TestFormatNames(t *testing.T) {
	names := []string{"rent", "salary", "gym"}
	if got := FormatNames(names, 0); got != "rent, salary, gym" {
		t.Errorf("unlimited = %q", got)
	}
	if got := FormatNames(names, 2); got != "rent, salary +1 more" {
		t.Errorf("limited = %q", got)
	}
	if got := FormatNames(nil, 2); got != "" {
		t.Errorf("empty = %q", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	got := []rune(RenderSparkline([]float64{-100, 0, 100}))
	if len(got) != 3 || got[0] != '▁' || got[2] != '█' {
		t.Errorf("RenderSparkline = %q", string(got))
	}
	if RenderSparkline(nil) != "" {
		t.Error("empty sparkline should be empty")
	}
	flat := RenderSparkline([]float64{5, 5})
	if flat != "▁▁" {
		t.Errorf("flat sparkline = %q", flat)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Date", "Balance", "Deltas"},
		Rows: [][]string{
			{"2024-01-01", "$1.00", "salary"},
			{"---"},
			{"2024-01-02", "$10,000.00", "rent, car"},
		},
		Left: []int{2},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// top, header, header rule, row, separator, row, bottom
	if len(lines) != 7 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(out, "salary   ") {
		t.Errorf("left-aligned column not padded on the right:\n%s", out)
	}
	if !strings.Contains(out, "      $1.00") {
		t.Errorf("numeric column not right-aligned:\n%s", out)
	}
	if RenderTable(Table{}) != "" {
		t.Error("empty table should render nothing")
	}
}
