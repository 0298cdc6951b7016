package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestChartTickStep(t *testing.T) {
	tests := []struct {
		span float64
		want float64
	}{
		{0, 1},
		{5, 1},
		{10, 2},
		{100, 20},
		{2500, 500},
		{-3, 1},
	}
	for _, tt := range tests {
		if got := chartTickStep(tt.span); got != tt.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tt.span, got, tt.want)
		}
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := map[float64]string{
		0:         "0",
		250:       "250",
		1500:      "1.5k",
		-2000:     "-2k",
		3_400_000: "3.4M",
		0.5:       "0.50",
	}
	for in, want := range tests {
		if got := formatChartLabel(in); got != want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestSample(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	labels := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}

	got, gotLabels := sample(values, labels, 4)
	if len(got) != 4 || got[0] != 0 || got[3] != 9 {
		t.Errorf("sample values = %v", got)
	}
	if len(gotLabels) != 4 || gotLabels[0] != "a" || gotLabels[3] != "j" {
		t.Errorf("sample labels = %v", gotLabels)
	}

	short, _ := sample(values[:3], nil, 10)
	if len(short) != 3 {
		t.Errorf("sample should keep short series, got %v", short)
	}
}

func TestAxisLabels(t *testing.T) {
	got := axisLabels([]string{"Jan", "", "Feb", "", "", "", "Mar", "", ""}, 9)
	if got != "Jan   Mar" {
		t.Errorf("axisLabels = %q", got)
	}
}

func TestBalanceChart_Negative(t *testing.T) {
	values := []float64{100, 50, -50, -120, 30}
	out := BalanceChart(values, nil, 40, 8)
	lines := strings.Split(out, "\n")
	if len(lines) < 4 {
		t.Fatalf("chart too short:\n%s", out)
	}
	last := lines[len(lines)-1]
	if !strings.Contains(last, "└") || !strings.Contains(last, "-") {
		t.Errorf("baseline should sit below zero, got %q", last)
	}
	for _, line := range lines {
		if w := lipgloss.Width(line); w > 40 {
			t.Errorf("line wider than chart: %d", w)
		}
	}
}

func TestBalanceChart_TinyFallsBackToSparkline(t *testing.T) {
	out := BalanceChart([]float64{1, 2, 3}, nil, 10, 2)
	if strings.Contains(out, "\n") {
		t.Errorf("expected single-line sparkline, got %q", out)
	}
	if BalanceChart(nil, nil, 40, 10) != "" {
		t.Error("empty chart should render nothing")
	}
}

func TestBandBar(t *testing.T) {
	for _, tt := range []struct {
		lo, v, hi float64
	}{
		{0, 0, 10},
		{0, 5, 10},
		{0, 10, 10},
		{7, 7, 7},
	} {
		out := BandBar(tt.lo, tt.v, tt.hi, 12)
		if w := lipgloss.Width(out); w != 12 {
			t.Errorf("BandBar(%v, %v, %v) width = %d, want 12", tt.lo, tt.v, tt.hi, w)
		}
		if !strings.Contains(out, "●") {
			t.Errorf("BandBar(%v, %v, %v) has no marker", tt.lo, tt.v, tt.hi)
		}
	}
}

func TestShareBar(t *testing.T) {
	out := ShareBar(1.5, lipgloss.Color("#FFFFFF"), 10)
	if !strings.Contains(out, "100%") {
		t.Errorf("share should clamp to 100%%: %q", out)
	}
}
