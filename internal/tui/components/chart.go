package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/moolah/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline scaled between the series min and max.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := bounds(values)
	span := hi - lo
	if span == 0 {
		span = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(blocks)-1))
		idx = max(0, min(idx, len(blocks)-1))
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// BalanceChart renders balances as columns above a baseline. The baseline is
// zero unless the series dips below it, in which case it drops to the lowest
// tick so negative balances stay visible. Columns below zero use the loss color.
func BalanceChart(values []float64, labels []string, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active
	if width < 15 || height < 3 {
		return Sparkline(values, t.Accent)
	}

	lo, hi := bounds(values)
	floor := math.Min(0, lo)
	ceilVal := math.Max(hi, floor+1)

	// Y-axis: compute tick step and snap floor/ceiling to it
	maxIntervals := max(2, height/2)
	tickStep := chartTickStep(ceilVal - floor)
	for int(math.Ceil((ceilVal-floor)/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	if floor < 0 {
		floor = math.Floor(floor/tickStep) * tickStep
	}
	ceiling := floor + math.Ceil((ceilVal-floor)/tickStep)*tickStep
	numIntervals := max(1, int(math.Round((ceiling-floor)/tickStep)))

	rowsPerTick := max(2, height/numIntervals)
	chartH := rowsPerTick * numIntervals

	tickLabels := make(map[int]string, numIntervals)
	yLabelW := 4
	for i := 1; i <= numIntervals; i++ {
		l := formatChartLabel(floor + tickStep*float64(i))
		tickLabels[i*rowsPerTick] = l
		yLabelW = max(yLabelW, len(l)+1)
	}
	yLabelW = max(yLabelW, len(formatChartLabel(floor))+1)

	chartW := max(5, width-yLabelW-1)
	values, labels = sample(values, labels, chartW)
	n := len(values)

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)
	gainStyle := lipgloss.NewStyle().Foreground(t.Gain).Background(t.Surface)
	lossStyle := lipgloss.NewStyle().Foreground(t.Loss).Background(t.Surface)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := floor + (ceiling-floor)*float64(row)/float64(chartH)
		rowBottom := floor + (ceiling-floor)*float64(row-1)/float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		var line strings.Builder
		for _, v := range values {
			style := gainStyle
			if v < 0 {
				style = lossStyle
			}
			switch {
			case v >= rowTop:
				line.WriteString(style.Render("█"))
			case v > rowBottom:
				idx := int((v - rowBottom) / (rowTop - rowBottom) * 8)
				line.WriteString(style.Render(string(blocks[max(1, min(idx, 8))])))
			default:
				line.WriteString(blank.Render(" "))
			}
		}
		b.WriteString(line.String())
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, formatChartLabel(floor))))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", n)))

	if len(labels) == n && n > 0 {
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render(axisLabels(labels, n)))
	}

	return b.String()
}

// sample reduces values to at most width columns, keeping first and last.
func sample(values []float64, labels []string, width int) ([]float64, []string) {
	n := len(values)
	if n <= width || width < 2 {
		return values, labels
	}
	out := make([]float64, width)
	var outLabels []string
	if len(labels) == n {
		outLabels = make([]string, width)
	}
	for i := range out {
		src := i * (n - 1) / (width - 1)
		out[i] = values[src]
		if outLabels != nil {
			outLabels[i] = labels[src]
		}
	}
	return out, outLabels
}

// axisLabels lays labels under their columns, skipping any that would overlap.
func axisLabels(labels []string, n int) string {
	buf := []rune(strings.Repeat(" ", n))
	lastEnd := -1
	for i, lbl := range labels {
		if i <= lastEnd || lbl == "" {
			continue
		}
		r := []rune(lbl)
		if i+len(r) > n {
			continue
		}
		copy(buf[i:], r)
		lastEnd = i + len(r)
	}
	return strings.TrimRight(string(buf), " ")
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(span float64) float64 {
	if span <= 0 {
		return 1
	}
	rough := span / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%s%gM", sign, math.Round(v/1e5)/10)
	case v >= 1e3:
		return fmt.Sprintf("%s%gk", sign, math.Round(v/1e2)/10)
	case v >= 1 || v == 0:
		return fmt.Sprintf("%s%.0f", sign, v)
	default:
		return fmt.Sprintf("%s%.2f", sign, v)
	}
}
