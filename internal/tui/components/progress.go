package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/moolah/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ShareBar renders a solid bar for a fraction in [0, 1] followed by its
// percentage. The deltas tab uses it for each delta's share of total flow.
func ShareBar(share float64, color lipgloss.Color, width int) string {
	t := theme.Active
	share = math.Max(0, math.Min(1, share))

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(4, width)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(share) + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%3.0f%%", share*100))
}

// BandBar draws an uncertainty band of the given width with a marker where
// value sits between lo and hi. A collapsed band renders the marker centered.
func BandBar(lo, value, hi float64, width int) string {
	t := theme.Active
	width = max(3, width)

	pos := width / 2
	if hi > lo {
		frac := (value - lo) / (hi - lo)
		pos = int(math.Round(frac * float64(width-1)))
		pos = max(0, min(pos, width-1))
	}

	band := lipgloss.NewStyle().Foreground(t.Band).Background(t.Surface)
	marker := lipgloss.NewStyle().Foreground(t.ForValue(value)).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(band.Render("├" + strings.Repeat("─", max(0, pos-1))))
	if pos == 0 {
		b.Reset()
	}
	b.WriteString(marker.Render("●"))
	if rest := width - pos - 1; rest > 0 {
		b.WriteString(band.Render(strings.Repeat("─", rest-1) + "┤"))
	}
	return b.String()
}
