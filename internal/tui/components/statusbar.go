package components

import (
	"strings"

	"github.com/theirongolddev/moolah/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// the forecast window on the right.
func RenderStatusBar(width int, window, notice string) string {
	t := theme.Active

	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	noticeStyle := lipgloss.NewStyle().Foreground(t.Warning).Background(t.Surface)

	left := hintStyle.Render(" ") +
		keyStyle.Render("?") + hintStyle.Render(" help  ") +
		keyStyle.Render("+/-") + hintStyle.Render(" horizon  ") +
		keyStyle.Render("a") + hintStyle.Render(" all days  ") +
		keyStyle.Render("q") + hintStyle.Render(" quit")
	if notice != "" {
		left += hintStyle.Render("  ") + noticeStyle.Render(notice)
	}

	right := hintStyle.Render(window + " ")

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + hintStyle.Render(strings.Repeat(" ", padding)) + right
}
