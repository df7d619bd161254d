package components

import (
	"moneytrack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. source describes where the
// displayed data came from ("live", "cached ...", or "" while loading).
func RenderStatusBar(width int, source string, syncing bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().Foreground(t.TextMuted).Width(width)

	left := " [?]help  [a]dd  [r]efresh  [q]uit"
	right := ""
	switch {
	case syncing:
		right = "Syncing... "
	case source != "":
		right = "Data: " + source + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
