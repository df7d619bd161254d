package components

import (
	"fmt"

	"moneytrack/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForUtilization returns green/yellow/orange/red by budget utilization.
func ColorForUtilization(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 1.0:
		return string(t.Red)
	case pct >= 0.9:
		return string(t.Orange)
	case pct >= 0.75:
		return string(t.Yellow)
	default:
		return string(t.Green)
	}
}

// BudgetBar renders a labeled utilization bar for one category budget:
// the category name, a fill bar, and the spent percentage. pct may exceed
// 1.0; the bar clamps but the percentage shows the overrun.
func BudgetBar(category string, pct float64, labelW, barWidth int) string {
	t := theme.Active

	shown := pct
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForUtilization(shown)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	pctStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorForUtilization(shown))).
		Bold(true)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncLabel(category, labelW))) +
		" " + bar.ViewAs(pct) +
		" " + pctStyle.Render(fmt.Sprintf("%4.0f%%", shown*100))
}

func truncLabel(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit < 1 {
		return ""
	}
	return string(runes[:limit-1]) + "…"
}
