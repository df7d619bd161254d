package tui

import (
	"fmt"
	"strings"

	"moneytrack/internal/cli"
	"moneytrack/internal/tui/components"
	"moneytrack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderBudgetsTab(cw int) string {
	t := theme.Active
	budgets := a.ledger.Budgets()

	if len(budgets) == 0 {
		dim := lipgloss.NewStyle().Foreground(t.TextDim)
		return components.ContentCard("Budgets",
			dim.Render("No budgets set. Run `moneytrack budget set <category> <limit>`."), cw)
	}

	innerW := components.CardInnerWidth(cw)
	labelW := 16
	barW := innerW - labelW - 8
	if barW < 10 {
		barW = 10
	}

	numStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	overStyle := lipgloss.NewStyle().Foreground(t.Red)

	var b strings.Builder
	for _, bg := range budgets {
		pct := 0.0
		if bg.Limit > 0 {
			pct = bg.Spent / bg.Limit
		}
		b.WriteString(components.BudgetBar(bg.Category, pct, labelW, barW))
		b.WriteString("\n")

		detail := fmt.Sprintf("%*s%s of %s",
			labelW+1, "", cli.FormatMoney(bg.Spent), cli.FormatMoney(bg.Limit))
		remaining := bg.Limit - bg.Spent
		if remaining < 0 {
			b.WriteString(numStyle.Render(detail))
			b.WriteString(overStyle.Render(fmt.Sprintf("  over by %s", cli.FormatMoney(-remaining))))
		} else {
			b.WriteString(numStyle.Render(fmt.Sprintf("%s  %s left", detail, cli.FormatMoney(remaining))))
		}
		b.WriteString("\n\n")
	}

	return components.ContentCard("Budgets", strings.TrimRight(b.String(), "\n")+"\n", cw)
}
