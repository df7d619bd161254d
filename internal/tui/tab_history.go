package tui

import (
	"fmt"
	"strings"

	"moneytrack/internal/cli"
	"moneytrack/internal/finance"
	"moneytrack/internal/tui/components"
	"moneytrack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderHistoryTab(cw, contentH int) string {
	t := theme.Active

	if len(a.periods) == 0 {
		dim := lipgloss.NewStyle().Foreground(t.TextDim)
		return components.ContentCard("History",
			dim.Render("No archived periods yet. `moneytrack reset` closes out the current one."), cw)
	}

	// Left: period list with cursor. Right: detail of the selected period.
	halves := components.LayoutRow(cw, 2)

	selStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var list strings.Builder
	for i, p := range a.periods {
		label := fmt.Sprintf("%s — %s", cli.FormatDate(p.StartDate), cli.FormatDate(p.EndDate))
		if i == a.histCursor {
			list.WriteString(selStyle.Render("> " + label))
		} else {
			list.WriteString(rowStyle.Render("  " + label))
		}
		list.WriteString("\n")
	}
	list.WriteString("\n")
	list.WriteString(dimStyle.Render("j/k to select"))

	listCard := components.ContentCard("Periods", list.String(), halves[0])
	detailCard := a.renderPeriodDetail(a.periods[a.histCursor], halves[1])

	return components.CardRow([]string{listCard, detailCard})
}

func (a App) renderPeriodDetail(p finance.Period, outerW int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	greenStyle := lipgloss.NewStyle().Foreground(t.Green)
	redStyle := lipgloss.NewStyle().Foreground(t.Red)

	net := p.Income - p.Expenses
	netStyle := greenStyle
	if net < 0 {
		netStyle = redStyle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Income:  "), greenStyle.Render(cli.FormatMoney(p.Income)))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Expenses:"), redStyle.Render(cli.FormatMoney(p.Expenses)))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Net:     "), netStyle.Render(cli.FormatSignedMoney(absF(net), net >= 0)))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Entries: "), valStyle.Render(fmt.Sprintf("%d", len(p.Transactions))))

	if len(p.Budgets) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Budgets"))
		b.WriteString("\n")
		for _, bg := range p.Budgets {
			spentStyle := valStyle
			if bg.Limit > 0 && bg.Spent > bg.Limit {
				spentStyle = redStyle
			}
			fmt.Fprintf(&b, "  %s %s / %s\n",
				valStyle.Render(fmt.Sprintf("%-14s", truncStr(bg.Category, 14))),
				spentStyle.Render(cli.FormatMoney(bg.Spent)),
				labelStyle.Render(cli.FormatMoney(bg.Limit)))
		}
	}

	title := fmt.Sprintf("%s — %s", cli.FormatDate(p.StartDate), cli.FormatDate(p.EndDate))
	return components.ContentCard(title, b.String(), outerW)
}

func absF(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
