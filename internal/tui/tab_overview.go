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

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	l := a.ledger
	var b strings.Builder

	// Row 1: Metric cards
	income := l.TotalIncome()
	expenses := l.TotalExpenses()
	net := income - expenses

	netNote := "net " + cli.FormatMoney(net)
	if net < 0 {
		netNote = "net -" + cli.FormatMoney(-net)
	}

	cards := []struct{ Label, Value, Note string }{
		{"Balance", cli.FormatMoney(l.Balance()), ""},
		{"Income", cli.FormatMoney(income), "this period"},
		{"Expenses", cli.FormatMoney(expenses), netNote},
		{"Transactions", fmt.Sprintf("%d", len(l.Transactions())), "this period"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Budget utilization
	budgets := l.Budgets()
	if len(budgets) > 0 {
		innerW := components.CardInnerWidth(cw)
		labelW := 14
		barW := innerW - labelW - 8
		if barW < 10 {
			barW = 10
		}

		var body strings.Builder
		for _, bg := range budgets {
			pct := 0.0
			if bg.Limit > 0 {
				pct = bg.Spent / bg.Limit
			}
			body.WriteString(components.BudgetBar(bg.Category, pct, labelW, barW))
			body.WriteString("\n")
		}
		b.WriteString(components.ContentCard("Budgets", body.String(), cw))
		b.WriteString("\n")
	}

	// Row 3: Most recent transactions
	recent := finance.SortByDateDesc(l.Transactions())
	limit := 5
	if len(recent) < limit {
		limit = len(recent)
	}

	if limit > 0 {
		dateStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
		descStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

		innerW := components.CardInnerWidth(cw)
		descW := innerW - 12 - 14
		if descW < 10 {
			descW = 10
		}

		var body strings.Builder
		for _, tx := range recent[:limit] {
			amount := cli.FormatSignedMoney(tx.Amount, tx.Type == finance.TypeIncome)
			amtStyle := lipgloss.NewStyle().Foreground(t.Red)
			if tx.Type == finance.TypeIncome {
				amtStyle = lipgloss.NewStyle().Foreground(t.Green)
			}
			fmt.Fprintf(&body, "%s %s %s\n",
				dateStyle.Render(fmt.Sprintf("%-11s", cli.FormatDate(tx.Date))),
				descStyle.Render(fmt.Sprintf("%-*s", descW, truncStr(tx.Description, descW))),
				amtStyle.Render(fmt.Sprintf("%13s", amount)))
		}
		b.WriteString(components.ContentCard("Recent", body.String(), cw))
	}

	return b.String()
}
