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

func (a App) renderTransactionsTab(cw, contentH int) string {
	t := theme.Active
	var b strings.Builder

	if a.addErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(t.Red)
		b.WriteString(errStyle.Render(" Last add failed: " + truncStr(a.addErr.Error(), cw-18)))
		b.WriteString("\n")
	}

	sorted := finance.SortByDateDesc(a.ledger.Transactions())
	page, totalPages := finance.Paginate(sorted, a.txPage, a.opts.PageSize)

	if len(sorted) == 0 {
		dim := lipgloss.NewStyle().Foreground(t.TextDim)
		b.WriteString(components.ContentCard("Transactions",
			dim.Render("No transactions this period. Press [a] to add one."), cw))
		return b.String()
	}

	innerW := components.CardInnerWidth(cw)
	// date(11) + status(2) + amount(13) + category(14) + separators
	descW := innerW - 11 - 2 - 13 - 14 - 4
	if descW < 10 {
		descW = 10
	}

	dateStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	descStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	catStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	pendStyle := lipgloss.NewStyle().Foreground(t.Yellow)
	failStyle := lipgloss.NewStyle().Foreground(t.Red)

	var body strings.Builder
	for _, tx := range page {
		marker := "  "
		switch tx.Status {
		case finance.StatusPending:
			marker = pendStyle.Render("~ ")
		case finance.StatusFailed:
			marker = failStyle.Render("! ")
		}

		amtStyle := lipgloss.NewStyle().Foreground(t.Red)
		if tx.Type == finance.TypeIncome {
			amtStyle = lipgloss.NewStyle().Foreground(t.Green)
		}

		category := tx.Category
		if category == finance.NoCategory {
			category = ""
		}

		fmt.Fprintf(&body, "%s%s %s %s %s\n",
			marker,
			dateStyle.Render(fmt.Sprintf("%-11s", cli.FormatDate(tx.Date))),
			descStyle.Render(fmt.Sprintf("%-*s", descW, truncStr(tx.Description, descW))),
			catStyle.Render(fmt.Sprintf("%-14s", truncStr(category, 14))),
			amtStyle.Render(fmt.Sprintf("%12s",
				cli.FormatSignedMoney(tx.Amount, tx.Type == finance.TypeIncome))))
	}

	title := fmt.Sprintf("Transactions (page %d/%d)", a.txPage, totalPages)
	b.WriteString(components.ContentCard(title, body.String(), cw))

	if totalPages > 1 {
		dim := lipgloss.NewStyle().Foreground(t.TextDim)
		b.WriteString("\n")
		b.WriteString(dim.Render(" [n]ext page  [p]revious page"))
	}

	return b.String()
}
