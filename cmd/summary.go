package cmd

import (
	"context"
	"fmt"

	"moneytrack/internal/cli"
	"moneytrack/internal/finance"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Dashboard summary: balance, totals, and budgets",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	client, store, err := newClient(cfg)
	if err != nil {
		return err
	}

	data, source, err := fetchData(context.Background(), client, store)
	if err != nil {
		return err
	}

	ledger := finance.NewLedger(data)

	fmt.Println()
	fmt.Println(cli.RenderTitle("MONEYTRACK"))
	fmt.Println()

	rows := [][]string{
		{"Balance", cli.FormatMoney(ledger.Balance())},
		{"Income (period)", cli.Green(cli.FormatMoney(ledger.TotalIncome()))},
		{"Expenses (period)", cli.Red(cli.FormatMoney(ledger.TotalExpenses()))},
		{"Transactions", fmt.Sprintf("%d", len(ledger.Transactions()))},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Overview",
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	fmt.Println()

	budgets := ledger.Budgets()
	if len(budgets) > 0 {
		bRows := make([][]string, 0, len(budgets))
		for _, b := range budgets {
			bRows = append(bRows, []string{
				b.Category,
				cli.FormatMoney(b.Spent),
				cli.FormatMoney(b.Limit),
				cli.RenderBudgetBar(b.Spent, b.Limit, 20),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Budgets",
			Headers: []string{"Category", "Spent", "Limit", ""},
			Rows:    bRows,
		}))
		fmt.Println()
	}

	if source != "live" {
		fmt.Printf("  %s\n\n", cli.Warn("Data source: "+source))
	}
	return nil
}
