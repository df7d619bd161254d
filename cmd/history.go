package cmd

import (
	"context"
	"fmt"

	"moneytrack/internal/cli"
	"moneytrack/internal/finance"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse archived monthly periods",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	client, store, err := newClient(cfg)
	if err != nil {
		return err
	}

	data, _, err := fetchData(context.Background(), client, store)
	if err != nil {
		return err
	}

	periods := finance.SummarizePeriods(data.PreviousTransactions)
	if len(periods) == 0 {
		fmt.Println("\n  No archived periods yet. `moneytrack reset` closes out the current one.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("HISTORY"))
	fmt.Println()

	for _, p := range periods {
		net := p.Income - p.Expenses
		netStr := cli.Green(cli.FormatMoney(net))
		if net < 0 {
			netStr = cli.Red(cli.FormatMoney(net))
		}

		rows := [][]string{
			{"Income", cli.Green(cli.FormatMoney(p.Income))},
			{"Expenses", cli.Red(cli.FormatMoney(p.Expenses))},
			{"Net", netStr},
			{"Transactions", fmt.Sprintf("%d", len(p.Transactions))},
		}
		for _, b := range p.Budgets {
			rows = append(rows, []string{
				"  " + b.Category,
				fmt.Sprintf("%s / %s", cli.FormatMoney(b.Spent), cli.FormatMoney(b.Limit)),
			})
		}

		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("%s — %s", cli.FormatDate(p.StartDate), cli.FormatDate(p.EndDate)),
			Headers: []string{"", ""},
			Rows:    rows,
		}))
		fmt.Println()
	}
	return nil
}
