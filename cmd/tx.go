package cmd

import (
	"context"
	"fmt"
	"time"

	"moneytrack/internal/cli"
	"moneytrack/internal/finance"

	"github.com/spf13/cobra"
)

var (
	flagTxType     string
	flagTxCategory string
	flagTxFrom     string
	flagTxTo       string
	flagTxPage     int

	flagAddAmount   float64
	flagAddType     string
	flagAddCategory string
	flagAddDate     string
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Record and list transactions",
}

var txAddCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Record a new transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxAdd,
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List this period's transactions",
	RunE:  runTxList,
}

func init() {
	txAddCmd.Flags().Float64VarP(&flagAddAmount, "amount", "a", 0, "Amount (non-negative)")
	txAddCmd.Flags().StringVarP(&flagAddType, "type", "t", finance.TypeExpense, "income or expense")
	txAddCmd.Flags().StringVarP(&flagAddCategory, "category", "c", "", "Category (empty becomes None)")
	txAddCmd.Flags().StringVarP(&flagAddDate, "date", "d", "", "ISO date, defaults to today")
	_ = txAddCmd.MarkFlagRequired("amount")

	txListCmd.Flags().StringVarP(&flagTxType, "type", "t", "", "Filter: income or expense")
	txListCmd.Flags().StringVarP(&flagTxCategory, "category", "c", "", "Filter: category")
	txListCmd.Flags().StringVar(&flagTxFrom, "from", "", "Filter: earliest ISO date")
	txListCmd.Flags().StringVar(&flagTxTo, "to", "", "Filter: latest ISO date")
	txListCmd.Flags().IntVarP(&flagTxPage, "page", "p", 1, "Page number")

	txCmd.AddCommand(txAddCmd)
	txCmd.AddCommand(txListCmd)
	rootCmd.AddCommand(txCmd)
}

func runTxAdd(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	client, store, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := requireSession(store); err != nil {
		return err
	}

	date := flagAddDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	tx := finance.NewTransaction(args[0], flagAddAmount, flagAddType, flagAddCategory, date)
	if err := client.CreateTransaction(context.Background(), tx); err != nil {
		return err
	}

	sign := "-"
	if tx.Type == finance.TypeIncome {
		sign = "+"
	}
	fmt.Printf("  Recorded %s%s  %s (%s, %s)\n",
		sign, cli.FormatMoney(tx.Amount), tx.Description, tx.Category, cli.FormatDate(tx.Date))
	return nil
}

func runTxList(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	client, store, err := newClient(cfg)
	if err != nil {
		return err
	}

	data, _, err := fetchData(context.Background(), client, store)
	if err != nil {
		return err
	}

	txs := finance.SortByDateDesc(data.CurrentTransactions)
	txs = finance.FilterTransactions(txs, finance.Filter{
		Type:     flagTxType,
		Category: flagTxCategory,
		DateFrom: flagTxFrom,
		DateTo:   flagTxTo,
	})

	page, totalPages := finance.Paginate(txs, flagTxPage, cfg.General.PageSize)
	if len(page) == 0 {
		fmt.Println("\n  No transactions match.")
		return nil
	}

	rows := make([][]string, 0, len(page))
	for _, tx := range page {
		amount := cli.FormatSignedMoney(tx.Amount, tx.Type == finance.TypeIncome)
		if tx.Type == finance.TypeIncome {
			amount = cli.Green(amount)
		} else {
			amount = cli.Red(amount)
		}
		category := tx.Category
		if category == finance.NoCategory {
			category = ""
		}
		rows = append(rows, []string{cli.FormatDate(tx.Date), tx.Description, category, amount})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Transactions  (page %d/%d)", flagTxPage, totalPages),
		Headers: []string{"Date", "Description", "Category", "Amount"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
