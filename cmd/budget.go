package cmd

import (
	"context"
	"fmt"
	"strconv"

	"moneytrack/internal/cli"

	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage category budgets",
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <category> <limit>",
	Short: "Create or update a category's spending limit",
	Args:  cobra.ExactArgs(2),
	RunE:  runBudgetSet,
}

var budgetRemoveCmd = &cobra.Command{
	Use:   "remove <category>",
	Short: "Delete a category's budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetRemove,
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd)
	budgetCmd.AddCommand(budgetRemoveCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetSet(_ *cobra.Command, args []string) error {
	limit, err := strconv.ParseFloat(args[1], 64)
	if err != nil || limit < 0 {
		return fmt.Errorf("limit must be a non-negative number, got %q", args[1])
	}

	cfg := loadConfig()
	client, store, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := requireSession(store); err != nil {
		return err
	}

	if err := client.ChangeBudget(context.Background(), args[0], limit); err != nil {
		return err
	}

	fmt.Printf("  Budget for %s set to %s\n", args[0], cli.FormatMoney(limit))
	return nil
}

func runBudgetRemove(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	client, store, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := requireSession(store); err != nil {
		return err
	}

	if err := client.RemoveBudget(context.Background(), args[0]); err != nil {
		return err
	}

	fmt.Printf("  Budget for %s removed.\n", args[0])
	return nil
}
