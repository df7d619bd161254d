package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var flagResetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Close out the current period and start a new one",
	Long: "Archives the current period's transactions and zeroes budget spend.\n" +
		"This cannot be undone.",
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	client, store, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := requireSession(store); err != nil {
		return err
	}

	if !flagResetYes {
		answer, err := promptLine("Archive the current period and reset spend? [y/N]")
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			fmt.Println("  Aborted.")
			return nil
		}
	}

	if err := client.ResetMonth(context.Background()); err != nil {
		return err
	}

	fmt.Println("  Period archived. Budgets and transactions start fresh.")
	return nil
}
