package cmd

import (
	"fmt"
	"time"

	"moneytrack/internal/auth"
	"moneytrack/internal/config"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session status and token expiry",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	store, err := auth.NewStore(config.TokensPath())
	if err != nil {
		return err
	}

	tokens, ok := store.Get()
	if !ok {
		fmt.Println()
		fmt.Println("  Not logged in.")
		fmt.Println("  Run `moneytrack login` or `moneytrack register` to get started.")
		fmt.Println()
		return nil
	}

	fmt.Println()
	fmt.Println("  Logged in.")

	if exp, found := auth.TokenExpiry(tokens.Access); found {
		remaining := time.Until(exp)
		if remaining > 0 {
			fmt.Printf("  Access token expires in %s (at %s).\n",
				formatRemaining(remaining), exp.Local().Format("15:04:05"))
		} else {
			fmt.Println("  Access token expired — it will refresh on the next request.")
		}
	} else {
		fmt.Println("  Access token expiry unknown.")
	}

	if tokens.Refresh == "" {
		fmt.Println("  No refresh token; the session ends when the access token does.")
	}
	fmt.Println()
	return nil
}

func formatRemaining(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}
