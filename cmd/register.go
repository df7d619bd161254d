package cmd

import (
	"context"
	"errors"
	"fmt"

	"moneytrack/internal/api"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE:  runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)
}

func runRegister(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}

	email, err := promptLine("Email")
	if err != nil {
		return err
	}
	password, err := promptLine("Password")
	if err != nil {
		return err
	}
	confirm, err := promptLine("Confirm password")
	if err != nil {
		return err
	}

	// Mismatches are caught locally; nothing is sent to the server.
	if password != confirm {
		return errors.New("passwords do not match")
	}

	if _, err := client.Register(context.Background(), email, password); err != nil {
		var se *api.ServerError
		if errors.As(err, &se) {
			return fmt.Errorf("signup rejected: %s", se.Message)
		}
		return err
	}

	fmt.Println("  Account created and logged in.")
	return nil
}
