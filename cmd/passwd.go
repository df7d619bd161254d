package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Password reset flow",
}

var passwdRequestCmd = &cobra.Command{
	Use:   "request <email>",
	Short: "Send a password reset link to the given email",
	Args:  cobra.ExactArgs(1),
	RunE:  runPasswdRequest,
}

var passwdConfirmCmd = &cobra.Command{
	Use:   "confirm <uid> <token>",
	Short: "Complete a reset using the uid and token from the email",
	Args:  cobra.ExactArgs(2),
	RunE:  runPasswdConfirm,
}

func init() {
	passwdCmd.AddCommand(passwdRequestCmd)
	passwdCmd.AddCommand(passwdConfirmCmd)
	rootCmd.AddCommand(passwdCmd)
}

func runPasswdRequest(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}

	if err := client.RequestPasswordReset(context.Background(), args[0]); err != nil {
		return err
	}

	fmt.Println("  Reset link sent. Check your inbox, then run `moneytrack passwd confirm`.")
	return nil
}

func runPasswdConfirm(_ *cobra.Command, args []string) error {
	cfg := loadConfig()
	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}

	password, err := promptLine("New password")
	if err != nil {
		return err
	}
	confirm, err := promptLine("Confirm password")
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	if err := client.ConfirmPasswordReset(context.Background(), args[0], args[1], password); err != nil {
		return err
	}

	fmt.Println("  Password reset. Run `moneytrack login` with your new password.")
	return nil
}
