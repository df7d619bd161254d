package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"moneytrack/internal/api"
	"moneytrack/internal/config"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session tokens",
	RunE:  runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}

	username, err := promptLine("Email")
	if err != nil {
		return err
	}
	password, err := promptLine("Password")
	if err != nil {
		return err
	}

	if _, err := client.Login(context.Background(), username, password); err != nil {
		var se *api.ServerError
		if errors.As(err, &se) {
			return fmt.Errorf("login rejected: %s", se.Message)
		}
		return err
	}

	fmt.Printf("  Logged in. Tokens stored in %s\n", config.ConfigDir())
	return nil
}

func promptLine(label string) (string, error) {
	fmt.Printf("  %s: ", label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
