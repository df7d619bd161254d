package cmd

import (
	"fmt"
	"strings"

	"moneytrack/internal/config"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to moneytrack!")
	fmt.Println()

	// 1. Server URL
	fmt.Println("  1. API server URL")
	fmt.Printf("     Current: %s\n", cfg.API.BaseURL)
	url, err := promptLine(">")
	if err != nil {
		return err
	}
	if url != "" {
		cfg.API.BaseURL = strings.TrimRight(url, "/")
	}
	fmt.Println()

	// 2. Page size
	fmt.Println("  2. Transactions per page")
	fmt.Println("     (1) 10 [default]")
	fmt.Println("     (2) 25")
	fmt.Println("     (3) 50")
	choice, err := promptLine(">")
	if err != nil {
		return err
	}
	switch choice {
	case "2":
		cfg.General.PageSize = 25
	case "3":
		cfg.General.PageSize = 50
	default:
		cfg.General.PageSize = 10
	}
	fmt.Println()

	// 3. Theme
	fmt.Println("  3. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Terminal (ANSI 16)")
	themeChoice, err := promptLine(">")
	if err != nil {
		return err
	}
	switch themeChoice {
	case "2":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `moneytrack setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
