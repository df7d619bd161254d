package cmd

import (
	"fmt"
	"time"

	"moneytrack/internal/tui"
	"moneytrack/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)

	client, store, err := newClient(cfg)
	if err != nil {
		return err
	}

	app := tui.NewApp(client, store, tui.Options{
		PageSize: cfg.General.PageSize,
		Timeout:  time.Duration(cfg.API.RequestTimeoutSecs) * time.Second,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
