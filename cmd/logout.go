package cmd

import (
	"fmt"

	"moneytrack/internal/auth"
	"moneytrack/internal/config"
	"moneytrack/internal/snapshot"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session tokens",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(_ *cobra.Command, _ []string) error {
	store, err := auth.NewStore(config.TokensPath())
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return err
	}

	// Cached financial data belongs to the session; drop it too.
	if cache, err := snapshot.Open(config.SnapshotPath()); err == nil {
		if err := cache.Clear(); err != nil {
			logrus.WithError(err).Debug("clearing snapshot failed")
		}
		_ = cache.Close()
	}

	fmt.Println("  Logged out.")
	return nil
}
