// Package cmd implements the moneytrack command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"moneytrack/internal/api"
	"moneytrack/internal/auth"
	"moneytrack/internal/config"
	"moneytrack/internal/finance"
	"moneytrack/internal/snapshot"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagBaseURL  string
	flagQuiet    bool
	flagVerbose  bool
	flagOffline  bool
	flagPageSize int
)

var rootCmd = &cobra.Command{
	Use:   "moneytrack",
	Short: "Personal finance tracker CLI",
	Long:  "Track balances, transactions, and category budgets against your MoneyTrackr account.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, api.ErrUnauthorized) || errors.Is(err, auth.ErrSessionInvalid) {
			fmt.Fprintln(os.Stderr, "  Session expired. Run `moneytrack login` to sign in again.")
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagOffline, "offline", false, "Render from the cached snapshot, no network")
	rootCmd.PersistentFlags().IntVar(&flagPageSize, "page-size", 0, "Transactions per page (overrides config)")

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		logrus.SetLevel(logrus.WarnLevel)
		if flagVerbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	}
}

// loadConfig merges the config file, env overrides, and CLI flags.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Warn("config unreadable, using defaults")
	}
	if flagBaseURL != "" {
		cfg.API.BaseURL = flagBaseURL
	}
	if flagPageSize > 0 {
		cfg.General.PageSize = flagPageSize
	}
	return cfg
}

// newClient builds the API client and its credential store.
func newClient(cfg config.Config) (*api.Client, *auth.Store, error) {
	store, err := auth.NewStore(config.TokensPath())
	if err != nil {
		return nil, nil, err
	}
	client := api.NewClient(cfg.API.BaseURL, store,
		api.WithTimeout(time.Duration(cfg.API.RequestTimeoutSecs)*time.Second),
		api.WithLogger(logrus.StandardLogger()),
	)
	return client, store, nil
}

// requireSession fails fast when no tokens are stored at all, so commands
// that need auth give a clear message instead of a 401 round trip.
func requireSession(store *auth.Store) error {
	if _, ok := store.Get(); !ok {
		return errors.New("not logged in — run `moneytrack login` first")
	}
	return nil
}

// fetchData loads financial data live (caching the snapshot) or, with
// --offline or on network failure, from the snapshot cache.
func fetchData(ctx context.Context, client *api.Client, store *auth.Store) (*finance.FinancialData, string, error) {
	cache, cacheErr := snapshot.Open(config.SnapshotPath())
	if cacheErr != nil {
		logrus.WithError(cacheErr).Debug("snapshot cache unavailable")
	} else {
		defer cache.Close()
	}

	if flagOffline {
		if cacheErr != nil {
			return nil, "", fmt.Errorf("offline requested but cache unusable: %w", cacheErr)
		}
		data, _, at, err := cache.Load()
		if err != nil {
			return nil, "", err
		}
		return data, "cached " + ageLabel(at), nil
	}

	if err := requireSession(store); err != nil {
		return nil, "", err
	}

	data, err := client.FinancialData(ctx)
	if err != nil {
		// Auth failures are final; transport failures fall back to cache.
		if errors.Is(err, api.ErrUnauthorized) || cacheErr != nil {
			return nil, "", err
		}
		if data2, _, at, loadErr := cache.Load(); loadErr == nil {
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Server unreachable, showing cached data (%s)\n", ageLabel(at))
			}
			return data2, "cached " + ageLabel(at), nil
		}
		return nil, "", err
	}

	if cacheErr == nil {
		if err := cache.Save("", data); err != nil {
			logrus.WithError(err).Debug("saving snapshot failed")
		}
	}
	return data, "live", nil
}

func ageLabel(at time.Time) string {
	if at.IsZero() {
		return "age unknown"
	}
	return at.Local().Format("Jan 2 15:04")
}
