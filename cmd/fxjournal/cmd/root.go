package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fxtae/journal/auth"
	"github.com/fxtae/journal/config"
	"github.com/fxtae/journal/ledger"
	"github.com/fxtae/journal/store"
)

var rootCmd = &cobra.Command{
	Use:   "fxjournal",
	Short: "A single-user FX trading journal with local persistence",
	Long: `fxjournal is a personal trading journal kept entirely on your machine.

It provides tools for:
  - Logging trades with their realized P/L
  - Recording deposits and withdrawals with balance snapshots
  - Tracking the account balance derived from the full event history
  - Charting the equity curve over the trailing month or by calendar month
  - Win-rate and period statistics, trading calendar, CSV export`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var (
	cfgFile   string
	assumeYes bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fxjournal.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation prompts")
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".fxjournal.yaml")
		if _, err := os.Stat(path); err == nil {
			return config.LoadFromFile(path)
		}
	}
	return config.Default(), nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if l, err := zerolog.ParseLevel(cfg.Log.Level); err == nil && cfg.Log.Level != "" {
		level = l
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// backend is whatever store variant the config selects; both implement the
// ledger and auth store contracts.
type backend interface {
	ledger.Store
	auth.Store
}

func openBackend(cfg *config.Config) (backend, func() error, error) {
	switch cfg.Store.Type {
	case "sqlite":
		s, err := store.NewSQLite(cfg.Store.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, s.Close, nil
	default:
		s, err := store.NewJSON(cfg.Store.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("open json store: %w", err)
		}
		return s, func() error { return nil }, nil
	}
}

// openLedger wires config, store, and logger together for a subcommand.
func openLedger() (*ledger.Ledger, *config.Config, func() error, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	st, closeStore, err := openBackend(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	l := ledger.Open(st,
		ledger.WithLogger(newLogger(cfg)),
		ledger.WithStartingBalance(cfg.Account.StartingBalance),
	)
	return l, cfg, closeStore, nil
}

// confirm asks before destructive actions unless --yes was given.
func confirm(prompt string) bool {
	if assumeYes {
		return true
	}
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func money(currency string, amount float64) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func moneySigned(currency string, amount float64) string {
	return fmt.Sprintf("%+.2f %s", amount, currency)
}
