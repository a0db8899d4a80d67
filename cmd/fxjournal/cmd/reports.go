package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fxtae/journal/ledger"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the current and starting balance",
	Args:  cobra.NoArgs,
	RunE:  runBalance,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show combined deposit/withdrawal history, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var equityCmd = &cobra.Command{
	Use:   "equity",
	Short: "Show the equity curve",
	Long: `Show the running balance over time: one point per active day for the
trailing month, or one point per active calendar month for the full history.

Examples:
  fxjournal equity --period 1m
  fxjournal equity --period 12m`,
	Args: cobra.NoArgs,
	RunE: runEquity,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show trade statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show the trading-day calendar for a month",
	Args:  cobra.NoArgs,
	RunE:  runCalendar,
}

var (
	equityPeriod  string
	calendarMonth string
)

func init() {
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(equityCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(calendarCmd)

	equityCmd.Flags().StringVarP(&equityPeriod, "period", "p", "1m", `series period: "1m" or "12m"`)
	calendarCmd.Flags().StringVarP(&calendarMonth, "month", "m", "", "month to show (YYYY-MM, default current)")
}

func runBalance(cmd *cobra.Command, args []string) error {
	l, cfg, closeStore, err := openLedger()
	if err != nil {
		return err
	}
	defer closeStore()

	b := l.Balance()
	growth, pct := b.Growth()
	fmt.Printf("current balance:  %s\n", money(cfg.Account.Currency, b.Current))
	fmt.Printf("starting balance: %s\n", money(cfg.Account.Currency, b.Starting))
	fmt.Printf("growth:           %s (%+.1f%%)\n", moneySigned(cfg.Account.Currency, growth), pct)
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	l, cfg, closeStore, err := openLedger()
	if err != nil {
		return err
	}
	defer closeStore()

	empty := true
	for entry := range l.CombinedHistory() {
		empty = false
		clock := entry.Time
		if clock == "" {
			clock = "00:00"
		}
		fmt.Printf("%s %s  %-10s %-15s %12s  balance %s  %s\n",
			entry.Date, clock, entry.Kind, entry.Broker,
			moneySigned(cfg.Account.Currency, entry.Amount),
			money(cfg.Account.Currency, entry.BalanceAfter),
			entry.Notes)
	}
	if empty {
		fmt.Println("no deposit or withdrawal history")
	}
	return nil
}

func runEquity(cmd *cobra.Command, args []string) error {
	l, cfg, closeStore, err := openLedger()
	if err != nil {
		return err
	}
	defer closeStore()

	points, err := l.EquitySeries(ledger.Period(equityPeriod), time.Now())
	if err != nil {
		return err
	}
	for _, p := range points {
		fmt.Printf("%-8s %s\n", p.Label, money(cfg.Account.Currency, p.Balance))
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	l, cfg, closeStore, err := openLedger()
	if err != nil {
		return err
	}
	defer closeStore()

	s := l.Stats(time.Now().Format(ledger.DateLayout))
	cur := cfg.Account.Currency
	fmt.Printf("today:      %s over %d trades\n", moneySigned(cur, s.TodayPnL), s.TodayTrades)
	fmt.Printf("this week:  %s over %d trades\n", moneySigned(cur, s.WeekPnL), s.WeekTrades)
	fmt.Printf("this month: %s over %d trades\n", moneySigned(cur, s.MonthPnL), s.MonthTrades)
	fmt.Printf("wins/losses: %d/%d (win rate %.1f%%, profit factor %.2f)\n",
		s.Wins, s.Losses, s.WinRate, s.ProfitFactor)
	fmt.Printf("growth: %s (%+.1f%%)\n", moneySigned(cur, s.Growth), s.GrowthPct)
	return nil
}

func runCalendar(cmd *cobra.Command, args []string) error {
	l, cfg, closeStore, err := openLedger()
	if err != nil {
		return err
	}
	defer closeStore()

	now := time.Now()
	year, month := now.Year(), now.Month()
	if calendarMonth != "" {
		t, err := time.Parse("2006-01", calendarMonth)
		if err != nil {
			return fmt.Errorf("month must be YYYY-MM: %w", err)
		}
		year, month = t.Year(), t.Month()
	}

	fmt.Printf("%s %d\n", month, year)
	for _, day := range l.Calendar(year, month) {
		if day.Trades == 0 {
			continue
		}
		fmt.Printf("%s  %2d trade(s)  %s\n", day.Date, day.Trades,
			moneySigned(cfg.Account.Currency, day.PnL))
	}
	return nil
}
