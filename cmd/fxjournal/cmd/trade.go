package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fxtae/journal/ledger"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Log and inspect trades",
	Long: `Log closed trades with their realized P/L and list the trade history.

Subcommands:
  add    - Log a trade
  list   - List all trades, most recent first
  delete - Delete a trade by ID and reverse its balance effect

Examples:
  fxjournal trade add --pair EUR_USD --pnl -200 --time 14:30
  fxjournal trade list
  fxjournal trade delete 01J9ZK3V...`,
}

var tradeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a closed trade",
	Args:  cobra.NoArgs,
	RunE:  runTradeAdd,
}

var tradeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all trades, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runTradeList,
}

var tradeDeleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Delete a trade and reverse its balance effect",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeDelete,
}

var tradeIn ledger.TradeInput

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd)
	tradeCmd.AddCommand(tradeListCmd)
	tradeCmd.AddCommand(tradeDeleteCmd)

	flags := tradeAddCmd.Flags()
	flags.StringVar(&tradeIn.Date, "date", time.Now().Format(ledger.DateLayout), "trade date (YYYY-MM-DD)")
	flags.StringVar(&tradeIn.Time, "time", "", "trade time (HH:MM)")
	flags.StringVar(&tradeIn.Pair, "pair", "", "currency pair, e.g. EUR_USD")
	flags.StringVar(&tradeIn.Strategy, "strategy", "", "strategy name")
	flags.IntVar(&tradeIn.TradeNumber, "number", 0, "trade number for the day")
	flags.Float64Var(&tradeIn.PnL, "pnl", 0, "realized P/L, negative for a loss")
	flags.StringVar(&tradeIn.Notes, "notes", "", "free-form notes")
	tradeAddCmd.MarkFlagRequired("pair")
	tradeAddCmd.MarkFlagRequired("pnl")
	tradeAddCmd.MarkFlagRequired("time")
}

func runTradeAdd(cmd *cobra.Command, args []string) error {
	l, cfg, closeStore, err := openLedger()
	if err != nil {
		return err
	}
	defer closeStore()

	trade, err := l.RecordTrade(tradeIn)
	if err != nil {
		return err
	}

	fmt.Printf("trade %s recorded: %s %s\n", trade.ID, trade.Pair, moneySigned(cfg.Account.Currency, trade.PnL))
	fmt.Printf("balance: %s\n", money(cfg.Account.Currency, l.Balance().Current))
	return nil
}

func runTradeList(cmd *cobra.Command, args []string) error {
	l, cfg, closeStore, err := openLedger()
	if err != nil {
		return err
	}
	defer closeStore()

	trades := l.Trades()
	if len(trades) == 0 {
		fmt.Println("no trades recorded")
		return nil
	}
	for _, t := range trades {
		fmt.Printf("%s  %s %s  %-10s %-12s %12s  %s\n",
			t.ID, t.Date, t.Time, t.Pair, t.Strategy,
			moneySigned(cfg.Account.Currency, t.PnL), t.Notes)
	}
	return nil
}

func runTradeDelete(cmd *cobra.Command, args []string) error {
	l, cfg, closeStore, err := openLedger()
	if err != nil {
		return err
	}
	defer closeStore()

	if !confirm("delete this trade?") {
		return errors.New("aborted")
	}

	removed, err := l.DeleteEvent(args[0], ledger.KindTrade)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Printf("trade %s not found, nothing deleted\n", args[0])
		return nil
	}
	fmt.Printf("trade deleted, balance: %s\n", money(cfg.Account.Currency, l.Balance().Current))
	return nil
}
