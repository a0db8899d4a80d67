package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/fxtae/journal/ledger"
)

var depositCmd = &cobra.Command{
	Use:   "deposit <amount>",
	Short: "Record a capital deposit",
	Long: `Record a deposit. Deposits are capital contributions: they raise the
starting balance as well as the current balance.

Example:
  fxjournal deposit 500 --broker IC-Markets --time 09:00`,
	Args: cobra.ExactArgs(1),
	RunE: runDeposit,
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw <amount>",
	Short: "Record a withdrawal",
	Long: `Record a withdrawal. Withdrawals reduce the current balance only and
are rejected when they exceed it; the starting balance never goes down.

Example:
  fxjournal withdraw 1000 --broker IC-Markets --time 17:00`,
	Args: cobra.ExactArgs(1),
	RunE: runWithdraw,
}

var capitalDeleteCmd = &cobra.Command{
	Use:   "delete <deposit|withdrawal> <event-id>",
	Short: "Delete a deposit or withdrawal and reverse its balance effect",
	Args:  cobra.ExactArgs(2),
	RunE:  runCapitalDelete,
}

var capitalIn ledger.CapitalInput

func init() {
	rootCmd.AddCommand(depositCmd)
	rootCmd.AddCommand(withdrawCmd)
	rootCmd.AddCommand(capitalDeleteCmd)

	for _, c := range []*cobra.Command{depositCmd, withdrawCmd} {
		c.Flags().StringVar(&capitalIn.Date, "date", time.Now().Format(ledger.DateLayout), "date (YYYY-MM-DD)")
		c.Flags().StringVar(&capitalIn.Time, "time", "", "time (HH:MM)")
		c.Flags().StringVar(&capitalIn.Broker, "broker", "", "counterparty broker")
		c.Flags().StringVar(&capitalIn.Notes, "notes", "", "free-form notes")
		c.MarkFlagRequired("time")
		c.MarkFlagRequired("broker")
	}
}

func parseAmount(arg string) (float64, error) {
	amount, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q is not a number", arg)
	}
	return amount, nil
}

func runDeposit(cmd *cobra.Command, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}

	l, cfg, closeStore, err := openLedger()
	if err != nil {
		return err
	}
	defer closeStore()

	in := capitalIn
	in.Amount = amount
	ev, err := l.RecordDeposit(in)
	if err != nil {
		return err
	}

	fmt.Printf("deposit %s recorded: %s\n", ev.ID, money(cfg.Account.Currency, ev.Amount))
	fmt.Printf("balance: %s (starting balance now %s)\n",
		money(cfg.Account.Currency, l.Balance().Current),
		money(cfg.Account.Currency, l.Balance().Starting))
	return nil
}

func runWithdraw(cmd *cobra.Command, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}

	l, cfg, closeStore, err := openLedger()
	if err != nil {
		return err
	}
	defer closeStore()

	in := capitalIn
	in.Amount = amount
	ev, err := l.RecordWithdrawal(in)
	if err != nil {
		return err
	}

	fmt.Printf("withdrawal %s recorded: %s\n", ev.ID, money(cfg.Account.Currency, -ev.Amount))
	fmt.Printf("balance: %s\n", money(cfg.Account.Currency, l.Balance().Current))
	return nil
}

func runCapitalDelete(cmd *cobra.Command, args []string) error {
	var kind ledger.Kind
	switch args[0] {
	case "deposit":
		kind = ledger.KindDeposit
	case "withdrawal":
		kind = ledger.KindWithdrawal
	default:
		return fmt.Errorf("kind must be 'deposit' or 'withdrawal', got %q", args[0])
	}

	l, cfg, closeStore, err := openLedger()
	if err != nil {
		return err
	}
	defer closeStore()

	if !confirm(fmt.Sprintf("delete this %s?", kind)) {
		return errors.New("aborted")
	}

	removed, err := l.DeleteEvent(args[1], kind)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Printf("%s %s not found, nothing deleted\n", kind, args[1])
		return nil
	}
	fmt.Printf("%s deleted, balance: %s\n", kind, money(cfg.Account.Currency, l.Balance().Current))
	return nil
}
