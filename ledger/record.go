package ledger

import (
	"fmt"
	"math"
	"strings"

	"github.com/fxtae/journal/pkg/id"
)

// RecordTrade validates and appends a trade, most recent first, and adjusts
// the current balance by its P/L. On any error the ledger is unchanged.
func (l *Ledger) RecordTrade(in TradeInput) (Trade, error) {
	if err := validateTrade(in); err != nil {
		return Trade{}, err
	}

	trade := Trade{
		ID:          id.New(),
		Date:        strings.TrimSpace(in.Date),
		Time:        strings.TrimSpace(in.Time),
		TradeNumber: in.TradeNumber,
		Pair:        strings.TrimSpace(in.Pair),
		Strategy:    strings.TrimSpace(in.Strategy),
		PnL:         in.PnL,
		Notes:       in.Notes,
	}

	trades := prepend(l.trades, trade)
	balance := l.balance
	balance.Current = derive(balance.Starting, trades, l.deposits, l.withdrawals)

	if err := l.store.SaveTrades(trades); err != nil {
		return Trade{}, fmt.Errorf("persist trades: %w", err)
	}
	if err := l.store.SaveBalance(balance); err != nil {
		return Trade{}, fmt.Errorf("persist balance: %w", err)
	}

	l.trades = trades
	l.balance = balance
	l.log.Debug().Str("id", trade.ID).Float64("pnl", trade.PnL).Msg("trade recorded")
	return trade, nil
}

// RecordDeposit validates and appends a deposit. Deposits are capital
// contributions: the amount raises the starting balance as well as the
// current balance. Balance snapshots are captured at creation time.
func (l *Ledger) RecordDeposit(in CapitalInput) (CapitalEvent, error) {
	if err := validateCapital(in); err != nil {
		return CapitalEvent{}, err
	}

	ev := CapitalEvent{
		ID:            id.New(),
		Date:          strings.TrimSpace(in.Date),
		Time:          strings.TrimSpace(in.Time),
		Broker:        strings.TrimSpace(in.Broker),
		Amount:        in.Amount,
		Notes:         in.Notes,
		BalanceBefore: l.balance.Current,
		BalanceAfter:  l.balance.Current + in.Amount,
	}

	deposits := prepend(l.deposits, ev)
	balance := Balance{Starting: l.balance.Starting + in.Amount}
	balance.Current = derive(balance.Starting, l.trades, deposits, l.withdrawals)

	if err := l.store.SaveDeposits(deposits); err != nil {
		return CapitalEvent{}, fmt.Errorf("persist deposits: %w", err)
	}
	if err := l.store.SaveBalance(balance); err != nil {
		return CapitalEvent{}, fmt.Errorf("persist balance: %w", err)
	}

	l.deposits = deposits
	l.balance = balance
	l.log.Debug().Str("id", ev.ID).Float64("amount", ev.Amount).Msg("deposit recorded")
	return ev, nil
}

// RecordWithdrawal validates and appends a withdrawal, stored with a negated
// amount. It fails with ErrInsufficientFunds if the amount exceeds the
// current balance. The starting balance is never touched.
func (l *Ledger) RecordWithdrawal(in CapitalInput) (CapitalEvent, error) {
	if err := validateCapital(in); err != nil {
		return CapitalEvent{}, err
	}
	if in.Amount > l.balance.Current {
		return CapitalEvent{}, fmt.Errorf("withdraw %.2f with balance %.2f: %w",
			in.Amount, l.balance.Current, ErrInsufficientFunds)
	}

	ev := CapitalEvent{
		ID:            id.New(),
		Date:          strings.TrimSpace(in.Date),
		Time:          strings.TrimSpace(in.Time),
		Broker:        strings.TrimSpace(in.Broker),
		Amount:        -in.Amount,
		Notes:         in.Notes,
		BalanceBefore: l.balance.Current,
		BalanceAfter:  l.balance.Current - in.Amount,
	}

	withdrawals := prepend(l.withdrawals, ev)
	balance := l.balance
	balance.Current = derive(balance.Starting, l.trades, l.deposits, withdrawals)

	if err := l.store.SaveWithdrawals(withdrawals); err != nil {
		return CapitalEvent{}, fmt.Errorf("persist withdrawals: %w", err)
	}
	if err := l.store.SaveBalance(balance); err != nil {
		return CapitalEvent{}, fmt.Errorf("persist balance: %w", err)
	}

	l.withdrawals = withdrawals
	l.balance = balance
	l.log.Debug().Str("id", ev.ID).Float64("amount", ev.Amount).Msg("withdrawal recorded")
	return ev, nil
}

// DeleteEvent removes a single event from the named collection and reverses
// the balance effect its creation applied: deposits lower both the current
// and starting balance, withdrawals and trades adjust the current balance
// only. An unknown id is a no-op and reports removed=false.
//
// Snapshots on remaining capital events are left as recorded even when this
// makes them stale; they are audit annotations, not a source of truth.
func (l *Ledger) DeleteEvent(eventID string, kind Kind) (removed bool, err error) {
	switch kind {
	case KindTrade:
		i := indexTrade(l.trades, eventID)
		if i < 0 {
			return false, nil
		}
		trades := remove(l.trades, i)
		balance := l.balance
		balance.Current = derive(balance.Starting, trades, l.deposits, l.withdrawals)
		if err := l.store.SaveTrades(trades); err != nil {
			return false, fmt.Errorf("persist trades: %w", err)
		}
		if err := l.store.SaveBalance(balance); err != nil {
			return false, fmt.Errorf("persist balance: %w", err)
		}
		l.trades = trades
		l.balance = balance

	case KindDeposit:
		i := indexCapital(l.deposits, eventID)
		if i < 0 {
			return false, nil
		}
		amount := num(l.deposits[i].Amount)
		deposits := remove(l.deposits, i)
		balance := Balance{Starting: l.balance.Starting - amount}
		balance.Current = derive(balance.Starting, l.trades, deposits, l.withdrawals)
		if err := l.store.SaveDeposits(deposits); err != nil {
			return false, fmt.Errorf("persist deposits: %w", err)
		}
		if err := l.store.SaveBalance(balance); err != nil {
			return false, fmt.Errorf("persist balance: %w", err)
		}
		l.deposits = deposits
		l.balance = balance

	case KindWithdrawal:
		i := indexCapital(l.withdrawals, eventID)
		if i < 0 {
			return false, nil
		}
		withdrawals := remove(l.withdrawals, i)
		balance := l.balance
		balance.Current = derive(balance.Starting, l.trades, l.deposits, withdrawals)
		if err := l.store.SaveWithdrawals(withdrawals); err != nil {
			return false, fmt.Errorf("persist withdrawals: %w", err)
		}
		if err := l.store.SaveBalance(balance); err != nil {
			return false, fmt.Errorf("persist balance: %w", err)
		}
		l.withdrawals = withdrawals
		l.balance = balance

	default:
		return false, &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown kind %q", kind)}
	}

	l.log.Debug().Str("id", eventID).Str("kind", string(kind)).Msg("event deleted")
	return true, nil
}

func validateTrade(in TradeInput) error {
	if err := required("date", strings.TrimSpace(in.Date)); err != nil {
		return err
	}
	if err := required("time", strings.TrimSpace(in.Time)); err != nil {
		return err
	}
	if err := required("pair", strings.TrimSpace(in.Pair)); err != nil {
		return err
	}
	if math.IsNaN(in.PnL) || math.IsInf(in.PnL, 0) {
		return &ValidationError{Field: "pnl", Reason: "must be a number"}
	}
	return nil
}

func validateCapital(in CapitalInput) error {
	if err := required("date", strings.TrimSpace(in.Date)); err != nil {
		return err
	}
	if err := required("time", strings.TrimSpace(in.Time)); err != nil {
		return err
	}
	if err := required("broker", strings.TrimSpace(in.Broker)); err != nil {
		return err
	}
	if math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) || in.Amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be a positive number"}
	}
	return nil
}

// prepend keeps collections most-recent-first without sharing the old
// backing array, so a failed persist cannot leak a half-built slice.
func prepend[T any](events []T, ev T) []T {
	out := make([]T, 0, len(events)+1)
	out = append(out, ev)
	return append(out, events...)
}

func remove[T any](events []T, i int) []T {
	out := make([]T, 0, len(events)-1)
	out = append(out, events[:i]...)
	return append(out, events[i+1:]...)
}

func indexTrade(trades []Trade, id string) int {
	for i, t := range trades {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func indexCapital(events []CapitalEvent, id string) int {
	for i, ev := range events {
		if ev.ID == id {
			return i
		}
	}
	return -1
}
