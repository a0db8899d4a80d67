// Package export writes journal data as CSV for use outside the app.
package export

import (
	"encoding/csv"
	"io"
	"iter"
	"strconv"

	"github.com/fxtae/journal/ledger"
)

// WriteTrades writes the trade log, one row per trade in the given order.
func WriteTrades(w io.Writer, trades []ledger.Trade) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"id", "date", "time", "trade_number", "pair", "strategy", "pnl", "notes"}); err != nil {
		return err
	}
	for _, t := range trades {
		err := cw.Write([]string{
			t.ID,
			t.Date,
			t.Time,
			strconv.Itoa(t.TradeNumber),
			t.Pair,
			t.Strategy,
			f(t.PnL),
			t.Notes,
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteStatement writes the combined deposit/withdrawal history. The
// balance_after column repeats the snapshot taken at creation time, which
// may be stale after deletions; it is reproduced as recorded.
func WriteStatement(w io.Writer, history iter.Seq[ledger.HistoryEntry]) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"id", "date", "time", "kind", "broker", "amount", "balance_after", "notes"}); err != nil {
		return err
	}
	for entry := range history {
		err := cw.Write([]string{
			entry.ID,
			entry.Date,
			entry.Time,
			string(entry.Kind),
			entry.Broker,
			f(entry.Amount),
			f(entry.BalanceAfter),
			entry.Notes,
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
