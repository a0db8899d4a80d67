package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fxtae/journal/ledger"
)

func TestWriteTrades(t *testing.T) {
	t.Parallel()

	trades := []ledger.Trade{
		{ID: "t2", Date: "2025-08-02", Time: "11:30", TradeNumber: 2, Pair: "GBP_USD", Strategy: "reversal", PnL: -130, Notes: "stopped out"},
		{ID: "t1", Date: "2025-08-01", Time: "09:00", TradeNumber: 1, Pair: "EUR_USD", Strategy: "trend", PnL: 40.5},
	}

	var buf strings.Builder
	require.NoError(t, WriteTrades(&buf, trades))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"id", "date", "time", "trade_number", "pair", "strategy", "pnl", "notes"}, rows[0])
	assert.Equal(t, []string{"t2", "2025-08-02", "11:30", "2", "GBP_USD", "reversal", "-130.00", "stopped out"}, rows[1])
	assert.Equal(t, "40.50", rows[2][6])
}

func TestWriteStatement(t *testing.T) {
	t.Parallel()

	entries := []ledger.HistoryEntry{
		{
			CapitalEvent: ledger.CapitalEvent{ID: "w1", Date: "2025-08-03", Time: "17:00", Broker: "IC-Markets", Amount: -1000, BalanceAfter: 9300},
			Kind:         ledger.KindWithdrawal,
		},
		{
			CapitalEvent: ledger.CapitalEvent{ID: "d1", Date: "2025-08-01", Time: "08:00", Broker: "IC-Markets", Amount: 500, BalanceAfter: 10500, Notes: "top-up"},
			Kind:         ledger.KindDeposit,
		},
	}
	seq := func(yield func(ledger.HistoryEntry) bool) {
		for _, e := range entries {
			if !yield(e) {
				return
			}
		}
	}

	var buf strings.Builder
	require.NoError(t, WriteStatement(&buf, seq))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"w1", "2025-08-03", "17:00", "withdrawal", "IC-Markets", "-1000.00", "9300.00", ""}, rows[1])
	assert.Equal(t, []string{"d1", "2025-08-01", "08:00", "deposit", "IC-Markets", "500.00", "10500.00", "top-up"}, rows[2])
}

func TestWriteTradesEmpty(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	require.NoError(t, WriteTrades(&buf, nil))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
