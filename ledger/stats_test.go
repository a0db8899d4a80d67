package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsPeriods(t *testing.T) {
	t.Parallel()

	now := "2025-08-20"
	st := &memStore{
		trades: []Trade{
			{ID: "t1", Date: "2025-08-20", PnL: 100},  // today
			{ID: "t2", Date: "2025-08-20", PnL: -30},  // today
			{ID: "t3", Date: "2025-08-16", PnL: 50},   // this week
			{ID: "t4", Date: "2025-08-02", PnL: -200}, // this month
			{ID: "t5", Date: "2025-07-10", PnL: 400},  // older
			{ID: "t6", Date: "2025-07-11", PnL: 0},    // breakeven, not counted
		},
		balance:    Balance{Starting: 10000},
		hasBalance: true,
	}
	l := Open(st)

	s := l.Stats(now)

	assert.InDelta(t, 70, s.TodayPnL, 1e-9)
	assert.Equal(t, 2, s.TodayTrades)
	assert.InDelta(t, 120, s.WeekPnL, 1e-9)
	assert.Equal(t, 3, s.WeekTrades)
	assert.InDelta(t, -80, s.MonthPnL, 1e-9)
	assert.Equal(t, 4, s.MonthTrades)

	assert.Equal(t, 3, s.Wins)
	assert.Equal(t, 2, s.Losses)
	assert.InDelta(t, 60, s.WinRate, 1e-9)
	assert.InDelta(t, 550.0/230.0, s.ProfitFactor, 1e-9)

	assert.InDelta(t, 320, s.Growth, 1e-9)
	assert.InDelta(t, 3.2, s.GrowthPct, 1e-9)
}

func TestStatsNoTrades(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, 10000)
	s := l.Stats("2025-08-20")

	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.ProfitFactor)
	assert.Zero(t, s.Growth)
}

func TestStatsAllWinners(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, 1000)
	_, err := l.RecordTrade(tradeInput(day(0), 10))
	require.NoError(t, err)

	s := l.Stats(day(0))
	assert.InDelta(t, 100, s.WinRate, 1e-9)
	// no losses means the factor is undefined; reported as zero
	assert.Zero(t, s.ProfitFactor)
}

func TestCalendar(t *testing.T) {
	t.Parallel()

	st := &memStore{
		trades: []Trade{
			{ID: "t1", Date: "2025-08-05", PnL: 120},
			{ID: "t2", Date: "2025-08-05", PnL: -20},
			{ID: "t3", Date: "2025-08-19", PnL: -75},
			{ID: "t4", Date: "2025-07-31", PnL: 999}, // previous month
		},
		balance:    Balance{Starting: 10000},
		hasBalance: true,
	}
	l := Open(st)

	days := l.Calendar(2025, time.August)
	require.Len(t, days, 31)

	assert.Equal(t, 5, days[4].Day)
	assert.Equal(t, 2, days[4].Trades)
	assert.InDelta(t, 100, days[4].PnL, 1e-9)

	assert.Equal(t, 1, days[18].Trades)
	assert.InDelta(t, -75, days[18].PnL, 1e-9)

	for i, d := range days {
		if i != 4 && i != 18 {
			assert.Zero(t, d.Trades)
		}
	}
}

func TestCalendarFebruary(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, 1000)

	assert.Len(t, l.Calendar(2024, time.February), 29)
	assert.Len(t, l.Calendar(2025, time.February), 28)
}
