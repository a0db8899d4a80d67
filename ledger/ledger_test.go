package ledger

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store for tests. saveErr, when set, makes every
// save fail so the rollback path can be exercised.
type memStore struct {
	trades      []Trade
	deposits    []CapitalEvent
	withdrawals []CapitalEvent
	balance     Balance
	hasBalance  bool

	loadErr error
	saveErr error
}

func (m *memStore) LoadTrades() ([]Trade, error) {
	return m.trades, m.loadErr
}

func (m *memStore) SaveTrades(trades []Trade) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.trades = trades
	return nil
}

func (m *memStore) LoadDeposits() ([]CapitalEvent, error) {
	return m.deposits, m.loadErr
}

func (m *memStore) SaveDeposits(events []CapitalEvent) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.deposits = events
	return nil
}

func (m *memStore) LoadWithdrawals() ([]CapitalEvent, error) {
	return m.withdrawals, m.loadErr
}

func (m *memStore) SaveWithdrawals(events []CapitalEvent) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.withdrawals = events
	return nil
}

func (m *memStore) LoadBalance() (Balance, error) {
	if m.loadErr != nil {
		return Balance{}, m.loadErr
	}
	if !m.hasBalance {
		return Balance{}, errors.New("no balance record")
	}
	return m.balance, nil
}

func (m *memStore) SaveBalance(b Balance) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.balance = b
	m.hasBalance = true
	return nil
}

func newTestLedger(t *testing.T, starting float64) (*Ledger, *memStore) {
	t.Helper()
	st := &memStore{}
	return Open(st, WithStartingBalance(starting)), st
}

func day(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format(DateLayout)
}

func tradeInput(date string, pnl float64) TradeInput {
	return TradeInput{Date: date, Time: "14:30", Pair: "EUR_USD", Strategy: "trend", PnL: pnl}
}

func capitalInput(date string, amount float64) CapitalInput {
	return CapitalInput{Date: date, Time: "09:00", Broker: "IC-Markets", Amount: amount}
}

func TestOpenSeedsStartingBalance(t *testing.T) {
	t.Parallel()

	l, st := newTestLedger(t, 10000)

	assert.Equal(t, Balance{Starting: 10000, Current: 10000}, l.Balance())
	assert.True(t, st.hasBalance, "recomputed balance should be persisted on open")
}

func TestOpenNormalizesLoadFailures(t *testing.T) {
	t.Parallel()

	st := &memStore{loadErr: errors.New("disk on fire")}
	l := Open(st, WithStartingBalance(5000))

	assert.Empty(t, l.Trades())
	assert.Empty(t, l.Deposits())
	assert.Empty(t, l.Withdrawals())
	assert.Equal(t, 5000.0, l.Balance().Starting)
}

// The worked scenario: starting 10000, deposit 500, trade -200, withdrawal
// 1000. Current ends at 9300 while starting stays at 10500.
func TestDepositTradeWithdrawalScenario(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, 10000)

	_, err := l.RecordDeposit(capitalInput(day(-3), 500))
	require.NoError(t, err)
	assert.Equal(t, Balance{Starting: 10500, Current: 10500}, l.Balance())

	_, err = l.RecordTrade(tradeInput(day(-2), -200))
	require.NoError(t, err)
	assert.Equal(t, 10300.0, l.Balance().Current)

	_, err = l.RecordWithdrawal(capitalInput(day(-1), 1000))
	require.NoError(t, err)
	assert.Equal(t, 9300.0, l.Balance().Current)
	assert.Equal(t, 10500.0, l.Balance().Starting, "withdrawal must not lower starting balance")
}

func TestRecordTradeValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		in    TradeInput
		field string
	}{
		{"missing date", TradeInput{Time: "14:30", Pair: "EUR_USD", PnL: 1}, "date"},
		{"missing time", TradeInput{Date: day(0), Pair: "EUR_USD", PnL: 1}, "time"},
		{"missing pair", TradeInput{Date: day(0), Time: "14:30", PnL: 1}, "pair"},
		{"blank pair", TradeInput{Date: day(0), Time: "14:30", Pair: "   ", PnL: 1}, "pair"},
		{"nan pnl", TradeInput{Date: day(0), Time: "14:30", Pair: "EUR_USD", PnL: math.NaN()}, "pnl"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l, _ := newTestLedger(t, 1000)
			before := l.Balance()

			_, err := l.RecordTrade(tc.in)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, before, l.Balance())
			assert.Empty(t, l.Trades())
		})
	}
}

func TestRecordCapitalValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		in    CapitalInput
		field string
	}{
		{"missing broker", CapitalInput{Date: day(0), Time: "09:00", Amount: 100}, "broker"},
		{"zero amount", capitalInput(day(0), 0), "amount"},
		{"negative amount", capitalInput(day(0), -5), "amount"},
		{"nan amount", capitalInput(day(0), math.NaN()), "amount"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l, _ := newTestLedger(t, 1000)

			_, derr := l.RecordDeposit(tc.in)
			_, werr := l.RecordWithdrawal(tc.in)

			var verr *ValidationError
			require.ErrorAs(t, derr, &verr)
			assert.Equal(t, tc.field, verr.Field)
			require.ErrorAs(t, werr, &verr)
			assert.Equal(t, tc.field, verr.Field)

			assert.Equal(t, Balance{Starting: 1000, Current: 1000}, l.Balance())
			assert.Empty(t, l.Deposits())
			assert.Empty(t, l.Withdrawals())
		})
	}
}

func TestDepositSnapshots(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, 10000)

	ev, err := l.RecordDeposit(capitalInput(day(0), 250))
	require.NoError(t, err)

	assert.Equal(t, 10000.0, ev.BalanceBefore)
	assert.Equal(t, 10250.0, ev.BalanceAfter)
	assert.Equal(t, 250.0, ev.Amount)
	assert.NotEmpty(t, ev.ID)
}

func TestWithdrawalStoredNegative(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, 10000)

	ev, err := l.RecordWithdrawal(capitalInput(day(0), 400))
	require.NoError(t, err)

	assert.Equal(t, -400.0, ev.Amount)
	assert.Equal(t, 10000.0, ev.BalanceBefore)
	assert.Equal(t, 9600.0, ev.BalanceAfter)
	assert.Equal(t, 9600.0, l.Balance().Current)
}

func TestWithdrawalInsufficientFunds(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, 100)

	_, err := l.RecordWithdrawal(capitalInput(day(0), 100.01))

	require.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, Balance{Starting: 100, Current: 100}, l.Balance())
	assert.Empty(t, l.Withdrawals())
}

func TestMostRecentFirstOrdering(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, 1000)

	first, err := l.RecordTrade(tradeInput(day(-1), 10))
	require.NoError(t, err)
	second, err := l.RecordTrade(tradeInput(day(0), 20))
	require.NoError(t, err)

	trades := l.Trades()
	require.Len(t, trades, 2)
	assert.Equal(t, second.ID, trades[0].ID)
	assert.Equal(t, first.ID, trades[1].ID)
}

func TestDeleteDepositRestoresBothBalances(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, 10000)
	_, err := l.RecordTrade(tradeInput(day(-5), 300))
	require.NoError(t, err)
	before := l.Balance()

	ev, err := l.RecordDeposit(capitalInput(day(0), 750))
	require.NoError(t, err)

	removed, err := l.DeleteEvent(ev.ID, KindDeposit)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, before, l.Balance())
	assert.Empty(t, l.Deposits())
}

func TestDeleteWithdrawalRestoresCurrentOnly(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, 10000)
	before := l.Balance()

	ev, err := l.RecordWithdrawal(capitalInput(day(0), 1200))
	require.NoError(t, err)
	assert.Equal(t, before.Starting, l.Balance().Starting)

	removed, err := l.DeleteEvent(ev.ID, KindWithdrawal)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, before, l.Balance())
}

func TestDeleteTradeReversesPnL(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, 10000)

	trade, err := l.RecordTrade(tradeInput(day(0), -450))
	require.NoError(t, err)
	assert.Equal(t, 9550.0, l.Balance().Current)

	removed, err := l.DeleteEvent(trade.ID, KindTrade)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 10000.0, l.Balance().Current)
}

func TestDeleteUnknownIDIsNoOp(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, 10000)
	_, err := l.RecordTrade(tradeInput(day(0), 100))
	require.NoError(t, err)
	trades := l.Trades()
	balance := l.Balance()

	for _, kind := range []Kind{KindTrade, KindDeposit, KindWithdrawal} {
		removed, err := l.DeleteEvent("no-such-id", kind)
		require.NoError(t, err)
		assert.False(t, removed)
	}

	assert.Equal(t, trades, l.Trades())
	assert.Equal(t, balance, l.Balance())
}

func TestDeleteUnknownKind(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, 10000)

	_, err := l.DeleteEvent("x", Kind("goal"))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "kind", verr.Field)
}

// Recomputing from scratch after a random mix of operations must agree with
// the incrementally maintained figure.
func TestRecomputeNoDrift(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, 10000)

	dep, err := l.RecordDeposit(capitalInput(day(-9), 500))
	require.NoError(t, err)
	_, err = l.RecordTrade(tradeInput(day(-8), 125.25))
	require.NoError(t, err)
	tr, err := l.RecordTrade(tradeInput(day(-7), -310.10))
	require.NoError(t, err)
	_, err = l.RecordWithdrawal(capitalInput(day(-6), 200))
	require.NoError(t, err)
	_, err = l.DeleteEvent(tr.ID, KindTrade)
	require.NoError(t, err)
	_, err = l.DeleteEvent(dep.ID, KindDeposit)
	require.NoError(t, err)

	incremental := l.Balance().Current
	assert.Equal(t, incremental, l.Recompute())
	assert.InDelta(t, 10000+125.25-200, incremental, 1e-9)
}

func TestPersistFailureLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	l, st := newTestLedger(t, 10000)
	_, err := l.RecordTrade(tradeInput(day(-1), 50))
	require.NoError(t, err)
	trades := l.Trades()
	balance := l.Balance()

	st.saveErr = errors.New("disk full")

	_, err = l.RecordTrade(tradeInput(day(0), 999))
	assert.Error(t, err)
	_, err = l.RecordDeposit(capitalInput(day(0), 10))
	assert.Error(t, err)
	_, err = l.RecordWithdrawal(capitalInput(day(0), 10))
	assert.Error(t, err)
	_, err = l.DeleteEvent(trades[0].ID, KindTrade)
	assert.Error(t, err)

	assert.Equal(t, trades, l.Trades())
	assert.Equal(t, balance, l.Balance())
}

// Deleting an earlier event leaves later snapshots stale on purpose: they
// are audit annotations, never a source of truth.
func TestStaleSnapshotsPreserved(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t, 1000)

	first, err := l.RecordDeposit(capitalInput(day(-2), 100))
	require.NoError(t, err)
	second, err := l.RecordDeposit(capitalInput(day(-1), 200))
	require.NoError(t, err)
	assert.Equal(t, 1100.0, second.BalanceBefore)

	_, err = l.DeleteEvent(first.ID, KindDeposit)
	require.NoError(t, err)

	deposits := l.Deposits()
	require.Len(t, deposits, 1)
	assert.Equal(t, second.BalanceBefore, deposits[0].BalanceBefore)
	assert.Equal(t, second.BalanceAfter, deposits[0].BalanceAfter)

	// the live balance is recomputed, not read from snapshots
	assert.Equal(t, 1200.0, l.Balance().Current)
}

func TestMalformedAmountsCountAsZero(t *testing.T) {
	t.Parallel()

	st := &memStore{
		trades:     []Trade{{ID: "t1", Date: day(0), PnL: math.NaN()}},
		deposits:   []CapitalEvent{{ID: "d1", Date: day(0), Amount: math.Inf(1)}},
		balance:    Balance{Starting: 2000},
		hasBalance: true,
	}
	l := Open(st)

	assert.Equal(t, 2000.0, l.Balance().Current)
}
