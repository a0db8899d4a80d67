// Package ledger implements the account reconciliation core of the journal:
// three ordered event collections (trades, deposits, withdrawals) plus a
// starting-balance baseline, with every derived figure recomputed from
// scratch after each mutation so externally edited state self-heals.
package ledger

import (
	"github.com/rs/zerolog"
)

// Store persists the journal collections. Implementations live in the store
// package; the ledger treats load failures and malformed data as empty
// collections rather than propagating them, so there is no observable
// difference between a first run and a corrupted backing file.
type Store interface {
	LoadTrades() ([]Trade, error)
	SaveTrades([]Trade) error
	LoadDeposits() ([]CapitalEvent, error)
	SaveDeposits([]CapitalEvent) error
	LoadWithdrawals() ([]CapitalEvent, error)
	SaveWithdrawals([]CapitalEvent) error
	LoadBalance() (Balance, error)
	SaveBalance(Balance) error
}

// DefaultStartingBalance seeds a journal whose store has no balance record.
const DefaultStartingBalance = 10000

// Ledger owns the three event collections and the balance pair. All mutation
// goes through its methods; there is no package-level state. A Ledger is not
// safe for concurrent use.
type Ledger struct {
	store Store
	log   zerolog.Logger

	trades      []Trade
	deposits    []CapitalEvent
	withdrawals []CapitalEvent
	balance     Balance

	// seed replaces DefaultStartingBalance when the store has no readable
	// balance record.
	seed *float64
}

// Option configures a Ledger at Open time.
type Option func(*Ledger)

// WithLogger attaches a structured logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// WithStartingBalance overrides the seed used when the store has no balance
// record yet. It has no effect on an already-initialized journal.
func WithStartingBalance(amount float64) Option {
	return func(l *Ledger) { l.seed = &amount }
}

// Open loads all collections from the store and derives the current balance.
// Load errors are normalized to empty collections, never returned.
func Open(st Store, opts ...Option) *Ledger {
	l := &Ledger{store: st, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(l)
	}

	var err error
	if l.trades, err = st.LoadTrades(); err != nil {
		l.log.Warn().Err(err).Msg("load trades, starting empty")
		l.trades = nil
	}
	if l.deposits, err = st.LoadDeposits(); err != nil {
		l.log.Warn().Err(err).Msg("load deposits, starting empty")
		l.deposits = nil
	}
	if l.withdrawals, err = st.LoadWithdrawals(); err != nil {
		l.log.Warn().Err(err).Msg("load withdrawals, starting empty")
		l.withdrawals = nil
	}
	if l.balance, err = st.LoadBalance(); err != nil {
		l.balance = Balance{Starting: DefaultStartingBalance}
		if l.seed != nil {
			l.balance.Starting = *l.seed
		}
	}

	l.Recompute()
	if err := st.SaveBalance(l.balance); err != nil {
		l.log.Warn().Err(err).Msg("persist recomputed balance")
	}
	return l
}

// Recompute rederives the current balance from the authoritative sums and
// returns it. It is called after every mutation instead of trusting
// incremental arithmetic, so drift cannot accumulate.
func (l *Ledger) Recompute() float64 {
	l.balance.Current = derive(l.balance.Starting, l.trades, l.deposits, l.withdrawals)
	return l.balance.Current
}

func derive(starting float64, trades []Trade, deposits, withdrawals []CapitalEvent) float64 {
	total := starting
	for _, t := range trades {
		total += num(t.PnL)
	}
	for _, d := range deposits {
		total += num(d.Amount)
	}
	for _, w := range withdrawals {
		// withdrawal amounts are stored negative
		total += num(w.Amount)
	}
	return total
}

// Balance returns the current balance pair.
func (l *Ledger) Balance() Balance { return l.balance }

// Trades returns the trade collection, most recent first.
func (l *Ledger) Trades() []Trade {
	out := make([]Trade, len(l.trades))
	copy(out, l.trades)
	return out
}

// Deposits returns the deposit collection, most recent first.
func (l *Ledger) Deposits() []CapitalEvent {
	out := make([]CapitalEvent, len(l.deposits))
	copy(out, l.deposits)
	return out
}

// Withdrawals returns the withdrawal collection, most recent first. Amounts
// are negative as stored.
func (l *Ledger) Withdrawals() []CapitalEvent {
	out := make([]CapitalEvent, len(l.withdrawals))
	copy(out, l.withdrawals)
	return out
}
