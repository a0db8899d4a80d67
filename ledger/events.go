package ledger

import (
	"math"
	"time"
)

// Date and time layouts used by all journal records. Times are optional on
// capital events; a missing time sorts as midnight.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Kind identifies which collection an event belongs to.
type Kind string

const (
	KindTrade      Kind = "trade"
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
)

// Trade is a single closed trade with its realized P/L. Trades are immutable
// once recorded; the only mutation path is deletion.
type Trade struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	TradeNumber int     `json:"trade_number,omitempty"`
	Pair        string  `json:"pair"`
	Strategy    string  `json:"strategy,omitempty"`
	PnL         float64 `json:"pnl"`
	Notes       string  `json:"notes,omitempty"`
}

// CapitalEvent is a deposit or withdrawal. Amount is signed: positive for
// deposits, negative for withdrawals. BalanceBefore/After are snapshots taken
// at creation time and kept as audit annotations only; deleting an earlier
// event leaves later snapshots stale on purpose.
type CapitalEvent struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	Broker        string  `json:"broker"`
	Amount        float64 `json:"amount"`
	Notes         string  `json:"notes,omitempty"`
	BalanceBefore float64 `json:"balance_before"`
	BalanceAfter  float64 `json:"balance_after"`
}

// Balance holds the baseline capital figure and the balance derived from it.
// Starting is raised by deposits and never lowered by withdrawals.
type Balance struct {
	Starting float64 `json:"starting"`
	Current  float64 `json:"current"`
}

// Growth returns the net gain over the starting balance and that gain as a
// percentage of the starting balance (0 when there is no starting capital).
func (b Balance) Growth() (amount, pct float64) {
	amount = b.Current - b.Starting
	if b.Starting > 0 {
		pct = amount / b.Starting * 100
	}
	return amount, pct
}

// TradeInput is the raw form input for recording a trade.
type TradeInput struct {
	Date        string
	Time        string
	TradeNumber int
	Pair        string
	Strategy    string
	PnL         float64
	Notes       string
}

// CapitalInput is the raw form input for a deposit or withdrawal. Amount is
// always entered positive; withdrawals are negated on record.
type CapitalInput struct {
	Date   string
	Time   string
	Broker string
	Amount float64
	Notes  string
}

// when combines an event date and optional time into a sortable instant.
// A missing time reads as midnight; an unparseable date reads as the zero
// time so malformed records sink to the end of descending listings.
func when(date, clock string) time.Time {
	if clock == "" {
		clock = "00:00"
	}
	t, err := time.Parse(DateLayout+" "+TimeLayout, date+" "+clock)
	if err != nil {
		t, err = time.Parse(DateLayout, date)
		if err != nil {
			return time.Time{}
		}
	}
	return t
}

// num normalizes a stored amount for summation. Malformed values (NaN or
// infinite) count as zero rather than poisoning the balance.
func num(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
