package ledger

import (
	"sort"
	"time"
)

// Period selects the equity series resolution.
type Period string

const (
	// PeriodMonth covers the trailing 30 days at daily resolution.
	PeriodMonth Period = "1m"
	// PeriodYear covers the full history at calendar-month resolution.
	PeriodYear Period = "12m"
)

// EquityPoint is one charted point of the running balance.
type EquityPoint struct {
	Label   string
	Balance float64
}

// EquitySeries builds the running-balance series for charting. Trade P/L and
// withdrawal amounts are folded into one signed delta per day, then
// accumulated chronologically from the starting balance. Deposit days emit a
// point but contribute no delta: deposits raise the starting balance itself,
// so adding their amount again would double-count them. The first point is
// always a synthetic "start" at the starting balance; with no events in the
// window it is the only point.
//
// PeriodMonth emits one point per trailing-30-day day that had activity,
// labeled MM-DD. PeriodYear aggregates to calendar months with activity,
// labeled YYYY-MM.
func (l *Ledger) EquitySeries(period Period, now time.Time) ([]EquityPoint, error) {
	daily := map[string]float64{}
	for _, t := range l.trades {
		daily[t.Date] += num(t.PnL)
	}
	for _, w := range l.withdrawals {
		daily[w.Date] += num(w.Amount)
	}
	for _, d := range l.deposits {
		if _, ok := daily[d.Date]; !ok {
			daily[d.Date] = 0
		}
	}

	dates := make([]string, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	balance := l.balance.Starting
	points := []EquityPoint{{Label: "start", Balance: balance}}

	switch period {
	case PeriodYear:
		monthly := map[string]float64{}
		var months []string
		for _, d := range dates {
			if len(d) < 7 {
				continue
			}
			m := d[:7]
			if _, ok := monthly[m]; !ok {
				months = append(months, m)
			}
			monthly[m] += daily[d]
		}
		sort.Strings(months)
		for _, m := range months {
			balance += monthly[m]
			points = append(points, EquityPoint{Label: m, Balance: balance})
		}

	case PeriodMonth:
		cutoff := now.AddDate(0, 0, -30).Format(DateLayout)
		for _, d := range dates {
			if d < cutoff {
				continue
			}
			balance += daily[d]
			label := d
			if len(d) > 5 {
				label = d[5:]
			}
			points = append(points, EquityPoint{Label: label, Balance: balance})
		}

	default:
		return nil, &ValidationError{Field: "period", Reason: `must be "1m" or "12m"`}
	}

	return points, nil
}
