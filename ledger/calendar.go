package ledger

import (
	"fmt"
	"time"
)

// CalendarDay is one day of the trading calendar: net trade P/L and how many
// trades closed that day. Days without trades have a zero count.
type CalendarDay struct {
	Day    int
	Date   string
	PnL    float64
	Trades int
}

// Calendar returns one entry per day of the given calendar month, in order.
func (l *Ledger) Calendar(year int, month time.Month) []CalendarDay {
	byDate := map[string]*CalendarDay{}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	out := make([]CalendarDay, days)
	for i := range out {
		date := fmt.Sprintf("%04d-%02d-%02d", year, month, i+1)
		out[i] = CalendarDay{Day: i + 1, Date: date}
		byDate[date] = &out[i]
	}

	for _, t := range l.trades {
		if d, ok := byDate[t.Date]; ok {
			d.PnL += num(t.PnL)
			d.Trades++
		}
	}
	return out
}
