package ledger

// Stats aggregates trade performance for the dashboard: net P/L over the
// trailing day/week/calendar month plus overall win/loss figures.
type Stats struct {
	TodayPnL    float64
	TodayTrades int
	WeekPnL     float64
	WeekTrades  int
	MonthPnL    float64
	MonthTrades int

	Wins         int
	Losses       int
	WinRate      float64 // percent of non-breakeven trades that won
	ProfitFactor float64 // gross profit / gross loss, 0 when no losses

	Growth    float64
	GrowthPct float64
}

// Stats computes period and overall trade statistics as of now. Capital
// events do not count toward P/L figures; only trades do.
func (l *Ledger) Stats(now string) Stats {
	var s Stats

	weekStart := ""
	if t := when(now, ""); !t.IsZero() {
		weekStart = t.AddDate(0, 0, -6).Format(DateLayout)
	}
	month := ""
	if len(now) >= 7 {
		month = now[:7]
	}

	var grossProfit, grossLoss float64
	for _, t := range l.trades {
		pnl := num(t.PnL)

		if t.Date == now {
			s.TodayPnL += pnl
			s.TodayTrades++
		}
		if weekStart != "" && t.Date >= weekStart && t.Date <= now {
			s.WeekPnL += pnl
			s.WeekTrades++
		}
		if month != "" && len(t.Date) >= 7 && t.Date[:7] == month {
			s.MonthPnL += pnl
			s.MonthTrades++
		}

		switch {
		case pnl > 0:
			s.Wins++
			grossProfit += pnl
		case pnl < 0:
			s.Losses++
			grossLoss += -pnl
		}
	}

	if decided := s.Wins + s.Losses; decided > 0 {
		s.WinRate = float64(s.Wins) / float64(decided) * 100
	}
	if grossLoss > 0 {
		s.ProfitFactor = grossProfit / grossLoss
	}
	s.Growth, s.GrowthPct = l.balance.Growth()
	return s
}
