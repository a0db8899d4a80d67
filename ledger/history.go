package ledger

import (
	"iter"
	"sort"
)

// HistoryEntry is a capital event tagged with its collection for display.
type HistoryEntry struct {
	CapitalEvent
	Kind Kind
}

// CombinedHistory yields all deposits and withdrawals merged and sorted
// descending by their date and time, missing times reading as midnight. The
// sequence is finite and restartable; each range re-walks the same snapshot.
func (l *Ledger) CombinedHistory() iter.Seq[HistoryEntry] {
	entries := make([]HistoryEntry, 0, len(l.deposits)+len(l.withdrawals))
	for _, d := range l.deposits {
		entries = append(entries, HistoryEntry{CapitalEvent: d, Kind: KindDeposit})
	}
	for _, w := range l.withdrawals {
		entries = append(entries, HistoryEntry{CapitalEvent: w, Kind: KindWithdrawal})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return when(entries[i].Date, entries[i].Time).After(when(entries[j].Date, entries[j].Time))
	})

	return func(yield func(HistoryEntry) bool) {
		for _, e := range entries {
			if !yield(e) {
				return
			}
		}
	}
}
