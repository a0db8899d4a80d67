package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fxtae/journal/auth"
	"github.com/fxtae/journal/ledger"
)

// SQLite keeps the whole journal in one database file. Collections are
// written whole inside a transaction on every save; the journal is small, so
// rewrite-on-save keeps the stored order identical to the in-memory order.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) LoadTrades() ([]ledger.Trade, error) {
	rows, err := s.db.Query(`
		SELECT id, date, time, trade_number, pair, strategy, pnl, notes
		FROM trades ORDER BY pos ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Trade
	for rows.Next() {
		var t ledger.Trade
		if err := rows.Scan(&t.ID, &t.Date, &t.Time, &t.TradeNumber, &t.Pair, &t.Strategy, &t.PnL, &t.Notes); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLite) SaveTrades(trades []ledger.Trade) error {
	return s.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM trades`); err != nil {
			return err
		}
		for _, t := range trades {
			_, err := tx.Exec(`
				INSERT INTO trades (id, date, time, trade_number, pair, strategy, pnl, notes)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				t.ID, t.Date, t.Time, t.TradeNumber, t.Pair, t.Strategy, t.PnL, t.Notes)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLite) LoadDeposits() ([]ledger.CapitalEvent, error) {
	return s.loadCapital("deposits")
}

func (s *SQLite) SaveDeposits(events []ledger.CapitalEvent) error {
	return s.saveCapital("deposits", events)
}

func (s *SQLite) LoadWithdrawals() ([]ledger.CapitalEvent, error) {
	return s.loadCapital("withdrawals")
}

func (s *SQLite) SaveWithdrawals(events []ledger.CapitalEvent) error {
	return s.saveCapital("withdrawals", events)
}

func (s *SQLite) loadCapital(table string) ([]ledger.CapitalEvent, error) {
	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT id, date, time, broker, amount, notes, balance_before, balance_after
		FROM %s ORDER BY pos ASC`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.CapitalEvent
	for rows.Next() {
		var ev ledger.CapitalEvent
		if err := rows.Scan(&ev.ID, &ev.Date, &ev.Time, &ev.Broker, &ev.Amount, &ev.Notes, &ev.BalanceBefore, &ev.BalanceAfter); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (s *SQLite) saveCapital(table string, events []ledger.CapitalEvent) error {
	return s.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(fmt.Sprintf(`DELETE FROM %s`, table)); err != nil {
			return err
		}
		for _, ev := range events {
			_, err := tx.Exec(fmt.Sprintf(`
				INSERT INTO %s (id, date, time, broker, amount, notes, balance_before, balance_after)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, table),
				ev.ID, ev.Date, ev.Time, ev.Broker, ev.Amount, ev.Notes, ev.BalanceBefore, ev.BalanceAfter)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLite) LoadBalance() (ledger.Balance, error) {
	var b ledger.Balance
	err := s.db.QueryRow(`SELECT starting, current FROM balance WHERE id = 1`).
		Scan(&b.Starting, &b.Current)
	if err != nil {
		return ledger.Balance{}, err
	}
	return b, nil
}

func (s *SQLite) SaveBalance(b ledger.Balance) error {
	_, err := s.db.Exec(`
		INSERT INTO balance (id, starting, current) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET starting = excluded.starting, current = excluded.current`,
		b.Starting, b.Current)
	return err
}

func (s *SQLite) LoadUsers() ([]auth.User, error) {
	rows, err := s.db.Query(`SELECT id, name, email, password, created_at FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []auth.User
	for rows.Next() {
		var u auth.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *SQLite) SaveUsers(users []auth.User) error {
	return s.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM users`); err != nil {
			return err
		}
		for _, u := range users {
			_, err := tx.Exec(`
				INSERT INTO users (id, name, email, password, created_at)
				VALUES (?, ?, ?, ?, ?)`,
				u.ID, u.Name, u.Email, u.Password, u.CreatedAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLite) LoadCurrentUser() (auth.CurrentUser, error) {
	var cu auth.CurrentUser
	err := s.db.QueryRow(`SELECT name, email, created_at FROM session WHERE id = 1`).
		Scan(&cu.Name, &cu.Email, &cu.CreatedAt)
	if err != nil {
		return auth.CurrentUser{}, err
	}
	return cu, nil
}

func (s *SQLite) SaveCurrentUser(cu auth.CurrentUser) error {
	_, err := s.db.Exec(`
		INSERT INTO session (id, name, email, created_at) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, email = excluded.email, created_at = excluded.created_at`,
		cu.Name, cu.Email, cu.CreatedAt)
	return err
}

func (s *SQLite) ClearCurrentUser() error {
	_, err := s.db.Exec(`DELETE FROM session`)
	return err
}

func (s *SQLite) inTx(fn func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
