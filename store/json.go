// Package store provides the persistence collaborators behind the ledger
// and auth packages: a JSON file per logical key, or a single SQLite
// database. Both normalize "never written" and "unreadable" the same way the
// callers do: by returning an error the caller replaces with a default.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxtae/journal/auth"
	"github.com/fxtae/journal/ledger"
)

// File names under the data directory, one per logical key.
const (
	tradesFile      = "trades.json"
	depositsFile    = "deposits.json"
	withdrawalsFile = "withdrawals.json"
	balanceFile     = "balance.json"
	usersFile       = "users.json"
	currentUserFile = "current_user.json"
)

// JSON stores each collection as a JSON document in a directory. Writes go
// through a temp file and rename so a crash never leaves a torn document.
type JSON struct {
	dir string
}

// NewJSON creates the data directory if needed and returns a store over it.
func NewJSON(dir string) (*JSON, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &JSON{dir: dir}, nil
}

func (s *JSON) load(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *JSON) save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *JSON) LoadTrades() ([]ledger.Trade, error) {
	var out []ledger.Trade
	if err := s.load(tradesFile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *JSON) SaveTrades(trades []ledger.Trade) error {
	return s.save(tradesFile, trades)
}

func (s *JSON) LoadDeposits() ([]ledger.CapitalEvent, error) {
	var out []ledger.CapitalEvent
	if err := s.load(depositsFile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *JSON) SaveDeposits(events []ledger.CapitalEvent) error {
	return s.save(depositsFile, events)
}

func (s *JSON) LoadWithdrawals() ([]ledger.CapitalEvent, error) {
	var out []ledger.CapitalEvent
	if err := s.load(withdrawalsFile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *JSON) SaveWithdrawals(events []ledger.CapitalEvent) error {
	return s.save(withdrawalsFile, events)
}

func (s *JSON) LoadBalance() (ledger.Balance, error) {
	var out ledger.Balance
	if err := s.load(balanceFile, &out); err != nil {
		return ledger.Balance{}, err
	}
	return out, nil
}

func (s *JSON) SaveBalance(b ledger.Balance) error {
	return s.save(balanceFile, b)
}

func (s *JSON) LoadUsers() ([]auth.User, error) {
	var out []auth.User
	if err := s.load(usersFile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *JSON) SaveUsers(users []auth.User) error {
	return s.save(usersFile, users)
}

func (s *JSON) LoadCurrentUser() (auth.CurrentUser, error) {
	var out auth.CurrentUser
	if err := s.load(currentUserFile, &out); err != nil {
		return auth.CurrentUser{}, err
	}
	return out, nil
}

func (s *JSON) SaveCurrentUser(cu auth.CurrentUser) error {
	return s.save(currentUserFile, cu)
}

func (s *JSON) ClearCurrentUser() error {
	err := os.Remove(filepath.Join(s.dir, currentUserFile))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
