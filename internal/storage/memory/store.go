// Package memory is an in-memory RecordStore used by tests and by the
// server when no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/oleratodev/banking-ledger-system/internal/interfaces"
	"github.com/oleratodev/banking-ledger-system/internal/models"
)

// Store keeps rows in slices, preserving insertion order the way the SQL
// stores preserve primary-key insertion order. Safe for concurrent use.
type Store struct {
	mu           sync.Mutex
	customers    []models.CustomerRow
	accounts     []models.AccountRow
	transactions map[string][]models.TransactionRow
	nextID       int64
}

func NewStore() *Store {
	return &Store{transactions: make(map[string][]models.TransactionRow)}
}

func (s *Store) UpsertCustomer(_ context.Context, row models.CustomerRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.customers {
		if existing.AccountNumber == row.AccountNumber {
			s.customers[i] = row
			return nil
		}
	}
	s.customers = append(s.customers, row)
	return nil
}

func (s *Store) UpsertAccount(_ context.Context, row models.AccountRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.accounts {
		if existing.AccountNumber == row.AccountNumber {
			s.accounts[i] = row
			return nil
		}
	}
	s.accounts = append(s.accounts, row)
	return nil
}

func (s *Store) ReplaceTransactions(_ context.Context, accountNumber string, rows []models.TransactionRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]models.TransactionRow, 0, len(rows))
	for _, row := range rows {
		s.nextID++
		row.ID = s.nextID
		row.AccountNumber = accountNumber
		stored = append(stored, row)
	}
	s.transactions[accountNumber] = stored
	return nil
}

func (s *Store) Customers(context.Context) ([]models.CustomerRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CustomerRow, len(s.customers))
	copy(out, s.customers)
	return out, nil
}

func (s *Store) Accounts(context.Context) ([]models.AccountRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AccountRow, len(s.accounts))
	copy(out, s.accounts)
	return out, nil
}

func (s *Store) TransactionsByAccount(_ context.Context, accountNumber string) ([]models.TransactionRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.transactions[accountNumber]
	out := make([]models.TransactionRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

var _ interfaces.RecordStore = (*Store)(nil)
