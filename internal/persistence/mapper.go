// Package persistence translates the customer/account/transaction graph to
// and from the flat row schema held by a RecordStore. The in-memory model
// is the source of truth: row-level failures are logged and skipped, never
// propagated as an abort, and nothing is rolled back.
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/oleratodev/banking-ledger-system/internal/account"
	"github.com/oleratodev/banking-ledger-system/internal/customer"
	"github.com/oleratodev/banking-ledger-system/internal/interfaces"
	"github.com/oleratodev/banking-ledger-system/internal/models"
)

// Mapper persists customers with their accounts and ledgers. Transaction
// rows follow the batched-at-save discipline: every save replaces the
// account's stored rows with the current in-memory ledger, so saving is
// idempotent and rows are never duplicated.
type Mapper struct {
	store interfaces.RecordStore
	now   func() time.Time
	log   zerolog.Logger
}

func NewMapper(store interfaces.RecordStore, log zerolog.Logger) *Mapper {
	return &Mapper{store: store, now: time.Now, log: log}
}

// SaveCustomer upserts the customer row, then each owned account row with
// its discriminator and variant columns, then the account's ledger. An
// account that fails to persist is skipped; the rest still save.
func (m *Mapper) SaveCustomer(ctx context.Context, c *customer.Customer) error {
	row := models.CustomerRow{
		AccountNumber: c.Number(),
		FirstName:     c.FirstName(),
		Surname:       c.Surname(),
		Address:       c.Address(),
		PIN:           c.PIN(),
	}
	if err := m.store.UpsertCustomer(ctx, row); err != nil {
		return fmt.Errorf("saving customer %s: %w", c.Number(), err)
	}

	for _, a := range c.Accounts() {
		if err := m.store.UpsertAccount(ctx, encodeAccount(a, c.Number())); err != nil {
			m.log.Warn().Err(err).Str("account", a.Number()).Msg("skipping account row")
			continue
		}
		if err := m.store.ReplaceTransactions(ctx, a.Number(), encodeTransactions(a)); err != nil {
			m.log.Warn().Err(err).Str("account", a.Number()).Msg("skipping transaction rows")
		}
	}
	return nil
}

// SaveAll persists every customer; one customer's failure does not stop
// the others.
func (m *Mapper) SaveAll(ctx context.Context, customers []*customer.Customer) {
	for _, c := range customers {
		if err := m.SaveCustomer(ctx, c); err != nil {
			m.log.Warn().Err(err).Str("customer", c.Number()).Msg("skipping customer")
		}
	}
}

// LoadAll reconstructs the full graph: customers first, then accounts
// resolved through their type discriminator and re-attached to their owner
// by the customerAccountNumber key, then each account's ledger in timestamp
// order. Account rows with no matching customer are skipped silently; rows
// that fail to decode are logged and skipped.
func (m *Mapper) LoadAll(ctx context.Context) ([]*customer.Customer, error) {
	customerRows, err := m.store.Customers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading customers: %w", err)
	}

	customers := make([]*customer.Customer, 0, len(customerRows))
	byNumber := make(map[string]*customer.Customer, len(customerRows))
	for _, row := range customerRows {
		c := customer.New(row.FirstName, row.Surname, row.Address, row.AccountNumber, row.PIN)
		customers = append(customers, c)
		byNumber[row.AccountNumber] = c
	}

	accountRows, err := m.store.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}
	for _, row := range accountRows {
		owner, ok := byNumber[row.CustomerAccountNumber]
		if !ok {
			continue
		}
		a, err := m.decodeAccount(ctx, row)
		if err != nil {
			m.log.Warn().Err(err).Str("account", row.AccountNumber).Msg("skipping account row")
			continue
		}
		owner.AddAccount(a)
	}
	return customers, nil
}

func (m *Mapper) decodeAccount(ctx context.Context, row models.AccountRow) (account.Account, error) {
	txRows, err := m.store.TransactionsByAccount(ctx, row.AccountNumber)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}
	log := make([]models.Transaction, 0, len(txRows))
	for _, tr := range txRows {
		log = append(log, models.Transaction{
			Kind:         models.Kind(tr.Type),
			Amount:       tr.Amount,
			BalanceAfter: tr.BalanceAfter,
			Timestamp:    tr.Timestamp,
		})
	}
	return account.Restore(account.Snapshot{
		Kind:            account.Kind(row.Type),
		Number:          row.AccountNumber,
		Branch:          row.Branch,
		Owner:           row.CustomerAccountNumber,
		Balance:         row.Balance,
		CompanyAccount:  row.CompanyAccount,
		EmployerName:    row.EmployerName.String,
		EmployerAddress: row.EmployerAddress.String,
		Log:             log,
	}, m.now)
}

// encodeAccount flattens one account into its row form, populating only the
// variant columns that apply.
func encodeAccount(a account.Account, ownerNumber string) models.AccountRow {
	row := models.AccountRow{
		AccountNumber:         a.Number(),
		Balance:               a.Balance(),
		Branch:                a.Branch(),
		CustomerAccountNumber: ownerNumber,
		Type:                  string(a.Kind()),
	}
	switch v := a.(type) {
	case *account.Savings:
		row.CompanyAccount = v.CompanyAccount()
	case *account.Cheque:
		row.EmployerName = sql.NullString{String: v.EmployerName(), Valid: true}
		row.EmployerAddress = sql.NullString{String: v.EmployerAddress(), Valid: true}
	}
	return row
}

func encodeTransactions(a account.Account) []models.TransactionRow {
	log := a.Transactions()
	rows := make([]models.TransactionRow, 0, len(log))
	for _, t := range log {
		rows = append(rows, models.TransactionRow{
			Type:          string(t.Kind),
			Amount:        t.Amount,
			BalanceAfter:  t.BalanceAfter,
			Timestamp:     t.Timestamp,
			AccountNumber: a.Number(),
		})
	}
	return rows
}
