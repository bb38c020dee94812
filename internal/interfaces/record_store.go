package interfaces

import (
	"context"

	"github.com/oleratodev/banking-ledger-system/internal/models"
)

// RecordStore is the flat-row persistence boundary. Implementations exist
// for Postgres, SQLite and in-memory storage; the mapper layers the domain
// graph on top of these row operations.
type RecordStore interface {
	UpsertCustomer(ctx context.Context, row models.CustomerRow) error
	UpsertAccount(ctx context.Context, row models.AccountRow) error
	// ReplaceTransactions drops any rows held for the account and inserts
	// the given rows, so repeated saves of the same ledger stay duplicate
	// free.
	ReplaceTransactions(ctx context.Context, accountNumber string, rows []models.TransactionRow) error

	Customers(ctx context.Context) ([]models.CustomerRow, error)
	Accounts(ctx context.Context) ([]models.AccountRow, error)
	// TransactionsByAccount returns rows ordered by timestamp.
	TransactionsByAccount(ctx context.Context, accountNumber string) ([]models.TransactionRow, error)
}
