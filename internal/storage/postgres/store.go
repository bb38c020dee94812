// Package postgres is the lib/pq-backed RecordStore.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/oleratodev/banking-ledger-system/internal/interfaces"
	"github.com/oleratodev/banking-ledger-system/internal/models"
)

type Store struct {
	db *sql.DB
}

// Open connects to Postgres and creates the schema if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) ensureSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS customers (
		accountNumber TEXT PRIMARY KEY,
		firstName TEXT NOT NULL,
		surname TEXT NOT NULL,
		address TEXT,
		pin TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS accounts (
		accountNumber TEXT PRIMARY KEY,
		balance NUMERIC NOT NULL,
		branch TEXT,
		customerAccountNumber TEXT REFERENCES customers (accountNumber),
		type TEXT NOT NULL,
		companyAccount BOOLEAN DEFAULT FALSE,
		employerName TEXT,
		employerAddress TEXT
	);
	CREATE TABLE IF NOT EXISTS transactions (
		id BIGSERIAL PRIMARY KEY,
		type TEXT NOT NULL,
		amount NUMERIC NOT NULL,
		balanceAfter NUMERIC NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL,
		accountNumber TEXT REFERENCES accounts (accountNumber)
	);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

func (s *Store) UpsertCustomer(ctx context.Context, row models.CustomerRow) error {
	const query = `INSERT INTO customers (accountNumber, firstName, surname, address, pin)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (accountNumber) DO UPDATE
	SET firstName = EXCLUDED.firstName, surname = EXCLUDED.surname,
	    address = EXCLUDED.address, pin = EXCLUDED.pin`

	_, err := s.db.ExecContext(ctx, query, row.AccountNumber, row.FirstName, row.Surname, row.Address, row.PIN)
	return err
}

func (s *Store) UpsertAccount(ctx context.Context, row models.AccountRow) error {
	const query = `INSERT INTO accounts
	(accountNumber, balance, branch, customerAccountNumber, type, companyAccount, employerName, employerAddress)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (accountNumber) DO UPDATE
	SET balance = EXCLUDED.balance, branch = EXCLUDED.branch,
	    customerAccountNumber = EXCLUDED.customerAccountNumber, type = EXCLUDED.type,
	    companyAccount = EXCLUDED.companyAccount, employerName = EXCLUDED.employerName,
	    employerAddress = EXCLUDED.employerAddress`

	_, err := s.db.ExecContext(ctx, query,
		row.AccountNumber, row.Balance, row.Branch, row.CustomerAccountNumber,
		row.Type, row.CompanyAccount, row.EmployerName, row.EmployerAddress)
	return err
}

// ReplaceTransactions swaps the account's stored ledger for the given rows
// inside one database transaction, so a failed save leaves the old rows in
// place.
func (s *Store) ReplaceTransactions(ctx context.Context, accountNumber string, rows []models.TransactionRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE accountNumber = $1`, accountNumber); err != nil {
		return err
	}
	const insert = `INSERT INTO transactions (type, amount, balanceAfter, timestamp, accountNumber)
	VALUES ($1, $2, $3, $4, $5)`
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, insert, row.Type, row.Amount, row.BalanceAfter, row.Timestamp, accountNumber); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) Customers(ctx context.Context) ([]models.CustomerRow, error) {
	const query = `SELECT accountNumber, firstName, surname, address, pin FROM customers ORDER BY accountNumber`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CustomerRow
	for rows.Next() {
		var row models.CustomerRow
		if err := rows.Scan(&row.AccountNumber, &row.FirstName, &row.Surname, &row.Address, &row.PIN); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) Accounts(ctx context.Context) ([]models.AccountRow, error) {
	const query = `SELECT accountNumber, balance, branch, customerAccountNumber, type,
	companyAccount, employerName, employerAddress
	FROM accounts ORDER BY accountNumber`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AccountRow
	for rows.Next() {
		var row models.AccountRow
		if err := rows.Scan(
			&row.AccountNumber, &row.Balance, &row.Branch, &row.CustomerAccountNumber,
			&row.Type, &row.CompanyAccount, &row.EmployerName, &row.EmployerAddress,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) TransactionsByAccount(ctx context.Context, accountNumber string) ([]models.TransactionRow, error) {
	const query = `SELECT id, type, amount, balanceAfter, timestamp, accountNumber
	FROM transactions WHERE accountNumber = $1 ORDER BY timestamp, id`

	rows, err := s.db.QueryContext(ctx, query, accountNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TransactionRow
	for rows.Next() {
		var row models.TransactionRow
		if err := rows.Scan(&row.ID, &row.Type, &row.Amount, &row.BalanceAfter, &row.Timestamp, &row.AccountNumber); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

var _ interfaces.RecordStore = (*Store)(nil)
