// Package sqlite is the go-sqlite3-backed RecordStore. The schema matches
// the Postgres store; SQLite's INSERT OR REPLACE stands in for ON CONFLICT
// upserts.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/oleratodev/banking-ledger-system/internal/interfaces"
	"github.com/oleratodev/banking-ledger-system/internal/models"
)

type Store struct {
	db *sql.DB
}

// Open opens (creating if absent) the database file and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) ensureSchema() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS customers (
		accountNumber TEXT PRIMARY KEY,
		firstName TEXT NOT NULL,
		surname TEXT NOT NULL,
		address TEXT,
		pin TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS accounts (
		accountNumber TEXT PRIMARY KEY,
		balance REAL NOT NULL,
		branch TEXT,
		customerAccountNumber TEXT,
		type TEXT NOT NULL,
		companyAccount BOOLEAN DEFAULT FALSE,
		employerName TEXT,
		employerAddress TEXT,
		FOREIGN KEY (customerAccountNumber) REFERENCES customers (accountNumber)
	);
	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type TEXT NOT NULL,
		amount REAL NOT NULL,
		balanceAfter REAL NOT NULL,
		timestamp DATETIME NOT NULL,
		accountNumber TEXT,
		FOREIGN KEY (accountNumber) REFERENCES accounts (accountNumber)
	);`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

func (s *Store) UpsertCustomer(ctx context.Context, row models.CustomerRow) error {
	const query = `INSERT OR REPLACE INTO customers (accountNumber, firstName, surname, address, pin)
	VALUES (?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query, row.AccountNumber, row.FirstName, row.Surname, row.Address, row.PIN)
	return err
}

func (s *Store) UpsertAccount(ctx context.Context, row models.AccountRow) error {
	const query = `INSERT OR REPLACE INTO accounts
	(accountNumber, balance, branch, customerAccountNumber, type, companyAccount, employerName, employerAddress)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		row.AccountNumber, row.Balance, row.Branch, row.CustomerAccountNumber,
		row.Type, row.CompanyAccount, row.EmployerName, row.EmployerAddress)
	return err
}

func (s *Store) ReplaceTransactions(ctx context.Context, accountNumber string, rows []models.TransactionRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE accountNumber = ?`, accountNumber); err != nil {
		return err
	}
	const insert = `INSERT INTO transactions (type, amount, balanceAfter, timestamp, accountNumber)
	VALUES (?, ?, ?, ?, ?)`
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
	FROM transactions WHERE accountNumber = ? ORDER BY timestamp, id`

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
