package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Account type discriminator values stored in the accounts.type column.
const (
	TypeSavings    = "SavingsAccount"
	TypeInvestment = "InvestmentAccount"
	TypeCheque     = "ChequeAccount"
)

// CustomerRow mirrors one row of the customers table.
type CustomerRow struct {
	AccountNumber string
	FirstName     string
	Surname       string
	Address       string
	PIN           string
}

// AccountRow mirrors one row of the accounts table. The three account
// variants share the schema; columns that do not apply to a variant are
// left null (employer fields) or false (companyAccount).
type AccountRow struct {
	AccountNumber         string
	Balance               decimal.Decimal
	Branch                string
	CustomerAccountNumber string
	Type                  string // discriminator, one of the Type* constants
	CompanyAccount        bool
	EmployerName          sql.NullString
	EmployerAddress       sql.NullString
}

// TransactionRow mirrors one row of the transactions table. ID is assigned
// by the store on insert.
type TransactionRow struct {
	ID            int64
	Type          string
	Amount        decimal.Decimal
	BalanceAfter  decimal.Decimal
	Timestamp     time.Time
	AccountNumber string
}
