package account

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/oleratodev/banking-ledger-system/internal/models"
)

// Kind identifies one of the three account variants. The values match the
// type discriminator stored in the accounts table.
type Kind string

const (
	KindSavings    Kind = models.TypeSavings
	KindInvestment Kind = models.TypeInvestment
	KindCheque     Kind = models.TypeCheque
)

// Account is the closed set of operations shared by the three variants.
// Deposit behaves identically everywhere; Withdraw and ApplyInterest are
// variant-specific. Every successful mutation appends exactly one
// Transaction to the account's ledger; a failed one appends nothing.
type Account interface {
	Number() string
	Branch() string
	Balance() decimal.Decimal
	// OwnerNumber is the account number of the owning customer. It is a
	// lookup key, not an owning reference, so the persisted form carries
	// no object cycle.
	OwnerNumber() string
	Kind() Kind
	Transactions() []models.Transaction

	Deposit(amount decimal.Decimal) error
	Withdraw(amount decimal.Decimal) error
	// ApplyInterest credits the variant's interest and returns the amount
	// credited, zero when the variant does not accrue.
	ApplyInterest() decimal.Decimal
}

// base holds the ledger state common to all variants.
type base struct {
	number  string
	branch  string
	owner   string
	balance decimal.Decimal
	log     []models.Transaction
	now     func() time.Time
}

func newBase(number, branch, owner string, now func() time.Time) base {
	if now == nil {
		now = time.Now
	}
	return base{number: number, branch: branch, owner: owner, now: now}
}

func (b *base) Number() string           { return b.number }
func (b *base) Branch() string           { return b.branch }
func (b *base) Balance() decimal.Decimal { return b.balance }
func (b *base) OwnerNumber() string      { return b.owner }

// Transactions returns a copy of the ledger so callers cannot mutate it.
func (b *base) Transactions() []models.Transaction {
	out := make([]models.Transaction, len(b.log))
	copy(out, b.log)
	return out
}

func (b *base) record(kind models.Kind, amount decimal.Decimal) {
	b.log = append(b.log, models.Transaction{
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: b.balance,
		Timestamp:    b.now(),
	})
}

// Deposit credits a positive amount. There is no upper bound.
func (b *base) Deposit(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	b.balance = b.balance.Add(amount)
	b.record(models.Deposit, amount)
	return nil
}

// debit is the withdrawal path shared by the variants that permit it.
func (b *base) debit(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(b.balance) {
		return ErrInsufficientFunds
	}
	b.balance = b.balance.Sub(amount)
	b.record(models.Withdrawal, amount)
	return nil
}

// creditInterest applies an interest credit. A zero credit is still logged
// so the ledger shows every interest run for accruing variants.
func (b *base) creditInterest(interest decimal.Decimal) {
	b.balance = b.balance.Add(interest)
	b.record(models.InterestCredited, interest)
}
