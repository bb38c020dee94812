package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// Monthly savings interest rates.
var (
	IndividualRate = decimal.NewFromFloat(0.00025) // 0.025%
	CompanyRate    = decimal.NewFromFloat(0.00075) // 0.075%
)

// Savings never permits withdrawals. Interest accrues at the company rate
// for company accounts, otherwise at the individual rate.
type Savings struct {
	base
	company bool
}

// NewSavings opens a savings account with a zero balance.
func NewSavings(number, branch, owner string, company bool, now func() time.Time) *Savings {
	return &Savings{base: newBase(number, branch, owner, now), company: company}
}

func (s *Savings) Kind() Kind           { return KindSavings }
func (s *Savings) CompanyAccount() bool { return s.company }

// Withdraw always fails: savings balances can only grow.
func (s *Savings) Withdraw(decimal.Decimal) error { return ErrWithdrawalNotAllowed }

func (s *Savings) ApplyInterest() decimal.Decimal {
	rate := IndividualRate
	if s.company {
		rate = CompanyRate
	}
	interest := s.balance.Mul(rate)
	s.creditInterest(interest)
	return interest
}
