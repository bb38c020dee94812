package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentRate is the monthly interest rate for investment accounts.
var InvestmentRate = decimal.NewFromFloat(0.05)

// MinimumInvestmentDeposit is enforced at opening time only; reconstruction
// from storage bypasses it.
var MinimumInvestmentDeposit = decimal.NewFromInt(500)

// Investment requires a minimum opening deposit and permits withdrawals
// within the balance.
type Investment struct {
	base
}

// NewInvestment opens an investment account. The opening deposit goes
// through the normal deposit path, so it becomes the first ledger entry.
func NewInvestment(number, branch, owner string, opening decimal.Decimal, now func() time.Time) (*Investment, error) {
	if opening.LessThan(MinimumInvestmentDeposit) {
		return nil, ErrMinimumDeposit
	}
	a := &Investment{base: newBase(number, branch, owner, now)}
	if err := a.Deposit(opening); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Investment) Kind() Kind { return KindInvestment }

func (a *Investment) Withdraw(amount decimal.Decimal) error { return a.debit(amount) }

func (a *Investment) ApplyInterest() decimal.Decimal {
	interest := a.balance.Mul(InvestmentRate)
	a.creditInterest(interest)
	return interest
}
