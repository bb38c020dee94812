package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cheque carries employer details, permits withdrawals within the balance
// and never accrues interest.
type Cheque struct {
	base
	employerName    string
	employerAddress string
}

// NewCheque opens a cheque account with a zero balance.
func NewCheque(number, branch, owner, employerName, employerAddress string, now func() time.Time) *Cheque {
	return &Cheque{
		base:            newBase(number, branch, owner, now),
		employerName:    employerName,
		employerAddress: employerAddress,
	}
}

func (c *Cheque) Kind() Kind              { return KindCheque }
func (c *Cheque) EmployerName() string    { return c.employerName }
func (c *Cheque) EmployerAddress() string { return c.employerAddress }

func (c *Cheque) Withdraw(amount decimal.Decimal) error { return c.debit(amount) }

// ApplyInterest is a no-op: cheque accounts do not accrue, so nothing is
// credited and nothing is logged.
func (c *Cheque) ApplyInterest() decimal.Decimal { return decimal.Zero }
