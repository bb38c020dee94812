package bank

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/oleratodev/banking-ledger-system/internal/account"
	"github.com/oleratodev/banking-ledger-system/internal/customer"
)

// Teller opens accounts on behalf of customers: it draws an account number
// from the sequence, constructs the variant and attaches it to its owner.
type Teller struct {
	seq Sequence
	now func() time.Time
	log zerolog.Logger
}

func NewTeller(seq Sequence, now func() time.Time, log zerolog.Logger) *Teller {
	if now == nil {
		now = time.Now
	}
	return &Teller{seq: seq, now: now, log: log}
}

func (t *Teller) OpenSavings(c *customer.Customer, branch string, company bool) *account.Savings {
	a := account.NewSavings(t.seq.Next(), branch, c.Number(), company, t.now)
	c.AddAccount(a)
	t.log.Info().Str("account", a.Number()).Str("customer", c.Number()).Msg("savings account opened")
	return a
}

// OpenInvestment fails before any account exists when the opening deposit
// is below the minimum.
func (t *Teller) OpenInvestment(c *customer.Customer, branch string, opening decimal.Decimal) (*account.Investment, error) {
	a, err := account.NewInvestment(t.seq.Next(), branch, c.Number(), opening, t.now)
	if err != nil {
		return nil, err
	}
	c.AddAccount(a)
	t.log.Info().Str("account", a.Number()).Str("customer", c.Number()).Msg("investment account opened")
	return a, nil
}

func (t *Teller) OpenCheque(c *customer.Customer, branch, employerName, employerAddress string) *account.Cheque {
	a := account.NewCheque(t.seq.Next(), branch, c.Number(), employerName, employerAddress, t.now)
	c.AddAccount(a)
	t.log.Info().Str("account", a.Number()).Str("customer", c.Number()).Msg("cheque account opened")
	return a
}
