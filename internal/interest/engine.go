// Package interest runs the monthly interest cycle over a set of accounts.
package interest

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/oleratodev/banking-ledger-system/internal/account"
)

// Engine applies each account's own interest rule, in collection order.
// A run is not idempotent: running twice credits twice, so the caller must
// invoke it exactly once per billing period.
type Engine struct {
	log zerolog.Logger
}

func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{log: log}
}

// ProcessMonthlyInterest credits interest on every account independently
// and returns the total amount credited across the run.
func (e *Engine) ProcessMonthlyInterest(accounts []account.Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		credited := a.ApplyInterest()
		if !credited.IsZero() {
			e.log.Debug().
				Str("account", a.Number()).
				Str("credited", credited.String()).
				Msg("interest credited")
		}
		total = total.Add(credited)
	}
	e.log.Info().
		Int("accounts", len(accounts)).
		Str("total_credited", total.String()).
		Msg("monthly interest processed")
	return total
}
