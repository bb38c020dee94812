package account

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/oleratodev/banking-ledger-system/internal/models"
)

// Snapshot is the flat form of an account used when reconstructing from
// storage. Variant-specific fields are ignored for the variants they do
// not apply to.
type Snapshot struct {
	Kind            Kind
	Number          string
	Branch          string
	Owner           string
	Balance         decimal.Decimal
	CompanyAccount  bool
	EmployerName    string
	EmployerAddress string
	Log             []models.Transaction
}

// Restore rebuilds an account from a snapshot, resolving the variant by its
// kind discriminator. This is reconstruction, not origination: it restores
// the balance and ledger directly and bypasses opening-time invariants such
// as the investment minimum deposit.
func Restore(s Snapshot, now func() time.Time) (Account, error) {
	b := newBase(s.Number, s.Branch, s.Owner, now)
	b.balance = s.Balance
	b.log = append(b.log, s.Log...)

	switch s.Kind {
	case KindSavings:
		return &Savings{base: b, company: s.CompanyAccount}, nil
	case KindInvestment:
		return &Investment{base: b}, nil
	case KindCheque:
		return &Cheque{base: b, employerName: s.EmployerName, employerAddress: s.EmployerAddress}, nil
	default:
		return nil, ErrUnknownKind
	}
}
