package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a balance-affecting event. The values double as the
// persisted representation in the transactions table.
type Kind string

const (
	Deposit          Kind = "Deposit"
	Withdrawal       Kind = "Withdrawal"
	InterestCredited Kind = "Interest Credited"
)

// Transaction is an immutable record of one balance mutation. It is created
// only as a side effect of a successful deposit, withdrawal or interest
// credit, and is never changed afterwards.
type Transaction struct {
	Kind         Kind
	Amount       decimal.Decimal // always positive (or zero for a zero interest credit)
	BalanceAfter decimal.Decimal // account balance immediately after this event
	Timestamp    time.Time
}
