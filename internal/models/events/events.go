package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Topic names used by the event publisher.
const (
	TopicTransactionRecorded = "transaction_recorded"
	TopicInterestRun         = "interest_run_completed"
)

// TransactionRecorded is published after every successful deposit,
// withdrawal or interest credit.
type TransactionRecorded struct {
	EventID       string          `json:"event_id"`
	AccountNumber string          `json:"account_number"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// InterestRunCompleted is published once per monthly interest run.
type InterestRunCompleted struct {
	EventID       string          `json:"event_id"`
	Accounts      int             `json:"accounts"`
	TotalCredited decimal.Decimal `json:"total_credited"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
