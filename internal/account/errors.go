package account

import "errors"

// Validation errors: rejected before any state change.
var (
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrMinimumDeposit = errors.New("investment account requires a minimum opening deposit of 500.00")
)

// Business-rule errors: the input was well-formed but the operation is not
// allowed for this account right now.
var (
	ErrWithdrawalNotAllowed = errors.New("withdrawal not allowed from a savings account")
	ErrInsufficientFunds    = errors.New("insufficient funds")
)

// ErrUnknownKind is returned when restoring an account from a row whose
// type discriminator matches no known variant.
var ErrUnknownKind = errors.New("unknown account kind")
