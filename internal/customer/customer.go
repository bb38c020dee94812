// Package customer holds the customer entity. A customer owns its accounts
// for lifecycle purposes; accounts refer back to their owner by account
// number only.
package customer

import (
	"errors"
	"regexp"

	"github.com/oleratodev/banking-ledger-system/internal/account"
)

// ErrMalformedPIN is returned when a PIN is not exactly four decimal digits.
var ErrMalformedPIN = errors.New("pin must be exactly four digits")

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// ValidatePIN checks the four-decimal-digit rule without changing anything.
func ValidatePIN(pin string) error {
	if !pinPattern.MatchString(pin) {
		return ErrMalformedPIN
	}
	return nil
}

// Customer is a bank customer. The customer's own account number doubles as
// the login identifier.
type Customer struct {
	firstName string
	surname   string
	address   string
	number    string
	pin       string
	accounts  []account.Account
}

func New(firstName, surname, address, number, pin string) *Customer {
	return &Customer{
		firstName: firstName,
		surname:   surname,
		address:   address,
		number:    number,
		pin:       pin,
	}
}

func (c *Customer) FirstName() string { return c.firstName }
func (c *Customer) Surname() string   { return c.surname }
func (c *Customer) Address() string   { return c.address }
func (c *Customer) Number() string    { return c.number }
func (c *Customer) PIN() string       { return c.pin }

// Authenticate succeeds only on an exact, case-sensitive match of both the
// account number and the PIN.
func (c *Customer) Authenticate(number, pin string) bool {
	return c.number == number && c.pin == pin
}

// SetPIN replaces the stored PIN. The old PIN is kept on failure.
func (c *Customer) SetPIN(pin string) error {
	if err := ValidatePIN(pin); err != nil {
		return err
	}
	c.pin = pin
	return nil
}

// AddAccount appends to the owned accounts; insertion order is the account
// opening order. No dedup check is performed.
func (c *Customer) AddAccount(a account.Account) {
	c.accounts = append(c.accounts, a)
}

// Accounts returns a copy of the owned account list.
func (c *Customer) Accounts() []account.Account {
	out := make([]account.Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}
