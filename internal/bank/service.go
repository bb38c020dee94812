package bank

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/oleratodev/banking-ledger-system/internal/account"
	"github.com/oleratodev/banking-ledger-system/internal/customer"
	"github.com/oleratodev/banking-ledger-system/internal/interest"
	"github.com/oleratodev/banking-ledger-system/internal/interfaces"
	"github.com/oleratodev/banking-ledger-system/internal/models/events"
	"github.com/oleratodev/banking-ledger-system/internal/persistence"
)

// Lookup-by-command errors. Plain lookups return an absent result instead.
var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrAccountNotFound  = errors.New("account not found")
)

// Service is the aggregate the external shell talks to. It owns the
// customer set, opens accounts through the teller, applies mutations, and
// persists the affected customer after each one. All operations run under a
// single mutex; there is one logical actor.
//
// Persistence failures never roll the domain back: the in-memory model is
// the source of truth and save errors are only logged.
type Service struct {
	mu        sync.Mutex
	customers []*customer.Customer
	byNumber  map[string]*customer.Customer

	teller    *Teller
	seq       Sequence
	mapper    *persistence.Mapper
	engine    *interest.Engine
	publisher interfaces.EventPublisher
	now       func() time.Time
	log       zerolog.Logger
}

// NewService wires the aggregate. publisher may be nil, in which case no
// events are emitted.
func NewService(mapper *persistence.Mapper, seq Sequence, publisher interfaces.EventPublisher, now func() time.Time, log zerolog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		byNumber:  make(map[string]*customer.Customer),
		teller:    NewTeller(seq, now, log),
		seq:       seq,
		mapper:    mapper,
		engine:    interest.NewEngine(log),
		publisher: publisher,
		now:       now,
		log:       log,
	}
}

// Load replaces the in-memory state with the persisted graph and advances
// the number sequence past every loaded number so none is ever reissued.
func (s *Service) Load(ctx context.Context) error {
	customers, err := s.mapper.LoadAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = customers
	s.byNumber = make(map[string]*customer.Customer, len(customers))
	for _, c := range customers {
		s.byNumber[c.Number()] = c
		s.advance(c.Number())
		for _, a := range c.Accounts() {
			s.advance(a.Number())
		}
	}
	s.log.Info().Int("customers", len(customers)).Msg("state loaded")
	return nil
}

func (s *Service) advance(number string) {
	if seq, ok := s.seq.(*AccountNumberSequence); ok {
		seq.Advance(number)
	}
}

// SaveAll persists every customer. Used at shutdown.
func (s *Service) SaveAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mapper.SaveAll(ctx, s.customers)
}

// CreateCustomer registers a new customer with a generated account number.
func (s *Service) CreateCustomer(ctx context.Context, firstName, surname, address, pin string) (*customer.Customer, error) {
	if err := customer.ValidatePIN(pin); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := customer.New(firstName, surname, address, s.seq.Next(), pin)
	s.customers = append(s.customers, c)
	s.byNumber[c.Number()] = c
	s.save(ctx, c)
	return c, nil
}

// Customer looks up a customer by number; a miss is an absent result.
func (s *Service) Customer(number string) (*customer.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byNumber[number]
	return c, ok
}

// Customers returns all customers in registration order.
func (s *Service) Customers() []*customer.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*customer.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// Account finds an account by number across all customers.
func (s *Service) Account(number string) (account.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, _, ok := s.findAccount(number)
	return a, ok
}

// Authenticate verifies a customer login. Unknown numbers simply fail.
func (s *Service) Authenticate(number, pin string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byNumber[number]
	return ok && c.Authenticate(number, pin)
}

// SetPIN replaces a customer's PIN and persists the change.
func (s *Service) SetPIN(ctx context.Context, number, pin string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byNumber[number]
	if !ok {
		return ErrCustomerNotFound
	}
	if err := c.SetPIN(pin); err != nil {
		return err
	}
	s.save(ctx, c)
	return nil
}

// OpenSavings opens a savings account for the customer.
func (s *Service) OpenSavings(ctx context.Context, customerNumber, branch string, company bool) (account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byNumber[customerNumber]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	a := s.teller.OpenSavings(c, branch, company)
	s.save(ctx, c)
	return a, nil
}

// OpenInvestment opens an investment account; the opening deposit becomes
// the first ledger entry.
func (s *Service) OpenInvestment(ctx context.Context, customerNumber, branch string, opening decimal.Decimal) (account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byNumber[customerNumber]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	a, err := s.teller.OpenInvestment(c, branch, opening)
	if err != nil {
		return nil, err
	}
	s.save(ctx, c)
	s.publishLastTransaction(a)
	return a, nil
}

// OpenCheque opens a cheque account for the customer.
func (s *Service) OpenCheque(ctx context.Context, customerNumber, branch, employerName, employerAddress string) (account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byNumber[customerNumber]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	a := s.teller.OpenCheque(c, branch, employerName, employerAddress)
	s.save(ctx, c)
	return a, nil
}

// Deposit credits an account and persists its owner.
func (s *Service) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, owner, ok := s.findAccount(accountNumber)
	if !ok {
		return ErrAccountNotFound
	}
	if err := a.Deposit(amount); err != nil {
		return err
	}
	s.save(ctx, owner)
	s.publishLastTransaction(a)
	return nil
}

// Withdraw debits an account under its variant's rule and persists its
// owner.
func (s *Service) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, owner, ok := s.findAccount(accountNumber)
	if !ok {
		return ErrAccountNotFound
	}
	if err := a.Withdraw(amount); err != nil {
		return err
	}
	s.save(ctx, owner)
	s.publishLastTransaction(a)
	return nil
}

// RunMonthlyInterest applies interest to every account of every customer,
// persists everything, and reports the total credited and the number of
// accounts processed.
func (s *Service) RunMonthlyInterest(ctx context.Context) (decimal.Decimal, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var accounts []account.Account
	for _, c := range s.customers {
		accounts = append(accounts, c.Accounts()...)
	}
	total := s.engine.ProcessMonthlyInterest(accounts)
	s.mapper.SaveAll(ctx, s.customers)
	s.publish(events.TopicInterestRun, events.InterestRunCompleted{
		EventID:       uuid.New().String(),
		Accounts:      len(accounts),
		TotalCredited: total,
		OccurredAt:    s.now(),
	})
	return total, len(accounts)
}

func (s *Service) findAccount(number string) (account.Account, *customer.Customer, bool) {
	for _, c := range s.customers {
		for _, a := range c.Accounts() {
			if a.Number() == number {
				return a, c, true
			}
		}
	}
	return nil, nil, false
}

func (s *Service) save(ctx context.Context, c *customer.Customer) {
	if err := s.mapper.SaveCustomer(ctx, c); err != nil {
		s.log.Error().Err(err).Str("customer", c.Number()).Msg("persist failed")
	}
}

func (s *Service) publishLastTransaction(a account.Account) {
	log := a.Transactions()
	if len(log) == 0 {
		return
	}
	last := log[len(log)-1]
	s.publish(events.TopicTransactionRecorded, events.TransactionRecorded{
		EventID:       uuid.New().String(),
		AccountNumber: a.Number(),
		Kind:          string(last.Kind),
		Amount:        last.Amount,
		BalanceAfter:  last.BalanceAfter,
		OccurredAt:    last.Timestamp,
	})
}

func (s *Service) publish(topic string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(topic, event); err != nil {
		s.log.Warn().Err(err).Str("topic", topic).Msg("event publish failed")
	}
}
