package bank

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/oleratodev/banking-ledger-system/internal/account"
	"github.com/oleratodev/banking-ledger-system/internal/models/events"
	"github.com/oleratodev/banking-ledger-system/internal/persistence"
	"github.com/oleratodev/banking-ledger-system/internal/storage/memory"
)

type capturingPublisher struct {
	topics  []string
	payload []any
}

func (p *capturingPublisher) Publish(topic string, event any) error {
	p.topics = append(p.topics, topic)
	p.payload = append(p.payload, event)
	return nil
}

func newTestService(store *memory.Store, pub *capturingPublisher) *Service {
	mapper := persistence.NewMapper(store, zerolog.Nop())
	seq := NewAccountNumberSequence(100000)
	if pub == nil {
		return NewService(mapper, seq, nil, nil, zerolog.Nop())
	}
	return NewService(mapper, seq, pub, nil, zerolog.Nop())
}

func TestServicePersistsAcrossReload(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	s := newTestService(store, nil)

	c, err := s.CreateCustomer(ctx, "Olerato", "Leburu", "Gaborone", "1234")
	if err != nil {
		t.Fatal(err)
	}
	chq, err := s.OpenCheque(ctx, c.Number(), "Gaborone", "Acme", "Plot 5")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Deposit(ctx, chq.Number(), decimal.NewFromInt(300)); err != nil {
		t.Fatal(err)
	}
	if err := s.Withdraw(ctx, chq.Number(), decimal.NewFromInt(100)); err != nil {
		t.Fatal(err)
	}

	// A fresh service over the same store must see the same graph.
	reloaded := newTestService(store, nil)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatal(err)
	}
	got, ok := reloaded.Account(chq.Number())
	if !ok {
		t.Fatal("account lost across reload")
	}
	if !got.Balance().Equal(decimal.NewFromInt(200)) {
		t.Fatalf("balance=%s want=200", got.Balance())
	}
	if len(got.Transactions()) != 2 {
		t.Fatalf("log len=%d want=2", len(got.Transactions()))
	}
	if !reloaded.Authenticate(c.Number(), "1234") {
		t.Fatal("credentials lost across reload")
	}
}

func TestServiceLoadAdvancesSequence(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	s := newTestService(store, nil)

	c, _ := s.CreateCustomer(ctx, "Olerato", "Leburu", "Gaborone", "1234")
	a, _ := s.OpenSavings(ctx, c.Number(), "Gaborone", false)

	reloaded := newTestService(store, nil)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatal(err)
	}
	c2, err := reloaded.CreateCustomer(ctx, "Kentsenao", "Baseki", "Francistown", "5678")
	if err != nil {
		t.Fatal(err)
	}
	if c2.Number() == c.Number() || c2.Number() == a.Number() {
		t.Fatalf("number %s reissued after reload", c2.Number())
	}
}

func TestServiceLookupMisses(t *testing.T) {
	ctx := context.Background()
	s := newTestService(memory.NewStore(), nil)

	if _, ok := s.Customer("ACC999999"); ok {
		t.Fatal("unknown customer should be an absent result")
	}
	if _, ok := s.Account("ACC999999"); ok {
		t.Fatal("unknown account should be an absent result")
	}
	if err := s.Deposit(ctx, "ACC999999", decimal.NewFromInt(10)); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
	if err := s.SetPIN(ctx, "ACC999999", "1234"); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("want ErrCustomerNotFound, got %v", err)
	}
	if s.Authenticate("ACC999999", "1234") {
		t.Fatal("unknown customer must not authenticate")
	}
}

func TestServiceRejectedOperationLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	s := newTestService(memory.NewStore(), nil)

	c, _ := s.CreateCustomer(ctx, "Olerato", "Leburu", "Gaborone", "1234")
	sav, _ := s.OpenSavings(ctx, c.Number(), "Gaborone", false)
	_ = s.Deposit(ctx, sav.Number(), decimal.NewFromInt(100))

	if err := s.Withdraw(ctx, sav.Number(), decimal.NewFromInt(50)); !errors.Is(err, account.ErrWithdrawalNotAllowed) {
		t.Fatalf("want ErrWithdrawalNotAllowed, got %v", err)
	}
	got, _ := s.Account(sav.Number())
	if !got.Balance().Equal(decimal.NewFromInt(100)) || len(got.Transactions()) != 1 {
		t.Fatal("rejected withdrawal must not change state")
	}
}

func TestServiceMonthlyInterestRun(t *testing.T) {
	ctx := context.Background()
	s := newTestService(memory.NewStore(), nil)

	c, _ := s.CreateCustomer(ctx, "Olerato", "Leburu", "Gaborone", "1234")
	sav, _ := s.OpenSavings(ctx, c.Number(), "Gaborone", false)
	_ = s.Deposit(ctx, sav.Number(), decimal.NewFromInt(1000))
	if _, err := s.OpenInvestment(ctx, c.Number(), "Gaborone", decimal.NewFromInt(500)); err != nil {
		t.Fatal(err)
	}
	_, _ = s.OpenCheque(ctx, c.Number(), "Gaborone", "Acme", "Plot 5")

	total, processed := s.RunMonthlyInterest(ctx)
	if processed != 3 {
		t.Fatalf("processed=%d want=3", processed)
	}
	// 1000 x 0.00025 + 500 x 0.05 + 0
	if !total.Equal(decimal.RequireFromString("25.25")) {
		t.Fatalf("total=%s want=25.25", total)
	}

	// Interest is not idempotent: a second run credits again.
	total2, _ := s.RunMonthlyInterest(ctx)
	if total2.IsZero() {
		t.Fatal("second run should credit interest again")
	}
}

func TestServicePublishesEvents(t *testing.T) {
	ctx := context.Background()
	pub := &capturingPublisher{}
	s := newTestService(memory.NewStore(), pub)

	c, _ := s.CreateCustomer(ctx, "Olerato", "Leburu", "Gaborone", "1234")
	sav, _ := s.OpenSavings(ctx, c.Number(), "Gaborone", false)
	if err := s.Deposit(ctx, sav.Number(), decimal.NewFromInt(50)); err != nil {
		t.Fatal(err)
	}
	s.RunMonthlyInterest(ctx)

	if len(pub.topics) != 2 {
		t.Fatalf("published %d events, want 2: %v", len(pub.topics), pub.topics)
	}
	if pub.topics[0] != events.TopicTransactionRecorded {
		t.Fatalf("topic=%s want=%s", pub.topics[0], events.TopicTransactionRecorded)
	}
	tx, ok := pub.payload[0].(events.TransactionRecorded)
	if !ok {
		t.Fatalf("payload type %T", pub.payload[0])
	}
	if tx.AccountNumber != sav.Number() || !tx.Amount.Equal(decimal.NewFromInt(50)) || tx.EventID == "" {
		t.Fatalf("event payload mismatch: %+v", tx)
	}
	if pub.topics[1] != events.TopicInterestRun {
		t.Fatalf("topic=%s want=%s", pub.topics[1], events.TopicInterestRun)
	}
}
