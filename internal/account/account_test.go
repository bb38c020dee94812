package account

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oleratodev/banking-ledger-system/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// testClock returns a clock that advances one second per call, so log
// timestamps are deterministic and strictly increasing.
func testClock() func() time.Time {
	t := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

// checkInvariant asserts the core ledger invariant: the balance equals the
// BalanceAfter of the last log entry, or zero when the log is empty.
func checkInvariant(t *testing.T, a Account) {
	t.Helper()
	log := a.Transactions()
	if len(log) == 0 {
		if !a.Balance().IsZero() {
			t.Fatalf("empty log but balance=%s", a.Balance())
		}
		return
	}
	if last := log[len(log)-1].BalanceAfter; !a.Balance().Equal(last) {
		t.Fatalf("balance=%s does not match last BalanceAfter=%s", a.Balance(), last)
	}
}

func TestDepositIncreasesBalanceAndLogs(t *testing.T) {
	a := NewSavings("ACC100001", "Gaborone", "ACC100000", false, testClock())

	if err := a.Deposit(d("150.50")); err != nil {
		t.Fatal(err)
	}
	if err := a.Deposit(d("49.50")); err != nil {
		t.Fatal(err)
	}
	if !a.Balance().Equal(d("200")) {
		t.Fatalf("balance=%s want=200", a.Balance())
	}
	log := a.Transactions()
	if len(log) != 2 {
		t.Fatalf("log len=%d want=2", len(log))
	}
	if log[0].Kind != models.Deposit || !log[0].Amount.Equal(d("150.50")) || !log[0].BalanceAfter.Equal(d("150.50")) {
		t.Fatalf("log[0] unexpected: %+v", log[0])
	}
	if log[1].Timestamp.Before(log[0].Timestamp) {
		t.Fatal("timestamps must be non-decreasing")
	}
	checkInvariant(t, a)
}

func TestDepositRejectsNonPositive(t *testing.T) {
	a := NewCheque("ACC100002", "Gaborone", "ACC100000", "Acme", "Plot 5", testClock())
	_ = a.Deposit(d("100"))

	for _, amt := range []string{"0", "-5"} {
		if err := a.Deposit(d(amt)); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount=%s want ErrInvalidAmount, got %v", amt, err)
		}
	}
	if !a.Balance().Equal(d("100")) || len(a.Transactions()) != 1 {
		t.Fatal("rejected deposit must not change state")
	}
}

func TestSavingsWithdrawAlwaysFails(t *testing.T) {
	a := NewSavings("ACC100003", "Gaborone", "ACC100000", false, testClock())
	_ = a.Deposit(d("1000"))

	for _, amt := range []string{"1", "1000", "0", "-10"} {
		if err := a.Withdraw(d(amt)); !errors.Is(err, ErrWithdrawalNotAllowed) {
			t.Fatalf("amount=%s want ErrWithdrawalNotAllowed, got %v", amt, err)
		}
	}
	if !a.Balance().Equal(d("1000")) || len(a.Transactions()) != 1 {
		t.Fatal("failed withdrawal must not change state")
	}
}

func TestSavingsInterestIndividual(t *testing.T) {
	a := NewSavings("ACC100004", "Gaborone", "ACC100000", false, testClock())
	if err := a.Deposit(d("1000")); err != nil {
		t.Fatal(err)
	}

	credited := a.ApplyInterest()
	if !credited.Equal(d("0.25")) {
		t.Fatalf("credited=%s want=0.25", credited)
	}
	if !a.Balance().Equal(d("1000.25")) {
		t.Fatalf("balance=%s want=1000.25", a.Balance())
	}
	log := a.Transactions()
	if len(log) != 2 {
		t.Fatalf("log len=%d want=2", len(log))
	}
	if log[1].Kind != models.InterestCredited || !log[1].Amount.Equal(d("0.25")) || !log[1].BalanceAfter.Equal(d("1000.25")) {
		t.Fatalf("log[1] unexpected: %+v", log[1])
	}
	checkInvariant(t, a)
}

func TestSavingsInterestCompany(t *testing.T) {
	a := NewSavings("ACC100005", "Gaborone", "ACC100000", true, testClock())
	_ = a.Deposit(d("1000"))

	if credited := a.ApplyInterest(); !credited.Equal(d("0.75")) {
		t.Fatalf("credited=%s want=0.75", credited)
	}
	if !a.Balance().Equal(d("1000.75")) {
		t.Fatalf("balance=%s want=1000.75", a.Balance())
	}
}

func TestZeroInterestStillLogged(t *testing.T) {
	a := NewSavings("ACC100006", "Gaborone", "ACC100000", false, testClock())

	if credited := a.ApplyInterest(); !credited.IsZero() {
		t.Fatalf("credited=%s want=0", credited)
	}
	log := a.Transactions()
	if len(log) != 1 || log[0].Kind != models.InterestCredited || !log[0].Amount.IsZero() {
		t.Fatalf("zero interest credit must still log: %+v", log)
	}
	checkInvariant(t, a)
}

func TestInvestmentMinimumOpeningDeposit(t *testing.T) {
	if _, err := NewInvestment("ACC100007", "Gaborone", "ACC100000", d("499.99"), testClock()); !errors.Is(err, ErrMinimumDeposit) {
		t.Fatalf("want ErrMinimumDeposit, got %v", err)
	}

	a, err := NewInvestment("ACC100007", "Gaborone", "ACC100000", d("500"), testClock())
	if err != nil {
		t.Fatal(err)
	}
	log := a.Transactions()
	if len(log) != 1 || log[0].Kind != models.Deposit || !log[0].Amount.Equal(d("500")) {
		t.Fatalf("opening deposit must be the first log entry: %+v", log)
	}
}

func TestInvestmentWithdrawOverBalance(t *testing.T) {
	a, err := NewInvestment("ACC100008", "Gaborone", "ACC100000", d("500"), testClock())
	if err != nil {
		t.Fatal(err)
	}

	if err := a.Withdraw(d("600")); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	if !a.Balance().Equal(d("500")) || len(a.Transactions()) != 1 {
		t.Fatal("failed withdrawal must not change state")
	}

	if err := a.Withdraw(d("200")); err != nil {
		t.Fatal(err)
	}
	if !a.Balance().Equal(d("300")) {
		t.Fatalf("balance=%s want=300", a.Balance())
	}
	checkInvariant(t, a)
}

func TestInvestmentInterest(t *testing.T) {
	a, err := NewInvestment("ACC100009", "Gaborone", "ACC100000", d("500"), testClock())
	if err != nil {
		t.Fatal(err)
	}
	if credited := a.ApplyInterest(); !credited.Equal(d("25")) {
		t.Fatalf("credited=%s want=25", credited)
	}
	if !a.Balance().Equal(d("525")) {
		t.Fatalf("balance=%s want=525", a.Balance())
	}
}

func TestChequeNoInterest(t *testing.T) {
	a := NewCheque("ACC100010", "Gaborone", "ACC100000", "Acme", "Plot 5", testClock())
	_ = a.Deposit(d("250"))

	if credited := a.ApplyInterest(); !credited.IsZero() {
		t.Fatalf("credited=%s want=0", credited)
	}
	if len(a.Transactions()) != 1 {
		t.Fatal("cheque interest must not log a transaction")
	}
	if !a.Balance().Equal(d("250")) {
		t.Fatalf("balance=%s want=250", a.Balance())
	}
}

func TestChequeWithdraw(t *testing.T) {
	a := NewCheque("ACC100011", "Gaborone", "ACC100000", "Acme", "Plot 5", testClock())
	_ = a.Deposit(d("100"))

	if err := a.Withdraw(d("0")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("want ErrInvalidAmount, got %v", err)
	}
	if err := a.Withdraw(d("40")); err != nil {
		t.Fatal(err)
	}
	if !a.Balance().Equal(d("60")) {
		t.Fatalf("balance=%s want=60", a.Balance())
	}
	log := a.Transactions()
	if log[len(log)-1].Kind != models.Withdrawal {
		t.Fatalf("last entry should be a withdrawal: %+v", log[len(log)-1])
	}
	checkInvariant(t, a)
}

func TestRestoreRoundsOutVariants(t *testing.T) {
	snap := Snapshot{
		Kind:            KindCheque,
		Number:          "ACC100012",
		Branch:          "Francistown",
		Owner:           "ACC100000",
		Balance:         d("75.50"),
		EmployerName:    "Acme",
		EmployerAddress: "Plot 5",
		Log: []models.Transaction{
			{Kind: models.Deposit, Amount: d("75.50"), BalanceAfter: d("75.50"), Timestamp: time.Now()},
		},
	}
	a, err := Restore(snap, nil)
	if err != nil {
		t.Fatal(err)
	}
	ch, ok := a.(*Cheque)
	if !ok {
		t.Fatalf("want *Cheque, got %T", a)
	}
	if ch.EmployerName() != "Acme" || !ch.Balance().Equal(d("75.50")) || len(ch.Transactions()) != 1 {
		t.Fatalf("restored account mismatch: %+v", ch)
	}

	// Restoring an investment below the opening minimum must succeed:
	// reconstruction bypasses origination invariants.
	inv, err := Restore(Snapshot{Kind: KindInvestment, Number: "ACC100013", Balance: d("10")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !inv.Balance().Equal(d("10")) {
		t.Fatalf("balance=%s want=10", inv.Balance())
	}

	if _, err := Restore(Snapshot{Kind: "FixedDeposit"}, nil); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("want ErrUnknownKind, got %v", err)
	}
}
