package tally

import (
	"errors"
	"testing"
	"time"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := New(DefaultConfig(t.TempDir()))
	if err != nil {
		t.Fatal(err)
	}
	l.now = func() time.Time {
		return time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)
	}
	return l
}

func mustRegister(t *testing.T, l *Ledger, name, password string) {
	t.Helper()
	if _, err := l.Register(name, password); err != nil {
		t.Fatalf("Register(%q): %v", name, err)
	}
}

func balanceCents(t *testing.T, l *Ledger, name string) int64 {
	t.Helper()
	m, err := l.Balance(name)
	if err != nil {
		t.Fatalf("Balance(%q): %v", name, err)
	}
	return m.Cents()
}

func TestLedger_Register(t *testing.T) {
	l := newTestLedger(t)

	tx, err := l.Register("alice", "pw123")
	if err != nil {
		t.Fatal(err)
	}

	if got := balanceCents(t, l, "alice"); got != l.cfg.InitialBalance {
		t.Errorf("balance after registration = %d, want %d", got, l.cfg.InitialBalance)
	}

	// exactly one funding record, from the admin account
	history, err := l.History("alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 {
		t.Fatalf("history has %d records, want 1", len(history))
	}
	funding := history[0]
	if funding.Sender != l.cfg.Admin || funding.Receiver != "alice" {
		t.Errorf("funding record %s -> %s, want %s -> alice", funding.Sender, funding.Receiver, l.cfg.Admin)
	}
	if funding.Amount != l.cfg.InitialBalance || funding.Fee != 0 {
		t.Errorf("funding amount/fee = %d/%d, want %d/0", funding.Amount, funding.Fee, l.cfg.InitialBalance)
	}
	if funding.ID != tx.ID {
		t.Errorf("recorded id %s does not match returned transaction %s", funding.ID, tx.ID)
	}

	// the admin is an external funding source, never an account record
	book, err := LoadBook(l.cfg.AccountsFile)
	if err != nil {
		t.Fatal(err)
	}
	if book.Exists(l.cfg.Admin) {
		t.Error("admin account must not appear in the accounts file")
	}
}

func TestLedger_RegisterValidation(t *testing.T) {
	l := newTestLedger(t)
	mustRegister(t, l, "alice", "pw123")

	testCases := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "duplicate username", username: "alice", password: "other", wantErr: ErrDuplicateAccount},
		{name: "empty username", username: "", password: "pw", wantErr: ErrEmptyCredentials},
		{name: "empty password", username: "bob", password: "", wantErr: ErrEmptyCredentials},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := l.Register(tc.username, tc.password); !errors.Is(err, tc.wantErr) {
				t.Errorf("Register error = %v, want %v", err, tc.wantErr)
			}
		})
	}

	// failed registrations never touch existing balances
	if got := balanceCents(t, l, "alice"); got != l.cfg.InitialBalance {
		t.Errorf("alice's balance changed to %d after failed registrations", got)
	}
}

func TestLedger_Login(t *testing.T) {
	l := newTestLedger(t)
	mustRegister(t, l, "alice", "pw123")

	if err := l.Login("alice", "pw123"); err != nil {
		t.Errorf("valid login rejected: %v", err)
	}
	if err := l.Login("alice", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("wrong password: error = %v, want ErrBadCredentials", err)
	}
	if err := l.Login("ghost", "pw123"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("unknown user: error = %v, want ErrBadCredentials", err)
	}
	// a failed login leaves the balance untouched
	if got := balanceCents(t, l, "alice"); got != l.cfg.InitialBalance {
		t.Errorf("balance after failed login = %d, want %d", got, l.cfg.InitialBalance)
	}
}

func TestLedger_Transfer(t *testing.T) {
	l := newTestLedger(t)
	mustRegister(t, l, "alice", "pw123")
	mustRegister(t, l, "bob", "pw456")

	// 100.00 falls in the 5% tier: fee 5.00
	tx, err := l.Transfer("alice", "bob", M(100_00, "USD"))
	if err != nil {
		t.Fatal(err)
	}
	if tx.Amount != 100_00 || tx.Fee != 5_00 {
		t.Errorf("recorded amount/fee = %d/%d, want 10000/500", tx.Amount, tx.Fee)
	}

	if got := balanceCents(t, l, "alice"); got != 1_000_00-100_00-5_00 {
		t.Errorf("sender balance = %d, want %d", got, 1_000_00-100_00-5_00)
	}
	if got := balanceCents(t, l, "bob"); got != 1_000_00+100_00 {
		t.Errorf("receiver balance = %d, want %d", got, 1_000_00+100_00)
	}

	history, err := l.History("alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 {
		t.Fatalf("alice's history has %d records, want funding + transfer", len(history))
	}
	if history[1].ID != tx.ID {
		t.Errorf("last record id %s, want %s", history[1].ID, tx.ID)
	}
}

func TestLedger_TransferRejections(t *testing.T) {
	l := newTestLedger(t)
	mustRegister(t, l, "alice", "pw123")
	mustRegister(t, l, "bob", "pw456")

	testCases := []struct {
		name     string
		sender   string
		receiver string
		amount   int64
		wantErr  error
	}{
		{name: "self transfer", sender: "alice", receiver: "alice", amount: 10_00, wantErr: ErrSelfTransfer},
		{name: "zero amount", sender: "alice", receiver: "bob", amount: 0, wantErr: ErrNonPositiveAmount},
		{name: "negative amount", sender: "alice", receiver: "bob", amount: -10_00, wantErr: ErrNonPositiveAmount},
		{name: "unknown receiver", sender: "alice", receiver: "ghost", amount: 10_00, wantErr: ErrUnknownAccount},
		{name: "unknown sender", sender: "ghost", receiver: "bob", amount: 10_00, wantErr: ErrUnknownAccount},
		// 1,000.00 carries a 15% fee: 1,150.00 total exceeds the 1,000.00 balance
		{name: "insufficient funds", sender: "alice", receiver: "bob", amount: 1_000_00, wantErr: ErrInsufficientFunds},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := l.Transfer(tc.sender, tc.receiver, M(tc.amount, "USD")); !errors.Is(err, tc.wantErr) {
				t.Errorf("Transfer error = %v, want %v", err, tc.wantErr)
			}
		})
	}

	// no rejected transfer may leave a partial debit or credit
	if got := balanceCents(t, l, "alice"); got != 1_000_00 {
		t.Errorf("alice's balance = %d after rejected transfers, want 100000", got)
	}
	if got := balanceCents(t, l, "bob"); got != 1_000_00 {
		t.Errorf("bob's balance = %d after rejected transfers, want 100000", got)
	}
	// and no transaction record may exist beyond the two funding ones
	all, err := ReadTransactions(l.cfg.TransactionsFile)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("log has %d records after rejected transfers, want 2", len(all))
	}
}

func TestLedger_TransferConservesMoney(t *testing.T) {
	l := newTestLedger(t)
	mustRegister(t, l, "alice", "pw123")
	mustRegister(t, l, "bob", "pw456")

	// 200.00 falls in the 10% tier: fee 20.00
	before := balanceCents(t, l, "alice") + balanceCents(t, l, "bob")
	tx, err := l.Transfer("alice", "bob", M(200_00, "USD"))
	if err != nil {
		t.Fatal(err)
	}
	if tx.Fee != 20_00 {
		t.Errorf("fee = %d, want 2000", tx.Fee)
	}
	after := balanceCents(t, l, "alice") + balanceCents(t, l, "bob")
	if after != before-tx.Fee {
		t.Errorf("total balance went from %d to %d, want a drop of exactly the fee %d", before, after, tx.Fee)
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig(t.TempDir())
	cfg.Fees = FeeSchedule{} // invalid: empty
	if _, err := New(cfg); err == nil {
		t.Error("New accepted an invalid fee schedule")
	}

	cfg = DefaultConfig(t.TempDir())
	cfg.InitialBalance = -1
	if _, err := New(cfg); err == nil {
		t.Error("New accepted a negative initial balance")
	}
}
