package cmd

import (
	"strings"
	"testing"

	"github.com/pmallet/tally"
)

func newSessionLedger(t *testing.T) *tally.Ledger {
	t.Helper()
	ledger, err := tally.New(tally.DefaultConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return ledger
}

// runScript feeds the session a scripted input and returns everything it
// printed.
func runScript(t *testing.T, ledger *tally.Ledger, script string) string {
	t.Helper()
	var out strings.Builder
	if err := runSession(ledger, NewPrompter(strings.NewReader(script), &out)); err != nil {
		t.Fatalf("runSession() error = %v\noutput:\n%s", err, out.String())
	}
	return out.String()
}

func TestSession_FullFlow(t *testing.T) {
	ledger := newSessionLedger(t)

	// Register alice and bob, log in as alice, send 100.00 to bob, then
	// check the balance and the history before quitting.
	script := strings.Join([]string{
		"1", "alice", "secret",
		"1", "bob", "hunter2",
		"2", "alice", "secret",
		"1", "bob", "100.00",
		"2",
		"3",
		"4",
		"3",
	}, "\n") + "\n"

	out := runScript(t, ledger, script)

	for _, want := range []string{
		`Account "alice" created with a starting balance of 1,000.00 $.`,
		`Account "bob" created with a starting balance of 1,000.00 $.`,
		`Logged in as "alice".`,
		"alice sent 100.00 $ to bob (fee 5.00 $)",
		"Transfer complete.",
		"Current balance for alice: 895.00 $",
		"# Transactions for alice",
		`Logged out "alice".`,
		"Goodbye.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("session output missing %q\noutput:\n%s", want, out)
		}
	}

	// The ledger itself reflects the transfer.
	if b, err := ledger.Balance("bob"); err != nil || b != tally.M(1_100_00, "USD") {
		t.Errorf("Balance(bob) = %v, %v, want 1,100.00 $", b, err)
	}
}

func TestSession_DomainErrorsContinue(t *testing.T) {
	ledger := newSessionLedger(t)
	if _, err := ledger.Register("alice", "secret"); err != nil {
		t.Fatal(err)
	}

	// A failed login, a duplicate registration and a transfer to an
	// unknown account all report and return to the menu.
	script := strings.Join([]string{
		"2", "alice", "wrong",
		"1", "alice", "whatever",
		"2", "alice", "secret",
		"1", "ghost", "10.00",
		"4",
		"3",
	}, "\n") + "\n"

	out := runScript(t, ledger, script)

	for _, want := range []string{
		"invalid username or password",
		"username already taken",
		"unknown account",
		"Goodbye.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("session output missing %q\noutput:\n%s", want, out)
		}
	}

	// The failed transfer left the balance alone.
	if b, err := ledger.Balance("alice"); err != nil || b != tally.M(1_000_00, "USD") {
		t.Errorf("Balance(alice) = %v, %v, want 1,000.00 $", b, err)
	}
}

func TestSession_InvalidChoice(t *testing.T) {
	out := runScript(t, newSessionLedger(t), "7\nq\n")
	if !strings.Contains(out, "Invalid choice, try again.") {
		t.Errorf("session output missing invalid choice notice:\n%s", out)
	}
}

func TestSession_EndOfInputQuits(t *testing.T) {
	// Closing the input stream ends the session cleanly.
	var out strings.Builder
	if err := runSession(newSessionLedger(t), NewPrompter(strings.NewReader(""), &out)); err != nil {
		t.Fatalf("runSession() error = %v", err)
	}
}

func TestSession_EmptyHistory(t *testing.T) {
	ledger := newSessionLedger(t)
	if _, err := ledger.Register("alice", "secret"); err != nil {
		t.Fatal(err)
	}
	// Clear the funding record so the history is genuinely empty.
	if err := tally.RewriteTransactions(ledger.Config().TransactionsFile, nil); err != nil {
		t.Fatal(err)
	}

	out := runScript(t, ledger, "2\nalice\nsecret\n3\n4\n3\n")
	if !strings.Contains(out, "No transactions found.") {
		t.Errorf("session output missing empty history notice:\n%s", out)
	}
}
