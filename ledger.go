package tally

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Ledger orchestrates transfers over the accounts file and the
// transactions log. Every operation reloads state from disk, applies all
// of its balance mutations in memory, and persists them in one atomic
// rewrite before appending the log record, so no reader can observe a
// half-applied transfer.
type Ledger struct {
	cfg Config
	now func() time.Time
}

// New creates a Ledger from a validated configuration.
func New(cfg Config) (*Ledger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &Ledger{cfg: cfg, now: time.Now}, nil
}

// Config returns the ledger configuration.
func (l *Ledger) Config() Config { return l.cfg }

// Register creates a new account with the configured initial balance and
// records the funding transaction from the administrative account. The
// admin account is an external funding source: it has no record in the
// book and no balance enforcement.
func (l *Ledger) Register(name, password string) (*Transaction, error) {
	book, err := LoadBook(l.cfg.AccountsFile)
	if err != nil {
		return nil, err
	}
	if _, err := book.Create(name, password, l.cfg.InitialBalance); err != nil {
		return nil, err
	}
	if err := SaveBook(l.cfg.AccountsFile, book); err != nil {
		return nil, err
	}

	tx := Transaction{
		ID:       uuid.New(),
		Sender:   l.cfg.Admin,
		Receiver: name,
		Amount:   l.cfg.InitialBalance,
		Fee:      0,
		Time:     l.now().Truncate(time.Second),
	}
	if err := AppendTransaction(l.cfg.TransactionsFile, tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// Login verifies the credentials against the stored digest.
func (l *Ledger) Login(name, password string) error {
	book, err := LoadBook(l.cfg.AccountsFile)
	if err != nil {
		return err
	}
	return book.Authenticate(name, password)
}

// Transfer moves amount from sender to receiver, charging the sender the
// tiered fee on top. Validation happens in a fixed order and any failure
// leaves every balance untouched: the debit and the credit are applied
// to the in-memory book and written to disk as a single rewrite.
func (l *Ledger) Transfer(sender, receiver string, amount Money) (*Transaction, error) {
	if receiver == sender {
		return nil, ErrSelfTransfer
	}
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	cents := amount.Cents()
	fee := l.cfg.Fees.Fee(cents)

	book, err := LoadBook(l.cfg.AccountsFile)
	if err != nil {
		return nil, err
	}
	if !book.Exists(receiver) {
		return nil, fmt.Errorf("receiver %q: %w", receiver, ErrUnknownAccount)
	}
	balance, err := book.Balance(sender)
	if err != nil {
		return nil, err
	}
	if balance < cents+fee {
		return nil, ErrInsufficientFunds
	}

	if err := book.Adjust(sender, -(cents + fee)); err != nil {
		return nil, err
	}
	if err := book.Adjust(receiver, cents); err != nil {
		return nil, err
	}
	if err := SaveBook(l.cfg.AccountsFile, book); err != nil {
		return nil, err
	}

	tx := Transaction{
		ID:       uuid.New(),
		Sender:   sender,
		Receiver: receiver,
		Amount:   cents,
		Fee:      fee,
		Time:     l.now().Truncate(time.Second),
	}
	if err := AppendTransaction(l.cfg.TransactionsFile, tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// Balance returns the user's current balance in the display currency.
func (l *Ledger) Balance(name string) (Money, error) {
	book, err := LoadBook(l.cfg.AccountsFile)
	if err != nil {
		return Money{}, err
	}
	cents, err := book.Balance(name)
	if err != nil {
		return Money{}, err
	}
	return M(cents, l.cfg.Currency), nil
}

// History returns all transactions where the user is sender or receiver,
// oldest first.
func (l *Ledger) History(name string) ([]Transaction, error) {
	return History(l.cfg.TransactionsFile, name)
}
