package tally

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

// Book is the in-memory account set decoded from the accounts file.
//
// Accounts keep their file order; lookups go through an index by name.
// A Book is mutated in memory and then persisted in a single atomic
// rewrite by SaveBook, so a debit and a credit belonging to the same
// transfer always reach the disk together.
type Book struct {
	accounts []*Account
	index    map[string]*Account
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{index: make(map[string]*Account)}
}

// Exists reports whether an account with that name is present.
func (b *Book) Exists(name string) bool {
	_, ok := b.index[name]
	return ok
}

// Len returns the number of accounts.
func (b *Book) Len() int { return len(b.accounts) }

// Balance returns the stored balance in cents. A missing account is an
// error, never a silent zero.
func (b *Book) Balance(name string) (int64, error) {
	a, ok := b.index[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownAccount)
	}
	return a.Balance, nil
}

// Authenticate verifies name and password against the stored digest.
// The comparison is constant time; the same error is returned whether
// the name or the password is wrong.
func (b *Book) Authenticate(name, password string) error {
	a, ok := b.index[name]
	if !ok || !a.VerifyPassword(password) {
		return ErrBadCredentials
	}
	return nil
}

// Create adds a new account with the given starting balance. It rejects
// empty names or passwords and duplicate names.
func (b *Book) Create(name, password string, balance int64) (*Account, error) {
	if name == "" || password == "" {
		return nil, ErrEmptyCredentials
	}
	if b.Exists(name) {
		return nil, fmt.Errorf("%q: %w", name, ErrDuplicateAccount)
	}
	a := &Account{Name: name, PasswordHash: HashPassword(password), Balance: balance}
	b.accounts = append(b.accounts, a)
	b.index[name] = a
	return a, nil
}

// Adjust moves the account's balance by delta cents. Adjusting a missing
// account is an error, not a no-op: a transfer must never quietly drop
// money on the floor.
func (b *Book) Adjust(name string, delta int64) error {
	a, ok := b.index[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownAccount)
	}
	a.Balance += delta
	return nil
}

// All iterates over account snapshots in file order.
func (b *Book) All() iter.Seq[Account] {
	return func(yield func(Account) bool) {
		for _, a := range b.accounts {
			if !yield(*a) {
				return
			}
		}
	}
}

// accountFields is the record layout of the accounts file:
// username,password_hash,balance_cents.
const accountFields = 3

// LoadBook reads the accounts file. A missing file yields an empty book,
// so a fresh data directory works without any setup step.
func LoadBook(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Println("warning, accounts file does not exist, starting with an empty book instead")
			return NewBook(), nil
		}
		return nil, storageErr("open", path, err)
	}
	defer f.Close()

	book, err := DecodeBook(f)
	if err != nil {
		return nil, fmt.Errorf("accounts file %q: %w", path, err)
	}
	return book, nil
}

// DecodeBook decodes accounts from CSV, one record per line. Any
// malformed line is a hard error naming the line, never skipped.
func DecodeBook(r io.Reader) (*Book, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = accountFields

	book := NewBook()
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return book, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		balance, err := strconv.ParseInt(rec[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid balance %q: %w", line, rec[2], err)
		}
		a := &Account{Name: rec[0], PasswordHash: rec[1], Balance: balance}
		if book.Exists(a.Name) {
			return nil, fmt.Errorf("line %d: %q: %w", line, a.Name, ErrDuplicateAccount)
		}
		book.accounts = append(book.accounts, a)
		book.index[a.Name] = a
	}
}

// EncodeBook writes all accounts as CSV in file order.
func EncodeBook(w io.Writer, book *Book) error {
	cw := csv.NewWriter(w)
	for a := range book.All() {
		rec := []string{a.Name, a.PasswordHash, strconv.FormatInt(a.Balance, 10)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveBook rewrites the whole accounts file atomically: the records are
// written to a temporary file in the same directory, synced, and renamed
// over the old file. A crash mid-save leaves the previous file intact.
func SaveBook(path string, book *Book) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return storageErr("create", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodeBook(tmp, book); err != nil {
		tmp.Close()
		return storageErr("write", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return storageErr("sync", path, err)
	}
	if err := tmp.Close(); err != nil {
		return storageErr("close", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return storageErr("replace", path, err)
	}
	return nil
}
