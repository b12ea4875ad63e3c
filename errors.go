package tally

import (
	"errors"
	"fmt"
)

// Domain errors. They are reported to the user and abort the current
// operation; the program keeps running.
var (
	// ErrSelfTransfer is returned when sender and receiver are the same account.
	ErrSelfTransfer = errors.New("cannot send to self")

	// ErrNonPositiveAmount is returned for zero or negative transfer amounts.
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds is returned when the sender cannot cover amount plus fee.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnknownAccount is returned when a username has no record.
	ErrUnknownAccount = errors.New("unknown account")

	// ErrDuplicateAccount is returned when registering an existing username.
	ErrDuplicateAccount = errors.New("username already taken")

	// ErrEmptyCredentials is returned when username or password is empty.
	ErrEmptyCredentials = errors.New("username and password cannot be empty")

	// ErrBadCredentials is returned on a failed login.
	ErrBadCredentials = errors.New("invalid username or password")
)

// StorageError reports an I/O failure on one of the ledger files. Unlike
// domain errors it is fatal for the whole flow that triggered it.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("could not %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op, path string, err error) error {
	return &StorageError{Op: op, Path: path, Err: err}
}

// IsStorage reports whether err is a storage-level failure.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
