package tally

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the on-disk timestamp format, second resolution.
const TimeLayout = "2006-01-02 15:04:05"

// Transaction is one committed transfer: the principal moved from sender
// to receiver and the fee charged to the sender, both in cents. Records
// are append-only and immutable.
type Transaction struct {
	ID       uuid.UUID
	Sender   string
	Receiver string
	Amount   int64
	Fee      int64
	Time     time.Time
}

// Involves reports whether name is the sender or the receiver.
func (t Transaction) Involves(name string) bool {
	return t.Sender == name || t.Receiver == name
}

// transactionFields is the record layout of the transactions file:
// id,sender,receiver,amount_cents,fee_cents,timestamp.
const transactionFields = 6

func (t Transaction) record() []string {
	return []string{
		t.ID.String(),
		t.Sender,
		t.Receiver,
		strconv.FormatInt(t.Amount, 10),
		strconv.FormatInt(t.Fee, 10),
		t.Time.Format(TimeLayout),
	}
}

func parseTransaction(rec []string, line int) (Transaction, error) {
	id, err := uuid.Parse(rec[0])
	if err != nil {
		return Transaction{}, fmt.Errorf("line %d: invalid transaction id %q: %w", line, rec[0], err)
	}
	amount, err := strconv.ParseInt(rec[3], 10, 64)
	if err != nil {
		return Transaction{}, fmt.Errorf("line %d: invalid amount %q: %w", line, rec[3], err)
	}
	fee, err := strconv.ParseInt(rec[4], 10, 64)
	if err != nil {
		return Transaction{}, fmt.Errorf("line %d: invalid fee %q: %w", line, rec[4], err)
	}
	when, err := time.ParseInLocation(TimeLayout, rec[5], time.Local)
	if err != nil {
		return Transaction{}, fmt.Errorf("line %d: invalid timestamp %q: %w", line, rec[5], err)
	}
	return Transaction{
		ID:       id,
		Sender:   rec[1],
		Receiver: rec[2],
		Amount:   amount,
		Fee:      fee,
		Time:     when,
	}, nil
}

// AppendTransaction appends one record to the transactions file,
// creating it on first use. The log is never rewritten by transfers;
// only Rewrite touches existing records, and only to re-encode them.
func AppendTransaction(path string, tx Transaction) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return storageErr("open", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(tx.record()); err != nil {
		return storageErr("append", path, err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return storageErr("append", path, err)
	}
	if err := f.Sync(); err != nil {
		return storageErr("sync", path, err)
	}
	return nil
}

// ReadTransactions decodes the whole transactions file in file order,
// which is chronological since records are only ever appended. A missing
// file yields an empty history.
func ReadTransactions(path string) ([]Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, storageErr("open", path, err)
	}
	defer f.Close()

	txs, err := DecodeTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("transactions file %q: %w", path, err)
	}
	return txs, nil
}

// DecodeTransactions decodes CSV transaction records, failing loudly on
// any malformed line.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = transactionFields

	var txs []Transaction
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return txs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		tx, err := parseTransaction(rec, line)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
}

// History returns the transactions involving the given user, in file
// order. It is recomputed fresh from storage on every call.
func History(path, name string) ([]Transaction, error) {
	all, err := ReadTransactions(path)
	if err != nil {
		return nil, err
	}
	var out []Transaction
	for _, tx := range all {
		if tx.Involves(name) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// RewriteTransactions re-encodes the full log atomically, in the same
// temp-and-rename manner as SaveBook. Used by fmt to canonicalize the
// file, never by transfers.
func RewriteTransactions(path string, txs []Transaction) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return storageErr("create", path, err)
	}
	defer os.Remove(tmp.Name())

	cw := csv.NewWriter(tmp)
	for _, tx := range txs {
		if err := cw.Write(tx.record()); err != nil {
			tmp.Close()
			return storageErr("write", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
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
