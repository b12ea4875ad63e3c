package tally

import (
	"fmt"
	"path/filepath"
)

// Config carries everything the ledger needs: file locations, the
// display currency, the initial balance granted at registration, the
// administrative funding account name and the fee schedule. It is built
// once and passed to New; nothing in the package reads ambient state.
type Config struct {
	AccountsFile     string
	TransactionsFile string
	Currency         string
	InitialBalance   int64
	Admin            string
	Fees             FeeSchedule
}

// DefaultConfig returns the standard configuration rooted in dir:
// accounts.csv and transactions.csv, USD display, a 1,000.00 starting
// balance funded by the tally-admin account, and the default fee tiers.
func DefaultConfig(dir string) Config {
	return Config{
		AccountsFile:     filepath.Join(dir, "accounts.csv"),
		TransactionsFile: filepath.Join(dir, "transactions.csv"),
		Currency:         "USD",
		InitialBalance:   1_000_00,
		Admin:            "tally-admin",
		Fees:             DefaultFees(),
	}
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	if c.AccountsFile == "" {
		return fmt.Errorf("accounts file path is empty")
	}
	if c.TransactionsFile == "" {
		return fmt.Errorf("transactions file path is empty")
	}
	if c.Admin == "" {
		return fmt.Errorf("admin account name is empty")
	}
	if c.InitialBalance < 0 {
		return fmt.Errorf("initial balance %d is negative", c.InitialBalance)
	}
	if err := c.Fees.Validate(); err != nil {
		return fmt.Errorf("fee schedule: %w", err)
	}
	return nil
}
