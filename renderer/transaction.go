package renderer

import (
	"fmt"

	"github.com/pmallet/tally"
)

// Transaction renders a single transaction to a one-line summary.
func Transaction(tx tally.Transaction, currency string) string {
	amount := tally.M(tx.Amount, currency)
	if tx.Fee == 0 {
		return fmt.Sprintf("%s: %s sent %s to %s",
			tx.Time.Format(tally.TimeLayout), tx.Sender, amount, tx.Receiver)
	}
	return fmt.Sprintf("%s: %s sent %s to %s (fee %s)",
		tx.Time.Format(tally.TimeLayout), tx.Sender, amount, tx.Receiver, tally.M(tx.Fee, currency))
}

// Balance renders a user's balance as a markdown one-liner.
func Balance(user string, balance tally.Money) string {
	return fmt.Sprintf("Current balance for **%s**: %s\n", user, balance)
}
