package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/pmallet/tally"
	"github.com/pmallet/tally/renderer"
)

type sendCmd struct {
	from string
}

func (*sendCmd) Name() string     { return "send" }
func (*sendCmd) Synopsis() string { return "transfer money to another account" }
func (*sendCmd) Usage() string {
	return `tly send -from <username> <receiver> <amount>

  Sends the amount (in major units, e.g. 125.50) from the -from account
  to the receiver. The sender's password is prompted first. A tiered fee
  is charged to the sender on top of the amount.

Usage Examples:
$ tly send -from alice bob 125.50
`
}

func (c *sendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Sending account (required)")
}

func (c *sendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" || f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected -from <username> and <receiver> <amount>")
		return subcommands.ExitUsageError
	}
	receiver := f.Arg(0)

	ledger, err := openLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	amount, err := tally.ParseAmount(f.Arg(1), ledger.Config().Currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	if !login(ledger, c.from) {
		return subcommands.ExitFailure
	}

	tx, err := ledger.Transfer(c.from, receiver, amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Println(renderer.Transaction(*tx, ledger.Config().Currency))
	return subcommands.ExitSuccess
}

// login prompts for the user's password and verifies it, reporting any
// failure on stderr.
func login(ledger *tally.Ledger, name string) bool {
	password, err := stdPrompter().Password("Password for " + name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}
	if err := ledger.Login(name, password); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return false
	}
	return true
}
