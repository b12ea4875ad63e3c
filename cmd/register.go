package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/pmallet/tally"
)

type registerCmd struct{}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create a new account with the initial balance" }
func (*registerCmd) Usage() string {
	return `tly register <username>

  Creates a new account. The password is prompted twice and never echoed
  on a terminal. The account starts with the configured initial balance,
  funded by a recorded transaction from the administrative account.

Usage Examples:
$ tly register alice
`
}

func (*registerCmd) SetFlags(f *flag.FlagSet) {}

func (c *registerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one username")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)

	p := stdPrompter()
	password, err := p.Password("Password")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	confirm, err := p.Password("Confirm password")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if password != confirm {
		fmt.Fprintln(os.Stderr, "Error: passwords do not match")
		return subcommands.ExitFailure
	}

	ledger, err := openLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if _, err := ledger.Register(name, password); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	initial := tally.M(ledger.Config().InitialBalance, ledger.Config().Currency)
	fmt.Printf("Account %q created with a starting balance of %s.\n", name, initial)
	return subcommands.ExitSuccess
}
