package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/pmallet/tally/renderer"
)

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show an account's transaction history" }
func (*historyCmd) Usage() string {
	return `tly history <username>

  Prints every transaction where the account is sender or receiver, in
  chronological order. The password is prompted first.
`
}

func (*historyCmd) SetFlags(f *flag.FlagSet) {}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one username")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)

	ledger, err := openLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if !login(ledger, name) {
		return subcommands.ExitFailure
	}

	txs, err := ledger.History(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if len(txs) == 0 {
		fmt.Println("No transactions found.")
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.History(name, txs, ledger.Config().Currency))
	return subcommands.ExitSuccess
}
