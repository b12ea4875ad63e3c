package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/pmallet/tally"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and rewrites the data files into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `tly fmt

  Validates and rewrites the accounts and transactions files. Every
  record is decoded, checked, and written back in canonical form, so
  hand edits with stray spacing or quoting get normalized. Malformed
  records fail the whole run and leave both files untouched.

Usage Examples:
$ tly fmt
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	cfg := ledger.Config()

	fmt.Fprintf(os.Stderr, "Formatting %q...\n", cfg.AccountsFile)
	book, err := tally.LoadBook(cfg.AccountsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load accounts: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := tally.SaveBook(cfg.AccountsFile, book); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save accounts: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Formatting %q...\n", cfg.TransactionsFile)
	txs, err := tally.ReadTransactions(cfg.TransactionsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := tally.RewriteTransactions(cfg.TransactionsFile, txs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "✅ Successfully formatted %d accounts and %d transactions.\n", book.Len(), len(txs))
	return subcommands.ExitSuccess
}
