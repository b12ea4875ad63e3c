// Package cmd implements the CLI application driving a tally ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/pmallet/tally"
)

// Register the subcommands.
// A main package calls Register() to wire the commands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&sessionCmd{}, "session")

	c.Register(&registerCmd{}, "ledger")
	c.Register(&sendCmd{}, "ledger")
	c.Register(&balanceCmd{}, "ledger")
	c.Register(&historyCmd{}, "ledger")

	c.Register(&fmtCmd{}, "maintenance")
	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", "", "Directory holding the accounts and transactions files (default $TALLY_DIR, else the current directory)")

func resolveDataDir() string {
	if *dataDir != "" {
		return *dataDir
	}
	if dir := os.Getenv("TALLY_DIR"); dir != "" {
		return dir
	}
	return "."
}

// openLedger builds the ledger from the app configuration.
func openLedger() (*tally.Ledger, error) {
	return tally.New(tally.DefaultConfig(resolveDataDir()))
}

// printMarkdown renders markdown to the terminal, falling back to the
// raw text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
