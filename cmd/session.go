package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/pmallet/tally"
	"github.com/pmallet/tally/renderer"
)

type sessionCmd struct{}

func (*sessionCmd) Name() string     { return "session" }
func (*sessionCmd) Synopsis() string { return "start an interactive banking session" }
func (*sessionCmd) Usage() string {
	return `tly session

  Starts the menu-driven interactive session: register or log in, then
  send money, check the balance or browse the transaction history.
  Invalid menu choices are reported and prompted again.
`
}

func (*sessionCmd) SetFlags(f *flag.FlagSet) {}

func (c *sessionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := openLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := runSession(ledger, stdPrompter()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

const banner = `
=====================================
  tally - the console money ledger
=====================================
`

// runSession drives the whole interactive flow. Domain errors are
// reported and the menu continues; only storage failures (or a closed
// input) end the session.
func runSession(ledger *tally.Ledger, p *Prompter) error {
	fmt.Fprint(p.Out, banner)
	for {
		fmt.Fprint(p.Out, "\n1. Register\n2. Login\n3. Quit\n")
		choice, err := p.Line("Choose an option")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch strings.TrimSpace(choice) {
		case "1":
			if err := sessionRegister(ledger, p); err != nil {
				return err
			}
		case "2":
			user, err := sessionLogin(ledger, p)
			if err != nil {
				return err
			}
			if user != "" {
				if err := sessionUserMenu(ledger, p, user); err != nil {
					return err
				}
			}
		case "3", "q", "quit":
			fmt.Fprintln(p.Out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(p.Out, "Invalid choice, try again.")
		}
	}
}

// report prints a domain error and swallows it; storage errors are
// passed through and terminate the session.
func report(p *Prompter, err error) error {
	if err == nil || tally.IsStorage(err) {
		return err
	}
	fmt.Fprintln(p.Out, err)
	return nil
}

func sessionRegister(ledger *tally.Ledger, p *Prompter) error {
	name, err := p.Line("Username")
	if err != nil {
		return err
	}
	password, err := p.Password("Password")
	if err != nil {
		return err
	}
	if _, err := ledger.Register(name, password); err != nil {
		return report(p, err)
	}
	initial := tally.M(ledger.Config().InitialBalance, ledger.Config().Currency)
	fmt.Fprintf(p.Out, "Account %q created with a starting balance of %s.\n", name, initial)
	return nil
}

func sessionLogin(ledger *tally.Ledger, p *Prompter) (string, error) {
	name, err := p.Line("Username")
	if err != nil {
		return "", err
	}
	password, err := p.Password("Password")
	if err != nil {
		return "", err
	}
	if err := ledger.Login(name, password); err != nil {
		return "", report(p, err)
	}
	fmt.Fprintf(p.Out, "Logged in as %q.\n", name)
	return name, nil
}

func sessionUserMenu(ledger *tally.Ledger, p *Prompter, user string) error {
	for {
		fmt.Fprint(p.Out, "\n1. Send money\n2. Check balance\n3. Transaction history\n4. Logout\n")
		choice, err := p.Line("Choose an option")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch strings.TrimSpace(choice) {
		case "1":
			if err := sessionSend(ledger, p, user); err != nil {
				return err
			}
		case "2":
			balance, err := ledger.Balance(user)
			if err != nil {
				if err = report(p, err); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintf(p.Out, "Current balance for %s: %s\n", user, balance)
		case "3":
			if err := sessionHistory(ledger, p, user); err != nil {
				return err
			}
		case "4":
			fmt.Fprintf(p.Out, "Logged out %q.\n", user)
			return nil
		default:
			fmt.Fprintln(p.Out, "Invalid choice, try again.")
		}
	}
}

func sessionSend(ledger *tally.Ledger, p *Prompter, user string) error {
	receiver, err := p.Line("Receiver username")
	if err != nil {
		return err
	}
	amount, err := p.Amount("Amount to send", ledger.Config().Currency)
	if err != nil {
		return report(p, err)
	}
	tx, err := ledger.Transfer(user, receiver, amount)
	if err != nil {
		return report(p, err)
	}
	fmt.Fprintln(p.Out, renderer.Transaction(*tx, ledger.Config().Currency))
	fmt.Fprintln(p.Out, "Transfer complete.")
	return nil
}

func sessionHistory(ledger *tally.Ledger, p *Prompter, user string) error {
	txs, err := ledger.History(user)
	if err != nil {
		return report(p, err)
	}
	if len(txs) == 0 {
		fmt.Fprintln(p.Out, "No transactions found.")
		return nil
	}
	fmt.Fprint(p.Out, renderer.History(user, txs, ledger.Config().Currency))
	return nil
}
