package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pmallet/tally"
	"golang.org/x/term"
)

// Prompter solicits lines and amounts from the user. The reader and
// writer are injectable so interactive flows can be scripted in tests.
type Prompter struct {
	raw io.Reader
	in  *bufio.Reader
	Out io.Writer
}

// NewPrompter wraps an input and output stream.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{raw: in, in: bufio.NewReader(in), Out: out}
}

// stdPrompter prompts on the process's own terminal.
func stdPrompter() *Prompter {
	return NewPrompter(os.Stdin, os.Stdout)
}

// Line prints the message and reads one line of input.
func (p *Prompter) Line(msg string) (string, error) {
	fmt.Fprintf(p.Out, "%s: ", msg)
	line, err := p.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Amount prints the message and reads a major-unit amount, truncated to
// cents.
func (p *Prompter) Amount(msg, currency string) (tally.Money, error) {
	line, err := p.Line(msg)
	if err != nil {
		return tally.Money{}, err
	}
	return tally.ParseAmount(line, currency)
}

// Password reads a password without echo when the input is a terminal,
// and falls back to a plain line read otherwise.
func (p *Prompter) Password(msg string) (string, error) {
	if f, ok := p.raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintf(p.Out, "%s: ", msg)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return p.Line(msg)
}
