package tally

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a monetary amount held in minor units (cents) to keep ledger
// arithmetic exact. The currency only matters for display.
type Money struct {
	cents int64
	cur   string
}

// M builds a Money from an amount in cents.
func M(cents int64, currency string) Money {
	return Money{cents: cents, cur: currency}
}

// ParseAmount converts a user-entered major-unit amount (e.g. "125.50")
// into Money. Any sub-cent digits are truncated toward zero.
func ParseAmount(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{cents: d.Shift(2).IntPart(), cur: currency}, nil
}

func (m Money) Cents() int64     { return m.cents }
func (m Money) Currency() string { return m.cur }
func (m Money) IsZero() bool     { return m.cents == 0 }
func (m Money) IsPositive() bool { return m.cents > 0 }
func (m Money) IsNegative() bool { return m.cents < 0 }

func (m Money) Add(n Money) Money      { return Money{cents: m.cents + n.cents, cur: cur(m, n)} }
func (m Money) Sub(n Money) Money      { return Money{cents: m.cents - n.cents, cur: cur(m, n)} }
func (m Money) Neg() Money             { return Money{cents: -m.cents, cur: m.cur} }
func (m Money) Equal(n Money) bool     { return m.cents == n.cents && m.cur == n.cur }
func (m Money) LessThan(n Money) bool { return m.cents < n.cents }

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// String formats the amount with two decimals, thousands separators and
// the currency symbol as a suffix, e.g. "1,234.56 $".
func (m Money) String() string {
	// to get a never nil currency we call the Money constructor
	c := *money.New(0, m.cur).Currency()
	f := money.NewFormatter(c.Fraction, ".", ",", c.Grapheme, "1 $")
	return f.Format(m.cents)
}

// SignedString is String with an explicit sign, "-" when zero.
func (m Money) SignedString() string {
	if m.cents == 0 {
		return "-"
	}
	if m.cents > 0 {
		return "+" + m.String()
	}
	return m.String()
}
