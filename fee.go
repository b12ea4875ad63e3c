package tally

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Unbounded marks the upper bound of the top fee tier.
const Unbounded int64 = math.MaxInt64

// FeeTier is a contiguous amount range, in cents, with the percentage
// rate charged on transfers falling inside it. Bounds are inclusive.
type FeeTier struct {
	Min  int64
	Max  int64
	Rate decimal.Decimal
}

// FeeSchedule is an ordered list of tiers partitioning the non-negative
// amounts: no gaps, no overlaps, the last tier unbounded.
type FeeSchedule []FeeTier

// Fee returns the fee in cents for a transfer of amount cents: the
// amount times the rate of the first matching tier, floor-truncated.
// It returns 0 when no tier matches.
func (s FeeSchedule) Fee(amount int64) int64 {
	for _, t := range s {
		if t.Min <= amount && amount <= t.Max {
			return decimal.NewFromInt(amount).
				Mul(t.Rate).
				Div(decimal.NewFromInt(100)).
				Floor().
				IntPart()
		}
	}
	return 0
}

// Validate checks that the schedule partitions the non-negative integers.
func (s FeeSchedule) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("fee schedule is empty")
	}
	if s[0].Min != 0 {
		return fmt.Errorf("first fee tier must start at 0, starts at %d", s[0].Min)
	}
	for i, t := range s {
		if t.Max < t.Min {
			return fmt.Errorf("fee tier %d: max %d below min %d", i, t.Max, t.Min)
		}
		if t.Rate.IsNegative() {
			return fmt.Errorf("fee tier %d: negative rate %s", i, t.Rate)
		}
		if i > 0 && t.Min != s[i-1].Max+1 {
			return fmt.Errorf("fee tier %d: starts at %d, previous ends at %d", i, t.Min, s[i-1].Max)
		}
	}
	if s[len(s)-1].Max != Unbounded {
		return fmt.Errorf("last fee tier must be unbounded")
	}
	return nil
}

// DefaultFees is the standard tiered schedule: 5% up to 100.00, 10% up
// to 500.00, 15% up to 1,000.00, 20% up to 5,000.00, 25% above.
func DefaultFees() FeeSchedule {
	pct := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
	return FeeSchedule{
		{Min: 0, Max: 100_00, Rate: pct(5)},
		{Min: 100_01, Max: 500_00, Rate: pct(10)},
		{Min: 500_01, Max: 1_000_00, Rate: pct(15)},
		{Min: 1_000_01, Max: 5_000_00, Rate: pct(20)},
		{Min: 5_000_01, Max: Unbounded, Rate: pct(25)},
	}
}
