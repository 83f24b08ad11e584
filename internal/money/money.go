// Package money provides decimal amount helpers shared by the ledger engine.
//
// Amounts are shopspring decimals. Every "equal" comparison the ledger makes
// between monetary totals is tolerant to Epsilon, which absorbs the rounding
// left behind by splitting an amount into non-terminating fractions.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groupledger/internal/models"
)

// Epsilon is the tolerance used when reconciling totals (one cent).
var Epsilon = decimal.New(1, -2)

// Hundred is used by percentage arithmetic.
var Hundred = decimal.NewFromInt(100)

// ApproxEqual reports whether a and b differ by at most Epsilon.
func ApproxEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Epsilon)
}

// Negligible reports whether d is within Epsilon of zero.
func Negligible(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(Epsilon)
}

// Significant reports whether d is strictly greater than Epsilon.
// Transfers at or below one cent are treated as floating-point noise.
func Significant(d decimal.Decimal) bool {
	return d.GreaterThan(Epsilon)
}

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// RequirePositive returns models.ErrInvalidAmount unless d > 0.
func RequirePositive(d decimal.Decimal) error {
	if !d.IsPositive() {
		return fmt.Errorf("%w: %s", models.ErrInvalidAmount, d.String())
	}
	return nil
}

// Parse reads a strictly positive amount from user input.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted.
// Empty, signed-negative, zero and malformed values are rejected with
// models.ErrInvalidAmount.
//
// Examples:
//
//	Parse("12.34")  -> 12.34, nil
//	Parse(" 12,5 ") -> 12.5, nil
//	Parse("0")      -> 0, ErrInvalidAmount
func Parse(s string) (decimal.Decimal, error) {
	d, err := ParseSigned(s)
	if err != nil {
		return decimal.Zero, err
	}
	if err := RequirePositive(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// ParseSigned reads any finite decimal, including zero and negatives.
// Adjustment splits use it because their values are signed deltas.
func ParseSigned(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", models.ErrInvalidAmount)
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", models.ErrInvalidAmount, s)
	}
	return d, nil
}

// Format renders an amount with two decimals prefixed by the group's
// currency symbol, e.g. "$12.50".
func Format(d decimal.Decimal, currency string) string {
	return currency + d.StringFixed(2)
}
