// Package money provides exact base-10 currency arithmetic.
//
// Amounts are carried at full precision through every intermediate
// computation; Round applies the display scale (2 decimal places, half up)
// and is called only where a value is finalized for storage or display.
// No binary floating point appears anywhere in this package.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places an amount is rounded to when
// finalized.
const Scale = 2

// Zero is the zero amount. It is also the zero value of Money.
var Zero = Money{}

// Money is an immutable exact decimal currency amount.
type Money struct {
	dec decimal.Decimal
}

// FromDecimal wraps a decimal value as a Money amount.
func FromDecimal(d decimal.Decimal) Money {
	return Money{dec: d}
}

// Parse converts a user-entered amount string to Money.
// Currency symbols and thousands separators are stripped ("$1,234.56" parses
// to 1234.56).
func Parse(value string) (Money, error) {
	cleaned := strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(value))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Zero, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return Money{dec: d}, nil
}

// MustParse is Parse that panics on error, for constants and tests.
func MustParse(value string) Money {
	m, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns m + o, exact.
func (m Money) Add(o Money) Money {
	return Money{dec: m.dec.Add(o.dec)}
}

// Sub returns m - o, exact.
func (m Money) Sub(o Money) Money {
	return Money{dec: m.dec.Sub(o.dec)}
}

// MulFraction returns m scaled by the given fraction, exact.
func (m Money) MulFraction(fraction decimal.Decimal) Money {
	return Money{dec: m.dec.Mul(fraction)}
}

// ProportionOf returns m * (part / whole), the proportional slice of m that
// part represents out of whole. The multiplication happens before the
// division so precision is lost only in the final divide.
func (m Money) ProportionOf(part, whole Money) Money {
	return Money{dec: m.dec.Mul(part.dec).Div(whole.dec)}
}

// Round finalizes the amount at the display scale, rounding half up.
// Round is idempotent: Round(Round(x)) == Round(x).
func (m Money) Round() Money {
	return Money{dec: m.dec.Round(Scale)}
}

// Cmp compares two amounts exactly: -1 if m < o, 0 if equal, 1 if m > o.
func (m Money) Cmp(o Money) int {
	return m.dec.Cmp(o.dec)
}

// Equal reports whether two amounts are numerically equal.
func (m Money) Equal(o Money) bool {
	return m.dec.Equal(o.dec)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.dec.IsZero()
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.dec.IsPositive()
}

// IsNegative reports whether the amount is strictly less than zero.
func (m Money) IsNegative() bool {
	return m.dec.IsNegative()
}

// Abs returns the absolute value of the amount.
func (m Money) Abs() Money {
	return Money{dec: m.dec.Abs()}
}

// Decimal returns the underlying exact decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.dec
}

// String renders the amount at the display scale, e.g. "12.34".
func (m Money) String() string {
	return m.dec.StringFixed(Scale)
}

// Display renders the amount as a currency string, e.g. "$12.34".
func (m Money) Display() string {
	return "$" + m.String()
}
