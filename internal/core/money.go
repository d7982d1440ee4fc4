// Package core holds the domain types shared by every layer.
//
// Money wraps shopspring/decimal so sums stay exact and rounding is
// explicit. It encodes to JSON as a bare number.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a decimal monetary amount.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money { return Money{Decimal: d} }

// MoneyFromFloat is used by stores that persist amounts as doubles.
func MoneyFromFloat(f float64) Money { return Money{Decimal: decimal.NewFromFloat(f)} }

// ParseMoney accepts dot or comma decimal separators.
func ParseMoney(s string) (Money, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Money{Decimal: d}, nil
}

func (m Money) Add(o Money) Money { return Money{Decimal: m.Decimal.Add(o.Decimal)} }

func (m Money) Sub(o Money) Money { return Money{Decimal: m.Decimal.Sub(o.Decimal)} }

// Round2 rounds half away from zero to two decimal places.
func (m Money) Round2() Money { return Money{Decimal: m.Decimal.Round(2)} }

// Percent returns m / of * 100, or 0 when of is zero.
func (m Money) Percent(of Money) float64 {
	if of.IsZero() {
		return 0
	}
	return m.Decimal.Div(of.Decimal).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// Max returns the larger of m and o.
func (m Money) Max(o Money) Money {
	if m.GreaterThanOrEqual(o.Decimal) {
		return m
	}
	return o
}

func (m Money) Float64() float64 { return m.InexactFloat64() }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// UnmarshalJSON accepts numbers and quoted numbers; null leaves zero.
func (m *Money) UnmarshalJSON(b []byte) error {
	return m.Decimal.UnmarshalJSON(b)
}

// MustMoney parses s and panics on failure. Intended for constants and tests.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}
