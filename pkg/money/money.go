// Package money formats peso amounts for display. It wraps go-money for
// locale formatting and shopspring/decimal for precise conversion, so a
// displayed amount can be re-parsed to the exact same value.
package money

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ARS is the ISO-4217 code for the Argentine peso.
const ARS = "ARS"

var centavos = decimal.New(1, 2)

// Money is a display-oriented peso amount backed by integer centavos.
type Money struct {
	m *money.Money
}

// FromDecimal converts a decimal amount of pesos into Money, rounding to
// whole centavos.
func FromDecimal(d decimal.Decimal) Money {
	cents := d.Mul(centavos).Round(0).IntPart()
	return Money{m: money.New(cents, ARS)}
}

// Decimal returns the amount in pesos.
func (m Money) Decimal() decimal.Decimal {
	if m.m == nil {
		return decimal.Zero
	}
	return decimal.NewFromInt(m.m.Amount()).Div(centavos)
}

// IsZero reports whether the amount is zero centavos.
func (m Money) IsZero() bool {
	return m.m == nil || m.m.IsZero()
}

// Display renders the amount the way the bank reports do: "$ 21.354.480,00",
// with dot grouping, comma decimals and a space after the currency sign.
func (m Money) Display() string {
	if m.m == nil {
		return "$ 0,00"
	}
	return strings.Replace(m.m.Display(), "$", "$ ", 1)
}
