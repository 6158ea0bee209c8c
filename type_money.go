package statement

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value.
type Money struct {
	value      decimal.Decimal // as major unit value
	cur        string
	fractional bool // true to persist in full digits
}

// M returns an amount of money in currency.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// Amount returns the exact amount of money printed in a token.
func Amount(t Token, currency string) Money {
	d, err := t.Decimal()
	if err != nil {
		// tokens are checked when the tables are read.
		return Money{cur: currency}
	}
	return Money{value: d, cur: currency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the amount formatted for its currency, like "$1,234.56".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string         { return m.cur }
func (m Money) Decimal() decimal.Decimal { return m.value }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) Neg() Money               { return Money{value: m.value.Neg(), cur: m.cur, fractional: m.fractional} }
func (m Money) Abs() Money               { return Money{value: m.value.Abs(), cur: m.cur, fractional: m.fractional} }

// Per returns the price of one unit when q units are worth m, rounded to 8 places.
func (m Money) Per(q Quantity) Money {
	return Money{value: m.value.DivRound(q.value, 8), cur: m.cur, fractional: true}
}

// exact return a copy of money that will be persisted with all the digits.
func (m Money) exact() Money {
	m.fractional = true
	return m
}

func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	// prices are printed with more digits than the currency has.
	rounded := m.value
	if !m.fractional {
		rounded = m.value.Round(int32(m.currency().Fraction))
	}
	w.Append("amount", rounded)
	return w.MarshalJSON()
}
