package statement

import "github.com/shopspring/decimal"

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Quantity is a number of shares.
type Quantity struct {
	value decimal.Decimal
}

func Q[T float64 | int | int64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

// Shares returns the exact number of shares printed in a token.
func Shares(t Token) Quantity {
	d, err := t.Decimal()
	if err != nil {
		return Quantity{}
	}
	return Quantity{value: d}
}

func (t Quantity) Equal(p Quantity) bool    { return t.value.Equal(p.value) }
func (t Quantity) Abs() Quantity            { return Quantity{value: t.value.Abs()} }
func (t Quantity) IsNegative() bool         { return t.value.IsNegative() }
func (t Quantity) IsZero() bool             { return t.value.IsZero() }
func (t Quantity) Decimal() decimal.Decimal { return t.value }
func (q Quantity) String() string           { return q.value.String() }

// MarshalJSON implements the json.Marshaler interface for Quantity.
func (t Quantity) MarshalJSON() ([]byte, error) {
	return t.value.MarshalJSON()
}
