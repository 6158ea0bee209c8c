package statement

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNotationToken(t *testing.T) {
	n := DefaultConfig().Notation
	testCases := []struct {
		in   string
		want Token
		dec  string
	}{
		{in: "$1,234.56", want: "1234.56", dec: "1234.56"},
		{in: "-$1,234,567.891", want: "-1234567.891", dec: "-1234567.891"},
		{in: "$0.10", want: "0.10", dec: "0.1"},
		{in: "-0.000", want: "-0.000", dec: "0"},
		{in: "66.67%", want: "66.67%", dec: "66.67"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got := n.Token(tc.in)
			if got != tc.want {
				t.Errorf("Token(%q) = %q, want %q", tc.in, got, tc.want)
			}
			d, err := got.Decimal()
			if err != nil {
				t.Fatalf("Decimal() unexpected error: %v", err)
			}
			if !d.Equal(decimal.RequireFromString(tc.dec)) {
				t.Errorf("Decimal() = %v, want %v", d, tc.dec)
			}
		})
	}
}

// TestTokenExact asserts that amounts are not rounded through binary floating points.
func TestTokenExact(t *testing.T) {
	n := DefaultConfig().Notation
	sum := decimal.Zero
	for range 10 {
		d, err := n.Token("$0.10").Decimal()
		if err != nil {
			t.Fatal(err)
		}
		sum = sum.Add(d)
	}
	if !sum.Equal(decimal.NewFromInt(1)) {
		t.Errorf("ten times $0.10 = %v, want 1", sum)
	}
	if got := n.Token("$1,234.56").String(); got != "1234.56" {
		t.Errorf("Token($1,234.56) = %q, want %q", got, "1234.56")
	}
}

func TestTokenSign(t *testing.T) {
	testCases := []struct {
		in       Token
		negative bool
		zero     bool
	}{
		{in: "-0.000", negative: true, zero: true},
		{in: "0.500", negative: false, zero: false},
		{in: "-2.000", negative: true, zero: false},
		{in: "", negative: false, zero: true},
	}
	for _, tc := range testCases {
		if got := tc.in.Negative(); got != tc.negative {
			t.Errorf("Token(%q).Negative() = %v, want %v", tc.in, got, tc.negative)
		}
		if got := tc.in.IsZero(); got != tc.zero {
			t.Errorf("Token(%q).IsZero() = %v, want %v", tc.in, got, tc.zero)
		}
	}
}
