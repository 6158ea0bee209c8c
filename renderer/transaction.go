package renderer

import (
	"fmt"

	"github.com/etnz/statement"
)

// Describe renders a transaction to a one line description.
func Describe(tx statement.Transaction) string {
	switch v := tx.(type) {
	case statement.Buy:
		return fmt.Sprintf("Bought %s %s at %s", v.Units, v.Security, v.UnitPrice)
	case statement.Sell:
		return fmt.Sprintf("Sold %s %s at %s", v.Units, v.Security, v.UnitPrice)
	case statement.Income:
		return fmt.Sprintf("Dividend from %s", v.Security)
	case statement.Cash:
		if v.Name == "" {
			return v.Memo
		}
		return v.Name
	default:
		return string(tx.What())
	}
}

// Flow returns the cash effect of a transaction on its account: negative for money out.
func Flow(tx statement.Transaction) statement.Money {
	switch v := tx.(type) {
	case statement.Buy:
		return v.Total.Neg()
	case statement.Sell:
		return v.Total
	case statement.Income:
		return v.Total
	case statement.Cash:
		return v.Amount
	default:
		return statement.Money{}
	}
}
