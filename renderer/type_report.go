package renderer

import (
	"time"

	"github.com/etnz/statement"
	"github.com/etnz/statement/date"
)

// Report is a struct to represent the statement data in json.
// Amounts are already formatted for their currency, dates are civil dates in the
// statement zone, so that templates only lay them out.
type Report struct {
	// Layout is the name of the statement revision.
	Layout string `json:"layout,omitempty"`
	// AsOf is the ending date of the statement.
	AsOf string `json:"asOf,omitempty"`
	// Bank is the cash reserve account, if any.
	Bank *Bank `json:"bank,omitempty"`
	// Investments lists the investing goals in order of appearance.
	Investments []Investment `json:"investments"`
	// Securities lists every security mentioned in the statement.
	Securities []Security `json:"securities"`
}

// Bank represents the cash reserve account.
type Bank struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Start        string        `json:"start"`
	End          string        `json:"end"`
	Opening      string        `json:"opening"`
	Closing      string        `json:"closing"`
	Deposits     string        `json:"deposits,omitempty"`
	InterestPaid string        `json:"interestPaid,omitempty"`
	Transactions []Transaction `json:"transactions"`
	ProgramBanks []ProgramBank `json:"programBanks"`
}

// ProgramBank is a bank holding part of the cash reserve.
type ProgramBank struct {
	Bank    string `json:"bank"`
	Balance string `json:"balance"`
	Percent string `json:"percent"`
}

// Investment represents an investing goal.
type Investment struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	IRA           bool          `json:"ira,omitempty"`
	Start         string        `json:"start"`
	End           string        `json:"end"`
	Opening       string        `json:"opening"`
	Closing       string        `json:"closing"`
	AvailableCash string        `json:"availableCash"`
	Positions     []Position    `json:"positions"`
	Transactions  []Transaction `json:"transactions"`
}

// Position represents a security held at the end of the period.
type Position struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name,omitempty"`
	Units  string `json:"units"`
	Price  string `json:"price"`
	Value  string `json:"value"`
}

// Transaction is a single line of an activity table.
type Transaction struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// Security is an entry of the securities directory.
type Security struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

// NewReport creates a new Report from a statement, printing dates in zone.
func NewReport(st *statement.Statement, zone *time.Location) *Report {
	civil := func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return date.Of(t, zone).String()
	}
	r := &Report{
		Layout:      st.Layout,
		AsOf:        civil(st.AsOf),
		Investments: make([]Investment, 0, len(st.Investments)),
		Securities:  make([]Security, 0),
	}

	if b := st.Bank; b != nil {
		bank := &Bank{
			ID:           b.ID,
			Name:         b.Name,
			Start:        civil(b.Start),
			End:          civil(b.End),
			Opening:      b.Opening.String(),
			Closing:      b.Closing.String(),
			Transactions: transactions(b.Transactions, zone),
			ProgramBanks: make([]ProgramBank, 0, len(b.Banks)),
		}
		if b.Deposits != nil {
			bank.Deposits = b.Deposits.String()
		}
		if b.InterestPaid != nil {
			bank.InterestPaid = b.InterestPaid.String()
		}
		for _, pb := range b.Banks {
			bank.ProgramBanks = append(bank.ProgramBanks, ProgramBank{
				Bank:    pb.Bank,
				Balance: statement.Amount(pb.Balance, st.Bank.Closing.Currency()).String(),
				Percent: pb.Percent.String(),
			})
		}
		r.Bank = bank
	}

	for _, is := range st.Investments {
		inv := Investment{
			ID:            is.ID,
			Name:          is.Name,
			IRA:           is.IRA,
			Start:         civil(is.Start),
			End:           civil(is.End),
			Opening:       is.Opening.String(),
			Closing:       is.Closing.String(),
			AvailableCash: is.AvailableCash.String(),
			Positions:     make([]Position, 0, len(is.Positions)),
			Transactions:  transactions(is.Transactions, zone),
		}
		for _, p := range is.Positions {
			inv.Positions = append(inv.Positions, Position{
				Ticker: p.Ticker,
				Name:   p.Name,
				Units:  p.Units.String(),
				Price:  p.UnitPrice.String(),
				Value:  p.Value.String(),
			})
		}
		r.Investments = append(r.Investments, inv)
	}

	if st.Securities != nil {
		for _, s := range st.Securities.All() {
			r.Securities = append(r.Securities, Security{Ticker: s.Ticker, Name: s.Name})
		}
	}
	return r
}

func transactions(txs []statement.Transaction, zone *time.Location) []Transaction {
	rows := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, Transaction{
			Date:        date.Of(tx.When(), zone).String(),
			Type:        string(tx.What()),
			Description: Describe(tx),
			Amount:      Flow(tx).String(),
		})
	}
	return rows
}
