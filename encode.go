package statement

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodeStatement writes the statement as indented JSON.
func EncodeStatement(w io.Writer, st *Statement) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal statement: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write statement: %w", err)
	}
	return nil
}

func utc(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// decimalOf returns the value of a token for JSON, null when the token is empty.
func decimalOf(t Token) any {
	d, err := t.Decimal()
	if err != nil {
		return nil
	}
	return d
}

// MarshalJSON implements the json.Marshaler interface for Statement.
func (st *Statement) MarshalJSON() ([]byte, error) {
	type account struct {
		Kind Kind   `json:"kind"`
		ID   string `json:"id,omitempty"`
		Name string `json:"name"`
	}
	accounts := make([]account, 0, len(st.Accounts))
	for _, a := range st.Accounts {
		accounts = append(accounts, account{Kind: a.Kind(), ID: a.ID(), Name: a.Name()})
	}
	investments := st.Investments
	if investments == nil {
		investments = []*InvestmentStatement{}
	}
	var w jsonObjectWriter
	w.Optional("asOf", utc(st.AsOf))
	w.Optional("layout", st.Layout)
	w.Append("accounts", accounts)
	if st.Bank != nil {
		w.Append("bank", st.Bank)
	}
	w.Append("investments", investments)
	w.Append("securities", st.Securities)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for BankStatement.
func (b *BankStatement) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", b.ID)
	w.Append("name", b.Name)
	w.Append("start", utc(b.Start))
	w.Append("end", utc(b.End))
	w.PrefixFrom("opening", b.Opening)
	w.PrefixFrom("closing", b.Closing)
	w.Append("transactions", transactions(b.Transactions))
	if len(b.Banks) > 0 {
		w.Append("programBanks", b.Banks)
	}
	if b.Deposits != nil {
		w.PrefixFrom("deposits", *b.Deposits)
	}
	if b.InterestPaid != nil {
		w.PrefixFrom("interestPaid", *b.InterestPaid)
	}
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for InvestmentStatement.
func (s *InvestmentStatement) MarshalJSON() ([]byte, error) {
	positions := s.Positions
	if positions == nil {
		positions = []Position{}
	}
	var w jsonObjectWriter
	w.Append("id", s.ID)
	w.Append("name", s.Name)
	w.Optional("ira", s.IRA)
	w.Append("start", utc(s.Start))
	w.Append("end", utc(s.End))
	w.PrefixFrom("opening", s.Opening)
	w.PrefixFrom("closing", s.Closing)
	w.Append("positions", positions)
	w.Append("transactions", transactions(s.Transactions))
	w.PrefixFrom("availableCash", s.AvailableCash)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for Position.
func (p Position) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("ticker", p.Ticker)
	w.Optional("name", p.Name)
	w.Append("units", p.Units)
	w.PrefixFrom("price", p.UnitPrice.exact())
	w.EmbedFrom(p.Value)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for ProgramBank.
func (b ProgramBank) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("bank", b.Bank)
	w.Append("balance", decimalOf(b.Balance))
	w.Append("percent", decimalOf(b.Percent))
	w.Append("deposited", decimalOf(b.Deposited))
	w.Append("interest", decimalOf(b.Interest))
	return w.MarshalJSON()
}

// transactions never encodes as null.
func transactions(txs []Transaction) []Transaction {
	if txs == nil {
		return []Transaction{}
	}
	return txs
}
