package statement

import (
	"fmt"
	"time"
)

// Statement is the ledger recovered from a statement.
type Statement struct {
	AsOf        time.Time // AsOf is the ending date of the first account that prints one.
	Layout      string    // Layout is the name of the layout revision of the statement.
	Accounts    []Account // Accounts lists every section of the statement.
	Bank        *BankStatement
	Investments []*InvestmentStatement
	Securities  *Directory
}

// BankStatement is the statement of the cash reserve account.
type BankStatement struct {
	ID           string
	Name         string
	Start, End   time.Time
	Opening      Money
	Closing      Money
	Transactions []Transaction
	Banks        []ProgramBank
	Deposits     *Money // Deposits is the net amount deposited over the period, if printed.
	InterestPaid *Money
}

// InvestmentStatement is the statement of an investing goal.
type InvestmentStatement struct {
	ID            string
	Name          string
	IRA           bool
	Start, End    time.Time
	Opening       Money
	Closing       Money
	Positions     []Position
	Transactions  []Transaction
	AvailableCash Money // AvailableCash is the balance of the sweep account after its last row.
}

// Position is a security held at the end of the period.
type Position struct {
	Ticker    string
	Name      string
	Units     Quantity
	UnitPrice Money
	Value     Money
}

// Assemble builds the statement ledger from its account sections: a bank statement for
// the first cash reserve, an investment statement for every goal held at the
// institution, and the directory of all the securities mentioned.
func Assemble(accounts []Account, cfg Config) (*Statement, error) {
	cfg = cfg.defaults()
	st := &Statement{Accounts: accounts, Securities: NewDirectory()}
	if len(accounts) > 0 {
		st.Layout = accounts[0].base().layout.Name
	}

	for _, a := range accounts {
		end, ok, err := a.base().Ending(cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: ending balance: %w", describe(a), err)
		}
		if ok {
			st.AsOf = end.Date
			break
		}
	}

	if reserves := ofKind[*CashReserve](accounts); len(reserves) > 0 {
		bank, err := assembleBank(reserves[0], cfg)
		if err != nil {
			return nil, err
		}
		st.Bank = bank
	}

	cash := findLedgers(accounts)
	for _, inv := range ofKind[*Investment](accounts) {
		if err := directory(st.Securities, inv, cfg); err != nil {
			return nil, err
		}
		if inv.Aggregate() || inv.External() {
			cfg.Logger.Debug().Str("account", inv.Name()).Bool("aggregate", inv.Aggregate()).Msg("section left out of the ledger")
			continue
		}
		is, err := assembleInvestment(inv, cash.of(inv), cfg)
		if err != nil {
			return nil, err
		}
		st.Investments = append(st.Investments, is)
	}
	return st, nil
}

// balances returns the beginning and ending balances of a section, both required.
func balances(a Account, cfg Config) (begin, end Balance, err error) {
	s := a.base()
	var ok bool
	if begin, ok, err = s.Beginning(cfg); err != nil {
		return begin, end, fmt.Errorf("%s: beginning balance: %w", describe(a), err)
	} else if !ok {
		return begin, end, &AccountError{Account: describe(a), Field: "beginning balance", Err: ErrMissingRequiredField}
	}
	if end, ok, err = s.Ending(cfg); err != nil {
		return begin, end, fmt.Errorf("%s: ending balance: %w", describe(a), err)
	} else if !ok {
		return begin, end, &AccountError{Account: describe(a), Field: "ending balance", Err: ErrMissingRequiredField}
	}
	return begin, end, nil
}

func assembleBank(a *CashReserve, cfg Config) (*BankStatement, error) {
	cur := cfg.Institution.Currency
	begin, end, err := balances(a, cfg)
	if err != nil {
		return nil, err
	}
	bank := &BankStatement{
		ID:      a.ID(),
		Name:    a.Name(),
		Start:   begin.Date,
		End:     end.Date,
		Opening: Amount(begin.Amount, cur),
		Closing: Amount(end.Amount, cur),
	}
	activity, err := a.Activity(cfg)
	if err != nil {
		return nil, err
	}
	for _, r := range activity {
		amount := Amount(r.Amount, cur)
		typ := TxCredit
		switch {
		case amount.IsNegative():
			typ = TxDebit
		case r.Description == "Interest Payment":
			typ = TxInt
		}
		id := fingerprint(stamp(r.Date), r.Description)
		bank.Transactions = append(bank.Transactions, NewCash(typ, id, r.Date, r.Description, r.Description, amount, ""))
	}
	if bank.Banks, err = a.ProgramBanks(cfg); err != nil {
		return nil, err
	}
	if t, ok := a.Deposits(cfg); ok {
		m := Amount(t, cur)
		bank.Deposits = &m
	}
	if t, ok := a.InterestPaid(cfg); ok {
		m := Amount(t, cur)
		bank.InterestPaid = &m
	}
	return bank, nil
}

func assembleInvestment(inv *Investment, cash *CashLedger, cfg Config) (*InvestmentStatement, error) {
	cur := cfg.Institution.Currency
	begin, end, err := balances(inv, cfg)
	if err != nil {
		return nil, err
	}
	is := &InvestmentStatement{
		ID:      inv.ID(),
		Name:    inv.Name(),
		IRA:     inv.IRA(),
		Start:   begin.Date,
		End:     end.Date,
		Opening: Amount(begin.Amount, cur),
		Closing: Amount(end.Amount, cur),
	}
	holdings, err := inv.Holdings(cfg)
	if err != nil {
		return nil, err
	}
	for _, h := range holdings {
		if h.Shares.IsZero() {
			continue
		}
		units, value := Shares(h.Shares), Amount(h.Value, cur)
		is.Positions = append(is.Positions, Position{
			Ticker:    h.Ticker,
			Name:      h.Name,
			Units:     units,
			UnitPrice: value.Per(units),
			Value:     value,
		})
	}
	if is.Transactions, is.AvailableCash, err = reconcile(inv, cash, end, cfg); err != nil {
		return nil, err
	}
	return is, nil
}

// directory adds the securities mentioned by an investment section: holdings first,
// then dividends, then trades, which only give a ticker.
func directory(d *Directory, inv *Investment, cfg Config) error {
	holdings, err := inv.Holdings(cfg)
	if err != nil {
		return err
	}
	for _, h := range holdings {
		d.Add(h.Ticker, h.Name)
	}
	dividends, err := inv.Dividends(cfg)
	if err != nil {
		return err
	}
	for _, r := range dividends {
		d.Add(r.Ticker, r.Description)
	}
	activity, err := inv.Activity(cfg)
	if err != nil {
		return err
	}
	for _, r := range activity {
		d.Add(r.Ticker, r.Ticker)
	}
	return nil
}
