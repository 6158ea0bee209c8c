package statement

import (
	"regexp"
	"slices"
	"time"
)

// ReserveRecord is a row of the cash reserve activity table.
type ReserveRecord struct {
	Date        time.Time
	Description string
	Amount      Token
}

// ProgramBank is a bank holding part of the cash reserve.
type ProgramBank struct {
	Bank      string
	Balance   Token
	Percent   Token
	Deposited Token
	Interest  Token
}

// Activity returns the transactions of the cash reserve. Balance rows are left out.
func (a *CashReserve) Activity(cfg Config) ([]ReserveRecord, error) {
	t := &a.layout.Reserve
	rows, err := scan(&a.section, t, nil, a.Name(), cfg.Logger)
	if err != nil {
		return nil, err
	}
	var records []ReserveRecord
	for _, r := range rows {
		f := fields{r: r, cfg: cfg}
		rec := ReserveRecord{
			Date:        f.date("date"),
			Description: f.text("description"),
			Amount:      f.token("amount"),
		}
		if err := f.check(a.Name(), t); err != nil {
			return nil, err
		}
		if slices.Contains(a.layout.ReserveSkip, rec.Description) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// ProgramBanks returns the banks listed in the program bank details of the reserve.
// Each bank is named a fixed number of lines above its amounts.
func (a *CashReserve) ProgramBanks(cfg Config) ([]ProgramBank, error) {
	t := &a.layout.ProgramBanks
	start := locate(a.lines, t)
	if start < 0 {
		return nil, nil
	}
	var banks []ProgramBank
	for i := start + 1; i < len(a.lines) && !t.stop(a.lines[i]); i++ {
		m := t.Row.FindStringSubmatch(a.lines[i])
		if m == nil {
			continue
		}
		r := row{line: i, text: a.lines[i], match: m, re: t.Row}
		at := i - a.layout.BankOffset
		if at <= start || t.repeated(a.lines[at]) {
			return nil, r.mismatch(a.Name(), t, "no bank name")
		}
		f := fields{r: r, cfg: cfg}
		bank := ProgramBank{
			Bank:      a.lines[at],
			Balance:   f.token("balance"),
			Percent:   f.token("percent"),
			Deposited: f.token("deposited"),
			Interest:  f.token("interest"),
		}
		if err := f.check(a.Name(), t); err != nil {
			return nil, err
		}
		banks = append(banks, bank)
	}
	return banks, nil
}

// Deposits returns the net amount deposited over the period.
func (a *CashReserve) Deposits(cfg Config) (Token, bool) { return a.figure(a.layout.Deposits, cfg) }

// InterestPaid returns the interest paid over the period.
func (a *CashReserve) InterestPaid(cfg Config) (Token, bool) {
	return a.figure(a.layout.InterestPaid, cfg)
}

// figure returns the amount of the first line matching re.
func (a *CashReserve) figure(re *regexp.Regexp, cfg Config) (Token, bool) {
	for _, line := range a.lines {
		if m := re.FindStringSubmatch(line); m != nil {
			t := cfg.Notation.Token(group(re, m, "amount"))
			if _, err := t.Decimal(); err != nil {
				return "", false
			}
			return t, true
		}
	}
	return "", false
}
