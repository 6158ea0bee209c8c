// Package xlsx exports a statement as a spreadsheet workbook.
//
// The workbook has a sheet for the account summaries, one for all the
// transactions, one for the positions and one for the securities. A sheet for the
// program banks of the cash reserve is added when the statement lists them.
package xlsx

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/etnz/statement"
	"github.com/etnz/statement/date"
	"github.com/xuri/excelize/v2"
)

// Sheet names.
const (
	SummarySheet      = "Summary"
	TransactionsSheet = "Transactions"
	PositionsSheet    = "Positions"
	SecuritiesSheet   = "Securities"
	BanksSheet        = "Program Banks"
)

// Write writes the statement as a workbook, printing dates in zone.
func Write(w io.Writer, st *statement.Statement, zone *time.Location) error {
	f, err := Workbook(st, zone)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Workbook builds the workbook of a statement. The caller closes it.
func Workbook(st *statement.Statement, zone *time.Location) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		f.Close()
		return nil, err
	}
	b := &builder{f: f, zone: zone, currency: currencyOf(st)}
	if err := b.build(st); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}
	return f, nil
}

// currencyOf returns the currency of the statement amounts.
func currencyOf(st *statement.Statement) string {
	if st.Bank != nil && st.Bank.Closing.Currency() != "" {
		return st.Bank.Closing.Currency()
	}
	for _, is := range st.Investments {
		if is.Closing.Currency() != "" {
			return is.Closing.Currency()
		}
	}
	return money.USD
}

// builder writes the sheets of a workbook. The first error stops it.
type builder struct {
	f        *excelize.File
	zone     *time.Location
	currency string
	err      error
}

func (b *builder) build(st *statement.Statement) error {
	amount, err := b.f.NewStyle(&excelize.Style{CustomNumFmt: numFmt(b.currency)})
	if err != nil {
		return err
	}

	summary := b.sheet(SummarySheet, "Kind", "ID", "Name", "Start", "End", "Opening", "Closing", "Available Cash")
	txs := b.sheet(TransactionsSheet, "Account", "Date", "Type", "ID", "Security", "Name", "Units", "Price", "Amount", "Memo")
	positions := b.sheet(PositionsSheet, "Account", "Ticker", "Name", "Units", "Price", "Value")
	securities := b.sheet(SecuritiesSheet, "Ticker", "Name")

	if bank := st.Bank; bank != nil {
		summary.append(string(statement.KindReserve), bank.ID, bank.Name, b.civil(bank.Start), b.civil(bank.End), value(bank.Opening), value(bank.Closing), "")
		for _, tx := range bank.Transactions {
			txs.append(b.transaction(bank.ID, tx)...)
		}
	}
	for _, is := range st.Investments {
		summary.append(string(statement.KindInvestment), is.ID, is.Name, b.civil(is.Start), b.civil(is.End), value(is.Opening), value(is.Closing), value(is.AvailableCash))
		for _, tx := range is.Transactions {
			txs.append(b.transaction(is.ID, tx)...)
		}
		for _, p := range is.Positions {
			positions.append(is.ID, p.Ticker, p.Name, p.Units.Decimal().InexactFloat64(), value(p.UnitPrice), value(p.Value))
		}
	}
	if st.Securities != nil {
		for _, s := range st.Securities.All() {
			securities.append(s.Ticker, s.Name)
		}
	}

	summary.style("F", amount)
	summary.style("G", amount)
	summary.style("H", amount)
	txs.style("H", amount)
	txs.style("I", amount)
	positions.style("E", amount)
	positions.style("F", amount)

	if st.Bank != nil && len(st.Bank.Banks) > 0 {
		banks := b.sheet(BanksSheet, "Bank", "Balance", "Allocation", "Deposited", "Interest")
		for _, pb := range st.Bank.Banks {
			banks.append(pb.Bank, token(pb.Balance), token(pb.Percent), token(pb.Deposited), token(pb.Interest))
		}
		banks.style("B", amount)
		banks.style("D", amount)
		banks.style("E", amount)
	}
	return b.err
}

// transaction returns the transaction row of tx in account.
func (b *builder) transaction(account string, tx statement.Transaction) []any {
	var (
		security, name, memo string
		units, price, amount any = "", "", ""
	)
	switch v := tx.(type) {
	case statement.Buy:
		security, memo = v.Security, v.Memo
		units, price, amount = v.Units.Decimal().InexactFloat64(), value(v.UnitPrice), value(v.Total.Neg())
	case statement.Sell:
		security, memo = v.Security, v.Memo
		units, price, amount = v.Units.Decimal().Neg().InexactFloat64(), value(v.UnitPrice), value(v.Total)
	case statement.Income:
		security, memo = v.Security, v.Memo
		amount = value(v.Total)
	case statement.Cash:
		name, memo = v.Name, v.Memo
		amount = value(v.Amount)
	}
	return []any{account, b.civil(tx.When()), string(tx.What()), tx.ID(), security, name, units, price, amount, memo}
}

func (b *builder) civil(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return date.Of(t, b.zone).String()
}

// sheet creates a sheet and writes its header.
func (b *builder) sheet(name string, header ...string) *sheet {
	s := &sheet{b: b, name: name}
	if b.err != nil {
		return s
	}
	if name != SummarySheet {
		if _, err := b.f.NewSheet(name); err != nil {
			b.err = err
			return s
		}
	}
	row := make([]any, len(header))
	for i, h := range header {
		row[i] = h
	}
	s.append(row...)
	if b.err == nil {
		b.err = b.f.SetColWidth(name, "A", columnName(len(header)), 18)
	}
	return s
}

// sheet appends rows to a sheet of the workbook.
type sheet struct {
	b    *builder
	name string
	rows int
}

func (s *sheet) append(values ...any) {
	if s.b.err != nil {
		return
	}
	s.rows++
	cell, err := excelize.CoordinatesToCellName(1, s.rows)
	if err != nil {
		s.b.err = err
		return
	}
	s.b.err = s.b.f.SetSheetRow(s.name, cell, &values)
}

// style applies a style to a column, header excluded.
func (s *sheet) style(col string, style int) {
	if s.b.err != nil || s.rows < 2 {
		return
	}
	s.b.err = s.b.f.SetCellStyle(s.name, fmt.Sprintf("%s2", col), fmt.Sprintf("%s%d", col, s.rows), style)
}

func columnName(n int) string {
	name, err := excelize.ColumnNumberToName(n)
	if err != nil {
		return "A"
	}
	return name
}

// numFmt returns the number format of amounts in currency, like "$"#,##0.00.
func numFmt(currency string) *string {
	c := money.GetCurrency(currency)
	if c == nil {
		c = money.GetCurrency(money.USD)
	}
	format := fmt.Sprintf("%q#,##0", c.Grapheme)
	if c.Fraction > 0 {
		format += "." + strings.Repeat("0", c.Fraction)
	}
	return &format
}

// value returns the amount of m as a spreadsheet number.
func value(m statement.Money) float64 { return m.Decimal().InexactFloat64() }

// token returns a printed number as a spreadsheet number, or its text if it is not one.
func token(t statement.Token) any {
	d, err := t.Decimal()
	if err != nil {
		return t.String()
	}
	return d.InexactFloat64()
}
