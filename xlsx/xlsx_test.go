package xlsx

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/etnz/statement"
	"github.com/xuri/excelize/v2"
)

func parse(t *testing.T, name string) (*statement.Statement, statement.Config) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "testdata", name))
	if err != nil {
		t.Fatalf("cannot read fixture: %v", err)
	}
	cfg := statement.DefaultConfig()
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	st, err := statement.Parse(lines, cfg)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	return st, cfg
}

// open writes the workbook of a fixture and reads it back.
func open(t *testing.T, name string) *excelize.File {
	t.Helper()
	st, cfg := parse(t, name)
	var buf bytes.Buffer
	if err := Write(&buf, st, cfg.Zone); err != nil {
		t.Fatalf("Write() unexpected error: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() unexpected error: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func raw(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetCellValue(%s, %s) unexpected error: %v", sheet, cell, err)
	}
	return v
}

func TestWorkbook(t *testing.T) {
	f := open(t, "q1-2023.txt")

	want := []string{SummarySheet, TransactionsSheet, PositionsSheet, SecuritiesSheet, BanksSheet}
	if got := f.GetSheetList(); !reflect.DeepEqual(got, want) {
		t.Fatalf("GetSheetList() = %v, want %v", got, want)
	}

	tests := []struct {
		sheet, cell, want string
	}{
		{SummarySheet, "A1", "Kind"},
		{SummarySheet, "A2", "reserve"},
		{SummarySheet, "B2", "111-3480d9"},
		{SummarySheet, "D2", "2023-01-01"},
		{SummarySheet, "E2", "2023-03-31"},
		{SummarySheet, "G2", "150"},
		{SummarySheet, "C3", "General Investing"},
		{SummarySheet, "H3", "1050"},
		{SummarySheet, "C4", "Roth IRA"},
		{TransactionsSheet, "A2", "111-3480d9"},
		{TransactionsSheet, "B2", "2023-01-15"},
		{TransactionsSheet, "C2", "INT"},
		{TransactionsSheet, "D2", "e99755241f5d967d006951e668b6f913"},
		{TransactionsSheet, "I2", "5"},
		{TransactionsSheet, "I4", "-5"},
		{PositionsSheet, "B2", "VTI"},
		{SecuritiesSheet, "A5", "SCHB"},
		{BanksSheet, "A3", "Citibank"},
		{BanksSheet, "C2", "66.67"},
	}
	for _, test := range tests {
		if got := raw(t, f, test.sheet, test.cell); got != test.want {
			t.Errorf("%s!%s = %q, want %q", test.sheet, test.cell, got, test.want)
		}
	}
}

func TestWorkbookTransactions(t *testing.T) {
	f := open(t, "q1-2023.txt")
	rows, err := f.GetRows(TransactionsSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetRows() unexpected error: %v", err)
	}
	// header, 3 bank transactions, 11 General Investing ones and 1 Roth IRA deposit.
	if len(rows) != 16 {
		t.Fatalf("got %d rows, want 16", len(rows))
	}
	// the first buy of General Investing
	buy := rows[6]
	if buy[2] != "BUY" || buy[4] != "VTI" || buy[8] != "-100" {
		t.Errorf("buy row = %v, want a BUY of VTI for -100", buy)
	}
	sell := rows[7]
	if sell[2] != "SELL" || sell[4] != "VEA" || sell[8] != "0.01" {
		t.Errorf("sell row = %v, want a SELL of VEA for 0.01", sell)
	}
}

func TestWorkbookWithoutBank(t *testing.T) {
	f := open(t, "q4-2017.txt")
	want := []string{SummarySheet, TransactionsSheet, PositionsSheet, SecuritiesSheet}
	if got := f.GetSheetList(); !reflect.DeepEqual(got, want) {
		t.Errorf("GetSheetList() = %v, want %v", got, want)
	}
	if got := raw(t, f, SummarySheet, "A2"); got != "investment" {
		t.Errorf("Summary!A2 = %q, want investment", got)
	}
}

func TestNumFmt(t *testing.T) {
	tests := []struct {
		currency, want string
	}{
		{"USD", `"$"#,##0.00`},
		{"JPY", `"¥"#,##0`},
		{"???", `"$"#,##0.00`},
	}
	for _, test := range tests {
		if got := *numFmt(test.currency); got != test.want {
			t.Errorf("numFmt(%q) = %s, want %s", test.currency, got, test.want)
		}
	}
}
