package ofx

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/etnz/statement"
)

func parse(t *testing.T, name string) *statement.Statement {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "testdata", name))
	if err != nil {
		t.Fatalf("cannot read fixture: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	st, err := statement.Parse(lines, statement.DefaultConfig())
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	return st
}

func TestEncode(t *testing.T) {
	st := parse(t, "q1-2023.txt")
	var buf bytes.Buffer
	if err := Encode(&buf, st, statement.DefaultConfig().Institution); err != nil {
		t.Fatalf("Encode() unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`VERSION="220"`,
		"<ORG>Betterment</ORG>",
		"<FID>9999</FID>",
		"<LANGUAGE>ENG</LANGUAGE>",
		"<BANKID>BTRMNT</BANKID>",
		"<ACCTID>111-3480d9</ACCTID>",
		"<ACCTTYPE>SAVINGS</ACCTTYPE>",
		"<TRNTYPE>INT</TRNTYPE>",
		"<FITID>e99755241f5d967d006951e668b6f913</FITID>",
		"<BROKERID>Betterment</BROKERID>",
		"<ACCTID>222-f84a65</ACCTID>",
		"<FITID>473bec3c1a647348aec77362214b31ba</FITID>",
		"<BUYTYPE>BUY</BUYTYPE>",
		"<SELLTYPE>SELL</SELLTYPE>",
		"<INCOMETYPE>DIV</INCOMETYPE>",
		"<TICKER>AGG</TICKER>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Encode() output does not contain %s", want)
		}
	}

	counts := []struct {
		element string
		want    int
	}{
		{"<STMTTRNRS>", 1},
		{"<INVSTMTTRNRS>", 2},
		{"<BUYMF>", 2},
		{"<SELLMF>", 1},
		{"<INCOME>", 2},
		{"<INVBANKTRAN>", 7},
		{"<POSSTOCK>", 3},
		{"<STOCKINFO>", 4},
	}
	for _, c := range counts {
		if got := strings.Count(out, c.element); got != c.want {
			t.Errorf("Encode() has %d %s, want %d", got, c.element, c.want)
		}
	}
}

func TestEncodeWithoutDate(t *testing.T) {
	st, err := statement.Parse(nil, statement.DefaultConfig())
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	var buf bytes.Buffer
	err = Encode(&buf, st, statement.DefaultConfig().Institution)
	if !errors.Is(err, statement.ErrMissingRequiredField) {
		t.Errorf("Encode() error = %v, want ErrMissingRequiredField", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Encode() wrote %q, want nothing", buf.String())
	}
}

func TestTransaction(t *testing.T) {
	on := time.Date(2023, time.January, 15, 8, 0, 0, 0, time.UTC)
	testCases := []struct {
		typ  statement.TxType
		want string
	}{
		{statement.TxInt, "INT"},
		{statement.TxCredit, "CREDIT"},
		{statement.TxDebit, "DEBIT"},
		{statement.TxDiv, "DIV"},
		{statement.TxFee, "FEE"},
		{statement.TxDep, "DEP"},
		{statement.TxXfer, "XFER"},
		{statement.TxCash, "CASH"},
		{statement.TxOther, "OTHER"},
	}
	for _, tc := range testCases {
		t.Run(string(tc.typ), func(t *testing.T) {
			c := statement.NewCash(tc.typ, "id", on, "payee", "memo", statement.M(5, "USD"), statement.SubAccountCash)
			got := transaction(c)
			if got.TrnType.String() != tc.want {
				t.Errorf("TrnType = %s, want %s", got.TrnType.String(), tc.want)
			}
			if got.FiTID != "id" || got.Name != "payee" || got.Memo != "memo" {
				t.Errorf("transaction() = %+v", got)
			}
			if !got.DtPosted.Time.Equal(on) {
				t.Errorf("DtPosted = %v, want %v", got.DtPosted, on)
			}
		})
	}
}

func TestTransactionName(t *testing.T) {
	on := time.Date(2023, time.January, 15, 8, 0, 0, 0, time.UTC)
	testCases := []struct {
		name, want string
	}{
		{"Interest Payment", "Interest Payment"},
		{"Deposit from Checking Account ending in 1234", "Deposit from Checking Account en"},
		// names are cut between characters, never inside one.
		{"Virement de la Société Générale à Paris", "Virement de la Société Générale "},
	}
	for _, tc := range testCases {
		got := transaction(statement.NewCash(statement.TxCredit, "id", on, tc.name, tc.name, statement.M(5, "USD"), ""))
		if string(got.Name) != tc.want || !utf8.ValidString(string(got.Name)) {
			t.Errorf("Name = %q, want %q", got.Name, tc.want)
		}
		if string(got.Memo) != tc.name {
			t.Errorf("Memo = %q, want %q", got.Memo, tc.name)
		}
	}
}
