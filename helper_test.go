package statement

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// USD is a helper for test to create exact usd money from text.
func USD(v string) Money { return M(decimal.RequireFromString(v), "USD") }

// la is the zone statements are printed in.
var la, _ = time.LoadLocation(DefaultZone)

// day returns the UTC instant of the local midnight of a statement day.
func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, la).UTC()
}

// readLines reads a statement fixture from testdata.
func readLines(t *testing.T, name string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("cannot read fixture: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// parse parses lines with the default configuration.
func parse(t *testing.T, lines []string) *Statement {
	t.Helper()
	st, err := Parse(lines, DefaultConfig())
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	return st
}

// investment returns the investment statement called name.
func investment(t *testing.T, st *Statement, name string) *InvestmentStatement {
	t.Helper()
	for _, is := range st.Investments {
		if is.Name == name {
			return is
		}
	}
	t.Fatalf("no investment statement %q", name)
	return nil
}
