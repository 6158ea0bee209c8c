package statement

import (
	"errors"
	"testing"
)

func TestDetectLayout(t *testing.T) {
	testCases := []struct {
		name  string
		lines []string
		want  *Layout
	}{
		{name: "2020", lines: readLines(t, "q1-2023.txt"), want: Revision2020},
		{name: "2017", lines: readLines(t, "q4-2017.txt"), want: Revision2017},
		{name: "empty", lines: nil, want: Layouts[0]},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectLayout(tc.lines); got != tc.want {
				t.Errorf("DetectLayout() = %q, want %q", got.Name, tc.want.Name)
			}
		})
	}
}

func TestLayoutByName(t *testing.T) {
	l, err := LayoutByName("2017")
	if err != nil || l != Revision2017 {
		t.Errorf("LayoutByName(2017) = %v, %v want Revision2017", l, err)
	}
	if _, err := LayoutByName("1999"); !errors.Is(err, ErrUnknownLayout) {
		t.Errorf("LayoutByName(1999) error = %v, want ErrUnknownLayout", err)
	}
}

// TestLayoutGroups asserts that every row expression names the groups the parsers read.
func TestLayoutGroups(t *testing.T) {
	for _, l := range Layouts {
		checks := []struct {
			table  *Table
			groups []string
		}{
			{&l.Holdings, []string{"name", "ticker", "shares", "value"}},
			{&l.Dividends, []string{"date", "ticker", "description", "amount"}},
			{&l.Activity, []string{"event", "date", "ticker", "price", "shares", "value"}},
			{&l.Sweep, []string{"date", "goal", "description", "amount", "balance"}},
			{&l.Securities, []string{"date", "goal", "description", "amount", "balance"}},
			{&l.Reserve, []string{"date", "description", "amount"}},
			{&l.ProgramBanks, []string{"balance", "percent", "deposited", "interest"}},
		}
		for _, c := range checks {
			for _, g := range c.groups {
				if c.table.Row.SubexpIndex(g) < 0 {
					t.Errorf("layout %s, %s table: no group %q", l.Name, c.table.Name, g)
				}
			}
		}
	}
}
