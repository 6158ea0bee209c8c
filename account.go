package statement

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/etnz/statement/date"
)

// Kind identifies the kind of an account section.
type Kind string

// Account kinds.
const (
	KindReserve    Kind = "reserve"    // stand-alone cash reserve account
	KindInvestment Kind = "investment" // investing goal, or the aggregate of all of them
	KindLedger     Kind = "ledger"     // cash activity shared by the taxable or the IRA goals
)

// Account is a section of the statement. The set of implementations is closed:
// *CashReserve, *Investment and *CashLedger.
//
// Every attribute is derived from the lines of the section each time it is asked for.
type Account interface {
	Kind() Kind
	Name() string   // Name is the display name of the account.
	ID() string     // ID is the stable account identifier, empty if the account has none.
	Lines() []string // Lines returns the lines of the section.

	base() *section
}

// section is the line buffer shared by all account kinds.
type section struct {
	layout *Layout
	lines  []string
	pages  []int  // index in lines of the first line of each page.
	number string // number recovered from the aggregate section, see backfill.
}

func (s *section) base() *section { return s }

// extend appends the lines of a page.
func (s *section) extend(lines []string) {
	if len(lines) == 0 {
		return
	}
	s.pages = append(s.pages, len(s.lines))
	s.lines = append(s.lines, lines...)
}

// Lines returns a copy of the section lines.
func (s *section) Lines() []string { return slices.Clone(s.lines) }

// head returns the first lines of the section, where flags are printed.
func (s *section) head() []string {
	return s.lines[:min(len(s.lines), s.layout.HeadLines)]
}

// External reports whether the account is held outside of the institution.
func (s *section) External() bool {
	return slices.ContainsFunc(s.head(), func(line string) bool {
		return strings.HasSuffix(line, s.layout.ExternalSuffix)
	})
}

// Number returns the account number printed in the section or recovered from the
// aggregate section. An empty number is no number.
func (s *section) Number() string {
	if s.number != "" {
		return s.number
	}
	if s.layout.AccountNumber == nil {
		return ""
	}
	for _, line := range s.lines {
		if m := s.layout.AccountNumber.FindStringSubmatch(line); m != nil {
			return group(s.layout.AccountNumber, m, "number")
		}
	}
	return ""
}

// has reports whether the section contains exactly this line.
func (s *section) has(line string) bool { return slices.Contains(s.lines, line) }

// identify builds an account identifier from an account number and a display name.
func identify(number, name string) string {
	sum := md5.Sum([]byte(name))
	h := hex.EncodeToString(sum[:])[:6]
	if number == "" {
		return h
	}
	return number + "-" + h
}

// Balance is an account balance at the start of a day.
type Balance struct {
	Date   time.Time // Date is the UTC instant of the local midnight.
	Amount Token
}

// balance searches the first line matching re and returns the balance it prints.
func (s *section) balance(re *regexp.Regexp, cfg Config) (Balance, bool, error) {
	for _, line := range s.lines {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		on, err := date.Instant(group(re, m, "date"), cfg.Zone)
		if err != nil {
			return Balance{}, false, err
		}
		amount := cfg.Notation.Token(group(re, m, "amount"))
		if _, err := amount.Decimal(); err != nil {
			return Balance{}, false, err
		}
		return Balance{Date: on, Amount: amount}, true, nil
	}
	return Balance{}, false, nil
}

// Beginning returns the opening balance of the account.
func (s *section) Beginning(cfg Config) (Balance, bool, error) {
	return s.balance(s.layout.Beginning, cfg)
}

// Ending returns the closing balance of the account.
func (s *section) Ending(cfg Config) (Balance, bool, error) {
	return s.balance(s.layout.Ending, cfg)
}

// CashReserve is the stand-alone cash account.
type CashReserve struct{ section }

func (a *CashReserve) Kind() Kind   { return KindReserve }
func (a *CashReserve) Name() string { return a.layout.ReserveName }
func (a *CashReserve) ID() string   { return identify(a.Number(), a.Name()) }

// Investment is an investing goal, or the aggregate section summing all of them up.
type Investment struct {
	section
	aggregate *Investment // aggregate section in force when this one was opened.
}

func (a *Investment) Kind() Kind { return KindInvestment }

// Name returns the goal name, or "" if the section has no line that looks like one.
func (a *Investment) Name() string {
	re := a.layout.InvestmentName
	for _, line := range a.lines {
		if m := re.FindStringSubmatch(line); m != nil {
			return group(re, m, "name")
		}
	}
	return ""
}

func (a *Investment) ID() string { return identify(a.Number(), a.Name()) }

// IRA reports whether the goal is a retirement account.
func (a *Investment) IRA() bool { return strings.Contains(a.Name(), a.layout.IRAToken) }

// Aggregate reports whether the section sums up all the investing accounts.
func (a *Investment) Aggregate() bool { return a.has(a.layout.AggregateMarker) }

// subAccounts returns the account numbers listed in an aggregate section, by name.
func (a *Investment) subAccounts() map[string]string {
	numbers := make(map[string]string)
	if n := a.Number(); n != "" {
		numbers[a.layout.AggregateGoal] = n
	}
	if re := a.layout.SubAccount; re != nil {
		for _, line := range a.lines {
			if m := re.FindStringSubmatch(line); m != nil {
				name := strings.TrimSpace(group(re, m, "name"))
				if _, ok := numbers[name]; !ok {
					numbers[name] = group(re, m, "number")
				}
			}
		}
	}
	return numbers
}

// CashLedger is the cash activity shared by all the taxable goals, or all the IRA goals.
type CashLedger struct{ section }

func (a *CashLedger) Kind() Kind { return KindLedger }

func (a *CashLedger) Name() string {
	if a.Taxable() {
		return a.layout.LedgerName + " (taxable)"
	}
	return a.layout.LedgerName + " (IRA)"
}

// ID is empty: ledgers are not accounts of their own.
func (a *CashLedger) ID() string { return "" }

// Taxable reports whether the ledger belongs to the taxable goals.
func (a *CashLedger) Taxable() bool {
	for _, line := range a.head() {
		switch {
		case strings.HasSuffix(line, a.layout.TaxableSuffix):
			return true
		case strings.HasSuffix(line, a.layout.IRASuffix):
			return false
		}
	}
	return false
}

// describe is used in errors and logs.
func describe(a Account) string {
	if name := a.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("unnamed %s section", a.Kind())
}
