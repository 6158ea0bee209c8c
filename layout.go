package statement

import (
	"fmt"
	"regexp"
	"strings"
)

// Layout describes one revision of the statement format: the markers opening each
// section, the rules recovering account attributes and the shape of every table.
// Parsing code never tests for a revision, it only reads its Layout.
type Layout struct {
	Name string

	// Markers are lines that only appear in statements of this revision.
	Markers []string

	ReserveMarker    string         // ReserveMarker prefixes the line opening the cash reserve section.
	InvestmentMarker string         // InvestmentMarker prefixes the line opening an investment section.
	LedgerMarker     *regexp.Regexp // LedgerMarker matches the line opening a cash activity ledger.
	PageBreak        *regexp.Regexp // PageBreak matches the page footer.

	// HeadLines is the number of leading lines of an account searched for flags.
	HeadLines      int
	ExternalSuffix string
	TaxableSuffix  string
	IRASuffix      string
	IRAToken       string

	ReserveName    string
	LedgerName     string
	InvestmentName *regexp.Regexp // group "name"
	AccountNumber  *regexp.Regexp // group "number"

	// AggregateMarker is a line only present in the section summing up all investing accounts.
	AggregateMarker string
	// AggregateGoal is the name of the account that shares its number with the aggregate.
	AggregateGoal string
	// SubAccount optionally lists the numbers of the other accounts inside the aggregate
	// section (groups "name" and "number").
	SubAccount *regexp.Regexp

	Beginning *regexp.Regexp // groups "date" and "amount"
	Ending    *regexp.Regexp // groups "date" and "amount"

	Holdings   Table
	Dividends  Table
	Activity   Table
	EventLine  *regexp.Regexp // EventLine declares the event label of the next activity rows. Labels are words only.
	FeeEvent   string
	Sweep      Table
	Securities Table

	Reserve      Table
	ReserveSkip  []string // ReserveSkip lists descriptions of reserve rows that are not transactions.
	ProgramBanks Table
	BankOffset   int // BankOffset is how many lines above its amounts a program bank is named.
	Deposits     *regexp.Regexp
	InterestPaid *regexp.Regexp
}

// Table describes a table printed in an account section.
type Table struct {
	Name    string
	Header  string   // Header is the exact line introducing the table.
	Repeats []string // Repeats are lines reprinted after a page break, Header included.
	Stops   []string // Stops are prefixes of the lines ending the table, if any.
	Row     *regexp.Regexp
	// Intro, when set, selects among several occurrences of Header the one introduced
	// by a given line.
	Intro *Introducer
}

// Introducer is a line found Offset lines above a table header and starting with Prefix.
type Introducer struct {
	Offset int
	Prefix string
}

// expand compiles a pattern after replacing the {date}, {money}, {pct}, {shares},
// {symbol} and {acct} placeholders by the token they stand for.
func expand(pattern string) *regexp.Regexp {
	r := strings.NewReplacer(
		"{date}", `[A-Za-z]{3} [0-9]+,? [0-9]{4}`,
		"{money}", `-?\$[0-9,.]+`,
		"{pct}", `-?[0-9.,]+%`,
		"{shares}", `-?[0-9.,]+`,
		"{symbol}", `[A-Z]+`,
		"{acct}", `[0-9]*`,
	)
	return regexp.MustCompile(r.Replace(pattern))
}

// ledgerTables returns the sweep and securities tables sharing the same header.
func ledgerTables(header string) (sweep, securities Table) {
	row := expand(`^(?P<date>{date}) (?P<goal>.+) (?P<description>(?:Fees)|(?:\w+ (?:of|to|from) .+)) (?P<amount>{money}) (?P<balance>{money})$`)
	sweep = Table{
		Name:    "sweep",
		Header:  header,
		Repeats: []string{header},
		Stops:   []string{"Balance ", "SECURITIES ACCOUNT "},
		Row:     row,
		Intro:   &Introducer{Offset: 5, Prefix: "SWEEP "},
	}
	securities = Table{
		Name:    "securities",
		Header:  header,
		Repeats: []string{header},
		Stops:   []string{"Balance "},
		Row:     row,
		Intro:   &Introducer{Offset: 1, Prefix: "SECURITIES ACCOUNT "},
	}
	return sweep, securities
}

// reserveTables returns the cash reserve tables, identical in all revisions.
func reserveTables() (activity, banks Table) {
	activity = Table{
		Name:    "reserve",
		Header:  "ACTIVITY",
		Repeats: []string{"ACTIVITY", "Date Description Amount"},
		Stops:   []string{"TOTAL HOLDINGS"},
		Row:     expand(`^(?P<date>{date}) (?P<description>.*) (?P<amount>{money})$`),
	}
	banks = Table{
		Name:    "program banks",
		Header:  "TOTAL HOLDINGS",
		Repeats: []string{"TOTAL HOLDINGS"},
		Stops:   []string{"TOTAL PROGRAM BANK DETAILS"},
		Row:     expand(`^(?P<balance>{money}) (?P<percent>{pct}) (?P<deposited>{money}) (?P<interest>{money})$`),
	}
	return activity, banks
}

func newLayout(name string) *Layout {
	reserve, banks := reserveTables()
	return &Layout{
		Name:             name,
		ReserveMarker:    "ACTIVITY",
		InvestmentMarker: "HOLDINGS",
		LedgerMarker:     regexp.MustCompile(`^SWEEP[A-Z ]*CASH ACTIVITY`),
		PageBreak:        regexp.MustCompile(`^Page [0-9]+ of [0-9]+`),
		HeadLines:        20,
		ExternalSuffix:   "(External)",
		TaxableSuffix:    "(TAXABLE)",
		IRASuffix:        "(IRA)",
		IRAToken:         "IRA",
		ReserveName:      "Cash Reserve",
		LedgerName:       "Cash Activity",
		InvestmentName:   regexp.MustCompile(`^(?P<name>[A-Za-z ]+)(?: \(.*\))?$`),
		AggregateMarker:  "Taxable Investing Account",
		AggregateGoal:    "General Investing",
		Beginning:        expand(`Beginning Balance \((?P<date>[^)]+)\) (?P<amount>{money})`),
		Ending:           expand(`Ending Balance \((?P<date>[^)]+)\) (?P<amount>{money})`),
		EventLine:        expand(`^(?P<event>[A-Za-z][A-Za-z ]*) (?P<amount>{money})$`),
		FeeEvent:         "Advisory Fee",
		Reserve:          reserve,
		ReserveSkip:      []string{"Beginning Balance", "Ending Balance"},
		ProgramBanks:     banks,
		BankOffset:       2,
		Deposits:         expand(`Deposits (?P<amount>{money})`),
		InterestPaid:     expand(`Interest Paid (?P<amount>{money})`),
	}
}

// Revision2020 is the layout of the statements issued since 2020.
var Revision2020 = func() *Layout {
	l := newLayout("2020")
	l.AccountNumber = expand(`Account #(?P<number>{acct})`)
	l.Holdings = Table{
		Name:    "holdings",
		Header:  "Type Description Ticker Shares Value Shares Value Shares Value",
		Repeats: []string{"Description Fund Shares Value Shares Value Shares Value"},
		Stops:   []string{"Total "},
		Row:     expand(`^(?P<name>.*) (?P<ticker>{symbol}) (?P<opening_shares>{shares}) (?P<opening_value>{money}) (?P<change_shares>{shares}) (?P<change_value>{money}) (?P<shares>{shares}) (?P<value>{money})$`),
	}
	l.Dividends = Table{
		Name:    "dividends",
		Header:  "Payment Date Ticker Description Amount",
		Repeats: []string{"Payment Date Ticker Description Amount"},
		Stops:   []string{"Total "},
		Row:     expand(`^(?P<date>{date}) (?P<ticker>{symbol}) (?P<description>.*) (?P<amount>{money})$`),
	}
	l.Activity = Table{
		Name:    "activity",
		Header:  "Transaction3 Date4 Ticker Price Shares Value",
		Repeats: []string{"Transaction3 Date4 Ticker Price Shares Value"},
		Stops:   []string{"Total "},
		// the event label of the next row is sometimes tacked on the end.
		Row: expand(`^(?:(?P<event>.*) )?(?P<date>{date}) (?P<ticker>{symbol}) (?P<price>{money}) (?P<shares>{shares}) (?P<value>{money})[A-Za-z ]*$`),
	}
	l.Sweep, l.Securities = ledgerTables("Date Goal Description Transaction Balance")
	l.Markers = []string{l.Holdings.Header, l.Activity.Header, l.Sweep.Header}
	return l
}()

// Revision2017 is the layout of the statements issued before 2020. Holdings start
// with the ticker and have no change columns, and every sub-account number is
// listed in the aggregate section.
var Revision2017 = func() *Layout {
	l := newLayout("2017")
	l.AccountNumber = expand(`Acct #(?P<number>{acct})`)
	l.SubAccount = expand(`^(?P<name>[A-Za-z ]+) - Acct #(?P<number>[0-9]+)$`)
	l.Holdings = Table{
		Name:    "holdings",
		Header:  "Ticker Fund Shares Value Shares Value",
		Repeats: []string{"Ticker Fund Shares Value Shares Value"},
		Stops:   []string{"Total "},
		Row:     expand(`^(?P<ticker>{symbol}) (?P<name>.*) (?P<opening_shares>{shares}) (?P<opening_value>{money}) (?P<shares>{shares}) (?P<value>{money})$`),
	}
	l.Dividends = Table{
		Name:    "dividends",
		Header:  "Date Ticker Description Amount",
		Repeats: []string{"Date Ticker Description Amount"},
		Stops:   []string{"Total "},
		Row:     expand(`^(?P<date>{date}) (?P<ticker>{symbol}) (?P<description>.*) (?P<amount>{money})$`),
	}
	l.Activity = Table{
		Name:    "activity",
		Header:  "Transaction Date Ticker Price Shares Value",
		Repeats: []string{"Transaction Date Ticker Price Shares Value"},
		Stops:   []string{"Total "},
		Row:     expand(`^(?:(?P<event>.*) )?(?P<date>{date}) (?P<ticker>{symbol}) (?P<price>{money}) (?P<shares>{shares}) (?P<value>{money})[A-Za-z ]*$`),
	}
	l.Sweep, l.Securities = ledgerTables("Date Goal Description Amount Balance")
	l.Markers = []string{l.Holdings.Header, l.Activity.Header, l.Sweep.Header}
	return l
}()

// Layouts lists the known revisions, the default one first.
var Layouts = []*Layout{Revision2020, Revision2017}

// LayoutByName returns the known revision called name.
func LayoutByName(name string) (*Layout, error) {
	for _, l := range Layouts {
		if l.Name == name {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
}

// DetectLayout returns the first known revision having one of its markers in lines,
// or the default revision.
func DetectLayout(lines []string) *Layout {
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		seen[line] = true
	}
	for _, l := range Layouts {
		for _, m := range l.Markers {
			if seen[m] {
				return l
			}
		}
	}
	return Layouts[0]
}

// group returns the named group of a match, or "" if the expression has no such group.
func group(re *regexp.Regexp, match []string, name string) string {
	i := re.SubexpIndex(name)
	if i < 0 || i >= len(match) {
		return ""
	}
	return match[i]
}
