package statement

import (
	"fmt"
	"strings"
)

// Segment splits the statement lines into account sections, in order of appearance.
//
// A section starts on the line carrying its marker. Lines are collected page by page:
// when a page footer is met, the lines read since the previous footer go to the last
// opened section. Lines of a page read before any section is opened are dropped.
//
// Once every section is complete, the investment sections without an account number
// get the one listed for them in the aggregate section that preceded them.
func Segment(lines []string, cfg Config) ([]Account, error) {
	cfg = cfg.resolve(lines)
	return segment(lines, cfg)
}

func segment(lines []string, cfg Config) ([]Account, error) {
	layout, log := cfg.Layout, cfg.Logger
	var (
		accounts  []Account
		page      []string
		aggregate *Investment
	)
	last := func() Account {
		if len(accounts) == 0 {
			return nil
		}
		return accounts[len(accounts)-1]
	}
	for i, line := range lines {
		opened, err := open(layout, line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		if opened != nil {
			if inv, ok := opened.(*Investment); ok {
				if prev, ok := last().(*Investment); ok && prev.Aggregate() {
					aggregate = prev
				}
				inv.aggregate = aggregate
			}
			accounts = append(accounts, opened)
			page = append(page, line)
			log.Debug().Int("line", i).Str("kind", string(opened.Kind())).Msg("section opened")
			continue
		}
		if layout.PageBreak.MatchString(line) {
			if a := last(); a != nil {
				a.base().extend(page)
			} else if len(page) > 0 {
				log.Debug().Int("lines", len(page)).Msg("lines before the first section dropped")
			}
			page = nil
			continue
		}
		page = append(page, line)
	}
	if a := last(); a != nil {
		a.base().extend(page)
	}
	if err := backfill(accounts, cfg); err != nil {
		return nil, err
	}
	return accounts, nil
}

// open returns a new empty section if line opens one.
func open(layout *Layout, line string) (Account, error) {
	var opened []Account
	s := section{layout: layout}
	if strings.HasPrefix(line, layout.ReserveMarker) {
		opened = append(opened, &CashReserve{section: s})
	}
	if strings.HasPrefix(line, layout.InvestmentMarker) {
		opened = append(opened, &Investment{section: s})
	}
	if layout.LedgerMarker.MatchString(line) {
		opened = append(opened, &CashLedger{section: s})
	}
	switch len(opened) {
	case 0:
		return nil, nil
	case 1:
		return opened[0], nil
	default:
		return nil, fmt.Errorf("%w: %q opens %d kinds of sections", ErrSegmentationAmbiguity, line, len(opened))
	}
}

// backfill names every investment section and resolves the account numbers missing
// from the sections that follow an aggregate section.
func backfill(accounts []Account, cfg Config) error {
	for _, a := range accounts {
		inv, ok := a.(*Investment)
		if !ok {
			continue
		}
		name := inv.Name()
		if name == "" {
			return &AccountError{Account: describe(inv), Field: "no goal name", Err: ErrSegmentationAmbiguity}
		}
		if inv.aggregate == nil || inv.Aggregate() || inv.Number() != "" {
			continue
		}
		if n, ok := inv.aggregate.subAccounts()[name]; ok {
			inv.number = n
			cfg.Logger.Debug().Str("account", name).Str("number", n).Msg("account number recovered from the aggregate section")
		}
	}
	return nil
}
