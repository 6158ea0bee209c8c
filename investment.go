package statement

import "time"

// HoldingRecord is a row of the holdings table of an investment account. Columns that
// a layout revision does not print are empty.
type HoldingRecord struct {
	Name          string
	Ticker        string
	OpeningShares Token
	OpeningValue  Token
	ChangeShares  Token
	ChangeValue   Token
	Shares        Token // Shares is the number of shares held at the end of the period.
	Value         Token // Value is the market value of the shares at the end of the period.
}

// DividendRecord is a row of the dividends table.
type DividendRecord struct {
	Date        time.Time
	Ticker      string
	Description string
	Amount      Token
}

// ActivityRecord is a row of the activity detail table.
//
// Fee lines have no ticker, price or shares. Their date is the one of the previous
// row, zero if they come first.
type ActivityRecord struct {
	Event  string // Event is the label of the last event declared in the table.
	Date   time.Time
	Ticker string
	Price  Token
	Shares Token // Shares is the signed change in shares.
	Value  Token // Value is the signed change in value.
}

// Holdings returns the rows of the holdings table.
func (a *Investment) Holdings(cfg Config) ([]HoldingRecord, error) {
	t := &a.layout.Holdings
	rows, err := scan(&a.section, t, nil, a.Name(), cfg.Logger)
	if err != nil {
		return nil, err
	}
	records := make([]HoldingRecord, 0, len(rows))
	for _, r := range rows {
		f := fields{r: r, cfg: cfg}
		rec := HoldingRecord{
			Name:          f.text("name"),
			Ticker:        f.text("ticker"),
			OpeningShares: f.token("opening_shares"),
			OpeningValue:  f.token("opening_value"),
			ChangeShares:  f.token("change_shares"),
			ChangeValue:   f.token("change_value"),
			Shares:        f.token("shares"),
			Value:         f.token("value"),
		}
		if err := f.check(a.Name(), t); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Dividends returns the rows of the dividends table.
func (a *Investment) Dividends(cfg Config) ([]DividendRecord, error) {
	t := &a.layout.Dividends
	rows, err := scan(&a.section, t, nil, a.Name(), cfg.Logger)
	if err != nil {
		return nil, err
	}
	records := make([]DividendRecord, 0, len(rows))
	for _, r := range rows {
		f := fields{r: r, cfg: cfg}
		rec := DividendRecord{
			Date:        f.date("date"),
			Ticker:      f.text("ticker"),
			Description: f.text("description"),
			Amount:      f.token("amount"),
		}
		if err := f.check(a.Name(), t); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Activity returns the rows of the activity detail table.
//
// An event is declared by a line of its own ("Dividend Reinvestment $12.00") or at the
// start of a row, and applies to the following rows. A fee event line is a row itself.
func (a *Investment) Activity(cfg Config) ([]ActivityRecord, error) {
	t := &a.layout.Activity
	rows, err := scan(&a.section, t, a.layout.EventLine, a.Name(), cfg.Logger)
	if err != nil {
		return nil, err
	}
	var (
		records []ActivityRecord
		event   string
		last    time.Time
	)
	for _, r := range rows {
		f := fields{r: r, cfg: cfg}
		if r.alt {
			event = f.text("event")
			if event != a.layout.FeeEvent {
				continue
			}
			rec := ActivityRecord{Event: event, Date: last, Value: f.token("amount")}
			if err := f.check(a.Name(), t); err != nil {
				return nil, err
			}
			records = append(records, rec)
			continue
		}
		if e := f.text("event"); e != "" {
			event = e
		}
		rec := ActivityRecord{
			Event:  event,
			Date:   f.date("date"),
			Ticker: f.text("ticker"),
			Price:  f.token("price"),
			Shares: f.token("shares"),
			Value:  f.token("value"),
		}
		if err := f.check(a.Name(), t); err != nil {
			return nil, err
		}
		last = rec.Date
		records = append(records, rec)
	}
	return records, nil
}
