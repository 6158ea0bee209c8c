package statement

import "time"

// Side tells which sub-table of a cash ledger a row comes from.
type Side string

const (
	SideSweep      Side = "sweep"      // cash moving in and out of the sweep account
	SideSecurities Side = "securities" // cash moving in and out of the securities account
)

// CashRecord is a row of a cash activity ledger.
type CashRecord struct {
	Side        Side
	Date        time.Time
	Goal        string // Goal is the name of the investment account the row belongs to.
	Description string // Description reads "<action> <of|to|from> <counterparty>", or "Fees".
	Amount      Token
	Balance     Token // Balance is the running balance of the sub-account after the row.
}

// Sweep returns the rows of the sweep account table.
func (a *CashLedger) Sweep(cfg Config) ([]CashRecord, error) {
	return a.records(SideSweep, &a.layout.Sweep, cfg)
}

// Securities returns the rows of the securities account table.
func (a *CashLedger) Securities(cfg Config) ([]CashRecord, error) {
	return a.records(SideSecurities, &a.layout.Securities, cfg)
}

func (a *CashLedger) records(side Side, t *Table, cfg Config) ([]CashRecord, error) {
	rows, err := scan(&a.section, t, nil, a.Name(), cfg.Logger)
	if err != nil {
		return nil, err
	}
	records := make([]CashRecord, 0, len(rows))
	for _, r := range rows {
		f := fields{r: r, cfg: cfg}
		rec := CashRecord{
			Side:        side,
			Date:        f.date("date"),
			Goal:        f.text("goal"),
			Description: f.text("description"),
			Amount:      f.token("amount"),
			Balance:     f.token("balance"),
		}
		if err := f.check(a.Name(), t); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
