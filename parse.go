package statement

// Parse converts the lines of a statement into its ledger.
//
// The lines are split into account sections, the tables of every section are read,
// the activity of each investment account is reconciled with the cash ledgers, and
// the result is assembled into one statement. Any failure aborts the run: a partial
// ledger is never returned.
func Parse(lines []string, cfg Config) (*Statement, error) {
	cfg = cfg.resolve(lines)
	accounts, err := segment(lines, cfg)
	if err != nil {
		return nil, err
	}
	st, err := Assemble(accounts, cfg)
	if err != nil {
		return nil, err
	}
	st.Layout = cfg.Layout.Name
	return st, nil
}
