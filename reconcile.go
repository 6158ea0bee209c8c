package statement

import (
	"strings"

	"github.com/etnz/statement/date"
	"github.com/samber/lo"
)

// Cash ledger descriptions read "<action> <of|to|from> <counterparty>".
const (
	securitiesAccount = "Securities Account" // counterparty of sweeps into the securities account
	sweepAccount      = "Sweep Account"      // counterparty of sweeps into the sweep account
	settlement        = "Settlement"         // action settling a buy or a sell
	payment           = "Payment"            // action paying a dividend
	fees              = "Fees"               // description of a fee on the securities side
)

var (
	sweepTypes      = map[string]TxType{"Deposit": TxDep, "Transfer": TxXfer, "Withdrawal": TxCash}
	securitiesTypes = map[string]TxType{"Transfer": TxXfer, "Payment": TxDiv}
)

// split splits a cash ledger description into its action and counterparty.
func split(description string) (action, counterparty string, ok bool) {
	parts := strings.SplitN(description, " ", 3)
	if len(parts) < 3 {
		return "", "", false
	}
	return parts[0], parts[2], true
}

// ledgers are the cash ledgers of the statement, by tax treatment.
type ledgers struct{ taxable, ira *CashLedger }

// findLedgers returns the last ledger of each tax treatment.
func findLedgers(accounts []Account) ledgers {
	var l ledgers
	for _, c := range ofKind[*CashLedger](accounts) {
		if c.Taxable() {
			l.taxable = c
		} else {
			l.ira = c
		}
	}
	return l
}

// of returns the ledger holding the cash of an investment account.
func (l ledgers) of(inv *Investment) *CashLedger {
	if inv.IRA() {
		return l.ira
	}
	return l.taxable
}

// payments indexes dividends by amount, to recognize them in the cash ledger.
type payments map[string][]date.Date

func amountKey(t Token) string {
	d, _ := t.Decimal()
	return d.String()
}

func (p payments) add(rec DividendRecord, cfg Config) {
	k := amountKey(rec.Amount)
	p[k] = append(p[k], date.Of(rec.Date, cfg.Zone))
}

// repeats reports whether a payment of the cash ledger was recorded as a dividend in
// the days before it.
//
// Dividends paid on the last days of a quarter may show up in the cash ledger but be
// reported in the dividends table of the next quarter. The window is a heuristic and
// may drop a genuine payment of the same amount.
func (p payments) repeats(rec CashRecord, cfg Config) bool {
	on := date.Of(rec.Date, cfg.Zone)
	return lo.ContainsBy(p[amountKey(rec.Amount)], func(d date.Date) bool {
		return date.Window(d, cfg.DedupWindow).Contains(on)
	})
}

// reconcile returns the transactions of an investment account, from its own tables
// and from the rows of the cash ledger that belong to it, without duplicates. It also
// returns the cash available in the sweep account after the last of them.
//
// end is the ending balance of the account, used to date fees printed before any trade.
func reconcile(inv *Investment, cash *CashLedger, end Balance, cfg Config) ([]Transaction, Money, error) {
	var (
		cur  = cfg.Institution.Currency
		name = inv.Name()
		log  = cfg.Logger.With().Str("account", name).Logger()
		txs  []Transaction
		paid = make(payments)
	)

	dividends, err := inv.Dividends(cfg)
	if err != nil {
		return nil, Money{}, err
	}
	for _, d := range dividends {
		id := fingerprint(stamp(d.Date), d.Description, d.Amount.String())
		txs = append(txs, NewIncome(id, d.Date, d.Description, d.Ticker, Amount(d.Amount, cur)))
		paid.add(d, cfg)
	}

	activity, err := inv.Activity(cfg)
	if err != nil {
		return nil, Money{}, err
	}
	for _, a := range activity {
		on := a.Date
		if on.IsZero() {
			on = end.Date
		}
		if strings.Contains(a.Event, inv.layout.FeeEvent) {
			id := fingerprint(stamp(on), a.Event, a.Value.String())
			txs = append(txs, NewCash(TxFee, id, on, cfg.Institution.Org, a.Event, Amount(a.Value, cur), SubAccountCash))
			if a.Ticker == "" {
				continue
			}
		}
		id := fingerprint(stamp(on), orNone(a.Event), a.Price.String(), a.Shares.String())
		units, price, total := Shares(a.Shares), Amount(a.Price, cur).exact(), Amount(a.Value, cur)
		// shares are rounded: "-0.000" is still a sale.
		if !units.IsNegative() && !a.Shares.Negative() {
			txs = append(txs, NewBuy(id, on, a.Event, a.Ticker, units, price, total))
		} else {
			txs = append(txs, NewSell(id, on, a.Event, a.Ticker, units, price, total))
		}
	}

	available := M(0, cur)
	if cash == nil {
		return txs, available, nil
	}

	sweep, err := cash.Sweep(cfg)
	if err != nil {
		return nil, Money{}, err
	}
	for _, r := range lo.Filter(sweep, belongsTo(name)) {
		action, counterparty, ok := split(r.Description)
		typ, payee := TxOther, r.Description
		if ok {
			if counterparty == securitiesAccount {
				log.Debug().Str("row", r.Description).Msg("sweep to the securities account dropped")
				continue
			}
			typ, payee = lo.ValueOr(sweepTypes, action, TxOther), counterparty
		}
		id := fingerprint(stamp(r.Date), r.Description, r.Amount.String())
		balance := Amount(r.Balance, cur)
		txs = append(txs, NewCash(typ, id, r.Date, payee, r.Description, Amount(r.Amount, cur), SubAccountCash).WithBalance(balance))
		available = balance
	}

	securities, err := cash.Securities(cfg)
	if err != nil {
		return nil, Money{}, err
	}
	for _, r := range lo.Filter(securities, belongsTo(name)) {
		typ, payee := TxOther, r.Description
		if r.Description == fees {
			typ, payee = TxFee, cfg.Institution.Org
		} else if action, counterparty, ok := split(r.Description); ok {
			switch {
			case counterparty == sweepAccount, action == settlement:
				continue
			case action == payment && paid.repeats(r, cfg):
				log.Debug().Str("row", r.Description).Str("amount", r.Amount.String()).Msg("payment already recorded as a dividend")
				continue
			}
			typ = lo.ValueOr(securitiesTypes, action, TxOther)
		}
		id := fingerprint(stamp(r.Date), r.Description, r.Amount.String())
		txs = append(txs, NewCash(typ, id, r.Date, payee, "", Amount(r.Amount, cur), SubAccountOther))
	}
	return txs, available, nil
}

// belongsTo returns a filter on the cash ledger rows of goal.
func belongsTo(goal string) func(CashRecord, int) bool {
	return func(r CashRecord, _ int) bool { return strings.EqualFold(r.Goal, goal) }
}

// ofKind returns the accounts of type T.
func ofKind[T Account](accounts []Account) []T {
	return lo.FilterMap(accounts, func(a Account, _ int) (T, bool) {
		t, ok := a.(T)
		return t, ok
	})
}
