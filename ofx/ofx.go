// Package ofx writes a statement ledger as an OFX 2.2 document.
//
// The cash reserve becomes a bank statement message of a SAVINGS account, every
// investing goal an investment statement message, and the securities mentioned in
// the statement a security list.
package ofx

import (
	"fmt"
	"io"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/etnz/statement"
	"github.com/shopspring/decimal"
)

// nameSize is the size of the NAME element of a transaction.
const nameSize = 32

// Encode writes st as an OFX document signed on by inst.
func Encode(w io.Writer, st *statement.Statement, inst statement.Institution) error {
	resp, err := Response(st, inst)
	if err != nil {
		return err
	}
	b, err := resp.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal OFX response: %w", err)
	}
	if _, err := b.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write OFX response: %w", err)
	}
	return nil
}

// Response builds the OFX response of a statement.
func Response(st *statement.Statement, inst statement.Institution) (*ofxgo.Response, error) {
	if st.AsOf.IsZero() {
		return nil, fmt.Errorf("%w: statement has no ending date", statement.ErrMissingRequiredField)
	}
	cur, err := ofxgo.NewCurrSymbol(inst.Currency)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", inst.Currency, err)
	}
	resp := &ofxgo.Response{
		Version: ofxgo.OfxVersion220,
		Signon: ofxgo.SignonResponse{
			Status:   success(),
			DtServer: date(st.AsOf),
			Language: "ENG",
			Org:      ofxgo.String(inst.Org),
			Fid:      ofxgo.String(inst.FID),
		},
	}
	if st.Bank != nil {
		resp.Bank = append(resp.Bank, bank(st.Bank, *cur, inst))
	}
	for _, is := range st.Investments {
		resp.InvStmt = append(resp.InvStmt, investment(is, *cur, inst))
	}
	if st.Securities != nil && st.Securities.Len() > 0 {
		resp.SecList = append(resp.SecList, securities(st.Securities))
	}
	return resp, nil
}

func success() ofxgo.Status { return ofxgo.Status{Code: 0, Severity: "INFO"} }

func date(t time.Time) ofxgo.Date { return ofxgo.Date{Time: t.UTC()} }

func amount(d decimal.Decimal) ofxgo.Amount { return ofxgo.Amount{Rat: *d.Rat()} }

func ticker(symbol string) ofxgo.SecurityID {
	return ofxgo.SecurityID{UniqueID: ofxgo.String(symbol), UniqueIDType: "TICKER"}
}

func bank(b *statement.BankStatement, cur ofxgo.CurrSymbol, inst statement.Institution) *ofxgo.StatementResponse {
	list := &ofxgo.TransactionList{DtStart: date(b.Start), DtEnd: date(b.End)}
	for _, tx := range b.Transactions {
		if c, ok := tx.(statement.Cash); ok {
			list.Transactions = append(list.Transactions, transaction(c))
		}
	}
	return &ofxgo.StatementResponse{
		TrnUID: ofxgo.UID(b.UID()),
		Status: success(),
		CurDef: cur,
		BankAcctFrom: ofxgo.BankAcct{
			BankID:   ofxgo.String(inst.BankID),
			AcctID:   ofxgo.String(b.ID),
			AcctType: ofxgo.AcctTypeSavings,
		},
		BankTranList: list,
		BalAmt:       amount(b.Closing.Decimal()),
		DtAsOf:       date(b.End),
	}
}

// transaction returns the statement transaction of a cash movement.
func transaction(c statement.Cash) ofxgo.Transaction {
	name := c.Name
	if r := []rune(name); len(r) > nameSize {
		name = string(r[:nameSize])
	}
	t := ofxgo.Transaction{
		DtPosted: date(c.When()),
		TrnAmt:   amount(c.Amount.Decimal()),
		FiTID:    ofxgo.String(c.ID()),
		Name:     ofxgo.String(name),
		Memo:     ofxgo.String(c.Memo),
	}
	switch c.What() {
	case statement.TxInt:
		t.TrnType = ofxgo.TrnTypeInt
	case statement.TxCredit:
		t.TrnType = ofxgo.TrnTypeCredit
	case statement.TxDebit:
		t.TrnType = ofxgo.TrnTypeDebit
	case statement.TxDiv:
		t.TrnType = ofxgo.TrnTypeDiv
	case statement.TxFee:
		t.TrnType = ofxgo.TrnTypeFee
	case statement.TxDep:
		t.TrnType = ofxgo.TrnTypeDep
	case statement.TxXfer:
		t.TrnType = ofxgo.TrnTypeXfer
	case statement.TxCash:
		t.TrnType = ofxgo.TrnTypeCash
	default:
		t.TrnType = ofxgo.TrnTypeOther
	}
	return t
}

func investment(is *statement.InvestmentStatement, cur ofxgo.CurrSymbol, inst statement.Institution) *ofxgo.InvStatementResponse {
	list := &ofxgo.InvTranList{DtStart: date(is.Start), DtEnd: date(is.End)}
	for _, tx := range is.Transactions {
		inv := ofxgo.InvTran{FiTID: ofxgo.String(tx.ID()), DtTrade: date(tx.When())}
		switch tx := tx.(type) {
		case statement.Buy:
			inv.Memo = ofxgo.String(tx.Memo)
			list.InvTransactions = append(list.InvTransactions, ofxgo.BuyMF{
				InvBuy: ofxgo.InvBuy{
					InvTran:     inv,
					SecID:       ticker(tx.Security),
					Units:       amount(tx.Units.Decimal()),
					UnitPrice:   amount(tx.UnitPrice.Decimal()),
					Total:       amount(tx.Total.Decimal()),
					SubAcctSec:  ofxgo.SubAcctTypeOther,
					SubAcctFund: ofxgo.SubAcctTypeOther,
				},
				BuyType: ofxgo.BuyTypeBuy,
			})
		case statement.Sell:
			inv.Memo = ofxgo.String(tx.Memo)
			list.InvTransactions = append(list.InvTransactions, ofxgo.SellMF{
				InvSell: ofxgo.InvSell{
					InvTran:     inv,
					SecID:       ticker(tx.Security),
					Units:       amount(tx.Units.Decimal()),
					UnitPrice:   amount(tx.UnitPrice.Decimal()),
					Total:       amount(tx.Total.Decimal()),
					SubAcctSec:  ofxgo.SubAcctTypeOther,
					SubAcctFund: ofxgo.SubAcctTypeOther,
				},
				SellType: ofxgo.SellTypeSell,
			})
		case statement.Income:
			inv.Memo = ofxgo.String(tx.Memo)
			list.InvTransactions = append(list.InvTransactions, ofxgo.Income{
				InvTran:     inv,
				SecID:       ticker(tx.Security),
				IncomeType:  ofxgo.IncomeTypeDiv,
				Total:       amount(tx.Total.Decimal()),
				SubAcctSec:  ofxgo.SubAcctTypeOther,
				SubAcctFund: ofxgo.SubAcctTypeOther,
			})
		case statement.Cash:
			fund := ofxgo.SubAcctTypeOther
			if tx.Fund == statement.SubAccountCash {
				fund = ofxgo.SubAcctTypeCash
			}
			list.BankTransactions = append(list.BankTransactions, ofxgo.InvBankTransaction{
				Transactions: []ofxgo.Transaction{transaction(tx)},
				SubAcctFund:  fund,
			})
		}
	}

	var positions ofxgo.PositionList
	for _, p := range is.Positions {
		positions = append(positions, ofxgo.StockPosition{
			InvPos: ofxgo.InvPosition{
				SecID:       ticker(p.Ticker),
				HeldInAcct:  ofxgo.SubAcctTypeOther,
				PosType:     ofxgo.PosTypeLong,
				Units:       amount(p.Units.Decimal()),
				UnitPrice:   amount(p.UnitPrice.Decimal()),
				MktVal:      amount(p.Value.Decimal()),
				DtPriceAsOf: date(is.End),
				Memo:        ofxgo.String(p.Name),
			},
		})
	}

	return &ofxgo.InvStatementResponse{
		TrnUID: ofxgo.UID(is.UID()),
		Status: success(),
		DtAsOf: date(is.End),
		CurDef: cur,
		InvAcctFrom: ofxgo.InvAcct{
			BrokerID: ofxgo.String(inst.BrokerID),
			AcctID:   ofxgo.String(is.ID),
		},
		InvTranList: list,
		InvPosList:  positions,
		// the available cash is the one of the sweep account shared by all the goals
		// of the same tax treatment.
		InvBal: &ofxgo.InvBalance{AvailCash: amount(is.AvailableCash.Decimal())},
	}
}

func securities(d *statement.Directory) *ofxgo.SecurityList {
	list := &ofxgo.SecurityList{}
	for _, s := range d.All() {
		list.Securities = append(list.Securities, ofxgo.StockInfo{
			SecInfo: ofxgo.SecInfo{
				SecID:   ticker(s.Ticker),
				SecName: ofxgo.String(s.Name),
				Ticker:  ofxgo.String(s.Ticker),
			},
		})
	}
	return list
}
