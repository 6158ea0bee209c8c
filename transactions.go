package statement

import "time"

// TxType identifies the kind of a transaction, using the OFX transaction type names.
type TxType string

// Transaction types.
const (
	TxBuy    TxType = "BUY"    // shares bought
	TxSell   TxType = "SELL"   // shares sold
	TxDiv    TxType = "DIV"    // dividend paid
	TxFee    TxType = "FEE"    // advisory or account fee
	TxDep    TxType = "DEP"    // deposit from an external account
	TxXfer   TxType = "XFER"   // transfer between accounts
	TxCash   TxType = "CASH"   // cash withdrawal
	TxInt    TxType = "INT"    // interest paid
	TxCredit TxType = "CREDIT" // other money in
	TxDebit  TxType = "DEBIT"  // other money out
	TxOther  TxType = "OTHER"
)

// SubAccount is the part of an investment account where cash moves.
type SubAccount string

const (
	SubAccountCash  SubAccount = "CASH"
	SubAccountOther SubAccount = "OTHER"
)

// Transaction is a reconciled transaction. Implementations are Buy, Sell, Income and Cash.
type Transaction interface {
	What() TxType    // What returns the type of the transaction.
	When() time.Time // When returns the UTC instant the transaction is dated.
	ID() string      // ID returns the identifier derived from the natural key of the transaction.
	Equal(Transaction) bool
}

type baseTx struct {
	Type  TxType
	Date  time.Time
	FitID string
	Memo  string
}

func (t baseTx) What() TxType    { return t.Type }
func (t baseTx) When() time.Time { return t.Date }
func (t baseTx) ID() string      { return t.FitID }

func (t baseTx) equal(o baseTx) bool {
	return t.Type == o.Type && t.Date.Equal(o.Date) && t.FitID == o.FitID && t.Memo == o.Memo
}

// MarshalJSON implements the json.Marshaler interface for baseTx.
func (t baseTx) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", t.Type)
	w.Append("date", t.Date.UTC().Format(time.RFC3339))
	w.Append("id", t.FitID)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// secTx is a transaction on a security.
type secTx struct {
	baseTx
	Security string // Security is the ticker of the security.
}

func (t secTx) equal(o secTx) bool { return t.baseTx.equal(o.baseTx) && t.Security == o.Security }

// MarshalJSON implements the json.Marshaler interface for secTx.
func (t secTx) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseTx)
	w.Append("security", t.Security)
	return w.MarshalJSON()
}

// trade is the common part of buy and sell transactions.
type trade struct {
	secTx
	Units     Quantity // Units is the number of shares traded, always positive.
	UnitPrice Money
	Total     Money // Total is the value of the trade, always positive.
}

func (t trade) equal(o trade) bool {
	return t.secTx.equal(o.secTx) && t.Units.Equal(o.Units) && t.UnitPrice.Equal(o.UnitPrice) && t.Total.Equal(o.Total)
}

// MarshalJSON implements the json.Marshaler interface for trade.
func (t trade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secTx)
	w.Append("units", t.Units)
	w.PrefixFrom("price", t.UnitPrice.exact())
	w.EmbedFrom(t.Total)
	return w.MarshalJSON()
}

// Buy represents shares bought.
type Buy struct{ trade }

// NewBuy creates a new Buy transaction.
func NewBuy(id string, on time.Time, memo, security string, units Quantity, price, total Money) Buy {
	return Buy{trade{
		secTx:     secTx{baseTx: baseTx{Type: TxBuy, Date: on, FitID: id, Memo: memo}, Security: security},
		Units:     units,
		UnitPrice: price,
		Total:     total,
	}}
}

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.trade.equal(o.trade)
}

// Sell represents shares sold.
type Sell struct{ trade }

// NewSell creates a new Sell transaction. Units and total are made positive.
func NewSell(id string, on time.Time, memo, security string, units Quantity, price, total Money) Sell {
	return Sell{trade{
		secTx:     secTx{baseTx: baseTx{Type: TxSell, Date: on, FitID: id, Memo: memo}, Security: security},
		Units:     units.Abs(),
		UnitPrice: price,
		Total:     total.Abs(),
	}}
}

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.trade.equal(o.trade)
}

// Income represents a dividend paid by a security.
type Income struct {
	secTx
	Total Money
}

// NewIncome creates a new dividend.
func NewIncome(id string, on time.Time, memo, security string, total Money) Income {
	return Income{
		secTx: secTx{baseTx: baseTx{Type: TxDiv, Date: on, FitID: id, Memo: memo}, Security: security},
		Total: total,
	}
}

func (t Income) Equal(other Transaction) bool {
	o, ok := other.(Income)
	return ok && t.secTx.equal(o.secTx) && t.Total.Equal(o.Total)
}

// MarshalJSON implements the json.Marshaler interface for Income.
func (t Income) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.secTx)
	w.EmbedFrom(t.Total)
	return w.MarshalJSON()
}

// Cash represents money moving in or out of an account without a security.
type Cash struct {
	baseTx
	Name    string     // Name is the payee or the counterparty.
	Amount  Money      // Amount is signed: negative when money goes out.
	Fund    SubAccount // Fund is the sub-account the money moves in.
	Balance *Money     // Balance is the running balance after the transaction, if known.
}

// NewCash creates a new cash transaction of the given type.
func NewCash(typ TxType, id string, on time.Time, name, memo string, amount Money, fund SubAccount) Cash {
	return Cash{
		baseTx: baseTx{Type: typ, Date: on, FitID: id, Memo: memo},
		Name:   name,
		Amount: amount,
		Fund:   fund,
	}
}

// WithBalance returns a copy of t with a running balance.
func (t Cash) WithBalance(balance Money) Cash {
	t.Balance = &balance
	return t
}

func (t Cash) Equal(other Transaction) bool {
	o, ok := other.(Cash)
	if !ok || !t.baseTx.equal(o.baseTx) || t.Name != o.Name || !t.Amount.Equal(o.Amount) || t.Fund != o.Fund {
		return false
	}
	if t.Balance == nil || o.Balance == nil {
		return t.Balance == o.Balance
	}
	return t.Balance.Equal(*o.Balance)
}

// MarshalJSON implements the json.Marshaler interface for Cash.
func (t Cash) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseTx)
	w.Optional("name", t.Name)
	w.EmbedFrom(t.Amount)
	w.Optional("fund", t.Fund)
	if t.Balance != nil {
		w.PrefixFrom("balance", *t.Balance)
	}
	return w.MarshalJSON()
}
