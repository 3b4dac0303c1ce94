package rebalance

import "github.com/shopspring/decimal"

// TxKind classifies a ledger transaction. Unrecognized labels fall into
// KindOther; the raw label is kept on the transaction for display.
type TxKind int

const (
	KindOther TxKind = iota
	KindBuy
	KindSell
	KindDividend
	KindReinvestment
	KindConversionIn
	KindConversionOut
	KindAdvisorFee
	KindFundsReceived
	KindSweepIn
	KindSweepOut
	KindDistribution
)

// kindLabels maps the export's transaction-type labels to kinds.
var kindLabels = map[string]TxKind{
	"Buy":                   KindBuy,
	"Sell":                  KindSell,
	"Dividend":              KindDividend,
	"Reinvestment":          KindReinvestment,
	"Conversion (incoming)": KindConversionIn,
	"Conversion (outgoing)": KindConversionOut,
	"Advisor fee":           KindAdvisorFee,
	"Funds Received":        KindFundsReceived,
	"Sweep in":              KindSweepIn,
	"Sweep out":             KindSweepOut,
	"Distribution":          KindDistribution,
}

// ParseTxKind resolves a raw transaction-type label to a TxKind.
func ParseTxKind(label string) TxKind {
	if kind, ok := kindLabels[label]; ok {
		return kind
	}
	return KindOther
}

func (k TxKind) String() string {
	for label, kind := range kindLabels {
		if kind == k {
			return label
		}
	}
	return "Other"
}

// Transaction is one immutable row of the imported ledger. Shares and
// NetAmount are carried exactly as parsed; they are converted to float64
// only when folded into a Vector.
type Transaction struct {
	Account   string
	TradeDate Date
	Symbol    Symbol
	Shares    decimal.Decimal
	NetAmount decimal.Decimal
	Kind      TxKind
	RawKind   string // original label, meaningful when Kind is KindOther
}
