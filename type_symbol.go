package rebalance

// Symbol identifies one of the asset-class buckets a portfolio value can be
// keyed by. The universe is closed: nine tradable buckets, the money-market
// sweep (Cash), and a single catch-all (Other) that aggregates every
// unsupported ticker by value. The zero value NoSymbol marks a field that
// was never populated and is not a valid value key.
type Symbol int

const (
	// NoSymbol is the invalid/uninitialized sentinel. Using it to read or
	// write a vector slot is a programming error and panics.
	NoSymbol Symbol = iota
	LargeCapUS
	MidCapUS
	SmallCapUS
	CorpBondUS
	TotalBondUS
	TotalIntlStock
	EmergingMktStock
	IntlBond
	InflationProtected
	Cash
	Other

	numSymbols = int(Other) // count of valid value keys
)

// tickers maps each bucket to the fund ticker it is traded under.
var tickers = map[Symbol]string{
	LargeCapUS:         "VV",
	MidCapUS:           "VO",
	SmallCapUS:         "VB",
	CorpBondUS:         "VTC",
	TotalBondUS:        "BND",
	TotalIntlStock:     "VXUS",
	EmergingMktStock:   "VWO",
	IntlBond:           "BNDX",
	InflationProtected: "VTIP",
	Cash:               "VMFXX",
}

// descriptions holds the human-readable description for each tradable bucket.
var descriptions = map[Symbol]string{
	LargeCapUS:         "US large cap",
	MidCapUS:           "US mid cap",
	SmallCapUS:         "US small cap",
	CorpBondUS:         "US total corporate bond",
	TotalBondUS:        "US total bond",
	TotalIntlStock:     "Total international stock",
	EmergingMktStock:   "Emerging markets stock",
	IntlBond:           "Total international bond",
	InflationProtected: "Inflation protected securities",
}

// ParseSymbol resolves a raw ticker string to a Symbol. Unknown non-empty
// tickers resolve to Other; once aggregated there the original ticker is not
// recoverable. The empty string resolves to NoSymbol, the explicit invalid
// sentinel.
func ParseSymbol(raw string) Symbol {
	if raw == "" {
		return NoSymbol
	}
	for sym, ticker := range tickers {
		if ticker == raw {
			return sym
		}
	}
	return Other
}

// String returns the ticker of the bucket, or a stable placeholder for the
// buckets that have none.
func (s Symbol) String() string {
	if ticker, ok := tickers[s]; ok {
		return ticker
	}
	switch s {
	case Other:
		return "OTHER"
	default:
		return "NONE"
	}
}

// Description returns the ticker and the human-readable description of the
// bucket, or a "no description" string for unsupported buckets.
func (s Symbol) Description() string {
	if desc, ok := descriptions[s]; ok {
		return s.String() + ": " + desc
	}
	return "No description for " + s.String()
}

// Tradable lists the nine tradable buckets in display order.
func Tradable() [9]Symbol {
	return [9]Symbol{
		LargeCapUS,
		MidCapUS,
		SmallCapUS,
		CorpBondUS,
		TotalBondUS,
		TotalIntlStock,
		EmergingMktStock,
		IntlBond,
		InflationProtected,
	}
}

// HighToLowRisk lists the nine tradable buckets ordered from the highest
// expected volatility to the lowest. The rebalance engine walks this order
// to place the riskiest assets in the tax-free account, and its reverse to
// place the least risky ones in the taxable account. The ordering is a
// correctness-critical constant, not a display preference.
var HighToLowRisk = [9]Symbol{
	EmergingMktStock,
	TotalIntlStock,
	SmallCapUS,
	MidCapUS,
	LargeCapUS,
	IntlBond,
	TotalBondUS,
	CorpBondUS,
	InflationProtected,
}

// AllDescriptions returns the description of every tradable bucket, one per
// line.
func AllDescriptions() string {
	var out string
	for i, sym := range Tradable() {
		if i > 0 {
			out += "\n"
		}
		out += sym.Description()
	}
	return out
}
