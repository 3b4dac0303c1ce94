package rebalance

// Vector is the fixed-shape numeric container of the package: one float64
// magnitude per Symbol, plus two auxiliary scalars for value held outside
// the custodial accounts. The same shape carries holdings in dollars,
// holdings in shares, per-share quotes, and rebalance targets.
//
// Vectors are immutable by convention: every method returns a new value.
// The arithmetic is purely elementwise with no normalization or bounds
// checking; dividing by a vector holding a zero yields the usual IEEE
// non-finite result for that slot, which is why quote vectors are
// constructed with a 1.0 default in every slot (see Quotes).
type Vector struct {
	slots        [numSymbols]float64
	outsideStock float64
	outsideBond  float64
}

// index maps a Symbol to its slot, panicking on the unset sentinel: a
// NoSymbol key denotes an input that was never fully constructed.
func (s Symbol) index() int {
	if s <= NoSymbol || int(s) > numSymbols {
		panic("rebalance: vector keyed by unset symbol")
	}
	return int(s) - 1
}

// Quotes returns a quote vector with every slot defaulted to 1.0. The 1.0
// is the "missing price" sentinel, never a real price: any unpriced bucket
// degrades value/quote division to the identity instead of a zero division.
func Quotes() Vector {
	var v Vector
	for i := range v.slots {
		v.slots[i] = 1
	}
	v.outsideStock = 1
	v.outsideBond = 1
	return v
}

// Value returns the magnitude stored for the given symbol.
func (v Vector) Value(sym Symbol) float64 { return v.slots[sym.index()] }

// With returns a copy of v with the given symbol's slot set to x.
func (v Vector) With(sym Symbol, x float64) Vector {
	v.slots[sym.index()] = x
	return v
}

// Plus returns a copy of v with x added to the given symbol's slot.
func (v Vector) Plus(sym Symbol, x float64) Vector {
	v.slots[sym.index()] += x
	return v
}

// OutsideStock returns the stock value held outside the custodial accounts.
func (v Vector) OutsideStock() float64 { return v.outsideStock }

// OutsideBond returns the bond value held outside the custodial accounts.
func (v Vector) OutsideBond() float64 { return v.outsideBond }

// WithOutsideStock returns a copy of v with the outside stock scalar set.
func (v Vector) WithOutsideStock(x float64) Vector {
	v.outsideStock = x
	return v
}

// WithOutsideBond returns a copy of v with the outside bond scalar set.
func (v Vector) WithOutsideBond(x float64) Vector {
	v.outsideBond = x
	return v
}

// binary elementwise operators.

// Add returns the elementwise sum of v and w.
func (v Vector) Add(w Vector) Vector {
	for i := range v.slots {
		v.slots[i] += w.slots[i]
	}
	v.outsideStock += w.outsideStock
	v.outsideBond += w.outsideBond
	return v
}

// Sub returns the elementwise difference of v and w.
func (v Vector) Sub(w Vector) Vector {
	for i := range v.slots {
		v.slots[i] -= w.slots[i]
	}
	v.outsideStock -= w.outsideStock
	v.outsideBond -= w.outsideBond
	return v
}

// Mul returns the elementwise product of v and w.
func (v Vector) Mul(w Vector) Vector {
	for i := range v.slots {
		v.slots[i] *= w.slots[i]
	}
	v.outsideStock *= w.outsideStock
	v.outsideBond *= w.outsideBond
	return v
}

// Div returns the elementwise quotient of v and w. A zero slot in w yields
// NaN or Inf in that slot; callers guarantee quote vectors are never zero.
func (v Vector) Div(w Vector) Vector {
	for i := range v.slots {
		v.slots[i] /= w.slots[i]
	}
	v.outsideStock /= w.outsideStock
	v.outsideBond /= w.outsideBond
	return v
}

// TotalValue returns the sum of the nine tradable buckets plus Cash and
// Other. The outside scalars are allocation-ratio inputs only and are
// deliberately excluded.
func (v Vector) TotalValue() float64 {
	var total float64
	for _, x := range v.slots {
		total += x
	}
	return total
}

// Breakdown groups the buckets into stock, bond, and inflation-protected
// classes and returns the percentage each represents. The denominator is
// the invested total: Cash and Other are excluded, the outside scalars are
// included. Only meaningful when the vector carries dollar values.
func (v Vector) Breakdown() (stock, bond, inflation Percent) {
	stockValue := v.Value(LargeCapUS) + v.Value(MidCapUS) + v.Value(SmallCapUS) +
		v.Value(TotalIntlStock) + v.Value(EmergingMktStock) + v.outsideStock
	bondValue := v.Value(CorpBondUS) + v.Value(TotalBondUS) + v.Value(IntlBond) + v.outsideBond
	total := v.TotalValue() - v.Value(Cash) - v.Value(Other) + v.outsideStock + v.outsideBond
	return Percent(stockValue / total * 100),
		Percent(bondValue / total * 100),
		Percent(v.Value(InflationProtected) / total * 100)
}

// Target builds the target vector for an account (or pool of accounts)
// whose custodial value is totalValue. The outside* arguments are dollars
// held outside the custodial accounts; each bucket fed by an outside class
// has its target reduced by its fixed pro-rata share of that class, so the
// custodial target reflects only what should be held inside. Cash and Other
// target zero: rebalancing sells out of both.
func Target(sub SubAllocation, totalValue, outsideUSStock, outsideUSBond, outsideIntlStock, outsideIntlBond float64) Vector {
	total := totalValue + outsideUSStock + outsideUSBond + outsideIntlStock + outsideIntlBond

	var v Vector
	v = v.With(LargeCapUS, total*float64(sub.LargeCapUS)/100-outsideUSStock/3)
	v = v.With(MidCapUS, total*float64(sub.MidCapUS)/100-outsideUSStock/3)
	v = v.With(SmallCapUS, total*float64(sub.SmallCapUS)/100-outsideUSStock/3)
	v = v.With(TotalIntlStock, total*float64(sub.TotalIntlStock)/100-outsideIntlStock*2/3)
	v = v.With(EmergingMktStock, total*float64(sub.EmergingMktStock)/100-outsideIntlStock/3)
	v = v.With(TotalBondUS, total*float64(sub.TotalBondUS)/100-outsideUSBond/2)
	v = v.With(CorpBondUS, total*float64(sub.CorpBondUS)/100-outsideUSBond/2)
	v = v.With(IntlBond, total*float64(sub.IntlBond)/100-outsideIntlBond)
	v = v.With(InflationProtected, total*float64(sub.InflationProtected)/100)
	v.outsideStock = outsideUSStock + outsideIntlStock
	v.outsideBond = outsideUSBond + outsideIntlBond
	return v
}
