package rebalance

import "fmt"

// Fixed fractions of the portfolio contained within each bucket.
// US stock is 2/3 of total stock, split in equal thirds between large, mid,
// and small cap. International stock is the remaining 1/3, itself split 2/3
// total international and 1/3 emerging markets. Bonds are 2/3 US, split
// evenly between the total-bond and corporate-bond funds, and 1/3
// international.
const (
	usStockFraction   = 2.0 / 3.0
	eachUSStock       = usStockFraction / 3.0
	intlStockFraction = 1.0 / 3.0
	intlEmerging      = intlStockFraction / 3.0
	intlTotal         = intlStockFraction * 2.0 / 3.0
	usBondFraction    = 2.0 / 3.0
	usCorpBond        = usBondFraction / 2.0
	usTotalBond       = usBondFraction / 2.0
	intlBondFraction  = 1.0 / 3.0
)

// Allocation holds the target stock, bond, and inflation-protected
// percentages for a whole portfolio.
type Allocation struct {
	stock     Percent
	bond      Percent
	inflation Percent
}

// NewAllocation builds an Allocation from caller-supplied percentages.
// The three must sum to exactly 100.
func NewAllocation(stock, bond, inflation Percent) (Allocation, error) {
	if stock+bond+inflation != 100 {
		return Allocation{}, fmt.Errorf("stock (%v) + bond (%v) + inflation protected (%v) does not equal 100", stock, bond, inflation)
	}
	return Allocation{stock: stock, bond: bond, inflation: inflation}, nil
}

// Retirement derives the Allocation from a glide path to the given target
// retirement year, evaluated against the current calendar year.
func Retirement(year int) (Allocation, error) {
	return retirementAt(year, Today().Year())
}

// retirementAt is the glide-path schedule itself, keyed by years remaining
// until retirement. Kept separate from Retirement so the schedule can be
// pinned in tests.
func retirementAt(year, thisYear int) (Allocation, error) {
	if year < 2000 || year >= 3000 {
		return Allocation{}, fmt.Errorf("retirement year must be between 2000 and 3000, got %d", year)
	}
	y := float64(year - thisYear)

	// Default, and the y >= 30 leg: full accumulation.
	stock, bond, inflation := 90.0, 10.0, 0.0
	switch {
	case y >= 5 && y < 30:
		stock = 90 - 1.5*(25-y)
		bond = 100 - stock
	case y >= -5 && y < 5:
		stock = 60 - (-2.8 * (y - 5))
		inflation = -1.8 * (y - 5)
		bond = 100 - stock - inflation
	case y < -5:
		// Static decumulation allocation.
		stock, bond, inflation = 29, 53, 18
	}
	return Allocation{stock: Percent(stock), bond: Percent(bond), inflation: Percent(inflation)}, nil
}

// Stock returns the total stock percentage.
func (a Allocation) Stock() Percent { return a.stock }

// Bond returns the total bond percentage.
func (a Allocation) Bond() Percent { return a.bond }

// Inflation returns the inflation-protected percentage.
func (a Allocation) Inflation() Percent { return a.inflation }

func (a Allocation) String() string {
	return fmt.Sprintf("stock %v, bond %v, inflation protected %v", a.stock, a.bond, a.inflation)
}

// SubAllocation splits an Allocation into one percentage per tradable
// bucket using the fixed fractions above.
type SubAllocation struct {
	LargeCapUS         Percent
	MidCapUS           Percent
	SmallCapUS         Percent
	TotalBondUS        Percent
	CorpBondUS         Percent
	TotalIntlStock     Percent
	EmergingMktStock   Percent
	IntlBond           Percent
	InflationProtected Percent
}

// NewSubAllocation derives the nine bucket percentages from an Allocation.
// The nine must sum back to 100 within a 0.1 tolerance; a drift beyond that
// means the fraction constants were edited inconsistently, and is returned
// as an error rather than silently renormalized.
func NewSubAllocation(a Allocation) (SubAllocation, error) {
	sub := SubAllocation{
		LargeCapUS:         a.stock * eachUSStock,
		MidCapUS:           a.stock * eachUSStock,
		SmallCapUS:         a.stock * eachUSStock,
		TotalBondUS:        a.bond * usTotalBond,
		CorpBondUS:         a.bond * usCorpBond,
		TotalIntlStock:     a.stock * intlTotal,
		EmergingMktStock:   a.stock * intlEmerging,
		IntlBond:           a.bond * intlBondFraction,
		InflationProtected: a.inflation,
	}
	sum := sub.LargeCapUS + sub.MidCapUS + sub.SmallCapUS +
		sub.TotalBondUS + sub.CorpBondUS +
		sub.TotalIntlStock + sub.EmergingMktStock + sub.IntlBond +
		sub.InflationProtected
	if sum <= 99.9 || sum >= 100.1 {
		return SubAllocation{}, fmt.Errorf("sub allocations do not add up to 100: %v", sum)
	}
	return sub, nil
}

// Value returns the percentage for a tradable bucket.
func (s SubAllocation) Value(sym Symbol) Percent {
	switch sym {
	case LargeCapUS:
		return s.LargeCapUS
	case MidCapUS:
		return s.MidCapUS
	case SmallCapUS:
		return s.SmallCapUS
	case TotalBondUS:
		return s.TotalBondUS
	case CorpBondUS:
		return s.CorpBondUS
	case TotalIntlStock:
		return s.TotalIntlStock
	case EmergingMktStock:
		return s.EmergingMktStock
	case IntlBond:
		return s.IntlBond
	case InflationProtected:
		return s.InflationProtected
	default:
		return 0
	}
}
