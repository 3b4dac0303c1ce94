package rebalance

import "testing"

func TestNewAllocation(t *testing.T) {
	a, err := NewAllocation(60, 40, 0)
	if err != nil {
		t.Fatalf("NewAllocation(60, 40, 0): %v", err)
	}
	if !a.Stock().Equal(60) || !a.Bond().Equal(40) || !a.Inflation().Equal(0) {
		t.Errorf("NewAllocation(60, 40, 0) = %v", a)
	}

	if _, err := NewAllocation(60, 30, 0); err == nil {
		t.Errorf("NewAllocation(60, 30, 0) expected an error")
	}
}

func TestRetirementGlidePath(t *testing.T) {
	const thisYear = 2026
	tests := []struct {
		year                   int
		stock, bond, inflation Percent
	}{
		// 30 years or more out: full accumulation.
		{thisYear + 40, 90, 10, 0},
		{thisYear + 30, 90, 10, 0},
		// 5 to 30 years out: stock drifts down 1.5 points per year.
		{thisYear + 25, 90, 10, 0},
		{thisYear + 10, 67.5, 32.5, 0},
		{thisYear + 5, 60, 40, 0},
		// Within 5 years of retirement: inflation protection phases in.
		{thisYear + 4, 57.2, 41, 1.8},
		{thisYear, 46, 45, 9},
		{thisYear - 5, 32, 50, 18},
		// More than 5 years into retirement: static decumulation.
		{thisYear - 6, 29, 53, 18},
		{thisYear - 20, 29, 53, 18},
	}
	for _, tt := range tests {
		a, err := retirementAt(tt.year, thisYear)
		if err != nil {
			t.Errorf("retirementAt(%d, %d): %v", tt.year, thisYear, err)
			continue
		}
		if !a.Stock().Equal(tt.stock) || !a.Bond().Equal(tt.bond) || !a.Inflation().Equal(tt.inflation) {
			t.Errorf("retirementAt(%d, %d) = %v, want stock %v, bond %v, inflation protected %v",
				tt.year, thisYear, a, tt.stock, tt.bond, tt.inflation)
		}
	}
}

func TestRetirement_yearRange(t *testing.T) {
	for _, year := range []int{0, 1999, 3000, -2030} {
		if _, err := Retirement(year); err == nil {
			t.Errorf("Retirement(%d) expected an error", year)
		}
	}
}

// The three class percentages always sum to 100 on every leg of the path.
func TestRetirement_sumsTo100(t *testing.T) {
	const thisYear = 2026
	for year := thisYear - 20; year <= thisYear+50; year++ {
		a, err := retirementAt(year, thisYear)
		if err != nil {
			t.Fatalf("retirementAt(%d, %d): %v", year, thisYear, err)
		}
		if sum := a.Stock() + a.Bond() + a.Inflation(); !sum.Equal(100) {
			t.Errorf("retirementAt(%d, %d) sums to %v, want 100", year, thisYear, sum)
		}
	}
}

func TestNewSubAllocation(t *testing.T) {
	alloc, err := NewAllocation(90, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	sub, err := NewSubAllocation(alloc)
	if err != nil {
		t.Fatalf("NewSubAllocation: %v", err)
	}

	tests := []struct {
		sym  Symbol
		want Percent
	}{
		{LargeCapUS, 20},
		{MidCapUS, 20},
		{SmallCapUS, 20},
		{TotalIntlStock, 20},
		{EmergingMktStock, 10},
		{TotalBondUS, 10.0 / 3},
		{CorpBondUS, 10.0 / 3},
		{IntlBond, 10.0 / 3},
		{InflationProtected, 0},
	}
	for _, tt := range tests {
		if got := sub.Value(tt.sym); !got.Equal(tt.want) {
			t.Errorf("sub.Value(%v) = %v, want %v", tt.sym, got, tt.want)
		}
	}
	// Buckets with no sub-allocation percentage report zero.
	if got := sub.Value(Cash); got != 0 {
		t.Errorf("sub.Value(Cash) = %v, want 0", got)
	}
}

// The nine bucket percentages reassemble the whole allocation on every leg
// of the glide path.
func TestSubAllocation_sumsTo100(t *testing.T) {
	const thisYear = 2026
	for year := thisYear - 20; year <= thisYear+50; year++ {
		alloc, err := retirementAt(year, thisYear)
		if err != nil {
			t.Fatal(err)
		}
		sub, err := NewSubAllocation(alloc)
		if err != nil {
			t.Errorf("NewSubAllocation(retirementAt(%d)): %v", year, err)
			continue
		}
		var sum Percent
		for _, sym := range Tradable() {
			sum += sub.Value(sym)
		}
		if !sum.Equal(100) {
			t.Errorf("sub allocations for year %d sum to %v, want 100", year, sum)
		}
	}
}
