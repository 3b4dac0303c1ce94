package rebalance

import (
	"strings"
	"testing"
)

// retirementYear is far enough out that the glide path stays on its full
// accumulation leg (90/10/0) regardless of the current year.
func retirementYear() int { return Today().Year() + 40 }

func TestCompute_emptyRequest(t *testing.T) {
	result, err := Compute(Request{Quotes: Quotes()})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.Brokerage != nil || result.Traditional != nil || result.Roth != nil {
		t.Errorf("empty request produced account holdings: %+v", result)
	}
	if result.RetirementTarget != nil {
		t.Errorf("empty request produced a retirement target")
	}
}

func TestCompute_brokerageAlreadyBalanced(t *testing.T) {
	alloc, err := NewAllocation(60, 40, 0)
	if err != nil {
		t.Fatal(err)
	}
	sub, err := NewSubAllocation(alloc)
	if err != nil {
		t.Fatal(err)
	}
	current := Target(sub, 10000, 0, 0, 0, 0)

	result, err := Compute(Request{
		PercentStock: 60,
		Quotes:       Quotes(),
		Brokerage:    AccountInput{Holdings: current},
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.Brokerage == nil {
		t.Fatal("no brokerage holdings in result")
	}
	if result.Traditional != nil || result.Roth != nil || result.RetirementTarget != nil {
		t.Errorf("brokerage-only request produced retirement results")
	}
	for _, sym := range Tradable() {
		if got := result.Brokerage.Delta.Value(sym); !approx(got, 0) {
			t.Errorf("delta %v = %v, want 0", sym, got)
		}
	}
}

func TestCompute_brokerageDeltas(t *testing.T) {
	// All cash, zero stock: the whole account moves into the three bond
	// buckets, a third each.
	holdings := Vector{}.With(Cash, 1000)
	quotes := Quotes().With(TotalBondUS, 100)

	result, err := Compute(Request{
		PercentStock: 0,
		Quotes:       quotes,
		Brokerage:    AccountInput{Holdings: holdings},
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	b := result.Brokerage
	if b == nil {
		t.Fatal("no brokerage holdings in result")
	}
	if got := b.Target.Value(TotalBondUS); !approx(got, 1000.0/3) {
		t.Errorf("target TotalBondUS = %v, want %v", got, 1000.0/3)
	}
	// Deltas are share counts: the bond buy is scaled by its quote, the
	// cash sell is dollar-for-dollar.
	if got := b.Delta.Value(TotalBondUS); !approx(got, 1000.0/3/100) {
		t.Errorf("delta TotalBondUS = %v shares, want %v", got, 1000.0/3/100)
	}
	if got := b.Delta.Value(CorpBondUS); !approx(got, 1000.0/3) {
		t.Errorf("delta CorpBondUS = %v shares, want %v", got, 1000.0/3)
	}
	if got := b.Delta.Value(Cash); !approx(got, -1000) {
		t.Errorf("delta Cash = %v, want -1000", got)
	}
}

func TestCompute_brokerageCashAdd(t *testing.T) {
	result, err := Compute(Request{
		PercentStock: 100,
		Quotes:       Quotes(),
		Brokerage: AccountInput{
			Holdings: Vector{}.With(Cash, 1000),
			CashAdd:  500,
		},
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	b := result.Brokerage
	if got := b.Current.Value(Cash); got != 1500 {
		t.Errorf("current Cash = %v, want 1500", got)
	}
	if got := b.Target.TotalValue(); !approx(got, 1500) {
		t.Errorf("target total = %v, want 1500", got)
	}
}

// Retirement accounts are pooled under one glide-path target and the
// tax-free account absorbs the riskiest buckets first; the tax-deferred
// account takes everything left over.
func TestCompute_retirementPartition(t *testing.T) {
	roth := Vector{}.With(TotalIntlStock, 30000)
	traditional := Vector{}.With(LargeCapUS, 40000).With(TotalBondUS, 30000)

	result, err := Compute(Request{
		RetirementYear: retirementYear(),
		Quotes:         Quotes(),
		Roth:           AccountInput{Holdings: roth},
		Traditional:    AccountInput{Holdings: traditional},
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.RetirementTarget == nil {
		t.Fatal("no retirement target in result")
	}
	if result.Roth == nil || result.Traditional == nil {
		t.Fatal("missing account holdings in result")
	}
	if result.Brokerage != nil {
		t.Errorf("unpooled empty brokerage account produced holdings")
	}

	target := *result.RetirementTarget
	if got := target.TotalValue(); !approx(got, 100000) {
		t.Errorf("pooled target total = %v, want 100000", got)
	}

	// Roth (30000) walks high to low risk: the emerging markets bucket
	// (10000) then the international stock bucket (20000) exhaust it.
	wantRoth := map[Symbol]float64{
		EmergingMktStock: 10000,
		TotalIntlStock:   20000,
	}
	for _, sym := range Tradable() {
		if got := result.Roth.Target.Value(sym); !approx(got, wantRoth[sym]) {
			t.Errorf("roth target %v = %v, want %v", sym, got, wantRoth[sym])
		}
	}

	// Deltas against all-1.0 quotes: buy 10000 emerging, sell a third of
	// the international stock position.
	if got := result.Roth.Delta.Value(EmergingMktStock); !approx(got, 10000) {
		t.Errorf("roth delta EmergingMktStock = %v, want 10000", got)
	}
	if got := result.Roth.Delta.Value(TotalIntlStock); !approx(got, -10000) {
		t.Errorf("roth delta TotalIntlStock = %v, want -10000", got)
	}

	// The traditional account absorbs the remainder: partitions must
	// reassemble the pooled target bucket by bucket.
	for _, sym := range Tradable() {
		got := result.Roth.Target.Value(sym) + result.Traditional.Target.Value(sym)
		if want := target.Value(sym); !approx(got, want) {
			t.Errorf("partition %v = %v, want %v", sym, got, want)
		}
	}
	if got := result.Traditional.Target.TotalValue(); !approx(got, 70000) {
		t.Errorf("traditional target total = %v, want 70000", got)
	}
}

// A pooled brokerage account walks the risk order from the bottom: it is
// filled with the least volatile buckets while the roth takes the top.
func TestCompute_pooledBrokerage(t *testing.T) {
	roth := Vector{}.With(EmergingMktStock, 10000)
	brokerage := Vector{}.With(Cash, 5000)
	traditional := Vector{}.With(LargeCapUS, 85000)

	result, err := Compute(Request{
		RetirementYear: retirementYear(),
		PoolBrokerage:  true,
		Quotes:         Quotes(),
		Roth:           AccountInput{Holdings: roth},
		Brokerage:      AccountInput{Holdings: brokerage},
		Traditional:    AccountInput{Holdings: traditional},
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.Roth == nil || result.Brokerage == nil || result.Traditional == nil {
		t.Fatal("missing account holdings in result")
	}

	// Pool is 100000 at 90/10/0: emerging markets target is exactly the
	// roth's value, so the roth holds that bucket alone.
	for _, sym := range Tradable() {
		want := 0.0
		if sym == EmergingMktStock {
			want = 10000
		}
		if got := result.Roth.Target.Value(sym); !approx(got, want) {
			t.Errorf("roth target %v = %v, want %v", sym, got, want)
		}
	}

	// Brokerage (5000) from the bottom: inflation protected targets zero,
	// corporate bond (3333.33) fits whole, total bond takes the rest.
	wantBrokerage := map[Symbol]float64{
		CorpBondUS:  10000.0 / 3,
		TotalBondUS: 5000 - 10000.0/3,
	}
	for _, sym := range Tradable() {
		if got := result.Brokerage.Target.Value(sym); !approx(got, wantBrokerage[sym]) {
			t.Errorf("brokerage target %v = %v, want %v", sym, got, wantBrokerage[sym])
		}
	}

	// The three partitions reassemble the pooled target.
	target := *result.RetirementTarget
	for _, sym := range Tradable() {
		got := result.Roth.Target.Value(sym) +
			result.Brokerage.Target.Value(sym) +
			result.Traditional.Target.Value(sym)
		if want := target.Value(sym); !approx(got, want) {
			t.Errorf("partition %v = %v, want %v", sym, got, want)
		}
	}
}

// An account worth more than the whole pooled target cannot be partitioned;
// the walk reports the leftover instead of clamping it away.
func TestCompute_leftoverError(t *testing.T) {
	_, err := Compute(Request{
		RetirementYear: retirementYear(),
		Quotes:         Quotes(),
		Roth:           AccountInput{Holdings: Vector{}.With(Cash, 100000)},
		Traditional:    AccountInput{Holdings: Vector{}.With(Cash, -50000)},
	})
	if err == nil {
		t.Fatal("expected a leftover error")
	}
	if !strings.Contains(err.Error(), "leftover") {
		t.Errorf("error = %v, want a leftover error", err)
	}
}

func TestCompute_invalidRetirementYear(t *testing.T) {
	_, err := Compute(Request{
		RetirementYear: 1980,
		Quotes:         Quotes(),
		Roth:           AccountInput{Holdings: Vector{}.With(Cash, 1000)},
	})
	if err == nil {
		t.Fatal("expected a retirement year error")
	}
}

// Outside additions pool across accounts and reduce the custodial targets.
func TestCompute_outsideAdditions(t *testing.T) {
	result, err := Compute(Request{
		RetirementYear: retirementYear(),
		Quotes:         Quotes(),
		Traditional: AccountInput{
			Holdings:   Vector{}.With(Cash, 97000),
			USStockAdd: 3000,
		},
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	target := *result.RetirementTarget
	// Grand total 100000 at 90/10/0: each US stock bucket targets 20000,
	// minus a third of the outside value held elsewhere.
	for _, sym := range []Symbol{LargeCapUS, MidCapUS, SmallCapUS} {
		if got := target.Value(sym); !approx(got, 19000) {
			t.Errorf("target %v = %v, want 19000", sym, got)
		}
	}
	if got := target.OutsideStock(); got != 3000 {
		t.Errorf("target outside stock = %v, want 3000", got)
	}
}
