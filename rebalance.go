package rebalance

import "fmt"

// AccountInput carries everything the engine may read about one account:
// its current dollar-value vector, a cash delta to fold into the sweep
// bucket, and dollars held outside the custodial account, split by class.
// It replaces any ambient pre-seeded state: the engine recognizes exactly
// these inputs and nothing else.
type AccountInput struct {
	Holdings     Vector
	CashAdd      float64
	USStockAdd   float64
	USBondAdd    float64
	IntlStockAdd float64
	IntlBondAdd  float64
}

// outsideStock returns the stock dollars held outside the account.
func (a AccountInput) outsideStock() float64 { return a.USStockAdd + a.IntlStockAdd }

// outsideBond returns the bond dollars held outside the account.
func (a AccountInput) outsideBond() float64 { return a.USBondAdd + a.IntlBondAdd }

// Request is the immutable input of one rebalance run.
type Request struct {
	// RetirementYear drives the glide-path allocation for the pooled
	// retirement accounts.
	RetirementYear int
	// PercentStock is the flat stock split applied to the brokerage account
	// when it is not pooled with the retirement accounts.
	PercentStock Percent
	// PoolBrokerage folds the brokerage account into the retirement pool
	// and its risk-location walk.
	PoolBrokerage bool
	// Quotes holds current per-share prices, 1.0-defaulted. A literal zero
	// in any slot is a caller bug (deltas would go non-finite).
	Quotes Vector

	Brokerage   AccountInput
	Traditional AccountInput
	Roth        AccountInput
}

// AccountHoldings is the per-account outcome of a rebalance run: the
// current holdings, the target holdings, and the buy/sell delta. Delta is
// (target - current) divided by the quote vector, so it is a share count
// per bucket, not a dollar amount. Immutable after construction.
type AccountHoldings struct {
	Current Vector
	Target  Vector
	Delta   Vector
}

func newAccountHoldings(current, target, quotes Vector) *AccountHoldings {
	return &AccountHoldings{
		Current: current,
		Target:  target,
		Delta:   target.Sub(current).Div(quotes),
	}
}

// Rebalance holds one AccountHoldings per account that participated in a
// run, and the pooled retirement target when at least one retirement
// account holds value. Constructed fresh on every run, never mutated.
type Rebalance struct {
	Brokerage   *AccountHoldings
	Traditional *AccountHoldings
	Roth        *AccountHoldings

	// RetirementTarget is the shared target vector the retirement accounts
	// were partitioned from, nil when no retirement account held value.
	RetirementTarget *Vector
}

// Compute runs the rebalance engine over a request and returns the
// per-account current/target/delta triples.
//
// Retirement accounts holding value are pooled under the glide-path
// allocation and partitioned by the risk-location walk; the brokerage
// account joins that pool when PoolBrokerage is set, and is otherwise
// rebalanced on its own against the flat PercentStock split.
func Compute(req Request) (*Rebalance, error) {
	result, err := retirementCalc(req)
	if err != nil {
		return nil, err
	}
	if result.Brokerage == nil && req.Brokerage.Holdings.TotalValue() != 0 {
		brokerage, err := brokerageCalc(req)
		if err != nil {
			return nil, err
		}
		result.Brokerage = brokerage
	}
	return result, nil
}

// brokerageCalc rebalances the brokerage account alone against the flat
// stock/bond split.
func brokerageCalc(req Request) (*AccountHoldings, error) {
	in := req.Brokerage
	current := in.Holdings.
		Plus(Cash, in.CashAdd).
		WithOutsideStock(in.outsideStock()).
		WithOutsideBond(in.outsideBond())

	alloc, err := NewAllocation(req.PercentStock, 100-req.PercentStock, 0)
	if err != nil {
		return nil, fmt.Errorf("brokerage allocation: %w", err)
	}
	sub, err := NewSubAllocation(alloc)
	if err != nil {
		return nil, fmt.Errorf("brokerage sub allocation: %w", err)
	}
	target := Target(sub, current.TotalValue(), in.USStockAdd, in.USBondAdd, in.IntlStockAdd, in.IntlBondAdd)
	return newAccountHoldings(current, target, req.Quotes), nil
}

// retirementCalc pools the participating accounts, computes the shared
// glide-path target, and partitions it by the risk-location walk: the
// tax-free account greedily absorbs buckets from the riskiest down, the
// pooled brokerage account from the least risky up, and the tax-deferred
// account takes whatever remains. Tax-free growth should host the highest
// expected-growth assets, the taxable account the lowest-turnover ones;
// the tax-deferred account is allocation-agnostic.
func retirementCalc(req Request) (*Rebalance, error) {
	result := &Rebalance{}

	var poolValue float64
	var usStockAdd, usBondAdd, intlStockAdd, intlBondAdd float64
	var includeRoth, includeTraditional, includeBrokerage bool
	var rothTotal, brokerageTotal float64
	var rothFinal, traditionalFinal, brokerageFinal Vector

	include := func(in AccountInput) (Vector, float64) {
		final := in.Holdings.Plus(Cash, in.CashAdd)
		poolValue += final.TotalValue()
		usStockAdd += in.USStockAdd
		usBondAdd += in.USBondAdd
		intlStockAdd += in.IntlStockAdd
		intlBondAdd += in.IntlBondAdd
		return final, final.TotalValue()
	}

	if req.Roth.Holdings.TotalValue() != 0 {
		rothFinal, rothTotal = include(req.Roth)
		includeRoth = true
	}
	if req.Traditional.Holdings.TotalValue() != 0 {
		traditionalFinal, _ = include(req.Traditional)
		includeTraditional = true
	}
	if req.PoolBrokerage && req.Brokerage.Holdings.TotalValue() != 0 {
		brokerageFinal, brokerageTotal = include(req.Brokerage)
		includeBrokerage = true
	}

	if !includeRoth && !includeTraditional && !includeBrokerage {
		return result, nil
	}

	alloc, err := Retirement(req.RetirementYear)
	if err != nil {
		return nil, fmt.Errorf("retirement allocation: %w", err)
	}
	sub, err := NewSubAllocation(alloc)
	if err != nil {
		return nil, fmt.Errorf("retirement sub allocation: %w", err)
	}

	target := Target(sub, poolValue, usStockAdd, usBondAdd, intlStockAdd, intlBondAdd)
	result.RetirementTarget = &target

	remaining := target
	if includeRoth {
		rothTarget, err := walkTarget(target, rothTotal, rothFinal, "roth", false)
		if err != nil {
			return nil, err
		}
		result.Roth = newAccountHoldings(rothFinal, rothTarget, req.Quotes)
		remaining = remaining.Sub(rothTarget)
	}
	if includeBrokerage {
		brokerageTarget, err := walkTarget(target, brokerageTotal, brokerageFinal, "brokerage", true)
		if err != nil {
			return nil, err
		}
		result.Brokerage = newAccountHoldings(brokerageFinal, brokerageTarget, req.Quotes)
		remaining = remaining.Sub(brokerageTarget)
	}
	if includeTraditional {
		// The tax-deferred account absorbs the remainder in full.
		result.Traditional = newAccountHoldings(traditionalFinal, remaining, req.Quotes)
	}
	return result, nil
}

// walkTarget partitions the shared target for one account: walking the
// buckets in risk order (reversed for the taxable account), it assigns each
// bucket's full target amount until the account's value is exhausted,
// spilling only a bucket's remainder to the next account in the ordering.
//
// Two reconciliation checks guard the walk. Leftover account value after
// the full walk, or a partition total off the account's actual value by
// more than 1%, both mean the shared target total and the participating
// account totals disagree; they are surfaced as errors, never clamped.
func walkTarget(target Vector, total float64, final Vector, name string, lowToHigh bool) (Vector, error) {
	order := HighToLowRisk[:]
	if lowToHigh {
		order = make([]Symbol, len(HighToLowRisk))
		for i, sym := range HighToLowRisk {
			order[len(order)-1-i] = sym
		}
	}

	var partition Vector
	for _, sym := range order {
		value := min(target.Value(sym), total)
		total -= value
		partition = partition.With(sym, value)
		if total <= 0 {
			break
		}
	}
	if total > 0 {
		return Vector{}, fmt.Errorf("unexpected leftover %s value: %.2f", name, total)
	}
	got, want := partition.TotalValue(), final.TotalValue()
	if got <= 0.99*want || got >= 1.01*want {
		return Vector{}, fmt.Errorf("%s target %.2f does not match %s total %.2f", name, got, name, want)
	}
	return partition, nil
}
