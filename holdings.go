package rebalance

import (
	"iter"
	"maps"
	"slices"
)

// Holdings is the per-account aggregation built from one imported export:
// dollar-value and share-count vectors per account, the quote vector
// observed in the export, the full transaction ledger, and distributions
// already taken this calendar year. Built once by ParseExport and read-only
// afterwards.
type Holdings struct {
	accounts      map[string]Vector // account number -> dollar values
	shares        map[string]Vector // account number -> share counts
	quotes        Vector            // per-share prices, 1.0 where unpriced
	transactions  []Transaction     // ledger, in export order
	distributions map[string]float64
}

// NewHoldings creates an empty store carrying the given quote vector.
func NewHoldings(quotes Vector) *Holdings {
	return &Holdings{
		accounts:      make(map[string]Vector),
		shares:        make(map[string]Vector),
		quotes:        quotes,
		distributions: make(map[string]float64),
	}
}

// Account returns the dollar-value vector of an account. An unknown account
// yields the zero vector.
func (h *Holdings) Account(number string) Vector { return h.accounts[number] }

// AccountShares returns the share-count vector of an account. The Cash slot
// is dollar-denominated (the sweep fund trades at $1 per share).
func (h *Holdings) AccountShares(number string) Vector { return h.shares[number] }

// Quotes returns the current per-share price vector. Any slot still at 1.0
// was not priced by the export.
func (h *Holdings) Quotes() Vector { return h.quotes }

// SetQuotes replaces the quote vector, typically after a provider filled
// the missing slots.
func (h *Holdings) SetQuotes(quotes Vector) { h.quotes = quotes }

// Distributions returns the distributions already taken from an account
// this calendar year, in dollars. Populated by the RMD ledger replay.
func (h *Holdings) Distributions(number string) float64 { return h.distributions[number] }

// AccountNumbers iterates over the known account numbers in stable order.
func (h *Holdings) AccountNumbers() iter.Seq[string] {
	return func(yield func(string) bool) {
		numbers := slices.Collect(maps.Keys(h.accounts))
		slices.Sort(numbers)
		for _, n := range numbers {
			if !yield(n) {
				return
			}
		}
	}
}

// Transactions iterates over the ledger in its original order.
func (h *Holdings) Transactions() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range h.transactions {
			if !yield(tx) {
				return
			}
		}
	}
}

// OldestTradeDate returns the earliest trade date in the ledger, or the
// zero Date if the ledger is empty.
func (h *Holdings) OldestTradeDate() Date {
	var oldest Date
	for _, tx := range h.transactions {
		if oldest.IsZero() || tx.TradeDate.Before(oldest) {
			oldest = tx.TradeDate
		}
	}
	return oldest
}
