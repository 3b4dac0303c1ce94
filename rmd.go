package rebalance

import (
	"errors"
	"fmt"
	"time"
)

// ErrInsufficientHistory reports that the imported transaction history does
// not reach back to the prior year end, so the year-end snapshot cannot be
// reconstructed. It is an explicit "unknown" outcome: callers must surface
// it as "need more history", never coerce it to zero.
var ErrInsufficientHistory = errors.New("transaction history does not reach the prior year end")

// Distribution is the outcome of a minimum-required-distribution
// computation for one distribution year.
type Distribution struct {
	// Minimum is the required distribution for the year, in dollars.
	Minimum float64
	// Taken is what has already been distributed this calendar year.
	Taken float64
	// Remaining is max(0, Minimum - Taken).
	Remaining float64
	// NotYetRequired is set when the account holder's age is below the
	// divisor table's range; Minimum is then zero by rule, not by math.
	NotYetRequired bool
}

// ComputeRMD computes the minimum required distribution for the given
// distribution year from the tax-deferred account's ledger. The prior
// year-end holdings are reconstructed by replaying the ledger backwards
// from the current by-shares snapshot, then repriced against the supplied
// end-of-year quote vector and divided by the IRS divisor for the holder's
// age (year - birthYear).
//
// Returns ErrInsufficientHistory when the ledger does not provably reach
// back to the prior year end.
func ComputeRMD(year, birthYear int, account string, h *Holdings, table DivisorTable, eoyQuotes Vector) (Distribution, error) {
	snapshot, taken, err := h.eoySnapshot(year, account)
	if err != nil {
		return Distribution{}, err
	}
	h.distributions[account] = taken

	age := year - birthYear
	divisor, ok := table[age]
	if !ok {
		// Below (or outside) the table: no distribution is required yet.
		return Distribution{Taken: taken, NotYetRequired: true}, nil
	}

	value := snapshot.Mul(eoyQuotes).TotalValue()
	minimum := value / divisor
	return Distribution{
		Minimum:   minimum,
		Taken:     taken,
		Remaining: max(0, minimum-taken),
	}, nil
}

// eoySnapshot reconstructs the account's holdings as of December 31 of
// year-1 by subtracting every later transaction from the current by-shares
// snapshot. Cash transactions are measured in dollars (the sweep fund
// trades at $1), every other resolvable symbol in shares, since the
// snapshot is repriced afterwards. Symbol-less distribution transactions
// inside the boundary-plus-365-days window accumulate into the
// distributions-taken total instead of adjusting the snapshot.
//
// The reconstruction is indeterminate unless the ledger provably reaches
// the boundary: at least one transaction of this account must be dated on
// or before it. An empty in-window set is equally indeterminate; absence
// of ledger entries is not proof that nothing happened.
func (h *Holdings) eoySnapshot(year int, account string) (snapshot Vector, taken float64, err error) {
	boundary := NewDate(year-1, time.December, 31)
	window := boundary.Add(365)

	snapshot = h.AccountShares(account)
	deepEnough := false
	inWindow := 0
	for _, tx := range h.transactions {
		if tx.Account != account {
			continue
		}
		if !tx.TradeDate.After(boundary) {
			// History reaches past the boundary: the replay is grounded.
			deepEnough = true
			continue
		}
		inWindow++
		switch {
		case tx.Symbol == Cash:
			snapshot = snapshot.Plus(Cash, -tx.NetAmount.InexactFloat64())
		case tx.Symbol != NoSymbol:
			snapshot = snapshot.Plus(tx.Symbol, -tx.Shares.InexactFloat64())
		case tx.Kind == KindDistribution && tx.TradeDate.Before(window):
			taken -= tx.NetAmount.InexactFloat64()
		}
	}
	if !deepEnough || inWindow == 0 {
		return Vector{}, 0, fmt.Errorf("account %s, year-end %s: %w", account, boundary, ErrInsufficientHistory)
	}
	return snapshot, taken, nil
}
