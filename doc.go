// Package rebalance computes how to rebalance a multi-account investment
// portfolio toward a target asset allocation, and the regulatory minimum
// required distribution (RMD) for the tax-deferred account.
//
// The core functionalities include:
//   - Asset Vector Algebra: a fixed-shape value container with one slot per
//     supported asset-class bucket, used alike for holdings, quotes, and
//     targets, with elementwise arithmetic.
//   - Allocation Model: deriving target stock/bond/inflation-protected
//     percentages from a glide path to a retirement year, or from a flat
//     user-supplied split, and sub-dividing them across nine buckets.
//   - Rebalance Engine: turning current holdings, cash deltas, and
//     externally-held assets into per-account target vectors and
//     share-count buy/sell deltas, placing the riskiest assets
//     preferentially in the tax-free account.
//   - Ledger Replay: reconstructing a prior-year-end snapshot from the
//     transaction history to compute the minimum required distribution,
//     with explicit detection of insufficient history.
//
// The engine is pure, synchronous computation over in-memory values: quote
// retrieval and file parsing live at the boundary and only ever hand the
// engine prebuilt inputs. This package serves as the foundational logic for
// the `vapo` command-line tool.
package rebalance
