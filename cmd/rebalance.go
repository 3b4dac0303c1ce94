package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance"
	"github.com/etnz/rebalance/renderer"
	"github.com/google/subcommands"
)

// rebalanceCmd holds the flags for the 'rebalance' subcommand.
type rebalanceCmd struct {
	offline bool
}

func (*rebalanceCmd) Name() string     { return "rebalance" }
func (*rebalanceCmd) Synopsis() string { return "compute the buy/sell deltas to rebalance all accounts" }
func (*rebalanceCmd) Usage() string {
	return `vapo rebalance [-offline] [-export-file <file>] [-profile-file <file>]

  Computes per-account target holdings and share-count buy/sell deltas from
  the imported export and the profile. Quotes missing from the export are
  fetched unless -offline is set.
`
}

func (c *rebalanceCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Do not fetch missing quotes; unpriced buckets keep their 1.0 placeholder.")
}

func (c *rebalanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	profile, err := LoadProfile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		return subcommands.ExitUsageError
	}
	holdings, err := DecodeHoldings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing export: %v\n", err)
		return subcommands.ExitFailure
	}

	if !c.offline {
		quotes, err := rebalance.FillMissingQuotes(holdings.Quotes())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning, some quotes could not be fetched: %v\n", err)
		}
		holdings.SetQuotes(quotes)
	}

	result, err := rebalance.Compute(profile.Request(holdings))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing rebalance: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Rebalance(result))
	return subcommands.ExitSuccess
}
