package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance"
	"github.com/etnz/rebalance/renderer"
	"github.com/google/subcommands"
)

// rmdCmd holds the flags for the 'rmd' subcommand.
type rmdCmd struct {
	year        int
	divisorFile string
}

func (*rmdCmd) Name() string     { return "rmd" }
func (*rmdCmd) Synopsis() string { return "compute the minimum required distribution" }
func (*rmdCmd) Usage() string {
	return `vapo rmd [-y <year>] [-divisor-file <file>]

  Reconstructs the traditional IRA's prior year-end holdings from the
  transaction history, reprices them at year-end quotes, and divides by the
  IRS distribution-period divisor for the holder's age.
`
}

func (c *rmdCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", rebalance.Today().Year(), "Distribution year to compute for.")
	f.StringVar(&c.divisorFile, "divisor-file", "distribution_table.csv", "Path to the IRS distribution-period table (Age, Distribution Period).")
}

func (c *rmdCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	df, err := os.Open(c.divisorFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error, minimum distribution table from IRS not found: %v\n", err)
		return subcommands.ExitFailure
	}
	table, err := rebalance.ParseDivisorTable(df)
	df.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing distribution table: %v\n", err)
		return subcommands.ExitFailure
	}

	eoyQuotes, err := rebalance.FillEOYQuotes(rebalance.Quotes(), c.year-1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning, some year-end quotes could not be fetched: %v\n", err)
	}

	d, err := rebalance.ComputeRMD(c.year, profile.BirthYear, profile.TraditionalAccount, holdings, table, eoyQuotes)
	if errors.Is(err, rebalance.ErrInsufficientHistory) {
		fmt.Fprintf(os.Stderr, "Need more history: the export's transactions do not reach back to %d-12-31.\nDownload an export covering a longer period and retry.\n", c.year-1)
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing distribution: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Distribution(c.year, d))
	return subcommands.ExitSuccess
}
