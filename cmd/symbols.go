package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/rebalance"
	"github.com/google/subcommands"
)

type symbolsCmd struct{}

func (*symbolsCmd) Name() string     { return "symbols" }
func (*symbolsCmd) Synopsis() string { return "list the supported asset-class buckets" }
func (*symbolsCmd) Usage() string {
	return `vapo symbols

  Lists every supported bucket with its ticker and description. Any other
  ticker found in an export is aggregated into a single catch-all bucket.
`
}

func (*symbolsCmd) SetFlags(f *flag.FlagSet) {}

func (*symbolsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println(rebalance.AllDescriptions())
	return subcommands.ExitSuccess
}
