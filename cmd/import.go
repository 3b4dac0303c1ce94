package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

// importCmd parses an export and summarizes what was understood from it,
// so the user can check the file before planning against it.
type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "parse an account export and summarize it" }
func (*importCmd) Usage() string {
	return `vapo import [-export-file <file>]

  Parses the two-section account export (positions, then transactions) and
  prints what was aggregated per account, plus the depth of the transaction
  history.
`
}

func (*importCmd) SetFlags(f *flag.FlagSet) {}

func (*importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	holdings, err := DecodeHoldings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing export: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	b.WriteString("## Imported holdings\n\n")
	b.WriteString("| Account | Total | Stock:Bond:Inflation |\n")
	b.WriteString("|:--------|------:|:---------------------|\n")
	for number := range holdings.AccountNumbers() {
		v := holdings.Account(number)
		stock, bond, inflation := v.Breakdown()
		fmt.Fprintf(&b, "| %s | $%.2f | %.1f:%.1f:%.1f |\n",
			number, v.TotalValue(), float64(stock), float64(bond), float64(inflation))
	}

	count := 0
	for range holdings.Transactions() {
		count++
	}
	fmt.Fprintf(&b, "\n%d transactions", count)
	if oldest := holdings.OldestTradeDate(); !oldest.IsZero() {
		fmt.Fprintf(&b, ", oldest trade date %s", oldest)
	}
	b.WriteString("\n")

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
