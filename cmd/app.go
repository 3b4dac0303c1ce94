// Package cmd implements the CLI application to rebalance a portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/rebalance"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "holdings")
	c.Register(&symbolsCmd{}, "holdings")

	c.Register(&rebalanceCmd{}, "planning")
	c.Register(&rmdCmd{}, "planning")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var exportFile = flag.String("export-file", "export.csv", "Path to the account export downloaded from the brokerage")
var profileFile = flag.String("profile-file", "profile.yaml", "Path to the YAML profile describing accounts and inputs")

// DecodeHoldings parses the app export file into a Holdings store.
func DecodeHoldings() (*rebalance.Holdings, error) {
	f, err := os.Open(*exportFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open export %q: %w", *exportFile, err)
	}
	defer f.Close()
	return rebalance.ParseExport(f)
}

// LoadProfile loads the app profile file.
func LoadProfile() (*rebalance.Profile, error) {
	return rebalance.LoadProfile(*profileFile)
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// Fall back to the raw markdown.
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
