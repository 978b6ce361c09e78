package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/greatmindsinside/taxlots"
	"github.com/greatmindsinside/taxlots/render"
)

// lotsCmd holds the flags for the 'lots' subcommand.
type lotsCmd struct {
	date string
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "show the lot snapshot" }
func (*lotsCmd) Usage() string {
	return `taxlot lots [-d <date>]

  Shows every lot with its quantity, cost basis, acquisition date, holding
  period and wash-sale status. Open lots come first.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", taxlots.Today().String(), "Date holding periods are computed against")
}

func (c *lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	asOf, err := taxlots.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	lots, err := loadLots()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading lots %q: %v\n", *lotsFile, err)
		return subcommands.ExitFailure
	}

	printMarkdown(render.LotsMarkdown(lots, asOf))
	return subcommands.ExitSuccess
}
