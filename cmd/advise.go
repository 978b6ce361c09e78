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

// adviseCmd holds the flags for the 'advise' subcommand.
type adviseCmd struct {
	symbol   string
	price    float64
	currency string
	date     string
}

func (*adviseCmd) Name() string     { return "advise" }
func (*adviseCmd) Synopsis() string { return "tax optimization recommendations for a symbol" }
func (*adviseCmd) Usage() string {
	return `taxlot advise -symbol <symbol> -price <price> [-d <date>]

  Derives tax optimization recommendations for the symbol: harvesting an
  unrealized loss, or holding a short-term gain until it turns long-term.
  Recommendations are informational, nothing is traded.
`
}

func (c *adviseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Security symbol to analyze")
	f.Float64Var(&c.price, "price", 0, "Current price per unit")
	f.StringVar(&c.currency, "currency", "USD", "Price currency")
	f.StringVar(&c.date, "d", taxlots.Today().String(), "Analysis date")
}

func (c *adviseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.price <= 0 {
		fmt.Fprintln(os.Stderr, "-symbol and a positive -price are required")
		return subcommands.ExitUsageError
	}
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

	policy := taxlots.DefaultPolicy()
	recs := policy.Advise(lots, c.symbol, parseMoney(c.price, c.currency), asOf)
	printMarkdown(render.RecommendationsMarkdown(recs))
	return subcommands.ExitSuccess
}
