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

// unrealizedCmd holds the flags for the 'unrealized' subcommand.
type unrealizedCmd struct {
	symbol   string
	price    float64
	currency string
	date     string
}

func (*unrealizedCmd) Name() string     { return "unrealized" }
func (*unrealizedCmd) Synopsis() string { return "unrealized gain analysis for a symbol" }
func (*unrealizedCmd) Usage() string {
	return `taxlot unrealized -symbol <symbol> -price <price> [-d <date>]

  Values every open lot of the symbol at the given price and buckets the
  unrealized gain or loss into short-term and long-term holdings.
`
}

func (c *unrealizedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Security symbol to value")
	f.Float64Var(&c.price, "price", 0, "Current price per unit")
	f.StringVar(&c.currency, "currency", "USD", "Price currency")
	f.StringVar(&c.date, "d", taxlots.Today().String(), "Valuation date")
}

func (c *unrealizedCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	report := policy.Unrealized(lots, c.symbol, parseMoney(c.price, c.currency), asOf)
	printMarkdown(render.UnrealizedMarkdown(report))
	return subcommands.ExitSuccess
}
