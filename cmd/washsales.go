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

// washsalesCmd holds the flags for the 'washsales' subcommand.
type washsalesCmd struct {
	method string
	symbol string
	date   string
}

func (*washsalesCmd) Name() string     { return "washsales" }
func (*washsalesCmd) Synopsis() string { return "replay the feed and report wash sales" }
func (*washsalesCmd) Usage() string {
	return `taxlot washsales [-method <method>] [-symbol <symbol>] [-d <date>]

  Replays the transaction feed against the lot snapshot and reports every
  disposal whose loss was disallowed by a wash sale. With -symbol, also
  flags open lots whose recent acquisition could trigger one. Nothing is
  written back.
`
}

func (c *washsalesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.method, "method", taxlots.FIFO.String(), "Lot selection method used for the replay")
	f.StringVar(&c.symbol, "symbol", "", "Also flag potential wash lots for this symbol")
	f.StringVar(&c.date, "d", taxlots.Today().String(), "Date the potential flags are computed against")
}

func (c *washsalesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	method, err := taxlots.ParseMethod(c.method)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing method: %v\n", err)
		return subcommands.ExitUsageError
	}

	lots, err := loadLots()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading lots %q: %v\n", *lotsFile, err)
		return subcommands.ExitFailure
	}
	txs, err := loadTransactions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading transactions %q: %v\n", *feedFile, err)
		return subcommands.ExitFailure
	}

	ledger := taxlots.NewLedger(lots)
	results, err := ledger.ProcessAll(txs, method)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying feed: %v\n", err)
		return subcommands.ExitFailure
	}

	triggered := 0
	for _, r := range results {
		if r.WashSale != nil && r.WashSale.Triggered {
			triggered++
			printMarkdown(render.AllocationsMarkdown(r))
		}
	}
	if triggered == 0 {
		fmt.Println("No wash sales in the feed.")
	}

	if c.symbol != "" {
		asOf, err := taxlots.ParseDate(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		marked := taxlots.MarkPotentialWash(ledger.Lots(), c.symbol, asOf, ledger.Policy)
		printMarkdown(render.LotsMarkdown(marked, asOf))
	}

	return subcommands.ExitSuccess
}
