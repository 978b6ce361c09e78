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

// processCmd holds the flags for the 'process' subcommand.
type processCmd struct {
	method string
	dryRun bool
}

func (*processCmd) Name() string     { return "process" }
func (*processCmd) Synopsis() string { return "apply the transaction feed to the lot snapshot" }
func (*processCmd) Usage() string {
	return `taxlot process [-method <method>] [-n]

  Applies the transaction feed to the lot snapshot, in trade-date order.
  Acquisitions create lots; disposals consume them under the selected lot
  selection method (fifo, lifo, hifo, lofo), with wash-sale detection on
  every loss. The updated snapshot is written back unless -n is given.
`
}

func (c *processCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.method, "method", taxlots.FIFO.String(), "Lot selection method (fifo, lifo, hifo, lofo)")
	f.BoolVar(&c.dryRun, "n", false, "Report only, do not write the updated snapshot")
}

func (c *processCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	method, err := taxlots.ParseMethod(c.method)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing method: %v\n", err)
		return subcommands.ExitUsageError
	}
	if method == taxlots.Specific {
		fmt.Fprintln(os.Stderr, "The specific method needs a lot order per disposal and cannot replay a feed.")
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
	for _, r := range results {
		if r.Transaction.Kind.Disposes() {
			printMarkdown(render.AllocationsMarkdown(r))
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error processing feed: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.dryRun {
		return subcommands.ExitSuccess
	}
	if err := saveLots(ledger.Lots()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing lots %q: %v\n", *lotsFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Processed %d transactions into %s\n", len(results), *lotsFile)
	return subcommands.ExitSuccess
}
