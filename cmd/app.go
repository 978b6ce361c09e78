// Package cmd implements the CLI application to manage tax lots.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/greatmindsinside/taxlots"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&processCmd{}, "ledger")
	c.Register(&lotsCmd{}, "ledger")
	c.Register(&washsalesCmd{}, "ledger")

	c.Register(&unrealizedCmd{}, "analysis")
	c.Register(&adviseCmd{}, "analysis")

	c.Register(&quoteCmd{}, "market")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var lotsFile = flag.String("lots", "lots.jsonl", "Path to the lot snapshot file (JSONL format)")
var feedFile = flag.String("transactions", "transactions.jsonl", "Path to the transaction feed file (JSONL format)")

// loadLots reads the lot snapshot from the app lots file. A missing file is
// an empty snapshot, not an error.
func loadLots() (taxlots.Lots, error) {
	f, err := os.Open(*lotsFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, lots file does not exist, starting from an empty snapshot")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return taxlots.DecodeLots(f)
}

// saveLots writes the lot snapshot back to the app lots file.
func saveLots(lots taxlots.Lots) error {
	f, err := os.Create(*lotsFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return taxlots.EncodeLots(f, lots)
}

// loadTransactions reads the transaction feed from the app feed file.
func loadTransactions() ([]taxlots.Transaction, error) {
	f, err := os.Open(*feedFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return taxlots.DecodeTransactions(f)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer cannot run.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// parseMoney builds a Money from a -price style flag and a currency flag.
func parseMoney(value float64, currency string) taxlots.Money {
	return taxlots.M(value, currency)
}
