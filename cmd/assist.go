package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/greatmindsinside/taxlots"
	"github.com/greatmindsinside/taxlots/agent"
)

// assistCmd holds the flags for the 'assist' subcommand.
type assistCmd struct {
	prices   string
	currency string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `taxlot assist [-prices <file>] [question]

  Starts an interactive session with the AI accountant. It reads the lot
  snapshot and answers questions about positions, cost basis, unrealized
  gains and tax optimization. Needs a Gemini API key in the environment.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.prices, "prices", "", "JSON file mapping symbols to current prices")
	f.StringVar(&c.currency, "currency", "USD", "Currency of the prices file")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	lots, err := loadLots()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading lots %q: %v\n", *lotsFile, err)
		return subcommands.ExitFailure
	}
	prices, err := c.loadPrices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading prices %q: %v\n", c.prices, err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	ledger := taxlots.NewLedger(lots)
	accountant := agent.NewAccountant(ledger, prices, taxlots.Today())
	a := agent.New(os.Stdout, os.Stdin, accountant)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// loadPrices reads the symbol-to-price map. No file means no prices, the
// assistant then answers holding questions only.
func (c *assistCmd) loadPrices() (map[string]taxlots.Money, error) {
	if c.prices == "" {
		return nil, nil
	}
	b, err := os.ReadFile(c.prices)
	if err != nil {
		return nil, err
	}
	var raw map[string]float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	prices := make(map[string]taxlots.Money, len(raw))
	for symbol, v := range raw {
		prices[symbol] = taxlots.M(v, c.currency)
	}
	return prices, nil
}
