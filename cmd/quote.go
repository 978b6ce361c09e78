package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
)

// quoteCmd holds the flags for the 'quote' subcommand.
type quoteCmd struct {
	url  string
	path string
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "fetch a price from a broker quote endpoint" }
func (*quoteCmd) Usage() string {
	return `taxlot quote [-url <url>] [-path <jsonpath>] <isin>

  Fetches a quote JSON from the broker endpoint and extracts the price with
  a jsonpath expression. The isin is appended to the url. The price prints
  on stdout, ready for the -price flag of 'unrealized' and 'advise'.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.url, "url", "https://www.tradegate.de/refresh.php?isin=", "Quote endpoint, the isin is appended")
	f.StringVar(&c.path, "path", "$.last", "jsonpath expression selecting the price in the quote JSON")
}

func (c *quoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "exactly one isin is required")
		return subcommands.ExitUsageError
	}

	price, err := fetchQuote(new(http.Client), c.url+f.Arg(0), c.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching quote: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(price)
	return subcommands.ExitSuccess
}

// fetchQuote gets a quote JSON and extracts the price at the jsonpath.
func fetchQuote(client *http.Client, addr, path string) (float64, error) {
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return 0, fmt.Errorf("error in wget %q: %w", addr, err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	// jsonpath may return a list of one answer instead of the answer:
	// keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("price at %q is not a number: %v", path, jval)
	}
	return val, nil
}

// jwget gets a JSON document into data.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
