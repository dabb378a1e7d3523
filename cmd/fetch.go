package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	drip "github.com/dripsim/drip"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	ticker string
	start  string
	end    string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch raw market data for a ticker" }
func (*fetchCmd) Usage() string {
	return `dripsim fetch -t <ticker> [-s <start>] [-e <end>]

  Fetches the dividends and closing prices used by a simulation and prints
  them without running any reinvestment. Useful to inspect what the
  provider actually returns for a ticker.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker to fetch (required)")
	f.StringVar(&c.start, "s", "-1y", "Start date of the range")
	f.StringVar(&c.end, "e", "0d", "End date of the range")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintln(os.Stderr, "Error: flag -t is required")
		return subcommands.ExitUsageError
	}
	start, err := drip.ParseDate(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	end, err := drip.ParseDate(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}

	ticker := strings.ToUpper(strings.TrimSpace(c.ticker))
	r := drip.Range{From: start, To: end}
	client := provider()

	events, err := client.Dividends(ticker, r)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	prices, err := client.PriceHistory(ticker, r)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s market data %s .. %s\n\n", ticker, start, end)

	fmt.Fprintf(&b, "## Dividends (%d)\n\n", len(events))
	if len(events) > 0 {
		fmt.Fprintln(&b, "| Date | Amount |")
		fmt.Fprintln(&b, "| --- | --- |")
		for _, ev := range events {
			fmt.Fprintf(&b, "| %s | %s |\n", ev.Date, ev.Amount)
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintf(&b, "## Closing prices (%d days)\n\n", prices.Len())
	if prices.Len() > 0 {
		d, m := prices.Latest()
		fmt.Fprintf(&b, "Latest close: %s on %s\n\n", m, d)
	}

	if quote, err := client.LatestQuote(ticker); err == nil {
		fmt.Fprintf(&b, "Current quote: %s\n", quote)
	}

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
