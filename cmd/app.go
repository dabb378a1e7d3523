// Package cmd implements the CLI application to run, export and serve
// dividend reinvestment simulations.
package cmd

import (
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/dripsim/drip/yahoo"
)

// Commands lists the subcommands to register.
// A main package iterates over Commands and Execute() the user-selected one.
var Commands = []subcommands.Command{
	&simulateCmd{},
	&fetchCmd{},
	&serveCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var cacheTTL = flag.Duration("cache-ttl", yahoo.DefaultTTL, "Lifetime of the on-disk market data cache (0 disables caching)")

// provider returns the market data client shared by all commands.
func provider() *yahoo.Client {
	return yahoo.NewWith(yahoo.DefaultBaseURL, *cacheTTL)
}

// printMarkdown renders markdown for the terminal, falling back to the
// raw text when rendering fails.
func printMarkdown(doc string) {
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		fmt.Println(doc)
		return
	}
	fmt.Println(out)
}
