// Command dripsim runs dividend reinvestment simulations from the terminal.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/dripsim/drip/cmd"
)

func main() {
	// Shell completion exits the process when invoked by the shell.
	completion().Complete("dripsim")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	rangeFlags := map[string]complete.Predictor{
		"t": predict.Something,
		"s": predict.Something,
		"e": predict.Something,
	}
	simulateFlags := map[string]complete.Predictor{
		"t": predict.Something,
		"s": predict.Something,
		"e": predict.Something,
		"n": predict.Something,
		"o": predict.Files("*.csv"),
	}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"cache-ttl": predict.Something,
		},
		Sub: map[string]*complete.Command{
			"simulate": {Flags: simulateFlags},
			"fetch":    {Flags: rangeFlags},
			"serve":    {Flags: map[string]complete.Predictor{"port": predict.Something}},
			"topic":    {Args: predict.Set{"guide", "cadence", "export", "*"}},
			"assist":   {},
		},
	}
}
