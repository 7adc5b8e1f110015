package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/olindh/kassabok/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the CLI for shell completion. Complete() exits the
// process when invoked by the shell, so it runs before flag parsing.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"D": predict.Dirs("*"),
	},
	Sub: map[string]*complete.Command{
		"add": {Flags: map[string]complete.Predictor{
			"d":    predict.Something,
			"mark": predict.Set{"*", "!", "@"},
			"p":    predict.Something,
			"m":    predict.Something,
			"from": predict.Something,
			"to":   predict.Something,
			"a":    predict.Something,
			"c":    predict.Set{"SEK", "EUR", "USD"},
			"id":   predict.Something,
			"at":   predict.Something,
		}},
		"fmt": {},
		"reconcile": {Flags: map[string]complete.Predictor{
			"m":    predict.Something,
			"open": predict.Nothing,
		}},
		"payees": {},
		"months": {},
		"topic":  {Args: predict.Set{"readme", "grammar", "reconcile"}},
		"assist": {},
	},
}

func main() {
	completion.Complete("kbk")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
