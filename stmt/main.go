// Command stmt converts brokerage statements into OFX, JSON and spreadsheet documents.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/statement/cmd"
	"github.com/etnz/statement/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion().Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	// Unknown subcommands are looked up as stmt-<subcommand> extensions.
	if name := flag.Arg(0); name != "" && !registered(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// registered reports whether the commander knows a subcommand.
func registered(commander *subcommands.Commander, name string) bool {
	found := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}

// completion describes the command line for shell completion.
func completion() *complete.Command {
	statements := predict.Files("*.pdf")
	topics, _ := docs.GetAllTopics()
	output := predict.Files("*")
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"env-file":  predict.Files("*"),
			"layout":    predict.Set{"2020", "2017"},
			"extractor": predict.Set{"command", "text", "gemini"},
			"v":         predict.Set{"debug", "info", "warn", "error"},
		},
		Sub: map[string]*complete.Command{
			"convert": {
				Flags: map[string]complete.Predictor{"o": output, "q": predict.Nothing},
				Args:  statements,
			},
			"json": {
				Flags: map[string]complete.Predictor{"o": output, "q": predict.Something},
				Args:  statements,
			},
			"xlsx": {
				Flags: map[string]complete.Predictor{"o": predict.Files("*.xlsx")},
				Args:  statements,
			},
			"accounts": {
				Flags: map[string]complete.Predictor{"a": predict.Nothing},
				Args:  statements,
			},
			"report": {
				Flags: map[string]complete.Predictor{"s": predict.Nothing, "m": predict.Nothing},
				Args:  statements,
			},
			"topic": {
				Flags: map[string]complete.Predictor{"m": predict.Nothing},
				Args:  predict.Set(append(topics, "readme", "*")),
			},
		},
	}
}
