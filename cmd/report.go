package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/statement/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	skipTransactions bool
	raw              bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display a statement summary" }
func (*reportCmd) Usage() string {
	return `stmt report [-s] [-m] <statement>

  Displays the balances, positions and activity of every account of a
  statement, as they will be exported.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.skipTransactions, "s", false, "Skip the activity tables")
	f.BoolVar(&c.raw, "m", false, "Print the raw markdown")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, ok := statementPath(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	st, err := a.load(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading statement %q: %v\n", path, err)
		return subcommands.ExitFailure
	}

	report := renderer.NewReport(st, a.cfg.Zone)
	md := renderer.RenderReport(report, renderer.RenderOptions{SkipTransactions: c.skipTransactions})
	if c.raw {
		fmt.Print(md)
		return subcommands.ExitSuccess
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
