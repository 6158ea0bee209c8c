package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/statement"
	"github.com/google/subcommands"
)

// accountsCmd holds the flags for the 'accounts' subcommand.
type accountsCmd struct {
	all bool
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list the accounts of a statement" }
func (*accountsCmd) Usage() string {
	return `stmt accounts [-a] <statement>

  Lists the accounts found in a statement as "id => name" pairs, in order
  of appearance. The statement is only split into accounts: its tables are
  not read.

  With -a, the cash ledgers shared by several goals are listed too, and every
  line starts with the kind of the account.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "a", false, "List every section, with its kind")
}

func (c *accountsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, ok := statementPath(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	lines, err := a.lines(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading statement %q: %v\n", path, err)
		return subcommands.ExitFailure
	}
	accounts, err := statement.Segment(lines, a.cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading statement %q: %v\n", path, err)
		return subcommands.ExitFailure
	}
	listAccounts(os.Stdout, accounts, c.all)
	return subcommands.ExitSuccess
}
