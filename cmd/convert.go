package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/statement"
	"github.com/etnz/statement/ofx"
	"github.com/google/subcommands"
)

// convertCmd holds the flags for the 'convert' subcommand.
type convertCmd struct {
	output string
	quiet  bool
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert a statement into an OFX document" }
func (*convertCmd) Usage() string {
	return `stmt convert [-o <file>] [-q] <statement>

  Reads a quarterly statement and writes its bank and investment statements
  as one OFX 2.2 document, on the standard output by default.

  The id and name of every account found are listed on the standard error,
  so that they can be matched with the accounts of the personal finance
  application the document is imported into.

Usage Examples:
# Converts a statement with the default PDF extractor.
$ stmt convert -o 2023-q1.ofx statement.pdf

# Converts a statement already converted to text.
$ stmt convert statement.txt > 2023-q1.ofx
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, standard output by default")
	f.BoolVar(&c.quiet, "q", false, "Do not list the accounts on the standard error")
}

func (c *convertCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if !c.quiet {
		listAccounts(os.Stderr, st.Accounts, false)
	}
	err = output(c.output, func(w io.Writer) error {
		return ofx.Encode(w, st, a.cfg.Institution)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing OFX: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// listAccounts prints the "id => name" pairs of the accounts. Cash ledgers have
// no id and are only listed when all is set.
func listAccounts(w io.Writer, accounts []statement.Account, all bool) {
	for _, acc := range accounts {
		if !all {
			if acc.Kind() == statement.KindLedger {
				continue
			}
			fmt.Fprintf(w, "%s => %s\n", acc.ID(), acc.Name())
			continue
		}
		id := acc.ID()
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%-10s %s => %s\n", acc.Kind(), id, acc.Name())
	}
}
