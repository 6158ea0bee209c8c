package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/statement"
	"github.com/google/subcommands"
)

// jsonCmd holds the flags for the 'json' subcommand.
type jsonCmd struct {
	query  string
	output string
}

func (*jsonCmd) Name() string     { return "json" }
func (*jsonCmd) Synopsis() string { return "convert a statement into JSON" }
func (*jsonCmd) Usage() string {
	return `stmt json [-q <jsonpath>] [-o <file>] <statement>

  Writes the statement as JSON. With -q, only the values selected by the
  JSONPath expression are written.

Usage Examples:
# The closing balance of every investment account.
$ stmt json -q '$.investments[*].closingAmount' statement.pdf
`
}

func (c *jsonCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "JSONPath expression selecting the values to print")
	f.StringVar(&c.output, "o", "", "Output file, standard output by default")
}

func (c *jsonCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	err = output(c.output, func(w io.Writer) error {
		if c.query == "" {
			return statement.EncodeStatement(w, st)
		}
		return query(w, st, c.query)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// query writes the values of the statement selected by a JSONPath expression.
func query(w io.Writer, st *statement.Statement, path string) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal statement: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return fmt.Errorf("failed to unmarshal statement: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return fmt.Errorf("error evaluating %q: %w", path, err)
	}
	out, err := json.MarshalIndent(jval, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %q: %w", path, err)
	}
	_, err = w.Write(append(out, '\n'))
	return err
}
