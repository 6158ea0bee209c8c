package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/statement/xlsx"
	"github.com/google/subcommands"
)

// xlsxCmd holds the flags for the 'xlsx' subcommand.
type xlsxCmd struct {
	output string
}

func (*xlsxCmd) Name() string     { return "xlsx" }
func (*xlsxCmd) Synopsis() string { return "export a statement as a spreadsheet" }
func (*xlsxCmd) Usage() string {
	return `stmt xlsx [-o <file>] <statement>

  Writes the accounts, transactions, positions and securities of a statement
  in a workbook. By default the workbook is written next to the statement,
  with the .xlsx extension.
`
}

func (c *xlsxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, the statement file with the .xlsx extension by default")
}

func (c *xlsxCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	name := c.output
	if name == "" {
		name = strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
	}
	err = output(name, func(w io.Writer) error {
		return xlsx.Write(w, st, a.cfg.Zone)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing workbook: %v\n", err)
		return subcommands.ExitFailure
	}
	if name != "-" {
		fmt.Fprintf(os.Stderr, "Successfully wrote %s\n", name)
	}
	return subcommands.ExitSuccess
}
