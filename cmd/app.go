// Package cmd implements the CLI application to convert brokerage statements.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/statement"
	"github.com/etnz/statement/config"
	"github.com/etnz/statement/extract"
	"github.com/etnz/statement/logger"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	envFile   = flag.String("env-file", ".env", "Path to an optional .env file with the STMT_* settings")
	layout    = flag.String("layout", "", "Layout revision of the statement (2020 or 2017). Detected from the statement by default")
	extractor = flag.String("extractor", "", "How to read the statement: command, text or gemini. Chosen from the file extension by default")
	verbose   = flag.String("v", "", "Log level: debug, info, warn or error")
)

// Commands lists the subcommands of the application, by group.
var Commands = map[string][]subcommands.Command{
	"conversion": {&convertCmd{}, &jsonCmd{}, &xlsxCmd{}},
	"inspection": {&accountsCmd{}, &reportCmd{}},
	"help":       {&topicCmd{}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, group := range []string{"conversion", "inspection", "help"} {
		for _, cmd := range Commands[group] {
			c.Register(cmd, group)
		}
	}
}

// app holds what every subcommand needs to read a statement.
type app struct {
	settings *config.Settings
	log      zerolog.Logger
	cfg      statement.Config
}

// newApp loads the settings, applying the global flags over them.
func newApp() (*app, error) {
	s, err := config.Load(*envFile)
	if err != nil {
		return nil, err
	}
	if *layout != "" {
		s.Layout = *layout
	}
	if *verbose != "" {
		s.LogLevel = *verbose
	}
	level, err := logger.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, err
	}
	log := logger.New(level)
	cfg, err := s.Statement(log)
	if err != nil {
		return nil, err
	}
	return &app{settings: s, log: log, cfg: cfg}, nil
}

// extractor returns the extractor for the document at path.
func (a *app) extractor(ctx context.Context, path string) (extract.Extractor, error) {
	name := *extractor
	if name == "" {
		name = "command"
		if strings.EqualFold(filepath.Ext(path), ".txt") {
			name = "text"
		}
	}
	switch name {
	case "command":
		x := a.settings.Extractor
		return &extract.Command{Name: x.Command, Args: x.Args, Timeout: x.Timeout, Logger: a.log}, nil
	case "text":
		return extract.TextFile{}, nil
	case "gemini":
		client, err := genai.NewClient(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini's client: %w", err)
		}
		return &extract.Gemini{Models: client.Models, Model: a.settings.GeminiModel, Timeout: a.settings.Extractor.Timeout}, nil
	default:
		return nil, fmt.Errorf("unknown extractor %q, want command, text or gemini", name)
	}
}

// lines extracts the text of the statement at path.
func (a *app) lines(ctx context.Context, path string) ([]string, error) {
	x, err := a.extractor(ctx, path)
	if err != nil {
		return nil, err
	}
	lines, err := x.Extract(logger.WithContext(ctx, a.log), path)
	if err != nil {
		return nil, err
	}
	a.log.Debug().Str("path", path).Int("lines", len(lines)).Msg("statement read")
	return lines, nil
}

// load reads and parses the statement at path.
func (a *app) load(ctx context.Context, path string) (*statement.Statement, error) {
	lines, err := a.lines(ctx, path)
	if err != nil {
		return nil, err
	}
	return statement.Parse(lines, a.cfg)
}

// statementPath returns the single positional argument of a subcommand.
func statementPath(f *flag.FlagSet) (string, bool) {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expecting exactly one statement file")
		return "", false
	}
	return f.Arg(0), true
}

// output calls write with the named file, or with stdout when name is empty or "-".
func output(name string, write func(io.Writer) error) error {
	if name == "" || name == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// printMarkdown renders markdown for the terminal, or prints it unchanged when it cannot.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
