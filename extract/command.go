package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/etnz/statement"
	"github.com/rs/zerolog"
)

// Command extracts the text of a document with an external program, like pdfbox
// or pdftotext, that prints it on its standard output.
type Command struct {
	Name    string
	Args    []string // Args come before the path of the document.
	Timeout time.Duration
	Logger  zerolog.Logger
}

// PDFBox returns the pdfbox command line extractor.
func PDFBox(jar string, timeout time.Duration) *Command {
	return &Command{
		Name:    "java",
		Args:    []string{"-jar", jar, "ExtractText", "-console"},
		Timeout: timeout,
		Logger:  zerolog.Nop(),
	}
}

// Extract runs the command on the document at path. A non-zero exit status, a
// timeout and an empty output are all failures.
func (c *Command) Extract(ctx context.Context, path string) ([]string, error) {
	ctx, cancel, err := bound(ctx, c.Timeout)
	if err != nil {
		return nil, err
	}
	defer cancel()
	args := append(append([]string{}, c.Args...), path)
	cmd := exec.CommandContext(ctx, c.Name, args...)
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	start := time.Now()
	err = cmd.Run()
	c.Logger.Debug().Str("command", c.Name).Str("path", path).Dur("elapsed", time.Since(start)).Int("bytes", stdout.Len()).Msg("text extracted")
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return nil, fmt.Errorf("%w: %s timed out after %v", statement.ErrExtractionFailure, c.Name, c.Timeout)
	case err != nil:
		msg := strings.TrimSpace(stderr.String())
		return nil, fmt.Errorf("%w: %s: %v: %s", statement.ErrExtractionFailure, c.Name, err, msg)
	}
	lines := Lines(stdout.String())
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s printed nothing for %q", statement.ErrExtractionFailure, c.Name, path)
	}
	return lines, nil
}
