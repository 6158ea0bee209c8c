// Package extract turns statement documents into the lines of text the statement
// package parses.
package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/statement"
)

// Extractor extracts the text lines of a document.
type Extractor interface {
	Extract(ctx context.Context, path string) ([]string, error)
}

// Lines splits an extracted text into lines. Carriage returns and trailing spaces
// are removed, blank lines are kept. A blank text has no lines.
func Lines(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return lines
}

// bound returns ctx with a deadline timeout away. Extractions without a positive
// timeout are refused.
func bound(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc, error) {
	if timeout <= 0 {
		return ctx, func() {}, fmt.Errorf("%w: invalid timeout %v", statement.ErrExtractionFailure, timeout)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, cancel, nil
}
