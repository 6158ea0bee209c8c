package extract

import (
	"context"
	"fmt"
	"os"

	"github.com/etnz/statement"
)

// TextFile reads a statement already converted to text.
type TextFile struct{}

func (TextFile) Extract(_ context.Context, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", statement.ErrExtractionFailure, err)
	}
	lines := Lines(string(data))
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %q is empty", statement.ErrExtractionFailure, path)
	}
	return lines, nil
}
