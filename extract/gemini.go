package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/etnz/statement"
	"github.com/etnz/statement/logger"
	"google.golang.org/genai"
)

const transcribe = `Transcribe the text of this brokerage statement exactly as printed, one line of
the document per line of output, in reading order. Keep every number, currency
symbol and page footer. Do not summarize, translate or add any comment.`

// Generator generates content from a prompt, like the Models of a genai.Client.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini reads a document with a Gemini model. It is slower than a PDF to text
// converter, but also reads scanned statements.
type Gemini struct {
	Models  Generator
	Model   string
	Timeout time.Duration
}

func (g *Gemini) Extract(ctx context.Context, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", statement.ErrExtractionFailure, err)
	}
	ctx, cancel, err := bound(ctx, g.Timeout)
	if err != nil {
		return nil, err
	}
	defer cancel()
	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: "application/pdf", Data: data}},
			{Text: transcribe},
		},
	}}
	resp, err := g.Models.GenerateContent(ctx, g.Model, contents, nil)
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return nil, fmt.Errorf("%w: %s timed out after %v", statement.ErrExtractionFailure, g.Model, g.Timeout)
	case err != nil:
		return nil, fmt.Errorf("%w: %s: %v", statement.ErrExtractionFailure, g.Model, err)
	}
	lines := Lines(text(resp))
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s returned no text", statement.ErrExtractionFailure, g.Model)
	}
	log := logger.FromContext(ctx)
	log.Debug().Str("model", g.Model).Str("path", path).Int("lines", len(lines)).Msg("document transcribed")
	return lines, nil
}

// text concatenates the text parts of the first candidate.
func text(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
