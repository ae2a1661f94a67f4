// Package hints produces puzzle hints, either from the case file or from a language model.
package hints

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompts/hint.txt
var hintPrompt string

var hintTemplate = template.Must(template.New("hint").Parse(hintPrompt))

// Request describes the puzzle the detective is stuck on.
type Request struct {
	Case      string
	Level     string
	Scene     string
	Intro     string
	Puzzle    string
	Clues     []string
	Inventory []string
	Hint      string // the hint written by the case author
}

// Hinter returns a hint for the request.
type Hinter interface {
	Hint(ctx context.Context, req Request) (string, error)
}

// Static returns the authored hint.
type Static struct{}

func (Static) Hint(_ context.Context, req Request) (string, error) {
	return req.Hint, nil
}

const (
	ProviderStatic = "static"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// New builds the hinter for a provider. The returned close func is never nil.
func New(ctx context.Context, provider, geminiKey, openAIKey string) (Hinter, func() error, error) {
	noop := func() error { return nil }
	switch provider {
	case "", ProviderStatic:
		return Static{}, noop, nil
	case ProviderGemini:
		g, err := NewGemini(ctx, geminiKey)
		if err != nil {
			return nil, noop, err
		}
		return g, g.Close, nil
	case ProviderOpenAI:
		return NewOpenAI(openAIKey), noop, nil
	}
	return nil, noop, fmt.Errorf("unknown hint provider %q", provider)
}

// Prompt renders the model prompt for the request.
func Prompt(req Request) (string, error) {
	var buf bytes.Buffer
	if err := hintTemplate.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("render hint prompt: %w", err)
	}
	return buf.String(), nil
}

// clean strips the wrapping models like to put around short answers.
func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```text")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.Trim(strings.TrimSpace(s), `"`)
}
