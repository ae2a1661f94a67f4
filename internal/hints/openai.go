package hints

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const maxHintTokens = 120

// OpenAI asks an OpenAI chat model for hints.
type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey string) *OpenAI {
	return NewOpenAIWithConfig(openai.DefaultConfig(apiKey))
}

// NewOpenAIWithConfig allows pointing the client at a compatible endpoint.
func NewOpenAIWithConfig(cfg openai.ClientConfig) *OpenAI {
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.GPT3Dot5Turbo1106,
	}
}

func (o *OpenAI) Hint(ctx context.Context, req Request) (string, error) {
	prompt, err := Prompt(req)
	if err != nil {
		return "", err
	}

	completion, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:     o.model,
			MaxTokens: maxHintTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: "You give short, spoiler-free hints for a detective game."},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	hint := clean(completion.Choices[0].Message.Content)
	if hint == "" {
		return "", ErrEmptyResponse
	}
	return hint, nil
}
