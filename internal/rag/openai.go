package rag

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const (
	// DefaultChatModel is fast and cheap enough for conversational Q&A.
	DefaultChatModel = openai.GPT4oMini

	// defaultTemperature balances fidelity to the transcript with natural
	// phrasing.
	defaultTemperature = 0.7
)

// OpenAIGenerator generates answers with OpenAI's chat completions API.
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAIGenerator creates a generator for the given chat model. An empty
// model selects the default.
func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	if model == "" {
		model = DefaultChatModel
	}
	return &OpenAIGenerator{
		client:      openai.NewClient(apiKey),
		model:       model,
		temperature: defaultTemperature,
	}
}

// Generate sends the assembled prompt as a single user message; the
// grounding instruction travels inside the prompt so the whole contract
// reaches the model as one unit.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
