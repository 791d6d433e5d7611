package openai

import (
	"context"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
)

// IChatCompletion is the narrow completion surface the command interpreter
// consumes. The response is expected to be JSON-shaped text; callers own
// parsing and must treat the output as untrusted.
type IChatCompletion interface {
	Complete(ctx context.Context, systemPrompt string, userMessage string) (string, error)
}

type chatCompletionService struct {
	client *openai.Client
	model  string
}

func NewChatCompletion() IChatCompletion {
	apiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("OPENAI_CHAT_MODEL")

	if model == "" {
		model = openai.GPT4
	}

	return &chatCompletionService{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *chatCompletionService) Complete(
	ctx context.Context,
	systemPrompt string,
	userMessage string,
) (string, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userMessage,
				},
			},
			Temperature: 0.1,
			MaxTokens:   600,
		},
	)

	if err != nil {
		return "", fmt.Errorf("ChatGPT API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from ChatGPT")
	}

	return resp.Choices[0].Message.Content, nil
}
