package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var _ Completer = (*OpenAI)(nil)

// ChatService defines the interface for chat completion API calls.
type ChatService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// OpenAI implements Completer using the OpenAI chat completions API.
type OpenAI struct {
	chat      ChatService
	model     openai.ChatModel
	maxTokens int64
}

// NewOpenAI creates an OpenAI-backed completer.
func NewOpenAI(apiKey, model string, maxTokens int) *OpenAI {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAI{
		chat:      &client.Chat.Completions,
		model:     openai.ChatModel(model),
		maxTokens: int64(maxTokens),
	}
}

// Complete executes the prompt and returns the first choice's content.
func (o *OpenAI) Complete(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	resp, err := o.chat.New(ctx, openai.ChatCompletionNewParams{
		Model:     o.model,
		MaxTokens: openai.Int(o.maxTokens),
		Messages:  messages,
	})
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("generation failed: no choices returned")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("generation failed: empty response")
	}
	return content, nil
}

// ModelName returns the configured model identifier.
func (o *OpenAI) ModelName() string {
	return string(o.model)
}
