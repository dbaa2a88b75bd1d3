package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Compile-time interface check
var _ Completer = (*Anthropic)(nil)

// MessagesService defines the interface for making message API calls.
// This abstraction enables testing without calling the real API.
type MessagesService interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Anthropic implements Completer using the Anthropic messages API.
type Anthropic struct {
	messages  MessagesService
	model     anthropic.Model
	maxTokens int64
}

// NewAnthropic creates an Anthropic-backed completer.
func NewAnthropic(apiKey, model string, maxTokens int) *Anthropic {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Anthropic{
		messages:  &client.Messages,
		model:     anthropic.Model(model),
		maxTokens: int64(maxTokens),
	}
}

// Complete executes the prompt and returns the concatenated text blocks
// of the response.
func (a *Anthropic) Complete(ctx context.Context, req Request) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := a.messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(text.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("generation failed: empty response")
	}
	return strings.TrimSpace(sb.String()), nil
}

// ModelName returns the configured model identifier.
func (a *Anthropic) ModelName() string {
	return string(a.model)
}
