// Package llm wraps the external text-generation collaborator behind a
// single blocking Complete operation. Calls never retry; callers bound
// them with a context timeout and treat any failure as "no text
// produced".
package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownProvider is returned by New for an unrecognized provider name.
var ErrUnknownProvider = errors.New("unknown generation provider")

// Request is one completion request.
type Request struct {
	Prompt string
	System string
}

// Completer executes a prompt against the generation collaborator.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
	ModelName() string
}

// New constructs the configured provider client.
func New(provider, apiKey, model string, maxTokens int) (Completer, error) {
	switch provider {
	case "anthropic":
		return NewAnthropic(apiKey, model, maxTokens), nil
	case "openai":
		return NewOpenAI(apiKey, model, maxTokens), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
}
