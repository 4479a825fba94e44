package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts LLM providers for structured-JSON completions.
// Identical inputs are not guaranteed identical outputs even at
// temperature zero, so results must never be cached by input hash.
type Client interface {
	CompleteJSON(ctx context.Context, input CompleteInput) (json.RawMessage, error)
}

// CompleteInput captures one structured-completion request.
type CompleteInput struct {
	Instruction string
	UserText    string
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// CompleteJSON returns ErrNotConfigured.
func (PlaceholderClient) CompleteJSON(ctx context.Context, input CompleteInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotConfigured
}
