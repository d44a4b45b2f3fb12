package llm

import (
	"context"
	"errors"
)

// GenerateParams carries the generation knobs for a single model call.
type GenerateParams struct {
	MaxTokens     int
	Temperature   float32
	StopSequences []string
}

// Client abstracts the hosted text-generation provider. Calls are blocking
// round-trips; cancellation and deadlines come from the context.
type Client interface {
	Generate(ctx context.Context, prompt string, params GenerateParams) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// PlaceholderClient stands in when no provider credentials are configured.
type PlaceholderClient struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderClient) Generate(ctx context.Context, prompt string, params GenerateParams) (string, error) {
	_ = ctx
	_ = prompt
	_ = params
	return "", ErrNotConfigured
}
