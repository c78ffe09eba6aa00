package ai

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a model answers without any text.
var ErrEmptyResponse = errors.New("empty model response")

// ChatModel defines the contract for interacting with language models.
// Both providers (DashScope via the OpenAI-compatible API, and Gemini) satisfy it.
type ChatModel interface {
	// Invoke sends the conversation and returns the complete reply text.
	Invoke(ctx context.Context, messages []Message) (string, error)

	// Stream sends the conversation and calls onChunk for every text fragment
	// in arrival order. An error returned by onChunk stops the stream.
	Stream(ctx context.Context, messages []Message, onChunk func(string) error) error

	// Name identifies the provider and model for logs and metrics.
	Name() string
}
