package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAICompatProvider implements ChatModel against any OpenAI-compatible
// chat completions endpoint. The default deployment points it at DashScope.
type OpenAICompatProvider struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewOpenAICompatProvider creates a provider for baseURL using apiKey.
func NewOpenAICompatProvider(apiKey, baseURL, model string, temperature float64) *OpenAICompatProvider {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAICompatProvider{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: temperature,
	}
}

func (p *OpenAICompatProvider) Name() string { return "openai-compat/" + p.model }

func (p *OpenAICompatProvider) Invoke(ctx context.Context, messages []Message) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, p.params(messages))
	if err != nil {
		return "", fmt.Errorf("chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (p *OpenAICompatProvider) Stream(ctx context.Context, messages []Message, onChunk func(string) error) error {
	stream := p.client.Chat.Completions.NewStreaming(ctx, p.params(messages))
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			if err := onChunk(delta); err != nil {
				return err
			}
		}
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("chat completion stream error: %w", err)
	}
	return nil
}

func (p *OpenAICompatProvider) params(messages []Message) openai.ChatCompletionNewParams {
	converted := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			converted = append(converted, openai.SystemMessage(m.Content))
		default:
			converted = append(converted, openai.UserMessage(m.Content))
		}
	}
	return openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(p.model),
		Messages:    converted,
		Temperature: openai.Float(p.temperature),
	}
}
