package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiProvider implements ChatModel using Google's Gemini models.
type GeminiProvider struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string, temperature float64) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	return &GeminiProvider{
		client:      client,
		modelName:   modelName,
		temperature: float32(temperature),
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

func (p *GeminiProvider) Name() string { return "gemini/" + p.modelName }

// Invoke returns the concatenated text of the first candidate.
func (p *GeminiProvider) Invoke(ctx context.Context, messages []Message) (string, error) {
	model, parts := p.prepare(messages)
	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	text := candidateText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Stream forwards every streamed text fragment to onChunk.
func (p *GeminiProvider) Stream(ctx context.Context, messages []Message, onChunk func(string) error) error {
	model, parts := p.prepare(messages)
	iter := model.GenerateContentStream(ctx, parts...)
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("gemini stream error: %w", err)
		}
		if chunk := candidateText(resp); chunk != "" {
			if err := onChunk(chunk); err != nil {
				return err
			}
		}
	}
}

// prepare builds a per-call model so system instructions never leak between requests.
func (p *GeminiProvider) prepare(messages []Message) (*genai.GenerativeModel, []genai.Part) {
	model := p.client.GenerativeModel(p.modelName)
	model.SetTemperature(p.temperature)

	var system []string
	parts := make([]genai.Part, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			system = append(system, m.Content)
		default:
			parts = append(parts, genai.Text(m.Content))
		}
	}
	if len(system) > 0 {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(strings.Join(system, "\n\n"))},
		}
	}
	return model, parts
}

func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}
