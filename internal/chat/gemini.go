package chat

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/commentscout/carousel-engine/internal/cost"
)

// GeminiCompleter adapts the Gemini API to the Completer contract.
type GeminiCompleter struct {
	client *genai.Client
}

var _ Completer = (*GeminiCompleter)(nil)

// NewGeminiCompleter creates a Gemini-backed completer from an API key.
func NewGeminiCompleter(ctx context.Context, apiKey string) (*GeminiCompleter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiCompleter{client: client}, nil
}

// Complete sends the request to Gemini and maps the response, including the
// usage metadata (cached prompt tokens show up when Gemini reuses implicit
// context across calls, which the repeated variation templates trigger).
func (g *GeminiCompleter) Complete(ctx context.Context, req Request) (*Completion, error) {
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		contents = append(contents, &genai.Content{
			Role:  m.Role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens: int32(req.MaxTokens),
	}

	log.Debug().
		Str("model", req.Model).
		Float64("temperature", req.Temperature).
		Int("max_tokens", req.MaxTokens).
		Msg("Starting Gemini API call")

	resp, err := g.client.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("received empty response from Gemini API")
	}

	completion := &Completion{Text: resp.Text()}
	if resp.UsageMetadata != nil {
		completion.Usage = usageFromMetadata(resp.UsageMetadata)
	}

	log.Debug().
		Int("response_length", len(completion.Text)).
		Bool("has_usage", completion.Usage != nil).
		Msg("Gemini API response received")

	return completion, nil
}

func usageFromMetadata(m *genai.GenerateContentResponseUsageMetadata) *cost.Usage {
	return &cost.Usage{
		PromptTokens:       int64(m.PromptTokenCount),
		CompletionTokens:   int64(m.CandidatesTokenCount),
		CachedPromptTokens: int64(m.CachedContentTokenCount),
	}
}
