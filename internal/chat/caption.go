package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/commentscout/carousel-engine/internal/cost"
	"github.com/commentscout/carousel-engine/internal/prompt"
)

// CaptionParams configures one row's caption generation.
type CaptionParams struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Template    string
	Slides      []string
}

// GenerateCaption produces a single caption summarizing the full slide set.
// One best-effort call: no retry, no uniqueness handling.
func GenerateCaption(ctx context.Context, c Completer, tracker *cost.Tracker, p CaptionParams) (string, error) {
	resp, err := c.Complete(ctx, userRequest(p.Model, prompt.ForCaption(p.Template, p.Slides), p.Temperature, p.MaxTokens))
	if err != nil {
		return "", fmt.Errorf("caption call failed: %w", err)
	}
	tracker.Record(resp.Usage, p.Model)

	caption := strings.TrimSpace(resp.Text)
	log.Debug().Int("caption_length", len(caption)).Msg("Caption generated")
	return caption, nil
}
