package chat

// variations.go turns one row of slide texts into N distinct rewrites per
// slide. Slide 0 is the hook slide and uses its own template; every other
// slide uses the non-hook template. Each model call is recorded against the
// cost tracker whether or not its result is kept.

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/commentscout/carousel-engine/internal/cost"
	"github.com/commentscout/carousel-engine/internal/prompt"
)

// DefaultAttemptsPerVariant bounds the uniqueness retry loop: a slide may
// consume at most Count*DefaultAttemptsPerVariant calls before generation
// fails. Low temperatures make the model repeat itself; without a bound the
// loop would spend money forever chasing variants that never arrive.
const DefaultAttemptsPerVariant = 5

// UniquenessError reports that a slide's retry budget ran out before enough
// distinct variants were collected.
type UniquenessError struct {
	Slide    int
	Got      int
	Want     int
	Attempts int
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("slide %d: %d unique variants after %d attempts, want %d",
		e.Slide, e.Got, e.Attempts, e.Want)
}

// VariationParams configures one row's variation generation.
type VariationParams struct {
	Model           string
	Temperature     float64
	MaxTokens       int
	HookTemplate    string
	NonHookTemplate string
	Slides          []string
	Count           int

	// AttemptsPerVariant overrides DefaultAttemptsPerVariant when > 0.
	AttemptsPerVariant int
}

// GenerateVariations produces the variation set for one row: element 0 is the
// original slide texts verbatim, elements 1..Count are full per-slide variant
// sequences. Every returned element has exactly len(Slides) entries.
//
// Variants for one slide are collected in acceptance order: duplicate
// responses (after trimming and quote-stripping) are discarded and retried,
// and the loop fails with a UniquenessError once the slide's attempt budget
// is spent.
func GenerateVariations(ctx context.Context, c Completer, tracker *cost.Tracker, p VariationParams) ([][]string, error) {
	if p.Count < 1 {
		return nil, fmt.Errorf("variant count must be at least 1, got %d", p.Count)
	}

	attemptsPerVariant := p.AttemptsPerVariant
	if attemptsPerVariant <= 0 {
		attemptsPerVariant = DefaultAttemptsPerVariant
	}
	budget := p.Count * attemptsPerVariant

	buckets := make([][]string, p.Count)
	for i := range buckets {
		buckets[i] = make([]string, 0, len(p.Slides))
	}

	for idx, original := range p.Slides {
		template := p.NonHookTemplate
		if idx == 0 {
			template = p.HookTemplate
		}

		variants, err := uniqueVariants(ctx, c, tracker, uniqueParams{
			model:       p.Model,
			temperature: p.Temperature,
			maxTokens:   p.MaxTokens,
			prompt:      prompt.ForSlide(template, original),
			want:        p.Count,
			budget:      budget,
			slide:       idx,
		})
		if err != nil {
			return nil, err
		}

		for i, v := range variants {
			buckets[i] = append(buckets[i], v)
		}

		log.Debug().
			Int("slide", idx).
			Int("variants", len(variants)).
			Msg("Slide variants collected")
	}

	result := make([][]string, 0, p.Count+1)
	result = append(result, p.Slides)
	result = append(result, buckets...)
	return result, nil
}

type uniqueParams struct {
	model       string
	temperature float64
	maxTokens   int
	prompt      string
	want        int
	budget      int
	slide       int
}

// uniqueVariants issues model calls until `want` distinct cleaned responses
// are collected or the attempt budget is exhausted. Acceptance order is the
// order responses first arrived, kept deterministic by pairing a slice with
// a membership set.
func uniqueVariants(ctx context.Context, c Completer, tracker *cost.Tracker, p uniqueParams) ([]string, error) {
	accepted := make([]string, 0, p.want)
	seen := make(map[string]struct{}, p.want)

	attempts := 0
	for len(accepted) < p.want && attempts < p.budget {
		attempts++

		resp, err := c.Complete(ctx, userRequest(p.model, p.prompt, p.temperature, p.maxTokens))
		if err != nil {
			return nil, fmt.Errorf("slide %d variation call failed: %w", p.slide, err)
		}
		tracker.Record(resp.Usage, p.model)

		variant := cleanResponse(resp.Text)
		if _, dup := seen[variant]; dup {
			log.Debug().Int("slide", p.slide).Int("attempt", attempts).Msg("Duplicate variant discarded")
			continue
		}
		seen[variant] = struct{}{}
		accepted = append(accepted, variant)
	}

	if len(accepted) < p.want {
		return nil, &UniquenessError{Slide: p.slide, Got: len(accepted), Want: p.want, Attempts: attempts}
	}
	return accepted, nil
}
