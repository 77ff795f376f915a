package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/commentscout/carousel-engine/internal/cost"
	"github.com/commentscout/carousel-engine/internal/pricing"
)

// fakeCompleter replies from a script keyed by prompt content. Each call pops
// the next response for the first key contained in the prompt.
type fakeCompleter struct {
	responses map[string][]string
	calls     []Request
	err       error
}

func (f *fakeCompleter) Complete(_ context.Context, req Request) (*Completion, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}

	promptText := req.Messages[0].Content
	for key, queue := range f.responses {
		if !strings.Contains(promptText, key) {
			continue
		}
		if len(queue) == 0 {
			return nil, fmt.Errorf("fake completer: script exhausted for %q", key)
		}
		text := queue[0]
		f.responses[key] = queue[1:]
		return &Completion{
			Text:  text,
			Usage: &cost.Usage{PromptTokens: 10, CompletionTokens: 5},
		}, nil
	}
	return nil, fmt.Errorf("fake completer: no script for prompt %q", promptText)
}

func newTracker() *cost.Tracker {
	return cost.NewTracker(pricing.Default())
}

func baseParams() VariationParams {
	return VariationParams{
		Model:           "gpt-4o",
		Temperature:     0.2,
		MaxTokens:       100,
		HookTemplate:    "HOOK: {original}",
		NonHookTemplate: "BODY: {original}",
		Slides:          []string{"Hook text", "Body A", "Body B"},
		Count:           2,
	}
}

func TestGenerateVariationsShape(t *testing.T) {
	fake := &fakeCompleter{responses: map[string][]string{
		"Hook text": {"hook v1", "hook v2"},
		"Body A":    {"body a1", "body a2"},
		"Body B":    {"body b1", "body b2"},
	}}
	tracker := newTracker()

	set, err := GenerateVariations(context.Background(), fake, tracker, baseParams())
	if err != nil {
		t.Fatalf("GenerateVariations() error = %v", err)
	}

	if len(set) != 3 {
		t.Fatalf("len(set) = %d, want 3 (count + original)", len(set))
	}
	for i, bucket := range set {
		if len(bucket) != 3 {
			t.Errorf("len(set[%d]) = %d, want 3", i, len(bucket))
		}
	}

	// Element 0 is the untouched input.
	for i, want := range []string{"Hook text", "Body A", "Body B"} {
		if set[0][i] != want {
			t.Errorf("set[0][%d] = %q, want %q", i, set[0][i], want)
		}
	}

	// Acceptance order is deterministic: first unique response fills bucket 1.
	if set[1][0] != "hook v1" || set[2][0] != "hook v2" {
		t.Errorf("hook variants = (%q, %q), want (hook v1, hook v2)", set[1][0], set[2][0])
	}
}

func TestGenerateVariationsDiscardsDuplicates(t *testing.T) {
	fake := &fakeCompleter{responses: map[string][]string{
		"Hook text": {"same", "same", `"same"`, "other"},
		"Body A":    {"a1", "a2"},
		"Body B":    {"b1", "b2"},
	}}
	tracker := newTracker()

	set, err := GenerateVariations(context.Background(), fake, tracker, baseParams())
	if err != nil {
		t.Fatalf("GenerateVariations() error = %v", err)
	}

	if set[1][0] != "same" || set[2][0] != "other" {
		t.Errorf("hook variants = (%q, %q), want (same, other)", set[1][0], set[2][0])
	}

	// 4 hook attempts + 2 per body slide, every one cost-tracked.
	if got := tracker.Snapshot().Calls; got != 8 {
		t.Errorf("tracked calls = %d, want 8", got)
	}
}

func TestGenerateVariationsHookIsolation(t *testing.T) {
	fake := &fakeCompleter{responses: map[string][]string{
		"Hook text": {"h1", "h2"},
		"Body A":    {"a1", "a2"},
		"Body B":    {"b1", "b2"},
	}}

	_, err := GenerateVariations(context.Background(), fake, newTracker(), baseParams())
	if err != nil {
		t.Fatalf("GenerateVariations() error = %v", err)
	}

	for _, req := range fake.calls {
		promptText := req.Messages[0].Content
		usesHook := strings.HasPrefix(promptText, "HOOK: ")
		isHookSlide := strings.Contains(promptText, "Hook text")
		if usesHook != isHookSlide {
			t.Errorf("template mismatch for prompt %q", promptText)
		}
	}
}

func TestGenerateVariationsBoundedRetry(t *testing.T) {
	// The model only ever says one thing; the budget must stop the loop.
	fake := &fakeCompleter{responses: map[string][]string{
		"Hook text": {"same", "same", "same", "same", "same", "same", "same", "same", "same", "same"},
	}}
	tracker := newTracker()

	p := baseParams()
	p.Slides = []string{"Hook text"}
	p.AttemptsPerVariant = 3 // budget = 2 * 3 = 6 attempts

	_, err := GenerateVariations(context.Background(), fake, tracker, p)

	var ue *UniquenessError
	if !errors.As(err, &ue) {
		t.Fatalf("error = %v, want *UniquenessError", err)
	}
	if ue.Slide != 0 || ue.Got != 1 || ue.Want != 2 || ue.Attempts != 6 {
		t.Errorf("UniquenessError = %+v, want {Slide:0 Got:1 Want:2 Attempts:6}", ue)
	}
	// Failed attempts still cost money and must be tracked.
	if got := tracker.Snapshot().Calls; got != 6 {
		t.Errorf("tracked calls = %d, want 6", got)
	}
}

func TestGenerateVariationsCompleterError(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("boom")}

	_, err := GenerateVariations(context.Background(), fake, newTracker(), baseParams())
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %v, want wrapped completer error", err)
	}
}

func TestGenerateVariationsRejectsZeroCount(t *testing.T) {
	p := baseParams()
	p.Count = 0
	if _, err := GenerateVariations(context.Background(), &fakeCompleter{}, newTracker(), p); err == nil {
		t.Error("GenerateVariations() error = nil, want count validation error")
	}
}
