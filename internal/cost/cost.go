// Package cost implements run-wide token and spend accounting for model calls.
//
// A single Tracker is constructed at process start, passed by reference into
// every call site, and read once at teardown. Monetary arithmetic uses exact
// decimal accumulation (shopspring/decimal): summing thousands of small
// binary floats would compound rounding error in the reported total.
package cost

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/commentscout/carousel-engine/internal/pricing"
)

// Usage is the token usage metadata reported by one model response.
// CachedPromptTokens counts the subset of PromptTokens billed at the
// provider's cached-input discount; zero when the provider reports none.
type Usage struct {
	PromptTokens       int64
	CompletionTokens   int64
	CachedPromptTokens int64
}

// Record is a point-in-time snapshot of accumulated usage and spend.
type Record struct {
	Calls            int
	PromptTokens     int64
	CompletionTokens int64
	CachedTokens     int64
	TotalCost        decimal.Decimal
}

// Tracker accumulates usage and USD cost across all model calls of one run.
// Methods are safe for concurrent use so that a future parallel variant
// renderer cannot corrupt the totals.
type Tracker struct {
	mu    sync.Mutex
	table pricing.Table
	rec   Record
}

// NewTracker returns a Tracker pricing calls against the given table.
func NewTracker(table pricing.Table) *Tracker {
	return &Tracker{table: table}
}

// Record folds one model response into the totals.
//
// The call count always increments, even when usage is nil (an API response
// shape that omits usage is tracked but not costed). Token counts for models
// missing from the price table still accumulate, but contribute no cost:
// an unknown price must never silently produce a wrong total.
func (t *Tracker) Record(usage *Usage, model string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rec.Calls++
	if usage == nil {
		log.Warn().Str("model", model).Msg("Model response carried no usage metadata")
		return
	}

	t.rec.PromptTokens += usage.PromptTokens
	t.rec.CompletionTokens += usage.CompletionTokens
	t.rec.CachedTokens += usage.CachedPromptTokens

	entry, ok := t.table.Lookup(model)
	if !ok {
		log.Warn().Str("model", model).Msg("No price entry for model, tokens counted but not costed")
		return
	}

	t.rec.TotalCost = t.rec.TotalCost.Add(callCost(entry, usage))
}

// callCost prices a single response. When the model has a cached-input rate
// and cached tokens were reported, the cached portion of the prompt is billed
// at the discounted rate and only the remainder at the full input rate.
func callCost(entry pricing.Entry, usage *Usage) decimal.Decimal {
	prompt := decimal.NewFromInt(usage.PromptTokens)
	completion := decimal.NewFromInt(usage.CompletionTokens)

	input := prompt.Mul(entry.Input)
	if entry.HasCachedRate() && usage.CachedPromptTokens > 0 {
		uncached := usage.PromptTokens - usage.CachedPromptTokens
		if uncached < 0 {
			uncached = 0
		}
		input = decimal.NewFromInt(uncached).Mul(entry.Input).
			Add(decimal.NewFromInt(usage.CachedPromptTokens).Mul(*entry.CachedInput))
	}

	return input.Add(completion.Mul(entry.Output)).Div(decimal.NewFromInt(1000))
}

// Snapshot returns the current accumulated totals.
func (t *Tracker) Snapshot() Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rec
}

// CostString returns the accumulated cost rounded to 4 decimal places, the
// form written into output-log rows and the teardown summary.
func (t *Tracker) CostString() string {
	return t.Snapshot().TotalCost.Round(4).StringFixed(4)
}

// Summary returns the human-readable end-of-run report.
func (t *Tracker) Summary() string {
	rec := t.Snapshot()
	return fmt.Sprintf(
		"model calls: %d | prompt tokens: %d (cached: %d) | completion tokens: %d | total cost: $%s",
		rec.Calls, rec.PromptTokens, rec.CachedTokens, rec.CompletionTokens,
		rec.TotalCost.Round(4).StringFixed(4),
	)
}
