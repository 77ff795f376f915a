package cost

import (
	"strings"
	"testing"

	"github.com/commentscout/carousel-engine/internal/pricing"
)

func TestRecordCachedDiscount(t *testing.T) {
	tr := NewTracker(pricing.Default())

	// 800 uncached * 0.005 + 200 cached * 0.0025 + 500 completion * 0.02,
	// all per 1000 tokens: (4.0 + 0.5 + 10.0) / 1000 = 0.0145 USD.
	tr.Record(&Usage{PromptTokens: 1000, CompletionTokens: 500, CachedPromptTokens: 200}, "gpt-4o")

	if got, want := tr.CostString(), "0.0145"; got != want {
		t.Errorf("CostString() = %q, want %q", got, want)
	}

	rec := tr.Snapshot()
	if rec.Calls != 1 {
		t.Errorf("Calls = %d, want 1", rec.Calls)
	}
	if rec.PromptTokens != 1000 || rec.CompletionTokens != 500 || rec.CachedTokens != 200 {
		t.Errorf("token totals = (%d, %d, %d), want (1000, 500, 200)",
			rec.PromptTokens, rec.CompletionTokens, rec.CachedTokens)
	}
}

func TestRecordWithoutCachedTokens(t *testing.T) {
	tr := NewTracker(pricing.Default())

	// 100 * 0.03 + 50 * 0.06 per 1000 tokens = 0.006 USD.
	tr.Record(&Usage{PromptTokens: 100, CompletionTokens: 50}, "gpt-4")

	if got, want := tr.CostString(), "0.0060"; got != want {
		t.Errorf("CostString() = %q, want %q", got, want)
	}
}

func TestRecordCachedExceedsPrompt(t *testing.T) {
	tr := NewTracker(pricing.Default())

	// Uncached portion clamps at zero: 300 cached * 0.0025 + 100 * 0.02.
	tr.Record(&Usage{PromptTokens: 200, CompletionTokens: 100, CachedPromptTokens: 300}, "gpt-4o")

	if got, want := tr.CostString(), "0.0028"; got != want {
		t.Errorf("CostString() = %q, want %q", got, want)
	}
}

func TestRecordUnknownModel(t *testing.T) {
	tr := NewTracker(pricing.Default())

	tr.Record(&Usage{PromptTokens: 1000, CompletionTokens: 500}, "mystery-model-9000")

	rec := tr.Snapshot()
	if rec.PromptTokens != 1000 || rec.CompletionTokens != 500 {
		t.Errorf("token totals = (%d, %d), want (1000, 500)", rec.PromptTokens, rec.CompletionTokens)
	}
	if !rec.TotalCost.IsZero() {
		t.Errorf("TotalCost = %s, want 0", rec.TotalCost)
	}
	if rec.Calls != 1 {
		t.Errorf("Calls = %d, want 1", rec.Calls)
	}
}

func TestRecordNilUsage(t *testing.T) {
	tr := NewTracker(pricing.Default())

	tr.Record(nil, "gpt-4o")
	tr.Record(&Usage{PromptTokens: 10, CompletionTokens: 10}, "gpt-4o")

	rec := tr.Snapshot()
	if rec.Calls != 2 {
		t.Errorf("Calls = %d, want 2", rec.Calls)
	}
	if rec.PromptTokens != 10 {
		t.Errorf("PromptTokens = %d, want 10", rec.PromptTokens)
	}
}

func TestRecordReplayYieldsSameTotals(t *testing.T) {
	replay := []struct {
		usage Usage
		model string
	}{
		{Usage{PromptTokens: 1000, CompletionTokens: 500, CachedPromptTokens: 200}, "gpt-4o"},
		{Usage{PromptTokens: 321, CompletionTokens: 123}, "gpt-4"},
		{Usage{PromptTokens: 77, CompletionTokens: 11}, "unknown"},
		{Usage{PromptTokens: 5000, CompletionTokens: 900, CachedPromptTokens: 4000}, "gemini-2.5-flash"},
	}

	run := func(order []int) Record {
		tr := NewTracker(pricing.Default())
		for _, i := range order {
			u := replay[i].usage
			tr.Record(&u, replay[i].model)
		}
		return tr.Snapshot()
	}

	a := run([]int{0, 1, 2, 3})
	b := run([]int{3, 2, 1, 0})

	if !a.TotalCost.Equal(b.TotalCost) {
		t.Errorf("replay order changed cost: %s vs %s", a.TotalCost, b.TotalCost)
	}
	if a.PromptTokens != b.PromptTokens || a.CompletionTokens != b.CompletionTokens {
		t.Errorf("replay order changed token totals: %+v vs %+v", a, b)
	}
}

func TestSummaryIncludesTotals(t *testing.T) {
	tr := NewTracker(pricing.Default())
	tr.Record(&Usage{PromptTokens: 1000, CompletionTokens: 500, CachedPromptTokens: 200}, "gpt-4o")

	s := tr.Summary()
	for _, want := range []string{"model calls: 1", "prompt tokens: 1000", "cached: 200", "completion tokens: 500", "$0.0145"} {
		if !strings.Contains(s, want) {
			t.Errorf("Summary() = %q, missing %q", s, want)
		}
	}
}
