// Package pricing holds the static per-model price table used for cost
// accounting. Rates are expressed in USD per 1000 tokens and stored as exact
// decimals so that accumulation across thousands of calls never drifts.
package pricing

import "github.com/shopspring/decimal"

// Entry is the price of one model: input and output rates, plus an optional
// discounted rate for cached prompt tokens. All rates are USD per 1000 tokens.
type Entry struct {
	Input       decimal.Decimal
	Output      decimal.Decimal
	CachedInput *decimal.Decimal
}

// HasCachedRate reports whether the model bills cached prompt tokens at a
// discounted rate.
func (e Entry) HasCachedRate() bool {
	return e.CachedInput != nil
}

// Table maps a model identifier to its price entry.
type Table map[string]Entry

// Lookup returns the entry for the given model identifier. The second return
// value is false for models absent from the table; callers must degrade to
// token-counting-only rather than guessing a price.
func (t Table) Lookup(model string) (Entry, bool) {
	e, ok := t[model]
	return e, ok
}

// rate builds a per-1000-token decimal rate from its string form. Prices are
// written as strings to keep them exact (0.005 has no finite binary form).
func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func cached(s string) *decimal.Decimal {
	d := rate(s)
	return &d
}

// Default returns the built-in price table.
//
// | Model                 | Input / 1K | Output / 1K | Cached Input / 1K |
// |-----------------------|------------|-------------|-------------------|
// | gpt-4                 | 0.03       | 0.06        | -                 |
// | gpt-4o                | 0.005      | 0.02        | 0.0025            |
// | gpt-4o-mini           | 0.00015    | 0.0006      | 0.000075          |
// | gpt-3.5-turbo         | 0.0005     | 0.0015     | -                 |
// | gemini-2.5-flash      | 0.0003     | 0.0025      | 0.000075          |
// | gemini-2.5-flash-lite | 0.0001     | 0.0004      | 0.000025          |
// | gemini-2.5-pro        | 0.00125    | 0.01        | 0.0003125         |
func Default() Table {
	return Table{
		"gpt-4": {
			Input:  rate("0.03"),
			Output: rate("0.06"),
		},
		"gpt-4o": {
			Input:       rate("0.005"),
			Output:      rate("0.02"),
			CachedInput: cached("0.0025"),
		},
		"gpt-4o-mini": {
			Input:       rate("0.00015"),
			Output:      rate("0.0006"),
			CachedInput: cached("0.000075"),
		},
		"gpt-3.5-turbo": {
			Input:  rate("0.0005"),
			Output: rate("0.0015"),
		},
		"gemini-2.5-flash": {
			Input:       rate("0.0003"),
			Output:      rate("0.0025"),
			CachedInput: cached("0.000075"),
		},
		"gemini-2.5-flash-lite": {
			Input:       rate("0.0001"),
			Output:      rate("0.0004"),
			CachedInput: cached("0.000025"),
		},
		"gemini-2.5-pro": {
			Input:       rate("0.00125"),
			Output:      rate("0.01"),
			CachedInput: cached("0.0003125"),
		},
	}
}
