package carousel

import (
	"fmt"

	"github.com/commentscout/carousel-engine/internal/render"
)

// Config is the full run configuration for the orchestrator. Everything here
// is fixed for the duration of a run; prompt templates and the generation
// temperature live in the sheet instead, so they can be edited between rows.
type Config struct {
	// SheetID identifies the spreadsheet holding prompts, input rows, and
	// the output log.
	SheetID string

	// RowsRange is the worksheet holding input rows (header excluded).
	RowsRange string

	// OutputWorksheet is the worksheet the output log is appended to.
	OutputWorksheet string

	// Well-known cells for the prompt templates and temperature.
	HookPromptRange    string
	NonHookPromptRange string
	CaptionPromptRange string
	TemperatureRange   string

	// ContentFolderIDs are the fixed, ordered image source folders, one per
	// carousel slot. Blank entries are legal and yield absent slots.
	ContentFolderIDs []string

	// AccountFolderIDs are the destination publishing accounts. Variant k
	// (1-based) publishes to AccountFolderIDs[k-1].
	AccountFolderIDs []string

	// FontsFolderID is the folder holding the carousel font.
	FontsFolderID string

	Model        string
	VariantCount int

	// VariationMaxTokens caps each variation call; CaptionMaxTokens caps
	// the caption call.
	VariationMaxTokens int
	CaptionMaxTokens   int

	// RowLimit processes only the first N input rows; 0 means all.
	RowLimit int

	// MaxImagesPerFolder caps folder listings when picking slide images.
	MaxImagesPerFolder int

	// AttemptsPerVariant bounds the uniqueness retry loop; 0 uses the
	// chat package default.
	AttemptsPerVariant int

	// TemperatureOverride, when set, replaces the temperature read from
	// the sheet for every row.
	TemperatureOverride *float64

	Layout     string
	FontColors []string
	WorkDir    string
}

// Validate checks the parts of the configuration that must hold before any
// model spend.
func (c *Config) Validate() error {
	required := []struct{ field, value string }{
		{"sheet_id", c.SheetID},
		{"rows_range", c.RowsRange},
		{"output_worksheet", c.OutputWorksheet},
		{"hook_prompt_range", c.HookPromptRange},
		{"non_hook_prompt_range", c.NonHookPromptRange},
		{"caption_prompt_range", c.CaptionPromptRange},
		{"temperature_range", c.TemperatureRange},
		{"fonts_folder_id", c.FontsFolderID},
		{"model", c.Model},
		{"work_dir", c.WorkDir},
	}
	for _, r := range required {
		if r.value == "" {
			return &ConfigError{Field: r.field, Reason: "must not be empty"}
		}
	}

	if c.VariantCount < 1 {
		return &ConfigError{Field: "variant_count", Reason: "must be at least 1"}
	}
	if c.VariantCount > len(c.AccountFolderIDs) {
		return &ConfigError{
			Field: "variant_count",
			Reason: fmt.Sprintf("%d variants need %d destination accounts, have %d",
				c.VariantCount, c.VariantCount, len(c.AccountFolderIDs)),
		}
	}
	if len(c.ContentFolderIDs) != render.SlotCount {
		return &ConfigError{
			Field:  "content_folder_ids",
			Reason: fmt.Sprintf("need exactly %d entries, have %d", render.SlotCount, len(c.ContentFolderIDs)),
		}
	}
	if c.VariationMaxTokens < 1 || c.CaptionMaxTokens < 1 {
		return &ConfigError{Field: "max_tokens", Reason: "token budgets must be positive"}
	}

	return nil
}
