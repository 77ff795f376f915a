// Package carousel implements the per-row orchestration loop: read slide
// texts, generate uniqueness-guaranteed variants and a caption, then for each
// variant assign images, create a destination folder, render, upload, and
// append an output-log row under a freshly minted sequential ID.
//
// Failure policy is explicit and two-tiered. Structural failures abort the
// run: bad configuration, an incomplete variation set, a corrupt ID column.
// Local failures degrade: an empty or unreadable content folder becomes an
// absent image slot, and a failure inside one variant's publish steps skips
// that variant without touching its siblings. The engine never publishes a
// partial variant set and never logs a carousel it did not upload.
package carousel

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/commentscout/carousel-engine/internal/chat"
	"github.com/commentscout/carousel-engine/internal/cost"
	"github.com/commentscout/carousel-engine/internal/filehandler"
	"github.com/commentscout/carousel-engine/internal/render"
	"github.com/commentscout/carousel-engine/internal/sheet"
	"github.com/commentscout/carousel-engine/internal/storage"
)

// outputRowWidth is the column the caption lands in: slide texts occupy
// columns 2-7 and are padded with empty cells when a row has fewer slides.
const outputRowWidth = 7

// Deps are the injected collaborators of one orchestrator.
type Deps struct {
	Source    sheet.Source
	OutputLog sheet.OutputLog
	Store     storage.Store
	Renderer  render.Renderer
	Completer chat.Completer
	Tracker   *cost.Tracker
	Style     render.Style

	// Now and Pick exist for tests; nil selects the real clock and
	// uniform random selection.
	Now  func() time.Time
	Pick func(n int) int
}

// Orchestrator drives the full carousel pipeline for a configured sheet.
type Orchestrator struct {
	cfg  Config
	deps Deps
}

// New validates the configuration and returns an orchestrator.
func New(cfg Config, deps Deps) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Pick == nil {
		deps.Pick = rand.Intn
	}
	return &Orchestrator{cfg: cfg, deps: deps}, nil
}

// templates holds the per-row fetch of prompt templates and temperature.
// Fetched once per row so live edits to the sheet take effect mid-run.
type templates struct {
	hook        string
	nonHook     string
	caption     string
	temperature float64
}

// Run processes every input row in sheet order. It returns the first fatal
// error; recoverable failures are logged and degrade per the package policy.
func (o *Orchestrator) Run(ctx context.Context) error {
	rows, err := o.deps.Source.GetRows(ctx, o.cfg.SheetID, o.cfg.RowsRange)
	if err != nil {
		return fmt.Errorf("failed to read input rows: %w", err)
	}

	if o.cfg.RowLimit > 0 && len(rows) > o.cfg.RowLimit {
		rows = rows[:o.cfg.RowLimit]
	}
	log.Info().Int("rows", len(rows)).Msg("Starting carousel run")

	for idx, row := range rows {
		slides := slideTexts(row)
		if len(slides) == 0 {
			log.Debug().Int("row", idx+1).Msg("Skipping empty row")
			continue
		}

		if err := o.processRow(ctx, idx+1, slides); err != nil {
			if isRowLocal(err) {
				log.Error().Err(err).Int("row", idx+1).Msg("Row aborted, continuing with next row")
				continue
			}
			return err
		}
	}

	return nil
}

// slideTexts trims each cell and drops trailing empty cells, which are sheet
// padding rather than slides. Interior empty cells are preserved: slide
// position is meaningful.
func slideTexts(row []string) []string {
	slides := make([]string, len(row))
	for i, cell := range row {
		slides[i] = strings.TrimSpace(cell)
	}
	for len(slides) > 0 && slides[len(slides)-1] == "" {
		slides = slides[:len(slides)-1]
	}
	return slides
}

// rowLocalError marks a failure that aborts one row but not the run.
type rowLocalError struct{ err error }

func (e *rowLocalError) Error() string { return e.err.Error() }
func (e *rowLocalError) Unwrap() error { return e.err }

func isRowLocal(err error) bool {
	var rle *rowLocalError
	return errors.As(err, &rle)
}

func (o *Orchestrator) processRow(ctx context.Context, rowNum int, slides []string) error {
	log.Info().Int("row", rowNum).Int("slides", len(slides)).Msg("Processing row")

	ws, err := filehandler.NewWorkspace(o.cfg.WorkDir, o.deps.Now())
	if err != nil {
		return fmt.Errorf("row %d: %w", rowNum, err)
	}

	// A missing or invalid font cannot render this row, but the next row
	// re-fetches and may succeed.
	fontPath, err := o.fetchFont(ctx, ws.RowDir)
	if err != nil {
		return &rowLocalError{err: fmt.Errorf("row %d: %w", rowNum, err)}
	}

	tpl, err := o.fetchTemplates(ctx)
	if err != nil {
		return err
	}

	set, err := chat.GenerateVariations(ctx, o.deps.Completer, o.deps.Tracker, chat.VariationParams{
		Model:              o.cfg.Model,
		Temperature:        tpl.temperature,
		MaxTokens:          o.cfg.VariationMaxTokens,
		HookTemplate:       tpl.hook,
		NonHookTemplate:    tpl.nonHook,
		Slides:             slides,
		Count:              o.cfg.VariantCount,
		AttemptsPerVariant: o.cfg.AttemptsPerVariant,
	})
	if err != nil {
		return fmt.Errorf("row %d: variation generation failed: %w", rowNum, err)
	}
	if len(set) != o.cfg.VariantCount+1 {
		return &CompletenessError{Got: len(set), Want: o.cfg.VariantCount + 1}
	}

	caption, err := chat.GenerateCaption(ctx, o.deps.Completer, o.deps.Tracker, chat.CaptionParams{
		Model:       o.cfg.Model,
		Temperature: tpl.temperature,
		MaxTokens:   o.cfg.CaptionMaxTokens,
		Template:    tpl.caption,
		Slides:      slides,
	})
	if err != nil {
		return fmt.Errorf("row %d: %w", rowNum, err)
	}

	// Element 0 is the untouched original; publishing starts at variant 1.
	for variant := 1; variant <= o.cfg.VariantCount; variant++ {
		if err := o.publishVariant(ctx, ws, variantJob{
			rowNum:      rowNum,
			variant:     variant,
			slides:      set[variant],
			caption:     caption,
			temperature: tpl.temperature,
			fontPath:    fontPath,
		}); err != nil {
			return err
		}
	}

	log.Info().Int("row", rowNum).Msg("Row complete")
	return nil
}

// fetchTemplates reads the prompt templates and temperature from their
// well-known cells. Any empty cell or malformed temperature is a
// configuration fault, surfaced before model spend for this row.
func (o *Orchestrator) fetchTemplates(ctx context.Context) (*templates, error) {
	fetch := func(field, rangeRef string) (string, error) {
		value, err := o.deps.Source.GetCell(ctx, o.cfg.SheetID, rangeRef)
		if err != nil {
			return "", fmt.Errorf("failed to fetch %s: %w", field, err)
		}
		if strings.TrimSpace(value) == "" {
			return "", &ConfigError{Field: field, Reason: fmt.Sprintf("cell %s is empty or missing", rangeRef)}
		}
		return value, nil
	}

	hook, err := fetch("hook prompt", o.cfg.HookPromptRange)
	if err != nil {
		return nil, err
	}
	nonHook, err := fetch("non-hook prompt", o.cfg.NonHookPromptRange)
	if err != nil {
		return nil, err
	}
	caption, err := fetch("caption prompt", o.cfg.CaptionPromptRange)
	if err != nil {
		return nil, err
	}

	tempCell, err := fetch("temperature", o.cfg.TemperatureRange)
	if err != nil {
		return nil, err
	}
	temperature, err := strconv.ParseFloat(strings.TrimSpace(tempCell), 64)
	if err != nil {
		return nil, &ConfigError{Field: "temperature", Reason: fmt.Sprintf("cell value %q is not a number", tempCell)}
	}
	if o.cfg.TemperatureOverride != nil {
		temperature = *o.cfg.TemperatureOverride
	}

	return &templates{hook: hook, nonHook: nonHook, caption: caption, temperature: temperature}, nil
}

// fetchFont downloads and validates the first font file in the fonts folder.
func (o *Orchestrator) fetchFont(ctx context.Context, destDir string) (string, error) {
	files, err := o.deps.Store.ListFiles(ctx, o.cfg.FontsFolderID, 0)
	if err != nil {
		return "", fmt.Errorf("failed to list fonts folder: %w", err)
	}

	for _, f := range files {
		if !filehandler.IsFont(filepath.Ext(f.Name)) {
			continue
		}
		path, err := o.deps.Store.Download(ctx, f.ID, destDir, 0, true)
		if err != nil {
			return "", fmt.Errorf("font %s failed validation: %w", f.Name, err)
		}
		return path, nil
	}

	return "", fmt.Errorf("no font file found in folder %s", o.cfg.FontsFolderID)
}

type variantJob struct {
	rowNum      int
	variant     int
	slides      []string
	caption     string
	temperature float64
	fontPath    string
}

// publishVariant runs one variant through ID allocation, image assignment,
// destination creation, rendering, upload, and output logging. A failure in
// the publish steps skips this variant; ID allocation failures are fatal
// because a misread log would mint duplicate or wrong IDs.
func (o *Orchestrator) publishVariant(ctx context.Context, ws *filehandler.Workspace, job variantJob) error {
	id, err := sheet.NextID(ctx, o.deps.OutputLog, o.cfg.SheetID, o.cfg.OutputWorksheet)
	if err != nil {
		return fmt.Errorf("row %d variant %d: %w", job.rowNum, job.variant, err)
	}

	log.Info().
		Int("row", job.rowNum).
		Int("variant", job.variant).
		Str("id", id).
		Msg("Publishing variant")

	images := o.assignImages(ctx, ws.RawDir)

	folderName := fmt.Sprintf("ID:%s-carousel-%s", id, o.deps.Now().Format("2006-01-02 15.04.05"))
	accountID := o.cfg.AccountFolderIDs[job.variant-1]

	destID, err := o.deps.Store.CreateFolder(ctx, folderName, accountID)
	if err != nil {
		log.Error().Err(err).Str("folder", folderName).Msg("Failed to create destination folder, skipping variant")
		return nil
	}

	outputDir, err := o.deps.Renderer.Render(ctx, render.Job{
		Layout:     o.cfg.Layout,
		ImagePaths: images,
		FontPath:   job.fontPath,
		Style:      o.deps.Style,
		FontColors: o.cfg.FontColors,
		SlideTexts: job.slides,
		OutputDir:  filepath.Join(ws.RowDir, fmt.Sprintf("variant_%d", job.variant)),
	})
	if err != nil {
		log.Error().Err(err).Int("variant", job.variant).Msg("Render failed, skipping variant")
		return nil
	}

	if _, err := o.deps.Store.UploadAll(ctx, destID, outputDir); err != nil {
		log.Error().Err(err).Str("folder", destID).Msg("Upload failed, skipping variant")
		return nil
	}

	if err := o.deps.OutputLog.AppendRow(ctx, o.cfg.SheetID, o.cfg.OutputWorksheet,
		outputRow(id, job.slides, job.caption, job.temperature, o.deps.Tracker.CostString())); err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to append output-log row")
		return nil
	}

	log.Info().Str("id", id).Str("folder", destID).Msg("Variant published")
	return nil
}

// assignImages picks one random image per content folder slot. Blank folder
// IDs, empty folders, and failed downloads leave the slot absent; the
// renderer tolerates missing slots.
func (o *Orchestrator) assignImages(ctx context.Context, rawDir string) [render.SlotCount]string {
	var paths [render.SlotCount]string

	for slot, folderID := range o.cfg.ContentFolderIDs {
		folderID = strings.TrimSpace(folderID)
		if folderID == "" {
			log.Warn().Int("slot", slot+1).Msg("Blank content folder ID, slot left absent")
			continue
		}

		images, err := o.deps.Store.ListImages(ctx, folderID, o.cfg.MaxImagesPerFolder)
		if err != nil {
			log.Error().Err(err).Str("folder", folderID).Msg("Failed to list content folder, slot left absent")
			continue
		}
		if len(images) == 0 {
			log.Warn().Str("folder", folderID).Int("slot", slot+1).Msg("No images in content folder, slot left absent")
			continue
		}

		chosen := images[o.deps.Pick(len(images))]
		path, err := o.deps.Store.Download(ctx, chosen.ID, rawDir, slot, false)
		if err != nil {
			log.Error().Err(err).Str("file", chosen.Name).Msg("Slide image rejected, slot left absent")
			continue
		}
		paths[slot] = path
	}

	return paths
}

// outputRow builds the fixed-width output-log row: ID, slide texts padded
// through column 7, caption, temperature, and the cost snapshot at log time.
func outputRow(id string, slides []string, caption string, temperature float64, costSnapshot string) []string {
	row := append([]string{id}, slides...)
	for len(row) < outputRowWidth {
		row = append(row, "")
	}
	return append(row, caption, strconv.FormatFloat(temperature, 'g', -1, 64), costSnapshot)
}
