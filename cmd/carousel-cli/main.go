// Command carousel-cli turns rows of slide texts from a spreadsheet into
// published image carousels: it generates per-slide text variations and a
// caption through the model API, assembles each variation with randomly
// assigned images and a font, uploads the result, and appends a bookkeeping
// row (sequential ID, caption, temperature, cost snapshot) to the output log.
//
// Sheets are read and written through a local CSV directory and storage
// through local folders; the compositing step is delegated to an external
// renderer executable.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/commentscout/carousel-engine/internal/auth"
	"github.com/commentscout/carousel-engine/internal/carousel"
	"github.com/commentscout/carousel-engine/internal/chat"
	"github.com/commentscout/carousel-engine/internal/cli"
	"github.com/commentscout/carousel-engine/internal/cost"
	"github.com/commentscout/carousel-engine/internal/logging"
	"github.com/commentscout/carousel-engine/internal/pricing"
	"github.com/commentscout/carousel-engine/internal/render"
	"github.com/commentscout/carousel-engine/internal/sheet"
	"github.com/commentscout/carousel-engine/internal/storage"
)

// CLI flags
var (
	sheetFlag           string
	rowsRangeFlag       string
	outputWorksheetFlag string
	hookRangeFlag       string
	nonHookRangeFlag    string
	captionRangeFlag    string
	temperatureRangeFlag string
	contentFoldersFlag  []string
	accountFoldersFlag  []string
	fontsFolderFlag     string
	rendererFlag        string
	styleFlag           string
	modelFlag           string
	variationsFlag      int
	rowLimitFlag        int
	temperatureFlag     float64
	layoutFlag          string
	fontColorsFlag      []string
	workDirFlag         string
)

// rootCmd is the main Cobra command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "carousel-cli",
	Short: "AI-generated carousel posts from spreadsheet rows",
	Long: `Carousel CLI reads base slide texts and prompt templates from a spreadsheet
directory, generates unique per-slide text variations and a caption with the
model API, assembles each variation into an image carousel, uploads the
result, and records the run in the output log.

Examples:
  carousel-cli --sheet ./sheets --renderer ./bin/compose --style config.yaml \
    --content-folder ./img/a --content-folder ./img/b --content-folder ./img/c \
    --content-folder ./img/d --content-folder ./img/e \
    --account-folder ./out/acct1 --account-folder ./out/acct2 \
    --fonts-folder ./fonts --variations 1
  carousel-cli --sheet ./sheets --rows 2 --model gemini-2.5-flash ...`,
	Run: runMain,
}

func init() {
	rootCmd.Flags().StringVar(&sheetFlag, "sheet", "", "Directory holding the worksheet CSV files")
	rootCmd.Flags().StringVar(&rowsRangeFlag, "rows-range", "Sheet1", "Worksheet holding input rows")
	rootCmd.Flags().StringVar(&outputWorksheetFlag, "output-worksheet", "Carousel Outputs", "Worksheet the output log is appended to")
	rootCmd.Flags().StringVar(&hookRangeFlag, "hook-range", "Prompts!A2", "Cell holding the hook slide template")
	rootCmd.Flags().StringVar(&nonHookRangeFlag, "non-hook-range", "Prompts!C2", "Cell holding the non-hook slide template")
	rootCmd.Flags().StringVar(&captionRangeFlag, "caption-range", "Prompts!E2", "Cell holding the caption template")
	rootCmd.Flags().StringVar(&temperatureRangeFlag, "temperature-range", "Prompts!G2", "Cell holding the generation temperature")
	rootCmd.Flags().StringArrayVar(&contentFoldersFlag, "content-folder", nil, "Content image folder, one per carousel slot (exactly 5)")
	rootCmd.Flags().StringArrayVar(&accountFoldersFlag, "account-folder", nil, "Destination account folder, in variant order")
	rootCmd.Flags().StringVar(&fontsFolderFlag, "fonts-folder", "", "Folder holding the carousel TTF font")
	rootCmd.Flags().StringVar(&rendererFlag, "renderer", "", "Path to the external compositing executable")
	rootCmd.Flags().StringVar(&styleFlag, "style", logging.EnvOrDefault("CAROUSEL_STYLE_CONFIG", "config.yaml"), "Renderer style configuration (YAML)")
	rootCmd.Flags().StringVarP(&modelFlag, "model", "m", chat.GetModelName(), "Model to use for variations and captions")
	rootCmd.Flags().IntVar(&variationsFlag, "variations", 1, "Variants to generate per row")
	rootCmd.Flags().IntVar(&rowLimitFlag, "rows", 0, "Process only the first N input rows (0 = all)")
	rootCmd.Flags().Float64VarP(&temperatureFlag, "temperature", "t", -1, "Override the sheet's generation temperature (-1 = use sheet value)")
	rootCmd.Flags().StringVar(&layoutFlag, "layout", "auto", "Renderer layout mode")
	rootCmd.Flags().StringArrayVar(&fontColorsFlag, "font-color", []string{"#ffffff"}, "Font colors passed to the renderer")
	rootCmd.Flags().StringVar(&workDirFlag, "work-dir", logging.EnvOrDefault("CAROUSEL_WORK_DIR", "temp"), "Local working directory for downloads and rendering")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runMain is the main execution logic called by Cobra.
func runMain(cmd *cobra.Command, args []string) {
	logging.Init()
	auth.LoadEnv()
	start := time.Now()

	sheetDir := sheetFlag
	if sheetDir == "" {
		sheetDir = cli.PromptForPath("Sheet directory", ".")
	}
	sheetDir = cli.ValidateAndResolveDirectory(sheetDir)

	if rendererFlag == "" {
		log.Fatal().Msg("--renderer is required")
	}

	style, err := render.LoadStyle(styleFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load style configuration")
	}

	apiKey, err := auth.GetAPIKey()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to retrieve API key")
	}

	ctx := context.Background()
	completer, err := chat.NewGeminiCompleter(ctx, apiKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Gemini client")
	}
	log.Info().Msg("connection successful - Gemini client initialized")

	cfg := carousel.Config{
		SheetID:            sheetDir,
		RowsRange:          rowsRangeFlag,
		OutputWorksheet:    outputWorksheetFlag,
		HookPromptRange:    hookRangeFlag,
		NonHookPromptRange: nonHookRangeFlag,
		CaptionPromptRange: captionRangeFlag,
		TemperatureRange:   temperatureRangeFlag,
		ContentFolderIDs:   contentFoldersFlag,
		AccountFolderIDs:   accountFoldersFlag,
		FontsFolderID:      fontsFolderFlag,
		Model:              modelFlag,
		VariantCount:       variationsFlag,
		VariationMaxTokens: 100,
		CaptionMaxTokens:   50,
		RowLimit:           rowLimitFlag,
		MaxImagesPerFolder: 100,
		Layout:             layoutFlag,
		FontColors:         fontColorsFlag,
		WorkDir:            workDirFlag,
	}
	if temperatureFlag >= 0 {
		cfg.TemperatureOverride = &temperatureFlag
	}

	tracker := cost.NewTracker(pricing.Default())
	store := sheet.CSVStore{}

	orch, err := carousel.New(cfg, carousel.Deps{
		Source:    store,
		OutputLog: store,
		Store:     storage.LocalStore{},
		Renderer:  &render.CommandRenderer{Executable: rendererFlag},
		Completer: completer,
		Tracker:   tracker,
		Style:     style,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid run configuration")
	}

	logging.NewStartupLogger("carousel-cli").
		Folder("fonts", fontsFolderFlag).
		Config("sheet", sheetDir).
		Config("model", modelFlag).
		Config("renderer", rendererFlag).
		Config("layout", layoutFlag).
		Feature("rowLimit", rowLimitFlag > 0).
		InitDuration(time.Since(start)).
		Log()

	runErr := orch.Run(ctx)

	// Cost reporting is teardown-guaranteed: the summary prints whether the
	// run finished or aborted.
	fmt.Println(tracker.Summary())
	log.Info().Str("elapsed", cli.FormatElapsed(time.Since(start))).Msg("Run finished")

	if runErr != nil {
		log.Error().Err(runErr).Msg("Run aborted")
		os.Exit(1)
	}
}
