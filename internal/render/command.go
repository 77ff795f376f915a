package render

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// CommandRenderer delegates carousel assembly to an external compositing
// executable. The job is serialized to a JSON manifest; the executable is
// invoked with the manifest path as its only argument and must write the
// finished images into the manifest's output_dir.
type CommandRenderer struct {
	// Executable is the path to the compositing program.
	Executable string
}

var _ Renderer = (*CommandRenderer)(nil)

// manifest is the wire form of a Job handed to the executable.
type manifest struct {
	Layout     string   `json:"layout"`
	ImagePaths []string `json:"image_paths"` // "" marks an absent slot
	FontPath   string   `json:"font_path"`
	Style      Style    `json:"style"`
	FontColors []string `json:"font_colors"`
	SlideTexts []string `json:"slide_texts"`
	OutputDir  string   `json:"output_dir"`
}

// Render writes the job manifest, runs the compositing executable, and
// returns the output directory on success.
func (r *CommandRenderer) Render(ctx context.Context, job Job) (string, error) {
	if job.OutputDir == "" {
		return "", fmt.Errorf("render job has no output directory")
	}
	if err := os.MkdirAll(job.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create render output dir: %w", err)
	}

	m := manifest{
		Layout:     job.Layout,
		ImagePaths: job.ImagePaths[:],
		FontPath:   job.FontPath,
		Style:      job.Style,
		FontColors: job.FontColors,
		SlideTexts: job.SlideTexts,
		OutputDir:  job.OutputDir,
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to marshal render manifest: %w", err)
	}

	manifestPath := filepath.Join(job.OutputDir, "render.json")
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write render manifest: %w", err)
	}

	log.Debug().
		Str("executable", r.Executable).
		Str("manifest", manifestPath).
		Int("slides", len(job.SlideTexts)).
		Msg("Invoking renderer")

	cmd := exec.CommandContext(ctx, r.Executable, manifestPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("renderer failed: %w: %s", err, out)
	}

	return job.OutputDir, nil
}
