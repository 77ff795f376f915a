// Package render defines the carousel-assembly collaborator. The engine never
// touches pixels itself: it hands slide texts, image paths, a font and style
// configuration to a renderer and receives a directory of finished images.
package render

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SlotCount is the fixed number of image slots per carousel, one per content
// source folder.
const SlotCount = 5

// Job is one carousel-assembly request. ImagePaths always has SlotCount
// entries; an empty string marks an absent slot, which the renderer must
// tolerate.
type Job struct {
	Layout     string
	ImagePaths [SlotCount]string
	FontPath   string
	Style      Style
	FontColors []string
	SlideTexts []string
	OutputDir  string
}

// Renderer assembles one carousel and returns the local directory holding the
// rendered images.
type Renderer interface {
	Render(ctx context.Context, job Job) (string, error)
}

// Style is the renderer's visual configuration, loaded from a YAML file.
type Style struct {
	ImageWidth    int     `yaml:"image_width" json:"image_width"`
	ImageHeight   int     `yaml:"image_height" json:"image_height"`
	MarginPx      int     `yaml:"margin_px" json:"margin_px"`
	FontSizeMin   int     `yaml:"font_size_min" json:"font_size_min"`
	FontSizeMax   int     `yaml:"font_size_max" json:"font_size_max"`
	LineSpacing   float64 `yaml:"line_spacing" json:"line_spacing"`
	OverlayColor  string  `yaml:"overlay_color" json:"overlay_color"`
	OverlayAlpha  float64 `yaml:"overlay_alpha" json:"overlay_alpha"`
	OutputQuality int     `yaml:"output_quality" json:"output_quality"`
}

// LoadStyle reads the renderer style configuration from a YAML file.
func LoadStyle(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, fmt.Errorf("failed to read style config %s: %w", path, err)
	}

	var s Style
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Style{}, fmt.Errorf("failed to parse style config %s: %w", path, err)
	}
	return s, nil
}
