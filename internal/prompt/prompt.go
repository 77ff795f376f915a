// Package prompt builds model prompts from the templates stored in the
// spreadsheet. Templates are authored by humans in sheet cells and use literal
// placeholder tokens rather than text/template syntax, so substitution is a
// plain string replacement.
package prompt

import (
	"fmt"
	"strings"
)

const (
	// PlaceholderOriginal marks where a slide's source text is injected in
	// the hook and non-hook variation templates.
	PlaceholderOriginal = "{original}"

	// PlaceholderSlides marks where the joined slide block is injected in
	// the caption template.
	PlaceholderSlides = "{slides_text}"
)

// ForSlide renders a variation prompt by substituting the slide's original
// text into the template.
func ForSlide(template, original string) string {
	return strings.ReplaceAll(template, PlaceholderOriginal, original)
}

// ForCaption renders the caption prompt by substituting the joined slide
// block into the template.
func ForCaption(template string, slides []string) string {
	return strings.ReplaceAll(template, PlaceholderSlides, JoinSlides(slides))
}

// JoinSlides formats slide texts as one "Slide {n}: {text}" line per slide,
// numbered from 1.
func JoinSlides(slides []string) string {
	lines := make([]string, len(slides))
	for i, text := range slides {
		lines[i] = fmt.Sprintf("Slide %d: %s", i+1, text)
	}
	return strings.Join(lines, "\n")
}
