package filehandler

import (
	"fmt"
	"image"
	"os"

	// Registered decoders for the slide image formats we accept.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/font/sfnt"
	_ "golang.org/x/image/webp"
)

// ValidationError reports a downloaded file whose content is not the asset
// type it claims to be. Callers treat the slot as absent and continue.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// ValidateImage checks that the file decodes as a supported image. Only the
// header is decoded; a full pixel decode of every slide would be wasted work.
func ValidateImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &ValidationError{Path: path, Reason: fmt.Sprintf("cannot open: %v", err)}
	}
	defer f.Close()

	if _, _, err := image.DecodeConfig(f); err != nil {
		log.Warn().Str("path", path).Err(err).Msg("Downloaded file is not a decodable image")
		return &ValidationError{Path: path, Reason: fmt.Sprintf("not a decodable image: %v", err)}
	}
	return nil
}

// ValidateFont checks that the file parses as an SFNT (TrueType/OpenType)
// font.
func ValidateFont(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ValidationError{Path: path, Reason: fmt.Sprintf("cannot read: %v", err)}
	}

	if _, err := sfnt.Parse(data); err != nil {
		log.Warn().Str("path", path).Err(err).Msg("Downloaded file is not a loadable font")
		return &ValidationError{Path: path, Reason: fmt.Sprintf("not a loadable font: %v", err)}
	}
	return nil
}
