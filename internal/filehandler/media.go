// Package filehandler validates downloaded assets and bootstraps the local
// working directories a run renders into. Every file fetched from remote
// storage passes through validation before it is handed to the renderer: a
// truncated download caught here costs one slot, caught later it ruins a
// published carousel.
package filehandler

import "strings"

// SupportedImageExtensions defines the file extensions accepted for carousel
// slide images, mapped to their MIME types.
var SupportedImageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
}

// SupportedFontExtensions defines the file extensions accepted for fonts.
var SupportedFontExtensions = map[string]string{
	".ttf": "font/ttf",
	".otf": "font/otf",
}

// IsImage reports whether the extension (with leading dot) is a supported
// image type.
func IsImage(ext string) bool {
	_, ok := SupportedImageExtensions[strings.ToLower(ext)]
	return ok
}

// IsFont reports whether the extension is a supported font type.
func IsFont(ext string) bool {
	_, ok := SupportedFontExtensions[strings.ToLower(ext)]
	return ok
}

// MIMEForExtension returns the MIME type for a supported image or font
// extension, or "" for anything else.
func MIMEForExtension(ext string) string {
	ext = strings.ToLower(ext)
	if m, ok := SupportedImageExtensions[ext]; ok {
		return m
	}
	if m, ok := SupportedFontExtensions[ext]; ok {
		return m
	}
	return ""
}
