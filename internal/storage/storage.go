// Package storage defines the hierarchical blob-store collaborator the engine
// pulls slide images and fonts from and pushes finished carousels to. Folders
// and files are addressed by opaque IDs; the backing implementation is
// injected.
//
// A local-directory implementation is included so the tool runs end to end
// against folders on disk; folder and file IDs are then filesystem paths.
package storage

import "context"

// File describes one entry of a folder listing.
type File struct {
	ID       string
	Name     string
	MIMEType string
}

// Store is the blob-store capability the orchestrator consumes.
type Store interface {
	// ListImages lists up to max image files in the folder.
	ListImages(ctx context.Context, folderID string, max int) ([]File, error)

	// ListFiles lists up to max files of any type in the folder. Used to
	// locate fonts, which are not image MIME types.
	ListFiles(ctx context.Context, folderID string, max int) ([]File, error)

	// Download fetches the file into destDir and returns the local path.
	// Slide downloads are named by slot ("raw_slide_<slot+1>.<ext>") and
	// validated as decodable images; font downloads are named "font.ttf"
	// and validated as loadable fonts. A validation failure is returned as
	// a *filehandler.ValidationError and leaves no usable file behind.
	Download(ctx context.Context, fileID, destDir string, slot int, isFont bool) (string, error)

	// CreateFolder creates a folder under the parent and returns its ID.
	CreateFolder(ctx context.Context, name, parentID string) (string, error)

	// UploadAll pushes every rendered image in localDir to the folder and
	// returns the uploaded file IDs. Files are uploaded in name order.
	UploadAll(ctx context.Context, folderID, localDir string) ([]string, error)
}
