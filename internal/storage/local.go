package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/commentscout/carousel-engine/internal/filehandler"
)

// LocalStore implements Store over the local filesystem. Folder IDs are
// directory paths and file IDs are file paths.
type LocalStore struct{}

var _ Store = LocalStore{}

// ListImages lists up to max supported image files in the directory, sorted
// by name.
func (s LocalStore) ListImages(ctx context.Context, folderID string, max int) ([]File, error) {
	return s.list(ctx, folderID, max, func(name string) bool {
		return filehandler.IsImage(filepath.Ext(name))
	})
}

// ListFiles lists up to max regular files in the directory, sorted by name.
func (s LocalStore) ListFiles(ctx context.Context, folderID string, max int) ([]File, error) {
	return s.list(ctx, folderID, max, func(string) bool { return true })
}

func (LocalStore) list(_ context.Context, folderID string, max int, keep func(name string) bool) ([]File, error) {
	entries, err := os.ReadDir(folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folder %s: %w", folderID, err)
	}

	files := make([]File, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !keep(entry.Name()) {
			continue
		}
		files = append(files, File{
			ID:       filepath.Join(folderID, entry.Name()),
			Name:     entry.Name(),
			MIMEType: filehandler.MIMEForExtension(filepath.Ext(entry.Name())),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	if max > 0 && len(files) > max {
		files = files[:max]
	}
	return files, nil
}

// Download copies the file into destDir under its slot name and validates the
// content. On validation failure the copy is removed and the error returned.
func (LocalStore) Download(_ context.Context, fileID, destDir string, slot int, isFont bool) (string, error) {
	name := fmt.Sprintf("raw_slide_%d%s", slot+1, strings.ToLower(filepath.Ext(fileID)))
	if isFont {
		name = "font.ttf"
	}
	destPath := filepath.Join(destDir, name)

	if err := copyFile(fileID, destPath); err != nil {
		return "", fmt.Errorf("failed to download %s: %w", fileID, err)
	}

	validate := filehandler.ValidateImage
	if isFont {
		validate = filehandler.ValidateFont
	}
	if err := validate(destPath); err != nil {
		os.Remove(destPath)
		return "", err
	}

	log.Debug().Str("file", fileID).Str("dest", destPath).Msg("File downloaded")
	return destPath, nil
}

// CreateFolder creates the named directory under the parent.
func (LocalStore) CreateFolder(_ context.Context, name, parentID string) (string, error) {
	path := filepath.Join(parentID, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("failed to create folder %s: %w", path, err)
	}
	log.Info().Str("folder", path).Msg("Destination folder created")
	return path, nil
}

// UploadAll copies every rendered image in localDir into the folder, in name
// order, and returns the destination paths.
func (s LocalStore) UploadAll(ctx context.Context, folderID, localDir string) ([]string, error) {
	files, err := s.ListImages(ctx, localDir, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to read rendered output %s: %w", localDir, err)
	}

	uploaded := make([]string, 0, len(files))
	for _, f := range files {
		destPath := filepath.Join(folderID, f.Name)
		if err := copyFile(f.ID, destPath); err != nil {
			return uploaded, fmt.Errorf("failed to upload %s: %w", f.Name, err)
		}
		log.Debug().Str("file", f.Name).Str("folder", folderID).Msg("File uploaded")
		uploaded = append(uploaded, destPath)
	}
	return uploaded, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
