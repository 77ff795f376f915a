package filehandler

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Workspace is the local directory layout for one input row: a per-row dir
// that receives the font and rendered output, and a shared raw dir for
// downloaded slide images.
type Workspace struct {
	// Root is the run's work directory, e.g. "temp".
	Root string

	// RowDir holds the font and rendered output for the current row.
	RowDir string

	// RawDir holds raw downloaded slide images, shared across rows.
	RawDir string
}

// NewWorkspace creates the directory layout for one row under root. The row
// directory name carries a timestamp for operators and a short unique suffix
// so two rows started within the same second cannot collide.
func NewWorkspace(root string, now time.Time) (*Workspace, error) {
	suffix := uuid.NewString()[:8]
	rowDir := filepath.Join(root, fmt.Sprintf("carousel_%s_%s", now.Format("20060102_150405"), suffix))
	rawDir := filepath.Join(root, "raw")

	for _, dir := range []string{root, rowDir, rawDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	log.Debug().Str("row_dir", rowDir).Msg("Workspace created")
	return &Workspace{Root: root, RowDir: rowDir, RawDir: rawDir}, nil
}
