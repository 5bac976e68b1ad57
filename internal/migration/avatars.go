package migration

import (
	"fmt"
	"os"
	"path/filepath"
)

// AvatarDir exports profile avatar images to a directory that is fully
// cleared and recreated once per run. In dry-run mode all filesystem
// operations are skipped.
type AvatarDir struct {
	path   string
	dryRun bool
	writes int
}

// NewAvatarDir returns an exporter writing into dir.
func NewAvatarDir(dir string, dryRun bool) *AvatarDir {
	return &AvatarDir{path: dir, dryRun: dryRun}
}

// Writes reports the number of files written.
func (d *AvatarDir) Writes() int { return d.writes }

// Reset removes the directory and recreates it empty.
func (d *AvatarDir) Reset() error {
	if d.dryRun {
		return nil
	}
	if err := os.RemoveAll(d.path); err != nil {
		return fmt.Errorf("avatars: clear %s: %w", d.path, err)
	}
	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return fmt.Errorf("avatars: create %s: %w", d.path, err)
	}
	return nil
}

// Write persists one avatar as avatar_<id><ext>.
func (d *AvatarDir) Write(id int64, ext string, data []byte) error {
	if d.dryRun {
		return nil
	}
	name := filepath.Join(d.path, fmt.Sprintf("avatar_%d%s", id, ext))
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("avatars: write %s: %w", name, err)
	}
	d.writes++
	return nil
}
