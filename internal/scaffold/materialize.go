package scaffold

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/edgekit-labs/edgegen/internal/platform"
)

// CreateSkeleton creates every directory under root. Existing directories
// are not an error.
func CreateSkeleton(fsys afero.Fs, root string, dirs []string) error {
	for _, dir := range dirs {
		full := filepath.Join(root, filepath.FromSlash(dir))
		if err := fsys.MkdirAll(full, platform.DirPerm); err != nil {
			return fmt.Errorf("creating directory %s: %w", full, err)
		}
	}
	return nil
}

// WriteFiles writes every file under root, replacing existing content.
// Parent directories are created as needed.
func WriteFiles(fsys afero.Fs, root string, files []File) error {
	for _, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f.Path))
		if err := fsys.MkdirAll(filepath.Dir(full), platform.DirPerm); err != nil {
			return fmt.Errorf("creating directory for %s: %w", full, err)
		}

		mode := f.Mode
		if mode == 0 {
			mode = platform.FilePerm
		}
		if err := afero.WriteFile(fsys, full, f.Content, mode); err != nil {
			return fmt.Errorf("writing %s: %w", full, err)
		}
		if err := platform.Chmod(fsys, full, mode); err != nil {
			return fmt.Errorf("setting permissions on %s: %w", full, err)
		}
	}
	return nil
}
