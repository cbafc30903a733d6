package platform

import (
	"os"
	"runtime"

	"github.com/spf13/afero"
)

// Permission bits applied to everything the generator creates.
const (
	DirPerm  os.FileMode = 0o755
	FilePerm os.FileMode = 0o644
)

// Chmod sets permissions on a path in fs. On Windows this is a no-op because
// Windows does not support Unix-style permission bits.
//
// afero.WriteFile only applies its mode when it creates a file, so callers
// that overwrite existing files use Chmod to make the final mode deterministic.
func Chmod(fs afero.Fs, path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return fs.Chmod(path, mode)
}
