package scaffold

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/edgekit-labs/edgegen/internal/platform"
)

// File is one generated file, relative to the project root.
type File struct {
	Path    string
	Content []byte
	Mode    os.FileMode
}

// Plan is the directory skeleton and file set for one project. Paths are
// slash-separated and relative; each file path may appear once.
type Plan struct {
	Dirs  []string
	Files []File

	seen map[string]bool
}

// AddDir appends a directory to the skeleton. Duplicates are ignored.
func (p *Plan) AddDir(dir string) error {
	clean, err := cleanRel(dir)
	if err != nil {
		return err
	}
	for _, d := range p.Dirs {
		if d == clean {
			return nil
		}
	}
	p.Dirs = append(p.Dirs, clean)
	return nil
}

// AddFile appends a file with the default file mode. Adding the same path
// twice is an error: every generated file is written exactly once.
func (p *Plan) AddFile(name string, content []byte) error {
	clean, err := cleanRel(name)
	if err != nil {
		return err
	}
	if p.seen == nil {
		p.seen = make(map[string]bool)
	}
	if p.seen[clean] {
		return fmt.Errorf("duplicate file %s in plan", clean)
	}
	p.seen[clean] = true
	p.Files = append(p.Files, File{Path: clean, Content: content, Mode: platform.FilePerm})
	return nil
}

// Paths returns the file paths in plan order.
func (p *Plan) Paths() []string {
	out := make([]string, len(p.Files))
	for i, f := range p.Files {
		out[i] = f.Path
	}
	return out
}

// cleanRel normalizes a plan path and rejects anything that would escape
// the project root.
func cleanRel(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty path in plan")
	}
	if strings.Contains(name, "\\") {
		return "", fmt.Errorf("path %q must use forward slashes", name)
	}
	if path.IsAbs(name) {
		return "", fmt.Errorf("path %q must be relative", name)
	}
	clean := path.Clean(name)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("path %q escapes the project root", name)
	}
	return clean, nil
}
