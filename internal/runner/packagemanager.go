package runner

import (
	"fmt"
	"strings"
)

// PackageManager identifies the Node package manager used for installs.
type PackageManager string

// Supported package managers.
const (
	NPM  PackageManager = "npm"
	PNPM PackageManager = "pnpm"
	Yarn PackageManager = "yarn"
	Bun  PackageManager = "bun"
)

// PackageManagers lists the supported package managers.
var PackageManagers = []PackageManager{NPM, PNPM, Yarn, Bun}

// ParsePackageManager validates a package manager name.
func ParsePackageManager(s string) (PackageManager, error) {
	pm := PackageManager(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range PackageManagers {
		if pm == known {
			return pm, nil
		}
	}
	return "", fmt.Errorf("unsupported package manager %q: choose one of npm, pnpm, yarn, bun", s)
}

// Install returns the command that adds pkgs to the project in dir. When dev
// is true the packages are recorded as development dependencies.
func (pm PackageManager) Install(dir string, dev bool, pkgs ...string) Command {
	var args []string
	switch pm {
	case NPM:
		args = []string{"install"}
		if dev {
			args = append(args, "-D")
		}
	case Bun:
		args = []string{"add"}
		if dev {
			args = append(args, "-d")
		}
	default:
		args = []string{"add"}
		if dev {
			args = append(args, "-D")
		}
	}
	args = append(args, pkgs...)
	return Command{Name: string(pm), Args: args, Dir: dir}
}

// RunScript returns the shell line that runs a package.json script.
func (pm PackageManager) RunScript(script string) string {
	switch pm {
	case PNPM, Yarn:
		return string(pm) + " " + script
	default:
		return string(pm) + " run " + script
	}
}
