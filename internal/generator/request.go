package generator

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/edgekit-labs/edgegen/internal/runner"
)

// Variant selects how the framework is chosen and which files are written.
type Variant string

const (
	// VariantWorkers is the default: Vite + React with the edge worker
	// skeleton and no build descriptor.
	VariantWorkers Variant = "workers"
	// VariantFramework uses the framework named in Request.FrameworkKey.
	VariantFramework Variant = "framework"
	// VariantInteractive asks for the framework on a numbered menu.
	VariantInteractive Variant = "interactive"
)

// WritesDescriptor reports whether the variant writes vercel.json.
func (v Variant) WritesDescriptor() bool {
	return v == VariantFramework || v == VariantInteractive
}

// Request is the input of one generation run.
type Request struct {
	ProjectName string
	// BaseDir is the parent of the project directory. Empty means the
	// current directory.
	BaseDir        string
	Variant        Variant
	FrameworkKey   string
	PackageManager runner.PackageManager
	SkipInstall    bool
	NoGit          bool
}

// MaxNameLength matches the npm package name limit.
const MaxNameLength = 214

// ErrUsage marks errors caused by invalid invocation.
var ErrUsage = errors.New("usage error")

// UsageError is an invalid-input error. Nothing has been touched on disk when
// one is returned.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func (e *UsageError) Is(target error) bool { return target == ErrUsage }

// Usagef builds a UsageError.
func Usagef(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// IsUsage reports whether err is, or wraps, a usage error.
func IsUsage(err error) bool {
	return errors.Is(err, ErrUsage)
}

// ValidateProjectName checks that name can be used as a single directory
// name. Characters that are special in the generated formats are allowed;
// the writers escape them.
func ValidateProjectName(name string) error {
	switch {
	case name == "":
		return Usagef("project name is required")
	case strings.TrimSpace(name) == "":
		return Usagef("project name must not be blank")
	case !utf8.ValidString(name):
		return Usagef("project name %q is not valid UTF-8", name)
	case len(name) > MaxNameLength:
		return Usagef("project name is longer than %d bytes", MaxNameLength)
	case name == "." || name == "..":
		return Usagef("project name %q is not a directory name", name)
	case strings.ContainsAny(name, `/\`):
		return Usagef("project name %q must not contain path separators", name)
	case strings.HasPrefix(name, "-"):
		return Usagef("project name %q must not start with '-'", name)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return Usagef("project name %q must not contain control characters", name)
		}
	}
	return nil
}

func (r *Request) validate() error {
	if err := ValidateProjectName(r.ProjectName); err != nil {
		return err
	}

	switch r.Variant {
	case "":
		r.Variant = VariantWorkers
	case VariantWorkers, VariantInteractive:
	case VariantFramework:
		if r.FrameworkKey == "" {
			return Usagef("a framework key is required")
		}
	default:
		return Usagef("unknown variant %q", r.Variant)
	}

	if r.PackageManager == "" {
		r.PackageManager = runner.NPM
	}
	if _, err := runner.ParsePackageManager(string(r.PackageManager)); err != nil {
		return &UsageError{Msg: err.Error()}
	}
	return nil
}
