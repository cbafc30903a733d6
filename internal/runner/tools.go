package runner

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Tool is an external binary the generated project depends on.
type Tool struct {
	Name        string
	VersionArgs []string
	// MinVersion is the lowest acceptable version. Empty skips the check.
	MinVersion string
}

// DefaultTools are probed by the doctor command.
var DefaultTools = []Tool{
	{Name: "node", VersionArgs: []string{"--version"}, MinVersion: "18.0.0"},
	{Name: "npm", VersionArgs: []string{"--version"}, MinVersion: "9.0.0"},
	{Name: "npx", VersionArgs: []string{"--version"}},
	{Name: "git", VersionArgs: []string{"--version"}, MinVersion: "2.25.0"},
}

// ToolStatus is the outcome of probing one tool.
type ToolStatus struct {
	Tool    Tool
	Path    string
	Version string
	// OK is true when the tool was found and satisfies MinVersion.
	OK  bool
	Err error
}

// lookPath is swapped in tests.
var lookPath = LookPath

// Probe locates t on PATH, asks it for its version through r and checks it
// against the tool's minimum.
func Probe(ctx context.Context, r Runner, t Tool) ToolStatus {
	st := ToolStatus{Tool: t}

	path, err := lookPath(t.Name)
	if err != nil {
		st.Err = err
		return st
	}
	st.Path = path

	out, err := Check(ctx, r, Command{Name: t.Name, Args: t.VersionArgs})
	if err != nil {
		st.Err = fmt.Errorf("querying %s version: %w", t.Name, err)
		return st
	}

	v, err := ParseVersion(out.Stdout)
	if err != nil {
		st.Err = err
		return st
	}
	st.Version = v.String()

	if t.MinVersion == "" {
		st.OK = true
		return st
	}
	ok, err := MeetsMinimum(v.String(), t.MinVersion)
	if err != nil {
		st.Err = err
		return st
	}
	if !ok {
		st.Err = fmt.Errorf("%s %s is older than the required %s", t.Name, v, t.MinVersion)
		return st
	}
	st.OK = true
	return st
}

var versionPattern = regexp.MustCompile(`v?\d+\.\d+(\.\d+)?`)

// ParseVersion extracts the first version number from a tool's --version
// output, e.g. "git version 2.39.2" or "v20.11.1".
func ParseVersion(output string) (*semver.Version, error) {
	m := versionPattern.FindString(output)
	if m == "" {
		return nil, fmt.Errorf("no version found in %q", strings.TrimSpace(output))
	}
	return semver.NewVersion(strings.TrimPrefix(m, "v"))
}

// MeetsMinimum reports whether version is at least minimum.
func MeetsMinimum(version, minimum string) (bool, error) {
	c, err := semver.NewConstraint(">= " + minimum)
	if err != nil {
		return false, fmt.Errorf("parsing minimum version %q: %w", minimum, err)
	}
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", version, err)
	}
	return c.Check(v), nil
}
