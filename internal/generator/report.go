package generator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/edgekit-labs/edgegen/internal/manifest"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"})
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"})
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})
)

// Step is one next-step command with an optional note.
type Step struct {
	Command string
	Note    string
}

// NextSteps returns the commands a user runs after generation.
func NextSteps(res *Result) []Step {
	pm := res.PackageManager
	steps := []Step{{Command: "cd " + shellQuote(projectPath(res))}}
	if res.SkipInstall {
		steps = append(steps, Step{Command: string(pm) + " install"})
	}
	steps = append(steps,
		Step{Command: "cp " + manifest.EnvTemplateFile + " .env", Note: "then fill in the secrets"},
		Step{Command: pm.RunScript("dev"), Note: fmt.Sprintf("http://localhost:%d", res.Framework.Port)},
		Step{Command: pm.RunScript("worker:chat"), Note: fmt.Sprintf("http://localhost:%d", ChatPort)},
		Step{Command: pm.RunScript("worker:contact"), Note: fmt.Sprintf("http://localhost:%d", ContactPort)},
	)
	return steps
}

// getwd is swapped in tests.
var getwd = os.Getwd

// projectPath is the project directory as the user should type it: relative
// when it sits under the working directory, absolute otherwise.
func projectPath(res *Result) string {
	if res.ProjectDir == "" {
		return res.ProjectName
	}
	wd, err := getwd()
	if err != nil {
		return res.ProjectDir
	}
	rel, err := filepath.Rel(wd, res.ProjectDir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return res.ProjectDir
	}
	return rel
}

// Report prints the completion summary.
func Report(w io.Writer, res *Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s Created %s (%s) at %s\n",
		successStyle.Render("✓"), res.ProjectName, res.Framework.Name, res.ProjectDir)

	if len(res.Files) > 0 {
		fmt.Fprintf(&b, "\n%s\n", headingStyle.Render("Files"))
		for _, f := range res.Files {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}

	if len(res.Warnings) > 0 {
		fmt.Fprintf(&b, "\n%s\n", warnStyle.Render("Warnings"))
		for _, warn := range res.Warnings {
			fmt.Fprintf(&b, "  %s\n", warn)
		}
	}

	steps := NextSteps(res)
	width := 0
	for _, s := range steps {
		width = max(width, len(s.Command))
	}
	fmt.Fprintf(&b, "\n%s\n", headingStyle.Render("Next steps"))
	for _, s := range steps {
		if s.Note == "" {
			fmt.Fprintf(&b, "  %s\n", s.Command)
			continue
		}
		fmt.Fprintf(&b, "  %-*s  %s\n", width, s.Command, mutedStyle.Render("# "+s.Note))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// shellQuote single-quotes s when it contains anything a POSIX shell would
// interpret.
func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n\"'\\$`;&|<>*?()[]{}!#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
