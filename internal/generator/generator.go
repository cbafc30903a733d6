package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/edgekit-labs/edgegen/internal/branding"
	"github.com/edgekit-labs/edgegen/internal/framework"
	"github.com/edgekit-labs/edgegen/internal/runner"
	"github.com/edgekit-labs/edgegen/internal/scaffold"
)

// Settings are the configurable values that end up in generated files.
type Settings struct {
	CompatibilityDate string
	ChatDatabase      string
	ContactDatabase   string
}

// DefaultSettings returns the values used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		CompatibilityDate: "2024-01-01",
		ChatDatabase:      "chat-history",
		ContactDatabase:   "contact-submissions",
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.CompatibilityDate == "" {
		s.CompatibilityDate = d.CompatibilityDate
	}
	if s.ChatDatabase == "" {
		s.ChatDatabase = d.ChatDatabase
	}
	if s.ContactDatabase == "" {
		s.ContactDatabase = d.ContactDatabase
	}
	return s
}

// Result describes what a run produced. On failure it holds everything up
// to the failing stage.
type Result struct {
	ProjectName    string
	ProjectDir     string
	Framework      framework.Framework
	Variant        Variant
	PackageManager runner.PackageManager
	SkipInstall    bool
	Dirs           []string
	Files          []string
	Warnings       []string
	// Stages lists every stage reached, in order.
	Stages []Stage
}

// Stage returns the last stage reached.
func (r *Result) Stage() Stage {
	if len(r.Stages) == 0 {
		return StageStart
	}
	return r.Stages[len(r.Stages)-1]
}

// Generator runs the generation pipeline.
type Generator struct {
	runner   runner.Runner
	fs       afero.Fs
	lookPath func(string) (string, error)
	in       io.Reader
	out      io.Writer
	logger   *slog.Logger
	settings Settings
}

// Option configures a Generator.
type Option func(*Generator)

// WithFs sets the filesystem the skeleton and files are written to.
func WithFs(fs afero.Fs) Option {
	return func(g *Generator) { g.fs = fs }
}

// WithLookPath replaces the PATH lookup used by the preflight check.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(g *Generator) { g.lookPath = fn }
}

// WithIO sets where the framework menu is read from and where the menu and
// the completion report are written.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(g *Generator) {
		g.in = in
		g.out = out
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithSettings sets the values written into generated files.
func WithSettings(s Settings) Option {
	return func(g *Generator) { g.settings = s }
}

// New returns a Generator that runs external commands through r.
func New(r runner.Runner, opts ...Option) *Generator {
	g := &Generator{
		runner:   r,
		fs:       afero.NewOsFs(),
		lookPath: runner.LookPath,
		in:       os.Stdin,
		out:      os.Stdout,
		logger:   slog.Default(),
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.settings = g.settings.withDefaults()
	return g
}

// Run generates one project. The returned Result is never nil; when err is
// non-nil it reflects the work done before the failure, which is left in
// place on disk.
func (g *Generator) Run(ctx context.Context, req Request) (*Result, error) {
	res := &Result{ProjectName: req.ProjectName, Variant: req.Variant}
	g.advance(res, StageStart)

	if err := req.validate(); err != nil {
		return res, g.fail(res, err)
	}
	res.Variant = req.Variant
	res.PackageManager = req.PackageManager
	res.SkipInstall = req.SkipInstall

	baseDir := req.BaseDir
	if baseDir == "" {
		baseDir = "."
	}
	baseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return res, g.fail(res, &StageError{Stage: StageInputResolved, Err: err})
	}
	projectDir := filepath.Join(baseDir, req.ProjectName)
	res.ProjectDir = projectDir
	g.advance(res, StageInputResolved)

	fw, err := g.resolveFramework(req)
	if err != nil {
		return res, g.fail(res, err)
	}
	res.Framework = fw
	if req.Variant != VariantWorkers {
		g.advance(res, StageFrameworkResolved)
	}

	plan, warnings, err := buildPlan(planInput{
		Name:           req.ProjectName,
		Framework:      fw,
		Variant:        req.Variant,
		PackageManager: req.PackageManager,
		Settings:       g.settings,
	})
	if err != nil {
		return res, g.fail(res, &StageError{Stage: StageFilesWritten, Err: err})
	}
	res.Warnings = append(res.Warnings, warnings...)

	if err := g.preflight(req, fw); err != nil {
		return res, g.fail(res, &StageError{Stage: StageBaseProjectGenerated, Err: err})
	}

	if err := g.generateBase(ctx, req, fw, baseDir, projectDir); err != nil {
		return res, g.fail(res, &StageError{Stage: StageBaseProjectGenerated, Err: err})
	}
	g.advance(res, StageBaseProjectGenerated)

	if err := g.install(ctx, req, fw, projectDir); err != nil {
		return res, g.fail(res, &StageError{Stage: StageDependenciesInstalled, Err: err})
	}
	g.advance(res, StageDependenciesInstalled)

	if err := scaffold.CreateSkeleton(g.fs, projectDir, plan.Dirs); err != nil {
		return res, g.fail(res, &StageError{Stage: StageSkeletonMaterialized, Err: err})
	}
	res.Dirs = plan.Dirs
	g.advance(res, StageSkeletonMaterialized)

	if err := scaffold.WriteFiles(g.fs, projectDir, plan.Files); err != nil {
		return res, g.fail(res, &StageError{Stage: StageFilesWritten, Err: err})
	}
	res.Files = plan.Paths()
	g.advance(res, StageFilesWritten)

	// The project is complete once the files are written; a broken stdout
	// does not change the outcome.
	if err := Report(g.out, res); err != nil {
		g.logger.Warn("could not print completion report", "error", err)
	}
	g.advance(res, StageReportedSuccess)
	return res, nil
}

func (g *Generator) advance(res *Result, s Stage) {
	res.Stages = append(res.Stages, s)
	g.logger.Debug("stage reached", "stage", s.String())
}

func (g *Generator) fail(res *Result, err error) error {
	res.Stages = append(res.Stages, StageFailed)
	var se *StageError
	if errors.As(err, &se) {
		g.logger.Debug("stage failed", "stage", se.Stage.String(), "error", se.Err)
	}
	return err
}

func (g *Generator) resolveFramework(req Request) (framework.Framework, error) {
	switch req.Variant {
	case VariantFramework:
		fw, ok := framework.Lookup(req.FrameworkKey)
		if !ok {
			return framework.Framework{}, Usagef("unknown framework %q (run '%s frameworks' to list them)", req.FrameworkKey, branding.CLIName())
		}
		return fw, nil
	case VariantInteractive:
		sel := framework.Select(g.in, g.out)
		if sel.FellBack {
			g.logger.Info("no valid framework selected, using default",
				"input", sel.Input, "framework", sel.Framework.Key)
		}
		return sel.Framework, nil
	default:
		return framework.Default(), nil
	}
}

// preflight checks that every binary the run needs is on PATH before any
// command is started.
func (g *Generator) preflight(req Request, fw framework.Framework) error {
	bins := []string{fw.Generator[0]}
	if !req.SkipInstall {
		bins = append(bins, string(req.PackageManager))
	}
	if !req.NoGit {
		bins = append(bins, "git")
	}

	seen := make(map[string]bool, len(bins))
	for _, b := range bins {
		if seen[b] {
			continue
		}
		seen[b] = true
		if _, err := g.lookPath(b); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateBase(ctx context.Context, req Request, fw framework.Framework, baseDir, projectDir string) error {
	args := fw.GeneratorArgs(req.ProjectName)
	cmd := runner.Command{Name: args[0], Args: args[1:], Dir: baseDir}

	fmt.Fprintf(g.out, "Creating %s project...\n", fw.Name)
	g.logger.Debug("running generator", "command", cmd.String(), "dir", baseDir)
	if _, err := runner.Check(ctx, g.runner, cmd); err != nil {
		return err
	}

	if req.NoGit {
		return nil
	}
	if _, err := g.fs.Stat(filepath.Join(projectDir, ".git")); err == nil {
		g.logger.Debug("git repository already initialized", "dir", projectDir)
		return nil
	}
	gitInit := runner.Command{Name: "git", Args: []string{"init", "--quiet"}, Dir: projectDir}
	if _, err := runner.Check(ctx, g.runner, gitInit); err != nil {
		return err
	}
	return nil
}

func (g *Generator) install(ctx context.Context, req Request, fw framework.Framework, projectDir string) error {
	if req.SkipInstall {
		g.logger.Info("skipping dependency installation")
		return nil
	}

	fmt.Fprintln(g.out, "Installing dependencies...")
	var cmds []runner.Command
	if deps := runtimeDependencies(fw); len(deps) > 0 {
		cmds = append(cmds, req.PackageManager.Install(projectDir, false, deps...))
	}
	cmds = append(cmds, req.PackageManager.Install(projectDir, true, devDependencies...))
	for _, cmd := range cmds {
		g.logger.Debug("installing", "command", cmd.String(), "dir", projectDir)
		if _, err := runner.Check(ctx, g.runner, cmd); err != nil {
			return err
		}
	}
	return nil
}
