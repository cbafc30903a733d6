package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/edgekit-labs/edgegen/internal/branding"
	"github.com/edgekit-labs/edgegen/internal/config"
	"github.com/edgekit-labs/edgegen/internal/generator"
	"github.com/edgekit-labs/edgegen/internal/runner"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagFramework      string
	flagInteractive    bool
	flagDir            string
	flagPackageManager string
	flagNoGit          bool
	flagSkipInstall    bool
	flagVerbose        bool
)

var logger = slog.Default()

// Swapped in tests.
var (
	newRunner = func(s config.Settings) runner.Runner {
		return &runner.ExecRunner{
			Stdin:   os.Stdin,
			Timeout: s.CommandTimeout,
			Logger:  logger,
		}
	}
	lookPath = runner.LookPath
)

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flagFramework, "framework", "", "Framework to scaffold (see '"+branding.CLIName()+" frameworks')")
	f.BoolVar(&flagInteractive, "interactive", false, "Choose the framework from a numbered menu")
	f.StringVar(&flagDir, "dir", "", "Parent directory for the project (default: current directory)")
	f.StringVar(&flagPackageManager, "package-manager", "", "Package manager: npm, pnpm, yarn or bun (default from config)")
	f.BoolVar(&flagNoGit, "no-git", false, "Do not initialize a git repository")
	f.BoolVar(&flagSkipInstall, "skip-install", false, "Do not install dependencies")
	rootCmd.MarkFlagsMutuallyExclusive("framework", "interactive")

	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <project-name>",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds a web application with Tailwind CSS and two edge workers
(chat and contact form) backed by D1 databases.

By default it creates a Vite + React project. Use --framework to pick another
framework, or --interactive to choose from a menu; both also write a
vercel.json build descriptor.

Examples:
  ` + branding.CLIName() + ` my-app
  ` + branding.CLIName() + ` my-site --framework astro --package-manager pnpm
  ` + branding.CLIName() + ` my-app --interactive`,
	Args:          requireProjectName,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		logger = newLogger(cmd.ErrOrStderr(), config.Get(config.KeyLogLevel), flagVerbose)
		slog.SetDefault(logger)
		return nil
	},
	RunE: runGenerate,
}

func requireProjectName(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return generator.Usagef("project name is required")
	case 1:
		return nil
	default:
		return generator.Usagef("expected one project name, got %d arguments", len(args))
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	settings := config.Current()

	pmName := flagPackageManager
	if pmName == "" {
		pmName = settings.PackageManager
	}
	pm, err := runner.ParsePackageManager(pmName)
	if err != nil {
		return generator.Usagef("%v", err)
	}

	variant := generator.VariantWorkers
	switch {
	case flagFramework != "":
		variant = generator.VariantFramework
	case flagInteractive:
		variant = generator.VariantInteractive
		if !isTerminal(cmd.InOrStdin()) {
			logger.Warn("stdin is not a terminal; reading the framework choice from it")
		}
	}

	gen := generator.New(newRunner(settings),
		generator.WithLookPath(lookPath),
		generator.WithIO(cmd.InOrStdin(), cmd.OutOrStdout()),
		generator.WithLogger(logger),
		generator.WithSettings(generator.Settings{
			CompatibilityDate: settings.CompatibilityDate,
			ChatDatabase:      settings.ChatDatabase,
			ContactDatabase:   settings.ContactDatabase,
		}),
	)

	_, err = gen.Run(cmd.Context(), generator.Request{
		ProjectName:    args[0],
		BaseDir:        flagDir,
		Variant:        variant,
		FrameworkKey:   flagFramework,
		PackageManager: pm,
		SkipInstall:    flagSkipInstall,
		NoGit:          flagNoGit,
	})
	return err
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newLogger returns a text logger on w. verbose forces debug level.
func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// Execute runs the root command with build info injected via ldflags. The
// context is cancelled on SIGINT or SIGTERM, which stops any running
// external command.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if generator.IsUsage(err) {
		fmt.Fprintf(w, "Run '%s --help' for usage.\n", branding.CLIName())
	}
}
