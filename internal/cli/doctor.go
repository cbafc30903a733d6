package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/edgekit-labs/edgegen/internal/config"
	"github.com/edgekit-labs/edgegen/internal/runner"
)

// Swapped in tests.
var probeTool = runner.Probe

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the required tools are installed",
	Long: `Check that node, the package managers and git are on PATH and new enough
to generate a project.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.Current()
		r := &runner.ExecRunner{
			Stdout:  io.Discard,
			Stderr:  io.Discard,
			Timeout: settings.CommandTimeout,
			Logger:  logger,
		}

		tools := doctorTools(settings.PackageManager)
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Tool check:")

		failed := 0
		for _, t := range tools {
			st := probeTool(cmd.Context(), r, t)
			switch {
			case st.OK && t.MinVersion != "":
				fmt.Fprintf(out, "  [ OK ] %s %s (>= %s) at %s\n", t.Name, st.Version, t.MinVersion, st.Path)
			case st.OK:
				fmt.Fprintf(out, "  [ OK ] %s %s at %s\n", t.Name, st.Version, st.Path)
			default:
				failed++
				fmt.Fprintf(out, "  [FAIL] %s: %v\n", t.Name, st.Err)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d tool checks failed", failed, len(tools))
		}
		return nil
	},
}

// doctorTools returns the default tool set plus the configured package
// manager when it is not npm.
func doctorTools(packageManager string) []runner.Tool {
	tools := append([]runner.Tool(nil), runner.DefaultTools...)
	pm, err := runner.ParsePackageManager(packageManager)
	if err != nil || pm == runner.NPM {
		return tools
	}
	return append(tools, runner.Tool{Name: string(pm), VersionArgs: []string{"--version"}})
}
