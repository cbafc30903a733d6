package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/edgekit-labs/edgegen/internal/config"
	"github.com/edgekit-labs/edgegen/internal/runner"
)

// fakeRunner records commands and fails those matched by failOn.
type fakeRunner struct {
	cmds   []runner.Command
	failOn func(runner.Command) bool
}

func (f *fakeRunner) Run(_ context.Context, cmd runner.Command) (*runner.Output, error) {
	f.cmds = append(f.cmds, cmd)
	if f.failOn != nil && f.failOn(cmd) {
		return &runner.Output{ExitCode: 1, Stderr: "simulated failure\n"}, nil
	}
	return &runner.Output{}, nil
}

// stubExternal replaces the command runner and PATH lookup for one test.
func stubExternal(t *testing.T, r *fakeRunner) {
	t.Helper()
	origRunner, origLook := newRunner, lookPath
	t.Cleanup(func() {
		newRunner = origRunner
		lookPath = origLook
	})
	newRunner = func(config.Settings) runner.Runner { return r }
	lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
}

// resetFlags restores every flag to its default so commands can be executed
// repeatedly within one test binary.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

type cmdResult struct {
	stdout string
	stderr string
	err    error
}

// setupHome points the config directory at a fresh temp dir.
func setupHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("EDGEGEN_HOME", dir)
	return dir
}

// execute runs the root command with args. Callers isolate the config home
// with setupHome first.
func execute(t *testing.T, stdin string, args ...string) cmdResult {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		reportError(&errOut, err)
	}
	return cmdResult{stdout: out.String(), stderr: errOut.String(), err: err}
}
