package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/edgekit-labs/edgegen/internal/runner"
)

const testBase = "/work"

// fakeRunner records every command and fails those matched by failOn.
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

func (f *fakeRunner) commandLines() []string {
	out := make([]string, len(f.cmds))
	for i, c := range f.cmds {
		out[i] = c.String()
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okLookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

type testEnv struct {
	fs     afero.Fs
	runner *fakeRunner
	out    *strings.Builder
	gen    *Generator
}

func newTestEnv(t *testing.T, stdin string, opts ...Option) *testEnv {
	t.Helper()
	env := &testEnv{
		fs:     afero.NewMemMapFs(),
		runner: &fakeRunner{},
		out:    &strings.Builder{},
	}
	base := []Option{
		WithFs(env.fs),
		WithLookPath(okLookPath),
		WithIO(strings.NewReader(stdin), env.out),
		WithLogger(discardLogger()),
	}
	env.gen = New(env.runner, append(base, opts...)...)
	return env
}

func (e *testEnv) run(t *testing.T, req Request) (*Result, error) {
	t.Helper()
	if req.BaseDir == "" {
		req.BaseDir = testBase
	}
	return e.gen.Run(context.Background(), req)
}

func (e *testEnv) read(t *testing.T, project, rel string) string {
	t.Helper()
	data, err := afero.ReadFile(e.fs, filepath.Join(testBase, project, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func (e *testEnv) exists(t *testing.T, project, rel string) bool {
	t.Helper()
	ok, err := afero.Exists(e.fs, filepath.Join(testBase, project, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("stat %s: %v", rel, err)
	}
	return ok
}

func isGenerator(c runner.Command) bool {
	return (c.Name == "npm" || c.Name == "npx") && len(c.Args) > 0 &&
		(c.Args[0] == "create" || strings.HasPrefix(c.Args[0], "create-") || strings.HasPrefix(c.Args[0], "nuxi") || c.Args[0] == "sv")
}

func isInstall(c runner.Command) bool {
	return len(c.Args) > 0 && (c.Args[0] == "install" || c.Args[0] == "add")
}

func missingLookPath(missing string) func(string) (string, error) {
	return func(name string) (string, error) {
		if name == missing {
			return "", fmt.Errorf("%s is required but not found in PATH", name)
		}
		return okLookPath(name)
	}
}
