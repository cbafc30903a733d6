//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeTool stands in for npm, npx, pnpm and git. It appends its argv to
// $EDGEGEN_TEST_LOG, fails when "<tool> <first arg>" equals
// $EDGEGEN_TEST_FAIL, and otherwise leaves the tree the way the real tool
// would: the create command makes the project directory, git init makes .git.
const fakeTool = `#!/bin/sh
tool=$(basename "$0")
echo "$tool $*" >> "$EDGEGEN_TEST_LOG"
if [ -n "$EDGEGEN_TEST_FAIL" ] && [ "$tool $1" = "$EDGEGEN_TEST_FAIL" ]; then
  echo "simulated failure" >&2
  exit 1
fi
case "$tool $1" in
  "npm create") mkdir -p "$3" ;;
  "npx nuxi@latest") mkdir -p "$3" ;;
  "git init") mkdir -p .git ;;
  "npm --version"|"npx --version") echo "10.2.0" ;;
esac
exit 0
`

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir string // EDGEGEN_HOME
	BinDir  string // fake tools, first on PATH
	WorkDir string // parent directory for generated projects
	LogFile string // commands the fake tools received
}

// setupTestEnv creates isolated temp directories, installs the fake tools
// and points PATH and EDGEGEN_HOME at them for the duration of the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are POSIX shell scripts")
	}

	env := &testEnv{
		HomeDir: t.TempDir(),
		BinDir:  t.TempDir(),
		WorkDir: t.TempDir(),
	}
	env.LogFile = filepath.Join(env.HomeDir, "commands.log")

	for _, tool := range []string{"npm", "npx", "pnpm", "git"} {
		writeExecutable(t, filepath.Join(env.BinDir, tool), fakeTool)
	}

	t.Setenv("EDGEGEN_HOME", env.HomeDir)
	t.Setenv("EDGEGEN_TEST_LOG", env.LogFile)
	t.Setenv("EDGEGEN_TEST_FAIL", "")
	t.Setenv("PATH", env.BinDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return env
}

// commands returns the logged invocations in order.
func (e *testEnv) commands(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.LogFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading command log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func writeExecutable(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected file %s to exist: %v", path, err)
		return
	}
	if info.IsDir() {
		t.Errorf("expected %s to be a file, got directory", path)
	}
}

func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory %s to exist: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory", path)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s not to exist", path)
	}
}
