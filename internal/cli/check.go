package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/edgekit-labs/edgegen/internal/manifest"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Validate the configuration files of a generated project",
	Long: `Validate package.json, vercel.json and both wrangler.toml files of a generated
project against their schemas, and warn about values left in .env.example.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("checking project: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
		return checkProject(cmd.OutOrStdout(), dir)
	},
}

// checkedFiles are validated in order; optional ones may be absent. name
// decodes the file and returns the name it declares.
var checkedFiles = []struct {
	path     string
	optional bool
	name     func(path string) (string, error)
}{
	{manifest.PackageFile, false, packageName},
	{"src/worker/chat/" + manifest.WorkerFile, false, workerName},
	{"src/worker/contact/" + manifest.WorkerFile, false, workerName},
	{manifest.DescriptorFile, true, descriptorName},
}

func packageName(path string) (string, error) {
	p, err := manifest.ParsePackage(path)
	if err != nil {
		return "", err
	}
	return p.Name, nil
}

func workerName(path string) (string, error) {
	w, err := manifest.ParseWorker(path)
	if err != nil {
		return "", err
	}
	return w.Name, nil
}

func descriptorName(path string) (string, error) {
	d, err := manifest.ParseDescriptor(path)
	if err != nil {
		return "", err
	}
	return d.Name, nil
}

func checkProject(out io.Writer, dir string) error {
	fmt.Fprintf(out, "Project check: %s\n", dir)

	failed := 0
	for _, f := range checkedFiles {
		path := filepath.Join(dir, filepath.FromSlash(f.path))
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			if f.optional {
				fmt.Fprintf(out, "  [SKIP] %s not present\n", f.path)
				continue
			}
			fmt.Fprintf(out, "  [FAIL] %s is missing\n", f.path)
			failed++
			continue
		}

		result, err := manifest.ValidateFile(path)
		if err != nil {
			fmt.Fprintf(out, "  [FAIL] %s: %v\n", f.path, err)
			failed++
			continue
		}
		if !result.Valid {
			fmt.Fprintf(out, "  [FAIL] %s:\n", f.path)
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "         %s\n", issue)
			}
			failed++
			continue
		}
		name, err := f.name(path)
		if err != nil {
			fmt.Fprintf(out, "  [FAIL] %s: %v\n", f.path, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "  [ OK ] %s (%s)\n", f.path, name)
	}

	envPath := filepath.Join(dir, manifest.EnvTemplateFile)
	entries, err := manifest.ParseEnv(envPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintf(out, "  [WARN] %s is missing\n", manifest.EnvTemplateFile)
	case err != nil:
		fmt.Fprintf(out, "  [FAIL] %s: %v\n", manifest.EnvTemplateFile, err)
		failed++
	default:
		filled := 0
		for _, e := range entries {
			if e.Value != "" {
				fmt.Fprintf(out, "  [WARN] %s sets a value for %s; keep secrets in .env\n", manifest.EnvTemplateFile, e.Key)
				filled++
			}
		}
		if filled == 0 {
			fmt.Fprintf(out, "  [ OK ] %s lists %d secrets\n", manifest.EnvTemplateFile, len(entries))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d project check(s) failed", failed)
	}
	return nil
}
