package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/edgekit-labs/edgegen/internal/framework"
)

var frameworksJSON bool

func init() {
	frameworksCmd.Flags().BoolVar(&frameworksJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(frameworksCmd)
}

type frameworkEntry struct {
	Number    int    `json:"number"`
	Key       string `json:"key"`
	Name      string `json:"name"`
	Generator string `json:"generator"`
	Build     string `json:"buildCommand"`
	Dev       string `json:"devCommand"`
	Port      int    `json:"port"`
	Output    string `json:"outputDirectory"`
	Default   bool   `json:"default"`
}

var frameworksCmd = &cobra.Command{
	Use:   "frameworks",
	Short: "List the supported frameworks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var entries []frameworkEntry
		for i, f := range framework.All() {
			entries = append(entries, frameworkEntry{
				Number:    i + 1,
				Key:       f.Key,
				Name:      f.Name,
				Generator: strings.Join(f.Generator, " "),
				Build:     f.BuildCommand,
				Dev:       f.DevCommand,
				Port:      f.Port,
				Output:    f.OutputDirectory,
				Default:   f.Key == framework.DefaultKey,
			})
		}

		out := cmd.OutOrStdout()
		if frameworksJSON {
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling frameworks: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "#\tKEY\tNAME\tBUILD\tDEV\tPORT\tOUTPUT")
		for _, e := range entries {
			name := e.Name
			if e.Default {
				name += " (default)"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n", e.Number, e.Key, name, e.Build, e.Dev, e.Port, e.Output)
		}
		return w.Flush()
	},
}
