package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"
)

// Set at link time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func addVersion(topLevel *cobra.Command) {
	shortened := false
	output := "json"
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Get ampcred version.",
		Example: `
ampcred version
`,
		Annotations: map[string]string{annotationSkipConfig: "true"},
		Run: func(_ *cobra.Command, _ []string) {
			resp := goversion.FuncWithOutput(shortened, version, commit, date, output)
			fmt.Fprint(color.Output, resp)
		},
	}

	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number.")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")

	topLevel.AddCommand(cmd)
}
