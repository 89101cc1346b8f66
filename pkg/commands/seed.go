package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/ampcred/pkg/runner/seed"
)

func addSeed(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Work with seed files.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	export := &cobra.Command{
		Use:   "export <file.yaml>",
		Short: "Write the loaded events and records to a YAML seed file.",
		Example: `
ampcred seed export admin.yaml
ampcred seed export --seed team.ics admin.yaml
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires exactly one file name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := open(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			e := seed.Export{Service: svc, Path: args[0]}
			return oo.HandleError(e.Do(cmd.Context()))
		},
	}

	cmd.AddCommand(export)
	topLevel.AddCommand(cmd)
}
