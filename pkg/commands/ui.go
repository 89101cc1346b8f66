package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/ampcred/pkg/commands/options"
	"tableflip.dev/ampcred/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	co := &options.CalendarOptions{}
	ro := &options.RecordsOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the full-screen console.",
		Example: `
ampcred ui
ampcred ui --variant cred --seed ~/admin.yaml
`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationQuiet: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := open(cmd.Context())
			if err != nil {
				return err
			}
			if ro.Category != "" {
				svc.Console.SetCategory(ro.Category)
			}
			i := ui.UI{Service: svc}
			return i.Do(cmd.Context())
		},
	}

	options.AddCalendarArgs(cmd, co)
	options.AddRecordsArgs(cmd, ro)

	topLevel.AddCommand(cmd)
}
