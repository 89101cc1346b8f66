package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/ampcred/pkg/commands/options"
	"tableflip.dev/ampcred/pkg/printers"
	"tableflip.dev/ampcred/pkg/runner/calendar"
)

func addCalendar(topLevel *cobra.Command) {
	co := &options.CalendarOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show events for a month, week or agenda.",
		Example: `
ampcred calendar
ampcred calendar --mode week --tolerance 0
ampcred calendar --month "April 2026" --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := open(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			c := calendar.Calendar{
				Service: svc,
				Printer: &printers.PrettyPrint{ShowID: io.ShowID},
				JSON:    oo.JSON,
			}
			return oo.HandleError(c.Do(cmd.Context()))
		},
	}

	options.AddCalendarArgs(cmd, co)
	options.AddShowIDArgs(cmd, io)
	_ = cmd.RegisterFlagCompletionFunc("mode", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"month", "week", "agenda"}, cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
