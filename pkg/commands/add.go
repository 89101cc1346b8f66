package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/ampcred/pkg/app"
	"tableflip.dev/ampcred/pkg/commands/options"
	"tableflip.dev/ampcred/pkg/printers"
	"tableflip.dev/ampcred/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	ao := &options.AddOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Validate and place a new event on the calendar.",
		Long: "Runs the event dialog with the given values and prints the day it lands on.\n" +
			"The seed file is not modified; use 'ampcred seed export' to keep the result.",
		Example: `
ampcred add board review --day 12 --time 2pm --lane Board
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			ao.Title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := open(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			a := add.Add{
				Service: svc,
				Printer: &printers.PrettyPrint{ShowID: io.ShowID},
				Event: app.NewEvent{
					Title: ao.Title,
					Day:   ao.Day,
					Time:  ao.Time,
					Lane:  ao.Lane,
				},
				JSON: oo.JSON,
			}
			return oo.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddEventArgs(cmd, ao)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
