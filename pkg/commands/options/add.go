package options

import (
	"github.com/spf13/cobra"
)

// AddOptions describe the event to add.
type AddOptions struct {
	Title string
	Day   int
	Time  string
	Lane  string
}

func AddEventArgs(cmd *cobra.Command, o *AddOptions) {
	cmd.Flags().IntVarP(&o.Day, "day", "d", 0,
		`Day of the month, example: --day=12.`)
	cmd.Flags().StringVarP(&o.Time, "time", "t", "",
		`Start time, example: --time=9:30 or --time=2pm.`)
	cmd.Flags().StringVarP(&o.Lane, "lane", "l", "",
		`Lane the event belongs to, example: --lane=Board.`)
}
