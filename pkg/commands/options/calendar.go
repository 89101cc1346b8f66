package options

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

// CalendarOptions shape the calendar view.
type CalendarOptions struct {
	Mode       string
	Month      string
	Tolerance  int
	WeekAnchor int
}

func AddCalendarArgs(cmd *cobra.Command, o *CalendarOptions) {
	cmd.Flags().StringVarP(&o.Mode, "mode", "m", "",
		"View mode: month, week or agenda.")
	cmd.Flags().StringVar(&o.Month, "month", "",
		`Month to show, example: --month="March 2026". Defaults to this month.`)
	cmd.Flags().IntVar(&o.Tolerance, "tolerance", 0,
		base.Wrap80("Week view: days either side of a column's day that still land in it. 0 matches the exact day."))
	cmd.Flags().IntVar(&o.WeekAnchor, "week-anchor", 0,
		"Week view: day number of the first column.")
}
