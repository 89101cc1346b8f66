// Package calendar prints the calendar view for the CLI.
package calendar

import (
	"context"
	"errors"

	"tableflip.dev/ampcred/pkg/app"
	"tableflip.dev/ampcred/pkg/calendar"
	"tableflip.dev/ampcred/pkg/console"
	"tableflip.dev/ampcred/pkg/printers"
)

// Calendar prints the layout for the console's current mode and range.
type Calendar struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool
}

type layoutOutput struct {
	Title string          `json:"title"`
	Empty string          `json:"empty,omitempty"`
	View  calendar.Layout `json:"view"`
}

func (c *Calendar) Do(ctx context.Context) error {
	if c.Service == nil {
		return errors.New("calendar: no console loaded")
	}
	pp := c.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	layout, err := c.Service.Console.Layout()
	if err != nil {
		return err
	}
	empty := c.Service.Console.EmptyMessage(console.CalendarPane)

	if c.JSON {
		return pp.JSON(layoutOutput{Title: layout.Range.Title(), Empty: empty, View: layout})
	}
	pp.Header(c.Service.Variant)
	pp.TitleWithCount(layout.Mode.Title()+" · "+layout.Range.Title(), len(layout.Placed()))
	pp.NewLine()
	pp.Layout(layout, empty)
	return nil
}
