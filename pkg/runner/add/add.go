// Package add creates an event through the dialog controller and shows the
// day it landed on. Nothing is persisted.
package add

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/ampcred/pkg/app"
	"tableflip.dev/ampcred/pkg/calendar"
	"tableflip.dev/ampcred/pkg/event"
	"tableflip.dev/ampcred/pkg/printers"
)

type Add struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	Event   app.NewEvent
	JSON    bool
}

type addOutput struct {
	Event event.Event   `json:"event"`
	Cell  calendar.Cell `json:"cell"`
}

func (a *Add) Do(ctx context.Context) error {
	if a.Service == nil {
		return errors.New("add: no console loaded")
	}
	pp := a.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}

	e, err := a.Service.AddEvent(ctx, a.Event)
	if err != nil {
		return err
	}

	events := a.Service.Console.Store().Events()
	layout, err := calendar.Render(events, calendar.ModeMonth, a.Service.Console.Range())
	if err != nil {
		return err
	}
	cell, _ := layout.Cell(e.Day)

	if a.JSON {
		return pp.JSON(addOutput{Event: e, Cell: cell})
	}
	pp.Title(fmt.Sprintf("Day %d · %s", cell.Day, layout.Range.Title()))
	for _, ev := range cell.Events {
		pp.Event(ev)
	}
	pp.NewLine()
	return nil
}
