// Package ui starts the full-screen console.
package ui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/ampcred/pkg/app"
	"tableflip.dev/ampcred/pkg/theme"
	tuiapp "tableflip.dev/ampcred/pkg/tui/app"
)

// ErrNotTerminal is returned when stdout cannot host the UI.
var ErrNotTerminal = errors.New("ui: stdout is not a terminal")

type UI struct {
	Service *app.Service
}

func (u *UI) Do(ctx context.Context) error {
	if u.Service == nil {
		return errors.New("ui: no console loaded")
	}
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return ErrNotTerminal
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reloads, err := u.Service.Watch(ctx)
	if err != nil {
		u.Service.Logger.Sugar().Warnw("seed watch disabled", "error", err)
		reloads = nil
	}

	palette := theme.New(u.Service.Variant, theme.DetectDark())
	return tuiapp.Run(ctx, tuiapp.Options{
		Console: u.Service.Console,
		Palette: palette,
		Logger:  u.Service.Logger,
		Source:  u.Service.Source,
		Reloads: reloads,
	})
}
