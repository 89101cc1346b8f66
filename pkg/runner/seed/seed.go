// Package seed writes the loaded seed back out as YAML.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"

	"tableflip.dev/ampcred/pkg/app"
)

// Export writes the current events and records to Path.
type Export struct {
	Service *app.Service
	Path    string
}

func (e *Export) Do(ctx context.Context) error {
	if e.Service == nil {
		return errors.New("seed: no console loaded")
	}
	if e.Path == "" {
		return errors.New("seed: export requires a file name")
	}
	path, err := homedir.Expand(e.Path)
	if err != nil {
		return err
	}
	if err := e.Service.Export(path); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "wrote %d events and %d records to %s\n",
		e.Service.Console.Store().Len(), len(e.Service.Console.AllRecords()), path)
	return nil
}
