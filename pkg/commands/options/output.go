package options

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/ampcred/pkg/modal"
)

// OutputOptions select machine readable output.
type OutputOptions struct {
	JSON bool
}

// AddOutputArg registers --json on cmd and all of its subcommands.
func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.PersistentFlags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// HandleError prints err as a JSON object when --json is set, including
// per-field messages for rejected events, and swallows it.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := map[string]interface{}{
			"error": err.Error(),
		}
		var verr *modal.ValidationError
		if errors.As(err, &verr) {
			out["fields"] = verr.Fields
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
