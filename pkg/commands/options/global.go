package options

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

// GlobalOptions are accepted by every command. Empty values fall back to
// .ampcred.yaml and AMPCRED_* variables.
type GlobalOptions struct {
	Seed    string
	Variant string
	Debug   bool
	LogFile string
}

// AddGlobalArgs registers the persistent flags on the root command.
func AddGlobalArgs(cmd *cobra.Command, o *GlobalOptions) {
	cmd.PersistentFlags().StringVar(&o.Seed, "seed", "",
		base.Wrap80("Seed file to load events and records from (.yaml or .ics). Defaults to the builtin seed."))
	cmd.PersistentFlags().StringVar(&o.Variant, "variant", "",
		"Console variant: amp, cred or dashboard.")
	cmd.PersistentFlags().BoolVar(&o.Debug, "debug", false,
		"Log at debug level.")
	cmd.PersistentFlags().StringVar(&o.LogFile, "log-file", "",
		"Write logs to this file instead of stderr.")
}
