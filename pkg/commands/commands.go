package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/ampcred/pkg/app"
	"tableflip.dev/ampcred/pkg/commands/options"
	"tableflip.dev/ampcred/pkg/config"
	"tableflip.dev/ampcred/pkg/logging"
)

// Command annotations read by the root pre-run.
const (
	annotationQuiet      = "ampcred/quiet"
	annotationSkipConfig = "ampcred/skip-config"
)

// flagKeys maps flag names to config keys. Flags that are not set leave the
// config file, environment and defaults in charge.
var flagKeys = map[string]string{
	"seed":        config.KeySeed,
	"variant":     config.KeyVariant,
	"debug":       config.KeyDebug,
	"log-file":    config.KeyLogFile,
	"mode":        config.KeyMode,
	"month":       config.KeyMonth,
	"sort":        config.KeySort,
	"tolerance":   config.KeyTolerance,
	"week-anchor": config.KeyWeekAnchor,
}

var (
	oo    = &options.OutputOptions{}
	gopts = &options.GlobalOptions{}

	cfg    *config.Config
	logger = zap.NewNop()
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "ampcred",
		Short: base.Wrap80("Calendar and documentation console for the AMP, Cred and Dashboard admins."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationSkipConfig] == "true" {
				return nil
			}
			cmd.SilenceUsage = true

			v := config.New()
			for name, key := range flagKeys {
				if f := cmd.Flags().Lookup(name); f != nil {
					if err := v.BindPFlag(key, f); err != nil {
						return err
					}
				}
			}
			var err error
			if cfg, err = config.Load(v); err != nil {
				return err
			}
			logger, err = logging.New(logging.Options{
				Debug: cfg.Debug,
				File:  cfg.LogFile,
				Quiet: cmd.Annotations[annotationQuiet] == "true",
			})
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddGlobalArgs(cmd, gopts)
	options.AddOutputArg(cmd, oo)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addCalendar(topLevel)
	addRecords(topLevel)
	addAdd(topLevel)
	addUI(topLevel)
	addSeed(topLevel)
	addVersion(topLevel)
}

// open builds the service for the resolved configuration.
func open(ctx context.Context) (*app.Service, error) {
	if cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	return app.Open(ctx, cfg, logger)
}
