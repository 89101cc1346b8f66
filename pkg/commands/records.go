package commands

import (
	"errors"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"tableflip.dev/ampcred/pkg/commands/options"
	"tableflip.dev/ampcred/pkg/printers"
	"tableflip.dev/ampcred/pkg/runner/records"
)

func addRecords(topLevel *cobra.Command) {
	ro := &options.RecordsOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "records [query]",
		Aliases: []string{"docs", "record"},
		Short:   "List documents, volumes and research.",
		Example: `
ampcred records
ampcred records brand
ampcred records --category Volumes --sort recent
`,
		Args: func(cmd *cobra.Command, args []string) error {
			ro.Query = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := open(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			r := records.Records{
				Service:  svc,
				Printer:  &printers.PrettyPrint{ShowID: io.ShowID},
				Query:    ro.Query,
				Category: ro.Category,
				JSON:     oo.JSON,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddRecordsArgs(cmd, ro)
	options.AddShowIDArgs(cmd, io)
	_ = cmd.RegisterFlagCompletionFunc("sort", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"alphabetical", "recent"}, cobra.ShellCompDirectiveNoFileComp
	})

	addRecordsShow(cmd)
	topLevel.AddCommand(cmd)
}

func addRecordsShow(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one record with its abstract.",
		Example: `
ampcred records show doc-brand
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires exactly one record id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := open(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			s := records.Show{
				Service: svc,
				Printer: &printers.PrettyPrint{MarkdownStyle: markdownStyle()},
				ID:      args[0],
				JSON:    oo.JSON,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}

// markdownStyle picks a glamour style for stdout.
func markdownStyle() string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return "notty"
	}
	if termenv.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
