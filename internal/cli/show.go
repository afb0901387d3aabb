package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eventlayout/pkg/field"
	"github.com/matzehuels/eventlayout/pkg/layout"
)

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var (
		filter  string
		all     bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "show <layout>",
		Short: "Print the fields of a layout as a table",
		Long: `Show prints the active fields ordered by start position. With --all every
row of the sheet is listed in sheet order and inactive rows are dimmed.`,
		Example: `  eventlayout show layout.xlsx
  eventlayout show --all --filter cpf layout.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := c.pipelineOptions(args[0])
			if err := opts.ValidateForLoad(); err != nil {
				return err
			}
			records, err := runner.Load(ctx, opts)
			if err != nil {
				return err
			}

			rows := selectRows(records, filter, all)
			if len(rows) == 0 {
				printInfo("No matching fields")
				return nil
			}
			fmt.Fprintln(out, fieldTable(rows, -1))

			active := field.ActiveLayout(records)
			printKeyValue("Fields", fmt.Sprintf("%d shown, %d active, %d rows", len(rows), len(active), len(records)))
			printKeyValue("Size", fmt.Sprintf("%d bytes", field.TotalSize(active)))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "show only fields whose name or description contains text")
	cmd.Flags().BoolVar(&all, "all", false, "include inactive rows")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// selectRows returns the rows to display: the active layout, or every record
// with all set, narrowed by filter.
func selectRows(records []*field.Record, filter string, all bool) []*field.Record {
	rows := records
	if !all {
		rows = field.ActiveLayout(records)
	}
	return layout.Filter(rows, filter)
}
