package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/eventlayout/pkg/errors"
	pkgio "github.com/matzehuels/eventlayout/pkg/io"
	"github.com/matzehuels/eventlayout/pkg/layout"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		recalc  bool
		asJSON  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "validate <layout>",
		Short: "Check a layout for gaps, overlaps and field problems",
		Long: `Validate reads the layout and reports problems of every active field.

Errors (overlaps, invalid sizes, end positions that disagree with start and
size) make the command exit with a non-zero status. Warnings (gaps, missing
required values, truncated values) are reported but do not fail.`,
		Example: `  eventlayout validate layout.xlsx
  eventlayout validate --recalc campos.csv
  eventlayout validate --json layout.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prog := newProgress(ctx, args[0])

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := c.pipelineOptions(args[0])
			if err := opts.ValidateForLoad(); err != nil {
				return err
			}
			records, hit, err := runner.LoadWithCacheInfo(ctx, opts)
			if err != nil {
				return err
			}
			if recalc {
				layout.Recalculate(records)
			}
			rep := layout.Validate(records)
			prog.validated(rep)

			if asJSON {
				if err := pkgio.WriteJSON(out, rep); err != nil {
					return err
				}
			} else {
				printReport(rep)
				printStats(rep.TotalFields, rep.TotalSize, hit)
			}

			if !rep.Valid() {
				return errors.Wrap(errors.ErrCodeLayoutInvalid,
					&errors.LayoutError{Errors: len(rep.Errors), Warnings: len(rep.Warnings)},
					"%s: %d error(s)", args[0], len(rep.Errors))
			}
			if !asJSON && !recalc {
				printNextStep("Export it", "eventlayout export "+args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&recalc, "recalc", false, "recalculate positions before validating")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
