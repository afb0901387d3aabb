package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eventlayout/pkg/errors"
	"github.com/matzehuels/eventlayout/pkg/export"
	"github.com/matzehuels/eventlayout/pkg/layout"
	"github.com/matzehuels/eventlayout/pkg/pipeline"
)

// diagramCommand creates the diagram command.
func (c *CLI) diagramCommand() *cobra.Command {
	var (
		output   string
		detailed bool
		recalc   bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "diagram <layout>",
		Short: "Draw the field positions as a Graphviz diagram",
		Long: `Diagram draws one box per active field in position order. Gaps appear as
dashed boxes and overlaps as red edges; fields with invalid sizes or end
positions are shaded. Unlike export, diagrams are drawn for invalid layouts.

The output format follows the extension of -o: .svg (default) or .dot.`,
		Example: `  eventlayout diagram layout.xlsx
  eventlayout diagram --detailed -o campos.dot campos.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".svg"
			}
			format := strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
			if format != pipeline.FormatSVG && format != pipeline.FormatDOT {
				return errors.New(errors.ErrCodeUnsupportedFormat, "diagram output must end in .svg or .dot, got %q", output)
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := c.pipelineOptions(args[0])
			opts.Formats = []string{format}
			opts.Detailed = detailed
			if err := opts.ValidateForLoad(); err != nil {
				return err
			}
			records, err := runner.Load(ctx, opts)
			if err != nil {
				return err
			}
			if recalc {
				layout.Recalculate(records)
			}

			spinner := newSpinner(ctx, "Rendering diagram...")
			spinner.Start()
			artifacts, _, hit, err := runner.RenderWithCacheInfo(ctx, export.Assemble(records), records, opts)
			if err != nil {
				spinner.StopWithError("Render failed")
				return err
			}
			spinner.Stop()

			if err := os.WriteFile(output, artifacts[format], 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "write %s", output)
			}
			rep := layout.Validate(records)
			printSuccess("Diagram written")
			printFile(output)
			printStats(rep.TotalFields, rep.TotalSize, hit)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output file (.svg or .dot)")
	flags.BoolVar(&detailed, "detailed", false, "include type, alignment and value of each field")
	flags.BoolVar(&recalc, "recalc", false, "recalculate positions before drawing")
	flags.BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
