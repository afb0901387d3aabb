package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/eventlayout/pkg/field"
	pkgio "github.com/matzehuels/eventlayout/pkg/io"
	"github.com/matzehuels/eventlayout/pkg/layout"
)

// recalcCommand creates the recalc command.
func (c *CLI) recalcCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "recalc <layout>",
		Short: "Lay active fields out contiguously from position 1",
		Long: `Recalc assigns start and end positions to every active field in order of
their current start, closing gaps and resolving overlaps, and saves the
layout back. Workbooks are updated in place; formulas in other cells are kept.`,
		Example: `  eventlayout recalc layout.xlsx
  eventlayout recalc --dry-run campos.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			prog := newProgress(cmd.Context(), path)
			opts := c.pipelineOptions(path)

			records, err := pkgio.ReadFile(path, opts.ReadOptions())
			if err != nil {
				return err
			}

			before := starts(records)
			total := layout.Recalculate(records)
			moved := 0
			for _, r := range field.ActiveLayout(records) {
				if before[r] != *r.Start {
					moved++
					printDetail("%-24s %s %d-%d", r.Name, iconArrow, *r.Start, *r.End)
				}
			}

			if dryRun {
				printInfo("%d field(s) would move; total size %d bytes", moved, total)
				return nil
			}
			if err := pkgio.WriteFile(path, records, opts.ReadOptions()); err != nil {
				return err
			}
			prog.done("recalculated layout", "moved", moved, "size", total)
			printSuccess("Recalculated %s: %d field(s) moved, %d bytes", path, moved, total)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the new positions without saving")

	return cmd
}

// starts snapshots the start position of each active record.
func starts(records []*field.Record) map[*field.Record]int {
	snap := make(map[*field.Record]int)
	for _, r := range field.ActiveLayout(records) {
		snap[r] = *r.Start
	}
	return snap
}
