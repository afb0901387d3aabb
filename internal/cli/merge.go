package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eventlayout/pkg/errors"
	"github.com/matzehuels/eventlayout/pkg/field"
	pkgio "github.com/matzehuels/eventlayout/pkg/io"
	"github.com/matzehuels/eventlayout/pkg/layout"
)

// mergeCommand creates the merge command.
func (c *CLI) mergeCommand() *cobra.Command {
	var (
		names       []string
		update      bool
		originSheet string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "merge <target> <origin>",
		Short: "Copy fields from another layout into target",
		Long: `Merge copies fields of origin into target and saves target.

Fields missing from target are appended after the last positioned field.
Fields present in both are left alone unless --update is given, in which case
their type, size, alignment and descriptive attributes are taken from origin.`,
		Example: `  eventlayout merge evento.xlsx base.xlsx --field CPF --field NOME
  eventlayout merge --update evento.csv base.csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			targetPath, originPath := args[0], args[1]
			for _, n := range names {
				if err := errors.ValidateFieldName(n); err != nil {
					return err
				}
			}

			prog := newProgress(cmd.Context(), targetPath)
			opts := c.pipelineOptions(targetPath)
			readOpts := opts.ReadOptions()
			target, err := pkgio.ReadFile(targetPath, readOpts)
			if err != nil {
				return err
			}
			originOpts := readOpts
			if originSheet != "" {
				originOpts.Sheet = originSheet
			}
			origin, err := pkgio.ReadFile(originPath, originOpts)
			if err != nil {
				return err
			}

			for _, n := range missingNames(origin, names) {
				printWarning("field %s not found in %s", n, originPath)
			}

			merged, res := layout.Merge(target, origin, layout.MergeOptions{Names: names, Update: update})
			printMergeResult(res)
			if len(res.Added)+len(res.Updated) == 0 {
				printInfo("Nothing to merge")
				return nil
			}
			if dryRun {
				return nil
			}

			if err := pkgio.WriteFile(targetPath, merged, readOpts); err != nil {
				return err
			}
			prog.done("merged layout", "added", len(res.Added), "updated", len(res.Updated))
			printSuccess("Saved %s", targetPath)
			printNextStep("Check the result", "eventlayout validate "+targetPath)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&names, "field", nil, "field name to merge (repeatable; default all)")
	flags.BoolVar(&update, "update", false, "update fields that already exist in target")
	flags.StringVar(&originSheet, "origin-sheet", "", "worksheet of the origin layout (default --sheet)")
	flags.BoolVar(&dryRun, "dry-run", false, "report the merge without saving")

	return cmd
}

// missingNames returns the requested names that origin does not contain.
func missingNames(origin []*field.Record, names []string) []string {
	var missing []string
	for _, n := range names {
		if !slices.ContainsFunc(origin, func(r *field.Record) bool { return r != nil && r.Name == n }) {
			missing = append(missing, n)
		}
	}
	return missing
}

func printMergeResult(res layout.MergeResult) {
	if len(res.Added) > 0 {
		printSuccess("Added %d: %s", len(res.Added), strings.Join(res.Added, ", "))
	}
	if len(res.Updated) > 0 {
		printSuccess("Updated %d: %s", len(res.Updated), strings.Join(res.Updated, ", "))
	}
	if len(res.Skipped) > 0 {
		printDetail("Skipped %d existing (use --update): %s", len(res.Skipped), strings.Join(res.Skipped, ", "))
	}
}
