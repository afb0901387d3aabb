package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eventlayout/pkg/errors"
	"github.com/matzehuels/eventlayout/pkg/pipeline"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output   string
		formats  string
		force    bool
		recalc   bool
		detailed bool
		noCache  bool
		refresh  bool
	)

	cmd := &cobra.Command{
		Use:   "export <layout>",
		Short: "Validate a layout and write the encoded event",
		Long: `Export validates the layout and writes one artifact per format:

  xml   event document with one element per active field (default)
  json  the same document as JSON
  line  the fixed-width record line
  dot   Graphviz source of the layout diagram
  svg   rendered layout diagram

A layout with errors or warnings is not exported unless --force is given.`,
		Example: `  eventlayout export layout.xlsx
  eventlayout export -f xml,line -o out/evento campos.csv
  eventlayout export --force layout.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			opts := c.pipelineOptions(args[0])
			if cmd.Flags().Changed("format") {
				opts.Formats = pipeline.ParseFormats(formats)
			}
			if cmd.Flags().Changed("force") {
				opts.Force = force
			}
			opts.Recalculate = recalc
			opts.Detailed = detailed
			opts.Refresh = refresh
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			spinner := newSpinner(ctx, "Exporting "+filepath.Base(args[0])+"...")
			spinner.Start()
			result, err := runner.Execute(ctx, opts)
			spinner.Stop()

			if result != nil && result.Report != nil && (!result.Report.Valid() || result.Report.HasWarnings()) {
				printReport(result.Report)
			}
			if err != nil {
				if errors.Is(err, errors.ErrCodeLayoutInvalid) {
					printNextStep("Export anyway", "eventlayout export --force "+args[0])
				}
				return err
			}

			written, err := writeArtifacts(args[0], output, opts.Formats, result.Artifacts)
			if err != nil {
				return err
			}

			printSuccess("Exported %s", args[0])
			for _, path := range written {
				printFile(path)
			}
			printStats(result.Stats.FieldCount, result.Stats.TotalSize, result.CacheInfo.RenderHit)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output path (a file for one format, a base name for several)")
	flags.StringVarP(&formats, "format", "f", "xml", "comma-separated formats: xml, json, line, dot, svg")
	flags.BoolVar(&force, "force", false, "export even when validation finds problems")
	flags.BoolVar(&recalc, "recalc", false, "recalculate positions before exporting")
	flags.BoolVar(&detailed, "detailed", false, "include types, alignment and values in diagrams")
	flags.BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.BoolVar(&refresh, "refresh", false, "re-read the source even when cached")

	return cmd
}

// writeArtifacts writes each format's artifact to its path from
// [artifactPaths] and returns the written paths in format order. Artifacts
// never overwrite the source.
func writeArtifacts(source, output string, formats []string, artifacts map[string][]byte) ([]string, error) {
	paths := artifactPaths(source, output, formats)
	written := make([]string, 0, len(formats))
	for _, format := range formats {
		path := paths[format]
		if filepath.Clean(path) == filepath.Clean(source) {
			return written, errors.New(errors.ErrCodeInvalidInput, "%s output would overwrite %s; choose another path with -o", format, source)
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return written, errors.Wrap(errors.ErrCodeIO, err, "create %s", dir)
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return written, errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
		}
		written = append(written, path)
	}
	return written, nil
}

// artifactPaths maps each format to its output file. With a single format an
// explicit output is used as is; otherwise output (or the source path) is a
// base name whose extension is replaced per format.
func artifactPaths(source, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}

	base := output
	if base == "" {
		base = source
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	for _, f := range formats {
		paths[f] = base + pipeline.Extension(f)
	}
	return paths
}
