package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/eventlayout/pkg/errors"
	"github.com/matzehuels/eventlayout/pkg/field"
	pkgio "github.com/matzehuels/eventlayout/pkg/io"
	"github.com/matzehuels/eventlayout/pkg/pipeline"
)

// editCommand creates the edit command.
func (c *CLI) editCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <layout>",
		Short: "Edit field values and positions interactively",
		Long: `Edit opens the layout in a terminal editor. Values, sizes and start
positions can be changed; the layout is revalidated after every change.

Keys: ⏎ edit value, w size, p start, r recalculate, v validate, s save,
x export (X forces export of an invalid layout), q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]
			opts := c.pipelineOptions(path)

			records, err := pkgio.ReadFile(path, opts.ReadOptions())
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			actions := EditorActions{
				Save: func(records []*field.Record) error {
					return pkgio.WriteFile(path, records, opts.ReadOptions())
				},
				Export: func(records []*field.Record, force bool) (string, error) {
					return c.exportRecords(ctx, runner, opts, records, force)
				},
			}

			// The editor owns the terminal; keep log lines out of it.
			level := c.Logger.GetLevel()
			c.SetLogLevel(LogError)
			defer c.SetLogLevel(level)

			final, err := tea.NewProgram(NewEditorModel(filepath.Base(path), records, actions),
				tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "run editor")
			}
			if m, ok := final.(EditorModel); ok && m.Dirty {
				printWarning("Quit with unsaved changes to %s", path)
			}
			return nil
		},
	}

	return cmd
}

// exportRecords renders the configured formats of records next to the
// source file and returns the written file names.
func (c *CLI) exportRecords(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, records []*field.Record, force bool) (string, error) {
	opts.Force = opts.Force || force
	result, err := runner.Process(ctx, records, opts)
	if err != nil {
		return "", err
	}

	written, err := writeArtifacts(opts.Path, "", opts.Formats, result.Artifacts)
	if err != nil {
		return "", err
	}
	names := make([]string, len(written))
	for i, p := range written {
		names[i] = filepath.Base(p)
	}
	return fmt.Sprintf("%s (%d bytes)", strings.Join(names, ", "), result.Stats.TotalSize), nil
}
