package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/eventlayout/pkg/buildinfo"
	"github.com/matzehuels/eventlayout/pkg/config"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	verbose      bool
	configPath   string
	sheet        string
	dataStartRow int
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// Before any subcommand runs the root command sets the log level, loads the
// configuration and applies the --sheet and --data-row overrides.
func (c *CLI) RootCommand() *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:           appName,
		Short:         "Validate and export fixed-width event layouts",
		Long:          `eventlayout reads event layouts from spreadsheets, checks field positions for gaps and overlaps, and exports the encoded event as XML.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd, g)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&g.configPath, "config", "", "config file (default ./eventlayout.toml)")
	pf.StringVar(&g.sheet, "sheet", "", "worksheet holding the layout")
	pf.IntVar(&g.dataStartRow, "data-row", 0, "first data row (1-based)")

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.recalcCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.encodeCommand())
	root.AddCommand(c.mergeCommand())
	root.AddCommand(c.diagramCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	completeLayouts(root)

	return root
}

func (c *CLI) setup(cmd *cobra.Command, g globalFlags) error {
	if g.verbose {
		c.SetLogLevel(LogDebug)
	}

	cfg, path, err := config.Find(g.configPath)
	if err != nil {
		return err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}

	flags := cmd.Flags()
	if flags.Changed("sheet") {
		cfg.Sheet = g.sheet
	}
	if flags.Changed("data-row") {
		cfg.DataStartRow = g.dataStartRow
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.Config = cfg

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}
