// Package cli implements the eventlayout command-line interface.
//
// Every command takes a layout source (an .xlsx/.xlsm workbook, a .csv export
// of the layout sheet or a saved .json working set) and runs it through
// [pipeline.Runner] or the layout packages directly.
//
// # Commands
//
//   - validate: report gaps, overlaps and field problems
//   - recalc: reassign start and end positions and save back
//   - export: write the event XML (and json, line, dot, svg)
//   - show, edit: inspect or edit the working set in the terminal
//   - encode: fixed-width encode a single value
//   - merge: copy fields from another layout
//   - diagram: render the layout as a Graphviz record diagram
//   - serve: run the HTTP API
//   - cache: manage the local artifact cache
//
// # Configuration
//
// Defaults come from eventlayout.toml (see [config.Find]); --sheet and
// --data-row override the loaded values for a single run.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/eventlayout/pkg/cache"
	"github.com/matzehuels/eventlayout/pkg/config"
	"github.com/matzehuels/eventlayout/pkg/errors"
	"github.com/matzehuels/eventlayout/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "eventlayout"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded by the root command before any subcommand runs.
	Config *config.Config
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, nil, c.Logger)
	r.ArtifactTTL = c.Config.Cache.TTL.Duration
	return r, nil
}

// newCache returns the configured cache: Redis when an address is set, the
// XDG file cache otherwise. An unusable cache directory disables caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || !c.Config.Cache.Enabled {
		return cache.NewNullCache(), nil
	}
	if addr := c.Config.Cache.RedisAddr; addr != "" {
		return cache.NewRedisCache(ctx, addr)
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create cache dir %s", dir)
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/eventlayout/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions builds pipeline options for path from the loaded
// configuration. Command flags are applied by the caller.
func (c *CLI) pipelineOptions(path string) pipeline.Options {
	cfg := c.Config
	opts := pipeline.Options{
		Path:         path,
		Sheet:        cfg.Sheet,
		DataStartRow: cfg.DataStartRow,
		Formats:      slices.Clone(cfg.Export.Formats),
		Indent:       cfg.Export.Indent,
		Force:        cfg.Export.Force,
	}
	opts.SetRenderDefaults()
	return opts
}
