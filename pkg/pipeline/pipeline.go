// Package pipeline runs the eventlayout processing chain shared by the CLI
// and the HTTP API:
//
//  1. Load: read records from a workbook, CSV or JSON file
//  2. Prepare: optionally recalculate start/end positions
//  3. Validate: check positional consistency ([layout.Validate])
//  4. Export: assemble the export model and render it in each format
//
// Parsed sources and rendered artifacts are cached through [cache.Cache].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "layout.xlsx",
//	    Formats: []string{"xml"},
//	})
//	if errors.Is(err, errors.ErrCodeLayoutInvalid) {
//	    fmt.Println(result.Report.Text())
//	}
//	xml := result.Artifacts["xml"]
//
// Run the stages on records already in memory (an API session):
//
//	result, err := runner.Process(ctx, sess.Records, opts)
package pipeline

import (
	"strings"
	"time"

	"github.com/matzehuels/eventlayout/pkg/cache"
	"github.com/matzehuels/eventlayout/pkg/errors"
	"github.com/matzehuels/eventlayout/pkg/export"
	"github.com/matzehuels/eventlayout/pkg/field"
	pkgio "github.com/matzehuels/eventlayout/pkg/io"
	"github.com/matzehuels/eventlayout/pkg/layout"
)

// Format constants for export artifacts.
const (
	FormatXML  = "xml"
	FormatJSON = "json"
	FormatLine = "line"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// DefaultFormats is used when no format is requested.
var DefaultFormats = []string{FormatXML}

// ValidFormats is the set of supported export formats.
var ValidFormats = map[string]bool{
	FormatXML:  true,
	FormatJSON: true,
	FormatLine: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Load options
	Path         string `json:"path,omitempty"`
	Sheet        string `json:"sheet,omitempty"`
	DataStartRow int    `json:"data_start_row,omitempty"`
	Refresh      bool   `json:"refresh,omitempty"`

	// Prepare options
	Recalculate bool `json:"recalculate,omitempty"`

	// Export options
	Formats       []string `json:"formats,omitempty"`
	Indent        string   `json:"indent,omitempty"`
	Detailed      bool     `json:"detailed,omitempty"`
	Force         bool     `json:"force,omitempty"`
	AllowWarnings bool     `json:"allow_warnings,omitempty"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Records is the working set, after recalculation when requested.
	Records []*field.Record

	// Report is the validation report of Records.
	Report *layout.Report

	// Model is the assembled export. Nil when the layout was refused.
	Model *export.Model

	// LayoutHash is the content hash of Records used for artifact keys.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FieldCount   int
	TotalSize    int
	Errors       int
	Warnings     int
	LoadTime     time.Duration
	ValidateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether records came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: xml, json, line, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Extension returns the file extension for a format's artifact.
func Extension(format string) string {
	if format == FormatLine {
		return ".txt"
	}
	return "." + format
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// ValidateForLoad checks the source path.
func (o *Options) ValidateForLoad() error {
	if strings.TrimSpace(o.Path) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "path is required")
	}
	_, err := pkgio.FormatOf(o.Path)
	return err
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if o.Indent == "" {
		o.Indent = pkgio.DefaultIndent
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// Check decides whether a layout with report rep may be exported. Errors
// always block unless Force is set; warnings block unless AllowWarnings or
// Force is set.
func (o *Options) Check(rep *layout.Report) error {
	if o.Force {
		return nil
	}
	e, w := len(rep.Errors), len(rep.Warnings)
	if e > 0 || (w > 0 && !o.AllowWarnings) {
		return errors.Wrap(errors.ErrCodeLayoutInvalid, &errors.LayoutError{Errors: e, Warnings: w},
			"layout not exported")
	}
	return nil
}

// ReadOptions returns the reader options.
func (o *Options) ReadOptions() pkgio.Options {
	return pkgio.Options{Sheet: o.Sheet, DataStartRow: o.DataStartRow}
}

// RecordsKeyOpts returns cache key options for a parsed source.
func (o *Options) RecordsKeyOpts(format pkgio.Format) cache.RecordsKeyOpts {
	return cache.RecordsKeyOpts{
		Format:       string(format),
		Sheet:        o.Sheet,
		DataStartRow: o.DataStartRow,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatXML:
		opts.Indent = o.Indent
	case FormatDOT, FormatSVG:
		opts.Detailed = o.Detailed
	}
	return opts
}
