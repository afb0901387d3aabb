// Package pkg provides the core libraries for eventlayout.
//
// # Overview
//
// eventlayout reads an event layout (one row per field, with a size, a start
// position and a value) from a spreadsheet, checks that the active fields
// tile the event without gaps or overlaps, and exports the encoded event as
// an XML document whose values are padded to their declared widths.
//
// # Architecture
//
// The typical data flow:
//
//	XLSX / CSV / JSON layout
//	         ↓
//	    [io] package (read rows into field records)
//	         ↓
//	    [layout] package (validate, recalculate, merge)
//	         ↓
//	    [export] package (fixed-width encode + assemble)
//	         ↓
//	    XML / JSON / line / DOT / SVG output
//
// # Quick Start
//
//	records, _ := io.ReadFile("layout.xlsx", io.Options{})
//
//	rep := layout.Validate(records)
//	if !rep.Valid() {
//	    layout.Recalculate(records)
//	}
//
//	m := export.Assemble(records)
//	_ = io.WriteXML(os.Stdout, m)
//
// # Main Packages
//
// [field] - The field record, its alignment rules and the active layout.
//
// [fixedwidth] - Fixed-width value encoding and the concatenated event line.
//
// [layout] - Validation reports, position recalculation, merging fields
// from another sheet and name filtering.
//
// [export] - Assembles the export model from a working set.
//
// [io] - Spreadsheet, CSV, JSON and XML readers and writers.
//
// [diagram] - Graphviz diagrams of field positions.
//
// ## Infrastructure
//
// [pipeline] - load → validate → export, shared by the CLI and the API.
// Results are cached through [cache].
//
// [cache] - File, Redis and null caches with content-hash keys.
//
// [session] - Editing sessions for the HTTP API (memory, file and Redis).
//
// [server] - The chi HTTP API over sessions and the pipeline.
//
// [config] - TOML configuration.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Pipeline and server hooks.
//
// [field]: https://pkg.go.dev/github.com/matzehuels/eventlayout/pkg/field
// [fixedwidth]: https://pkg.go.dev/github.com/matzehuels/eventlayout/pkg/fixedwidth
// [layout]: https://pkg.go.dev/github.com/matzehuels/eventlayout/pkg/layout
// [export]: https://pkg.go.dev/github.com/matzehuels/eventlayout/pkg/export
// [io]: https://pkg.go.dev/github.com/matzehuels/eventlayout/pkg/io
// [diagram]: https://pkg.go.dev/github.com/matzehuels/eventlayout/pkg/diagram
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/eventlayout/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/eventlayout/pkg/cache
// [session]: https://pkg.go.dev/github.com/matzehuels/eventlayout/pkg/session
// [server]: https://pkg.go.dev/github.com/matzehuels/eventlayout/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/eventlayout/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/eventlayout/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/eventlayout/pkg/observability
package pkg
