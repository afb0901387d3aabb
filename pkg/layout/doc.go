// Package layout validates and re-lays fixed-width event layouts.
//
// # Validation
//
// [Validate] inspects the active layout (see [field.ActiveLayout]) and
// produces a [Report] with three ordered lists of issues:
//
//   - errors: internally inconsistent data (invalid size or start, an
//     explicit end that disagrees with start and size, overlapping fields)
//   - warnings: deviations callers may accept (gaps, a layout not starting
//     at 1, missing required values, values that will be truncated)
//   - infos: a single summary when no error was found
//
// A report is valid when it has no errors. Validation never returns a Go
// error and never modifies the records.
//
//	rep := layout.Validate(records)
//	if !rep.Valid() {
//	    fmt.Println(rep.Text())
//	}
//
// # Recalculation
//
// [Recalculate] assigns contiguous positions to the active layout starting at
// 1, keeping the existing order by start position. It fixes gaps, overlaps
// and end mismatches as long as every size is positive.
//
// # Merging
//
// [Merge] copies fields from another layout, appending unknown names at the
// next free position and optionally updating fields that already exist.
package layout
