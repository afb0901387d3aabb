// Package field defines the field record of a fixed-width event layout.
//
// # Overview
//
// An event layout describes a flat record where every field occupies a fixed
// range of character positions. Layouts are maintained by operators in a
// spreadsheet, one row per field, and each row becomes a [Record].
//
// A Record carries four groups of attributes:
//
//   - identity: source line and optional numeric identifier
//   - layout: type hint, size, start position and optional end position
//   - formatting: default value, alignment token and required flag
//   - passthrough metadata: database mapping and rule/score attributes that
//     are copied to outputs but never evaluated
//
// # Active Layout
//
// Only a subset of records take part in positional checks and exports: those
// flagged as input (Input == "S") with both start position and size defined.
// [ActiveLayout] returns that subset ordered by ascending start position. All
// layout operations (validation, recalculation, export) work on it, while the
// full collection is kept for editing.
//
//	active := field.ActiveLayout(records)
//	for _, r := range active {
//	    fmt.Println(r.Name, *r.Start, *r.Size)
//	}
//
// # Effective Value
//
// The value a field contributes to an export is resolved by [EffectiveValue]:
// the operator value, then the sheet default (ValorPadrao), then the rule
// default (DefaultValue). Validation and export both use it so they always
// agree on what "the value" of a field is.
//
// # Alignment
//
// [Alignment] is a closed set of four pad-direction/pad-character pairs.
// [ParseAlignment] accepts the English tokens (BLANK_LEFT, ZERO_LEFT, ...) as
// well as the tokens used by the spreadsheet template (BRANCO_ESQUERDA,
// ZERO_ESQUERDA, ...). An empty or unknown token is not an alignment; callers
// derive one from the field type instead.
package field
