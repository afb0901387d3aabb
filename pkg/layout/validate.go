package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/eventlayout/pkg/field"
)

// Validate checks the positional consistency of the active layout of records.
//
// Layout problems are never returned as errors; they are collected in the
// report. Records are not modified.
func Validate(records []*field.Record) *Report {
	rep := newReport()

	active := field.ActiveLayout(records)
	if len(active) == 0 {
		rep.addWarning(CodeNoActiveFields, 0, "", "no input field (Input=S) with a defined position found")
		return rep
	}
	rep.TotalFields = len(active)

	for _, r := range active {
		checkRecord(rep, r)
	}
	checkContinuity(rep, active)

	rep.TotalSize = field.TotalSize(active)
	if rep.Valid() {
		rep.addInfo(CodeSummary, "layout valid: %d fields, %d bytes in total", rep.TotalFields, rep.TotalSize)
	}
	return rep
}

func checkRecord(rep *Report, r *field.Record) {
	size, start := *r.Size, *r.Start

	if size <= 0 {
		rep.addError(CodeInvalidSize, r.Line, r.Name,
			"line %d | field '%s': invalid size (%d)", r.Line, r.Name, size)
	}
	if start <= 0 {
		rep.addError(CodeInvalidStart, r.Line, r.Name,
			"line %d | field '%s': invalid start position (%d)", r.Line, r.Name, start)
	}
	if r.End != nil {
		if want := start + size - 1; *r.End != want {
			rep.addError(CodeEndMismatch, r.Line, r.Name,
				"line %d | field '%s': end=%d but expected=%d (start=%d + size=%d - 1)",
				r.Line, r.Name, *r.End, want, start, size)
		}
	}

	value := field.EffectiveValue(r)
	blank := strings.TrimSpace(value) == ""
	if r.IsRequired() && blank {
		rep.addWarning(CodeRequiredMissing, r.Line, r.Name,
			"line %d | field '%s': required but has no value", r.Line, r.Name)
	}
	if n := utf8.RuneCountInString(value); !blank && n > size {
		rep.addWarning(CodeTruncated, r.Line, r.Name,
			"line %d | field '%s': value has %d characters but size is %d, it will be truncated",
			r.Line, r.Name, n, size)
	}
}

func checkContinuity(rep *Report, active []*field.Record) {
	first := active[0]
	if *first.Start != 1 {
		rep.addWarning(CodeNotFromOne, first.Line, first.Name,
			"layout does not start at position 1 (first field '%s' starts at %d)", first.Name, *first.Start)
	}

	for i := 1; i < len(active); i++ {
		prev, cur := active[i-1], active[i]
		next := *prev.Start + *prev.Size
		switch {
		case *cur.Start > next:
			rep.addWarning(CodeGap, cur.Line, cur.Name,
				"gap between '%s' and '%s': expected position %d, found %d (%d byte(s))",
				prev.Name, cur.Name, next, *cur.Start, *cur.Start-next)
		case *cur.Start < next:
			rep.addError(CodeOverlap, cur.Line, cur.Name,
				"overlap between '%s' (ends at %d) and '%s' (starts at %d)",
				prev.Name, next-1, cur.Name, *cur.Start)
		}
	}
}
