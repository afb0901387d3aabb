package fixedwidth

import "github.com/matzehuels/eventlayout/pkg/field"

// Line builds the flat record described by the active layout of records.
//
// Each active field contributes its encoded effective value at its start
// position. Positions not covered by any field are spaces. Overlapping fields
// are written in layout order, so the later field wins. Fields with a
// non-positive size or start are skipped.
func Line(records []*field.Record) string {
	active := field.ActiveLayout(records)

	width := 0
	for _, r := range active {
		if *r.Size > 0 && *r.Start > 0 {
			width = max(width, *r.Start+*r.Size-1)
		}
	}

	buf := make([]rune, width)
	for i := range buf {
		buf[i] = ' '
	}
	for _, r := range active {
		if *r.Size <= 0 || *r.Start <= 0 {
			continue
		}
		v := Encode(field.EffectiveValue(r), *r.Size, r.Alignment, r.Type)
		copy(buf[*r.Start-1:], []rune(v))
	}
	return string(buf)
}
