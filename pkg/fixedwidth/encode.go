// Package fixedwidth renders field values into fixed-width, padded text.
//
// Widths and lengths are counted in characters (runes), not bytes, so
// accented text keeps its declared width.
package fixedwidth

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/eventlayout/pkg/field"
)

// Encode fits value into exactly width characters.
//
// Values longer than width are cut to their first width characters whatever
// the alignment. Shorter values are padded as selected by
// [ResolveAlignment]. A negative width is treated as zero.
func Encode(value string, width int, alignment, typeHint string) string {
	width = max(width, 0)

	n := utf8.RuneCountInString(value)
	if n > width {
		return truncate(value, width)
	}
	diff := width - n
	if diff == 0 {
		return value
	}

	a := ResolveAlignment(alignment, typeHint)
	pad := strings.Repeat(string(a.PadChar()), diff)
	if a.PadsBefore() {
		return pad + value
	}
	return value + pad
}

// ResolveAlignment returns the parsed alignment token when it is recognized.
// Otherwise numeric type hints select [field.ZeroLeft] and everything else
// [field.BlankLeft].
func ResolveAlignment(alignment, typeHint string) field.Alignment {
	if a, ok := field.ParseAlignment(alignment); ok {
		return a
	}
	if field.IsNumericType(typeHint) {
		return field.ZeroLeft
	}
	return field.BlankLeft
}

func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
