package field

import "strings"

// Alignment selects the pad character and the side padding goes on.
//
// The names follow the spreadsheet convention: the side names where the
// content sits relative to the padding for blanks, and where the zeros go for
// zeros. BlankLeft keeps content on the left (trailing spaces), ZeroLeft puts
// zeros on the left (leading zeros).
type Alignment int

const (
	// BlankLeft appends spaces.
	BlankLeft Alignment = iota + 1
	// BlankRight prepends spaces.
	BlankRight
	// ZeroLeft prepends zeros.
	ZeroLeft
	// ZeroRight appends zeros.
	ZeroRight
)

var alignmentNames = map[Alignment]string{
	BlankLeft:  "BLANK_LEFT",
	BlankRight: "BLANK_RIGHT",
	ZeroLeft:   "ZERO_LEFT",
	ZeroRight:  "ZERO_RIGHT",
}

// alignmentTokens maps accepted tokens, upper-cased, to alignments.
var alignmentTokens = map[string]Alignment{
	"BLANK_LEFT":      BlankLeft,
	"BLANK_RIGHT":     BlankRight,
	"ZERO_LEFT":       ZeroLeft,
	"ZERO_RIGHT":      ZeroRight,
	"BRANCO_ESQUERDA": BlankLeft,
	"BRANCO_DIREITA":  BlankRight,
	"ZERO_ESQUERDA":   ZeroLeft,
	"ZERO_DIREITA":    ZeroRight,
}

// Alignments lists every alignment in declaration order.
var Alignments = []Alignment{BlankLeft, BlankRight, ZeroLeft, ZeroRight}

// ParseAlignment parses an alignment token, ignoring case and surrounding
// whitespace. It returns false for empty or unrecognized tokens.
func ParseAlignment(s string) (Alignment, bool) {
	a, ok := alignmentTokens[strings.ToUpper(strings.TrimSpace(s))]
	return a, ok
}

// String returns the English token of a.
func (a Alignment) String() string {
	if s, ok := alignmentNames[a]; ok {
		return s
	}
	return "UNKNOWN"
}

// PadChar returns the padding character of a.
func (a Alignment) PadChar() rune {
	if a == ZeroLeft || a == ZeroRight {
		return '0'
	}
	return ' '
}

// PadsBefore reports whether padding is prepended to the content.
func (a Alignment) PadsBefore() bool {
	return a == BlankRight || a == ZeroLeft
}

// numericMarkers are substrings of type hints that denote numeric fields.
var numericMarkers = []string{"INTEIRO", "INTEGER", "DECIMAL", "NUMERO", "NUMBER", "NUMERIC"}

// IsNumericType reports whether a type hint denotes a numeric kind.
func IsNumericType(typeHint string) bool {
	t := strings.ToUpper(typeHint)
	for _, m := range numericMarkers {
		if strings.Contains(t, m) {
			return true
		}
	}
	return false
}
