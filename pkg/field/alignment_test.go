package field

import "testing"

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		in     string
		want   Alignment
		wantOK bool
	}{
		{"BLANK_LEFT", BlankLeft, true},
		{"blank_right", BlankRight, true},
		{" ZERO_LEFT ", ZeroLeft, true},
		{"ZERO_RIGHT", ZeroRight, true},
		{"BRANCO_ESQUERDA", BlankLeft, true},
		{"branco_direita", BlankRight, true},
		{"ZERO_ESQUERDA", ZeroLeft, true},
		{"ZERO_DIREITA", ZeroRight, true},
		{"", 0, false},
		{"CENTER", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAlignment(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseAlignment(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestAlignmentPadding(t *testing.T) {
	tests := []struct {
		a      Alignment
		char   rune
		before bool
	}{
		{BlankLeft, ' ', false},
		{BlankRight, ' ', true},
		{ZeroLeft, '0', true},
		{ZeroRight, '0', false},
	}
	for _, tt := range tests {
		t.Run(tt.a.String(), func(t *testing.T) {
			if got := tt.a.PadChar(); got != tt.char {
				t.Errorf("PadChar() = %q, want %q", got, tt.char)
			}
			if got := tt.a.PadsBefore(); got != tt.before {
				t.Errorf("PadsBefore() = %v, want %v", got, tt.before)
			}
		})
	}
}

func TestIsNumericType(t *testing.T) {
	for in, want := range map[string]bool{
		"INTEIRO":     true,
		"decimal":     true,
		"NUMERO":      true,
		"Integer":     true,
		"NUMBER(10)":  true,
		"TEXTO":       false,
		"TEXT":        false,
		"":            false,
		"DATA_HORA":   false,
		"NUMERIC_ID":  true,
		"VALOR_TEXTO": false,
	} {
		if got := IsNumericType(in); got != want {
			t.Errorf("IsNumericType(%q) = %v, want %v", in, got, want)
		}
	}
}
