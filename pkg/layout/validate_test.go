package layout

import (
	"strings"
	"testing"

	"github.com/matzehuels/eventlayout/pkg/field"
)

func input(name string, start, size int) *field.Record {
	return &field.Record{Name: name, Input: field.Yes, Start: field.IntPtr(start), Size: field.IntPtr(size)}
}

func codes(issues []Issue) []Code {
	out := make([]Code, len(issues))
	for i, is := range issues {
		out[i] = is.Code
	}
	return out
}

func TestValidateContiguous(t *testing.T) {
	rep := Validate([]*field.Record{input("A", 1, 3), input("B", 4, 2)})

	if !rep.Valid() {
		t.Fatalf("Valid() = false, errors: %v", rep.Messages(SeverityError))
	}
	if rep.TotalFields != 2 || rep.TotalSize != 5 {
		t.Errorf("totals = %d fields, %d bytes; want 2, 5", rep.TotalFields, rep.TotalSize)
	}
	if len(rep.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", rep.Messages(SeverityWarning))
	}
	if len(rep.Infos) != 1 || rep.Infos[0].Code != CodeSummary {
		t.Errorf("infos = %v, want one summary", rep.Infos)
	}
}

func TestValidateGap(t *testing.T) {
	rep := Validate([]*field.Record{input("A", 1, 3), input("B", 6, 2)})

	if !rep.Valid() {
		t.Fatalf("gap must not invalidate: %v", rep.Messages(SeverityError))
	}
	if len(rep.Warnings) != 1 || rep.Warnings[0].Code != CodeGap {
		t.Fatalf("warnings = %v, want one gap", codes(rep.Warnings))
	}
	if !strings.Contains(rep.Warnings[0].Message, "(2 byte(s))") {
		t.Errorf("gap message = %q, want 2 byte(s)", rep.Warnings[0].Message)
	}
	if rep.Warnings[0].Field != "B" {
		t.Errorf("gap field = %q, want B", rep.Warnings[0].Field)
	}
}

func TestValidateOneByteGap(t *testing.T) {
	rep := Validate([]*field.Record{input("A", 1, 3), input("B", 5, 2)})
	if len(rep.Warnings) != 1 || !strings.Contains(rep.Warnings[0].Message, "(1 byte(s))") {
		t.Errorf("warnings = %v, want one 1-byte gap", rep.Messages(SeverityWarning))
	}
}

func TestValidateOverlap(t *testing.T) {
	rep := Validate([]*field.Record{input("A", 1, 3), input("B", 3, 2)})

	if rep.Valid() {
		t.Fatal("overlap must invalidate the layout")
	}
	if got := codes(rep.Errors); len(got) != 1 || got[0] != CodeOverlap {
		t.Fatalf("errors = %v, want one overlap", got)
	}
	msg := rep.Errors[0].Message
	if !strings.Contains(msg, "ends at 3") || !strings.Contains(msg, "starts at 3") {
		t.Errorf("overlap message = %q", msg)
	}
	if len(rep.Infos) != 0 {
		t.Errorf("infos = %v, want none when errors exist", rep.Infos)
	}
}

func TestValidateRequiredMissing(t *testing.T) {
	a := input("A", 1, 3)
	a.Required = "S"
	rep := Validate([]*field.Record{a})

	if !rep.Valid() {
		t.Fatalf("required-empty must not invalidate: %v", rep.Messages(SeverityError))
	}
	if got := codes(rep.Warnings); len(got) != 1 || got[0] != CodeRequiredMissing {
		t.Errorf("warnings = %v, want one required-missing", got)
	}
}

func TestValidateRequiredSatisfiedByDefaults(t *testing.T) {
	for name, r := range map[string]*field.Record{
		"default":       {Required: "s", Default: "x"},
		"default value": {Required: "S", DefaultValue: "x"},
		"value":         {Required: "S", Value: "x"},
	} {
		t.Run(name, func(t *testing.T) {
			r.Name, r.Input, r.Start, r.Size = "A", field.Yes, field.IntPtr(1), field.IntPtr(3)
			rep := Validate([]*field.Record{r})
			if len(rep.Warnings) != 0 {
				t.Errorf("warnings = %v, want none", rep.Messages(SeverityWarning))
			}
		})
	}
}

func TestValidateTruncation(t *testing.T) {
	a := input("A", 1, 3)
	a.Value = "ABCD"
	b := input("B", 4, 3)
	b.Value = "çãé" // three characters, six bytes
	rep := Validate([]*field.Record{a, b})

	if got := codes(rep.Warnings); len(got) != 1 || got[0] != CodeTruncated {
		t.Fatalf("warnings = %v, want one truncation", got)
	}
	if rep.Warnings[0].Field != "A" {
		t.Errorf("truncated field = %q, want A", rep.Warnings[0].Field)
	}
}

func TestValidateEndMismatch(t *testing.T) {
	tests := []struct {
		name string
		end  int
		want int
	}{
		{"matching end", 3, 0},
		{"short end", 2, 1},
		{"long end", 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := input("A", 1, 3)
			a.End = field.IntPtr(tt.end)
			rep := Validate([]*field.Record{a})
			if got := len(rep.Errors); got != tt.want {
				t.Errorf("errors = %d, want %d: %v", got, tt.want, rep.Messages(SeverityError))
			}
			if tt.want == 1 {
				msg := rep.Errors[0].Message
				if !strings.Contains(msg, "expected=3") || !strings.Contains(msg, "start=1 + size=3") {
					t.Errorf("message = %q", msg)
				}
			}
		})
	}
}

func TestValidateInvalidSizeAndStart(t *testing.T) {
	a := input("A", 0, 0)
	rep := Validate([]*field.Record{a})

	got := codes(rep.Errors)
	if len(got) != 2 || got[0] != CodeInvalidSize || got[1] != CodeInvalidStart {
		t.Errorf("errors = %v, want [INVALID_SIZE INVALID_START]", got)
	}
	if got := codes(rep.Warnings); len(got) != 1 || got[0] != CodeNotFromOne {
		t.Errorf("warnings = %v, want [NOT_FROM_ONE]", got)
	}
}

func TestValidateNotFromOne(t *testing.T) {
	rep := Validate([]*field.Record{input("A", 2, 3), input("B", 5, 1)})
	if got := codes(rep.Warnings); len(got) != 1 || got[0] != CodeNotFromOne {
		t.Errorf("warnings = %v, want [NOT_FROM_ONE]", got)
	}
	if !rep.Valid() {
		t.Error("Valid() = false")
	}
}

func TestValidateNoActiveFields(t *testing.T) {
	inactive := input("A", 1, 3)
	inactive.Input = field.No
	rep := Validate([]*field.Record{inactive, {Name: "B", Input: field.Yes}})

	if got := codes(rep.Warnings); len(got) != 1 || got[0] != CodeNoActiveFields {
		t.Errorf("warnings = %v, want [NO_ACTIVE_FIELDS]", got)
	}
	if len(rep.Errors) != 0 || len(rep.Infos) != 0 {
		t.Errorf("errors=%v infos=%v, want none", rep.Errors, rep.Infos)
	}
	if rep.TotalFields != 0 || rep.TotalSize != 0 {
		t.Errorf("totals = %d, %d; want 0, 0", rep.TotalFields, rep.TotalSize)
	}
}

func TestValidateOrdersByStart(t *testing.T) {
	rep := Validate([]*field.Record{input("B", 4, 2), input("A", 1, 3)})
	if !rep.Valid() || len(rep.Warnings) != 0 {
		t.Errorf("unsorted input reported issues: %v %v", rep.Errors, rep.Warnings)
	}
}

func TestValidateDoesNotModify(t *testing.T) {
	b := input("B", 3, 2)
	Validate([]*field.Record{input("A", 1, 3), b})
	if *b.Start != 3 || b.End != nil {
		t.Errorf("Validate modified record: start=%d end=%v", *b.Start, b.End)
	}
}

func TestReportStatus(t *testing.T) {
	tests := []struct {
		name    string
		records []*field.Record
		prefix  string
	}{
		{"ok", []*field.Record{input("A", 1, 3)}, "OK: 1 fields | 3 bytes"},
		{"warnings", []*field.Record{input("A", 2, 3)}, "OK with warnings: 1 warning(s)"},
		{"invalid", []*field.Record{input("A", 1, 3), input("B", 2, 2)}, "INVALID: 1 error(s), 0 warning(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.records).Status(); !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("Status() = %q, want prefix %q", got, tt.prefix)
			}
		})
	}
}

func TestReportText(t *testing.T) {
	rep := Validate([]*field.Record{input("A", 1, 3), input("B", 2, 2), input("C", 9, 1)})
	text := rep.Text()

	for _, want := range []string{"=== WARNINGS ===", "=== ERRORS ===", "Total: 3 fields | Layout size: 6 bytes"} {
		if !strings.Contains(text, want) {
			t.Errorf("Text() missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "=== INFO ===") {
		t.Errorf("Text() has info section for invalid layout:\n%s", text)
	}
}
