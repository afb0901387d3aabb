package export

import (
	"testing"

	"github.com/matzehuels/eventlayout/pkg/field"
)

func TestSanitizeTag(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"CODIGO", "CODIGO"},
		{"  codigo cliente ", "codigo_cliente"},
		{"valor/total", "valor_total"},
		{"data.hora-evento", "data.hora-evento"},
		{"123abc", "_123abc"},
		{"-x", "_-x"},
		{"_ok", "_ok"},
		{"", "campo"},
		{"   ", "campo"},
		{"ação", "a__o"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitizeTag(tt.in); got != tt.want {
				t.Errorf("SanitizeTag(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAssemble(t *testing.T) {
	records := []*field.Record{
		{
			Name: "VALOR", Input: "S", Type: "INTEIRO",
			Start: field.IntPtr(4), Size: field.IntPtr(5), Value: "42",
			Required: "S", Column: "VL_EVENTO",
		},
		{
			Name: "cod cliente", Input: "S", ID: field.IntPtr(1), Type: "TEXTO",
			Start: field.IntPtr(1), Size: field.IntPtr(3), Default: "AB",
			Alignment: "BLANK_RIGHT", Description: "  ",
		},
		{Name: "IGNORED", Input: "N", Start: field.IntPtr(9), Size: field.IntPtr(2)},
	}

	m := Assemble(records)

	if m.FieldCount != 2 || m.TotalSize != 8 {
		t.Fatalf("model = %d fields, %d bytes; want 2, 8", m.FieldCount, m.TotalSize)
	}

	first := m.Entries[0]
	if first.Tag != "cod_cliente" || first.Name != "cod cliente" {
		t.Errorf("first tag/name = %q/%q", first.Tag, first.Name)
	}
	if first.Value != " AB" {
		t.Errorf("first value = %q, want %q", first.Value, " AB")
	}
	if first.End != 3 || first.ID == nil || *first.ID != 1 {
		t.Errorf("first end=%d id=%v", first.End, first.ID)
	}
	if first.Description != "" {
		t.Errorf("blank description exported as %q", first.Description)
	}

	second := m.Entries[1]
	if second.Value != "00042" {
		t.Errorf("second value = %q, want 00042", second.Value)
	}
	if second.ID != nil {
		t.Errorf("second id = %v, want nil", *second.ID)
	}
	if second.Required != "S" || second.Column != "VL_EVENTO" || second.End != 8 {
		t.Errorf("second = %+v", second)
	}
}

func TestAssembleDeclaredEnd(t *testing.T) {
	r := &field.Record{Name: "A", Input: "S", Start: field.IntPtr(1), Size: field.IntPtr(3), End: field.IntPtr(9)}
	m := Assemble([]*field.Record{r})
	if m.Entries[0].End != 9 {
		t.Errorf("End = %d, want declared 9", m.Entries[0].End)
	}
}

func TestAssembleDoesNotShareRecords(t *testing.T) {
	r := &field.Record{Name: "A", Input: "S", Start: field.IntPtr(1), Size: field.IntPtr(3)}
	m := Assemble([]*field.Record{r})
	*m.Entries[0].Start = 99
	if *r.Start != 1 {
		t.Error("model shares Start with record")
	}
}

func TestAssembleEmpty(t *testing.T) {
	m := Assemble(nil)
	if m.FieldCount != 0 || m.TotalSize != 0 || len(m.Entries) != 0 {
		t.Errorf("Assemble(nil) = %+v", m)
	}
}
