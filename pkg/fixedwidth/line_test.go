package fixedwidth

import (
	"testing"

	"github.com/matzehuels/eventlayout/pkg/field"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name    string
		records []*field.Record
		want    string
	}{
		{
			name: "contiguous",
			records: []*field.Record{
				{Name: "B", Input: "S", Start: field.IntPtr(4), Size: field.IntPtr(4), Type: "INTEIRO", Value: "12"},
				{Name: "A", Input: "S", Start: field.IntPtr(1), Size: field.IntPtr(3), Value: "AB"},
			},
			want: "AB 0012",
		},
		{
			name: "gap filled with spaces",
			records: []*field.Record{
				{Name: "A", Input: "S", Start: field.IntPtr(1), Size: field.IntPtr(2), Value: "XY"},
				{Name: "B", Input: "S", Start: field.IntPtr(5), Size: field.IntPtr(1), Default: "Z"},
			},
			want: "XY  Z",
		},
		{
			name: "later field wins on overlap",
			records: []*field.Record{
				{Name: "A", Input: "S", Start: field.IntPtr(1), Size: field.IntPtr(3), Value: "AAA"},
				{Name: "B", Input: "S", Start: field.IntPtr(3), Size: field.IntPtr(2), Value: "BB"},
			},
			want: "AABB",
		},
		{
			name: "inactive and invalid skipped",
			records: []*field.Record{
				{Name: "A", Input: "S", Start: field.IntPtr(1), Size: field.IntPtr(2), Value: "OK"},
				{Name: "B", Input: "N", Start: field.IntPtr(3), Size: field.IntPtr(2), Value: "NO"},
				{Name: "C", Input: "S", Start: field.IntPtr(0), Size: field.IntPtr(2), Value: "NO"},
			},
			want: "OK",
		},
		{name: "empty", records: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Line(tt.records); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}
