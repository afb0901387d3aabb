package layout

import (
	"slices"
	"testing"

	"github.com/matzehuels/eventlayout/pkg/field"
)

func TestNextPosition(t *testing.T) {
	tests := []struct {
		name    string
		records []*field.Record
		want    int
	}{
		{"empty", nil, 1},
		{"contiguous", []*field.Record{input("A", 1, 3), input("B", 4, 2)}, 6},
		{"unordered", []*field.Record{input("B", 10, 2), input("A", 1, 3)}, 12},
		{"ignores unpositioned", []*field.Record{{Name: "A", Size: field.IntPtr(3)}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextPosition(tt.records); got != tt.want {
				t.Errorf("NextPosition() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMergeAppendsNewFields(t *testing.T) {
	a := input("A", 1, 3)
	a.Line = 6
	target := []*field.Record{a}

	x := input("X", 50, 2)
	y := input("Y", 60, 4)
	origin := []*field.Record{x, y}

	out, res := Merge(target, origin, MergeOptions{})

	if !slices.Equal(res.Added, []string{"X", "Y"}) {
		t.Fatalf("Added = %v", res.Added)
	}
	if len(out) != 3 || len(target) != 1 {
		t.Fatalf("len(out) = %d, len(target) = %d", len(out), len(target))
	}
	gotX, gotY := out[1], out[2]
	if *gotX.Start != 4 || *gotX.End != 5 || gotX.Line != 7 {
		t.Errorf("X = start %d end %d line %d, want 4 5 7", *gotX.Start, *gotX.End, gotX.Line)
	}
	if *gotY.Start != 6 || *gotY.End != 9 || gotY.Line != 8 {
		t.Errorf("Y = start %d end %d line %d, want 6 9 8", *gotY.Start, *gotY.End, gotY.Line)
	}
	if *x.Start != 50 {
		t.Error("origin record was modified")
	}
}

func TestMergeExistingFields(t *testing.T) {
	newTarget := func() []*field.Record {
		a := input("A", 1, 3)
		a.Type = "TEXTO"
		return []*field.Record{a}
	}
	o := input("A", 99, 8)
	o.Type = "INTEIRO"
	o.Default = "0"

	t.Run("skipped without update", func(t *testing.T) {
		target := newTarget()
		out, res := Merge(target, []*field.Record{o}, MergeOptions{})
		if len(out) != 1 || !slices.Equal(res.Skipped, []string{"A"}) {
			t.Fatalf("out=%d skipped=%v", len(out), res.Skipped)
		}
		if target[0].Type != "TEXTO" {
			t.Error("skipped field was modified")
		}
	})

	t.Run("updated", func(t *testing.T) {
		target := newTarget()
		out, res := Merge(target, []*field.Record{o}, MergeOptions{Update: true})
		if len(out) != 1 || !slices.Equal(res.Updated, []string{"A"}) {
			t.Fatalf("out=%d updated=%v", len(out), res.Updated)
		}
		got := out[0]
		if got.Type != "INTEIRO" || *got.Size != 8 || got.Value != "0" {
			t.Errorf("updated = type %s size %d value %q", got.Type, *got.Size, got.Value)
		}
		if *got.Start != 1 {
			t.Errorf("update moved start to %d", *got.Start)
		}
	})
}

func TestMergeNames(t *testing.T) {
	origin := []*field.Record{input("X", 1, 1), input("Y", 2, 1)}
	_, res := Merge(nil, origin, MergeOptions{Names: []string{"Y"}})
	if !slices.Equal(res.Added, []string{"Y"}) {
		t.Errorf("Added = %v, want [Y]", res.Added)
	}
}

func TestFilter(t *testing.T) {
	a := input("CODIGO_CLIENTE", 1, 3)
	b := input("VALOR", 4, 2)
	b.Description = "Valor do cliente"
	c := input("DATA", 6, 8)
	records := []*field.Record{a, nil, b, c}

	if got := Filter(records, "cliente"); len(got) != 2 {
		t.Errorf("Filter(cliente) = %d records, want 2", len(got))
	}
	if got := Filter(records, ""); len(got) != 3 {
		t.Errorf("Filter(\"\") = %d records, want 3", len(got))
	}
	if got := Filter(records, "nothing"); len(got) != 0 {
		t.Errorf("Filter(nothing) = %d records, want 0", len(got))
	}
}
