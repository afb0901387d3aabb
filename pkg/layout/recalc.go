package layout

import "github.com/matzehuels/eventlayout/pkg/field"

// Recalculate lays the active layout out contiguously from position 1,
// rewriting Start and End of each active record in place. Inactive records
// are not touched. It returns the total width, which is the last position
// written.
//
// Applying Recalculate twice with unchanged sizes is a no-op the second time.
func Recalculate(records []*field.Record) int {
	cursor := 1
	for _, r := range field.ActiveLayout(records) {
		size := *r.Size
		r.Start = field.IntPtr(cursor)
		r.End = field.IntPtr(cursor + size - 1)
		cursor += size
	}
	return cursor - 1
}
