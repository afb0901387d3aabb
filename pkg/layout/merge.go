package layout

import (
	"slices"
	"strings"

	"github.com/matzehuels/eventlayout/pkg/field"
)

// MergeOptions controls [Merge].
type MergeOptions struct {
	// Names restricts the merge to origin fields with these names.
	// Empty means every origin field.
	Names []string

	// Update overwrites the attributes of target fields that share a name with
	// an origin field. Without it such fields are skipped.
	Update bool
}

// MergeResult lists the field names affected by [Merge].
type MergeResult struct {
	Added   []string `json:"added"`
	Updated []string `json:"updated"`
	Skipped []string `json:"skipped"`
}

// Merge copies fields from origin into target and returns the new target
// collection. Target records are shared with the result and may be updated
// in place; origin records are cloned.
//
// New fields are appended at the next free position (see [NextPosition]),
// one after another, and get source lines following the last target line so
// a save-back writes them to fresh rows.
func Merge(target, origin []*field.Record, opts MergeOptions) ([]*field.Record, MergeResult) {
	var res MergeResult
	out := slices.Clone(target)

	byName := make(map[string]*field.Record, len(target))
	lastLine := 0
	for _, r := range target {
		if r == nil {
			continue
		}
		if _, ok := byName[r.Name]; !ok {
			byName[r.Name] = r
		}
		lastLine = max(lastLine, r.Line)
	}

	for _, o := range origin {
		if o == nil || (len(opts.Names) > 0 && !slices.Contains(opts.Names, o.Name)) {
			continue
		}
		if existing, ok := byName[o.Name]; ok {
			if !opts.Update {
				res.Skipped = append(res.Skipped, o.Name)
				continue
			}
			updateFrom(existing, o)
			res.Updated = append(res.Updated, o.Name)
			continue
		}

		n := o.Clone()
		next := NextPosition(out)
		n.Start = field.IntPtr(next)
		n.End = nil
		if n.Size != nil {
			n.End = field.IntPtr(next + *n.Size - 1)
		}
		lastLine++
		n.Line = lastLine
		out = append(out, n)
		byName[n.Name] = n
		res.Added = append(res.Added, n.Name)
	}
	return out, res
}

// updateFrom copies the layout and formatting attributes of src onto dst.
func updateFrom(dst, src *field.Record) {
	set := func(d *string, s string) {
		if s != "" {
			*d = s
		}
	}
	set(&dst.Type, src.Type)
	set(&dst.Alignment, src.Alignment)
	set(&dst.Description, src.Description)
	set(&dst.Required, src.Required)
	set(&dst.Column, src.Column)
	set(&dst.Default, src.Default)
	if src.Size != nil {
		dst.Size = field.IntPtr(*src.Size)
	}
	if strings.TrimSpace(dst.Value) == "" {
		dst.Value = src.Default
	}
}

// NextPosition returns the first position after every positioned record,
// regardless of the input flag, or 1 when no record has a position.
func NextPosition(records []*field.Record) int {
	next := 1
	for _, r := range records {
		if r == nil || r.Start == nil || r.Size == nil {
			continue
		}
		next = max(next, *r.Start+*r.Size)
	}
	return next
}

// Filter returns the records whose name or description contains text,
// ignoring case. An empty text returns every non-nil record.
func Filter(records []*field.Record, text string) []*field.Record {
	text = strings.ToLower(strings.TrimSpace(text))
	out := make([]*field.Record, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		if text == "" ||
			strings.Contains(strings.ToLower(r.Name), text) ||
			strings.Contains(strings.ToLower(r.Description), text) {
			out = append(out, r)
		}
	}
	return out
}
