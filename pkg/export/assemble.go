// Package export assembles the ordered export model of a layout.
//
// The model is format neutral: pkg/io serializes it to XML or JSON. Every
// entry carries the value already fitted to its field width.
package export

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/matzehuels/eventlayout/pkg/field"
	"github.com/matzehuels/eventlayout/pkg/fixedwidth"
)

// Model is the export of one layout, in ascending start order.
type Model struct {
	TotalSize  int     `json:"total_size"`
	FieldCount int     `json:"field_count"`
	Entries    []Entry `json:"fields"`
}

// Entry is one exported field. Optional attributes are empty when the
// source record left them blank.
type Entry struct {
	Tag         string `json:"tag"`
	Name        string `json:"name"`
	ID          *int   `json:"id,omitempty"`
	Type        string `json:"type"`
	Size        *int   `json:"size,omitempty"`
	Start       *int   `json:"start,omitempty"`
	End         int    `json:"end"`
	Alignment   string `json:"alignment,omitempty"`
	Required    string `json:"required,omitempty"`
	Description string `json:"description,omitempty"`
	Column      string `json:"column,omitempty"`
	Value       string `json:"value"`
}

// Assemble builds the export model of the active layout of records.
// Records are not modified and the model shares no memory with them.
func Assemble(records []*field.Record) *Model {
	active := field.ActiveLayout(records)

	m := &Model{
		TotalSize:  field.TotalSize(active),
		FieldCount: len(active),
		Entries:    make([]Entry, 0, len(active)),
	}
	for _, r := range active {
		m.Entries = append(m.Entries, entry(r))
	}
	return m
}

func entry(r *field.Record) Entry {
	e := Entry{
		Tag:         SanitizeTag(r.Name),
		Name:        r.Name,
		ID:          copyInt(r.ID),
		Type:        r.Type,
		Size:        copyInt(r.Size),
		Start:       copyInt(r.Start),
		End:         r.ResolvedEnd(),
		Alignment:   nonBlank(r.Alignment),
		Required:    nonBlank(r.Required),
		Description: nonBlank(r.Description),
		Column:      nonBlank(r.Column),
	}

	v := field.EffectiveValue(r)
	if r.Size != nil {
		v = fixedwidth.Encode(v, *r.Size, r.Alignment, r.Type)
	}
	e.Value = v
	return e
}

var invalidTagChars = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)

// SanitizeTag turns a field name into a valid XML element name. Characters
// outside letters, digits, '_', '.' and '-' become '_'; an empty name becomes
// "campo"; a name not starting with a letter or '_' gets a '_' prefix.
func SanitizeTag(name string) string {
	tag := invalidTagChars.ReplaceAllString(strings.TrimSpace(name), "_")
	if tag == "" {
		return "campo"
	}
	if c := rune(tag[0]); !unicode.IsLetter(c) && c != '_' {
		tag = "_" + tag
	}
	return tag
}

func nonBlank(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	return field.IntPtr(*p)
}
