package field

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Flag values used by the spreadsheet template for boolean-like columns.
const (
	Yes = "S"
	No  = "N"
)

// Record is one row of the layout configuration.
//
// Optional integers are pointers: nil means the cell was empty or not a
// number, which is different from an explicit zero.
type Record struct {
	// Identity
	Line int  `json:"line"`
	ID   *int `json:"id,omitempty"`

	// Inclusion flags (S/N). Only Input is evaluated.
	Input        string `json:"input"`
	Persistence  string `json:"persistence,omitempty"`
	Enrichment   string `json:"enrichment,omitempty"`
	AttributeMap string `json:"attribute_map,omitempty"`
	Output       string `json:"output,omitempty"`
	Concatenated string `json:"concatenated,omitempty"`

	// Descriptive
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Layout
	Type  string `json:"type,omitempty"`
	Size  *int   `json:"size,omitempty"`
	Start *int   `json:"start,omitempty"`
	End   *int   `json:"end,omitempty"`

	// Formatting
	Default   string `json:"default,omitempty"`
	Alignment string `json:"alignment,omitempty"`
	Required  string `json:"required,omitempty"`
	Domain    string `json:"domain,omitempty"`
	Mask      string `json:"mask,omitempty"`

	// Database mapping
	Table           string `json:"table,omitempty"`
	Column          string `json:"column,omitempty"`
	OracleType      string `json:"oracle_type,omitempty"`
	DataLength      *int   `json:"data_length,omitempty"`
	NumberPrecision *int   `json:"number_precision,omitempty"`
	NumberScale     *int   `json:"number_scale,omitempty"`
	Nullable        string `json:"nullable,omitempty"`
	Encrypted       string `json:"encrypted,omitempty"`
	Unique          string `json:"unique,omitempty"`

	// Rule/score attributes
	RuleAttribute   string `json:"rule_attribute,omitempty"`
	DefaultValue    string `json:"default_value,omitempty"`
	RuleDescription string `json:"rule_description,omitempty"`
	Origin          string `json:"origin,omitempty"`
	EventAttribute  string `json:"event_attribute,omitempty"`
	RuleType        string `json:"rule_type,omitempty"`
	ModelAttribute  string `json:"model_attribute,omitempty"`
	ScoreModelIn    string `json:"score_model_in,omitempty"`

	// Value is the operator-supplied value encoded on export.
	Value string `json:"value"`
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int { return &n }

// Active reports whether r takes part in the active layout: flagged as input
// with both start position and size defined.
func (r *Record) Active() bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(r.Input), Yes) && r.Start != nil && r.Size != nil
}

// IsRequired reports whether the required flag is set.
func (r *Record) IsRequired() bool {
	return strings.EqualFold(strings.TrimSpace(r.Required), Yes)
}

// ExpectedEnd returns Start+Size-1 when both are set. Otherwise it falls back
// to the declared end position, or 0.
func (r *Record) ExpectedEnd() int {
	if r.Start != nil && r.Size != nil {
		return *r.Start + *r.Size - 1
	}
	if r.End != nil {
		return *r.End
	}
	return 0
}

// ResolvedEnd prefers the declared end position and derives it otherwise.
func (r *Record) ResolvedEnd() int {
	if r.End != nil {
		return *r.End
	}
	return r.ExpectedEnd()
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	c := *r
	c.ID = clonePtr(r.ID)
	c.Size = clonePtr(r.Size)
	c.Start = clonePtr(r.Start)
	c.End = clonePtr(r.End)
	c.DataLength = clonePtr(r.DataLength)
	c.NumberPrecision = clonePtr(r.NumberPrecision)
	c.NumberScale = clonePtr(r.NumberScale)
	return &c
}

func (r *Record) String() string {
	return fmt.Sprintf("[%s] %s (pos %s-%s, size %s, type %s)",
		fmtPtr(r.ID), r.Name, fmtPtr(r.Start), fmtPtr(r.End), fmtPtr(r.Size), r.Type)
}

func clonePtr(p *int) *int {
	if p == nil {
		return nil
	}
	return IntPtr(*p)
}

func fmtPtr(p *int) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprint(*p)
}

// EffectiveValue resolves the value a record contributes to validation and
// export: Value, then Default, then DefaultValue. Blank candidates are
// skipped; the chosen candidate is returned untrimmed.
func EffectiveValue(r *Record) string {
	for _, v := range []string{r.Value, r.Default, r.DefaultValue} {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// ActiveLayout returns the active records of records ordered by ascending
// start position. Records with equal start keep their input order. The
// returned slice is new; the records themselves are shared with the input.
func ActiveLayout(records []*Record) []*Record {
	active := make([]*Record, 0, len(records))
	for _, r := range records {
		if r.Active() {
			active = append(active, r)
		}
	}
	slices.SortStableFunc(active, func(a, b *Record) int {
		return cmp.Compare(*a.Start, *b.Start)
	})
	return active
}

// TotalSize sums the sizes of the given records, skipping nil sizes.
func TotalSize(records []*Record) int {
	total := 0
	for _, r := range records {
		if r.Size != nil {
			total += *r.Size
		}
	}
	return total
}
