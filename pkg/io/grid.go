package io

import (
	"strings"

	"github.com/matzehuels/eventlayout/pkg/field"
)

// DefaultSheet is the worksheet holding the layout in the standard template.
const DefaultSheet = "Campos Entrada"

const (
	// templateDataRow is the first data row (1-based) of the standard
	// template when no header row can be detected.
	templateDataRow = 6

	// headerScanRows is how many leading rows are searched for a header.
	headerScanRows = 10
)

// Options controls how a layout is located inside its source.
type Options struct {
	// Sheet is the worksheet name, compared ignoring case, spaces,
	// underscores and hyphens. Defaults to [DefaultSheet].
	Sheet string

	// DataStartRow is the 1-based first row read as data. Rows before it
	// are skipped even when a header is found earlier. Zero means the row
	// after the header, or row 6 of the template.
	DataStartRow int
}

func (o Options) sheet() string {
	if strings.TrimSpace(o.Sheet) == "" {
		return DefaultSheet
	}
	return o.Sheet
}

// grid locates the layout inside a table of cell text.
type grid struct {
	header    int // 0-based header row, -1 when absent
	cols      map[*column]int
	dataStart int // 0-based
}

func locate(rows [][]string, opts Options) grid {
	g := grid{header: -1, cols: make(map[*column]int)}

	for i := 0; i < min(headerScanRows, len(rows)); i++ {
		if isHeaderRow(rows[i]) {
			g.header = i
			break
		}
	}

	if g.header < 0 {
		for _, c := range columns {
			if c.index >= 0 {
				g.cols[c] = c.index
			}
		}
		g.dataStart = templateDataRow - 1
		if opts.DataStartRow > 0 {
			g.dataStart = opts.DataStartRow - 1
		}
		return g
	}

	byKey := make(map[string]int)
	for j, cell := range rows[g.header] {
		k := normalizeKey(cell)
		if _, seen := byKey[k]; k != "" && !seen {
			byKey[k] = j
		}
	}
	for _, c := range columns {
		for _, a := range c.aliases {
			if j, ok := byKey[a]; ok {
				g.cols[c] = j
				break
			}
		}
	}
	g.dataStart = max(g.header+1, opts.DataStartRow-1)
	return g
}

func isHeaderRow(row []string) bool {
	for _, cell := range row {
		if headerMarkers[normalizeKey(cell)] {
			return true
		}
	}
	return false
}

// records decodes the data rows. Rows without a name are skipped.
func (g grid) records(rows [][]string) []*field.Record {
	_, hasInput := g.cols[columnByHeader("Entrada")]

	out := make([]*field.Record, 0, max(len(rows)-g.dataStart, 0))
	for i := g.dataStart; i < len(rows); i++ {
		row := rows[i]
		r := &field.Record{Line: i + 1}
		for c, j := range g.cols {
			if j < len(row) {
				c.set(r, row[j])
			}
		}
		if r.Name == "" {
			continue
		}
		if !hasInput {
			r.Input = field.Yes
		}
		if strings.TrimSpace(r.Value) == "" {
			r.Value = r.Default
			if strings.TrimSpace(r.Value) == "" {
				r.Value = r.DefaultValue
			}
		}
		out = append(out, r)
	}
	return out
}
