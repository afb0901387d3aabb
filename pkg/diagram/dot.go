// Package diagram draws the active layout of a record set as a Graphviz
// diagram: one record-shaped node per field in position order, with gap
// nodes between non-contiguous fields and red edges where fields overlap.
package diagram

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/eventlayout/pkg/field"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed adds the type, alignment and encoded-value preview to each
	// field node. When false, only name and positions are shown.
	Detailed bool
}

// ToDOT converts the active layout of records to Graphviz DOT.
func ToDOT(records []*field.Record, opts Options) string {
	active := field.ActiveLayout(records)

	var buf bytes.Buffer
	buf.WriteString("digraph layout {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=record, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	for i, r := range active {
		fmt.Fprintf(&buf, "  f%d [label=%s%s];\n", i, quote(label(r, opts.Detailed)), fill(r))
	}

	if len(active) > 0 {
		buf.WriteString("\n")
	}
	for i := 1; i < len(active); i++ {
		prev, cur := active[i-1], active[i]
		next := *prev.Start + *prev.Size
		switch {
		case *cur.Start > next:
			gap := *cur.Start - next
			fmt.Fprintf(&buf, "  g%d [label=\"gap %d-%d\\n%d byte(s)\", shape=box, style=\"dashed\", fontcolor=grey40, color=grey60];\n",
				i, next, *cur.Start-1, gap)
			fmt.Fprintf(&buf, "  f%d -> g%d -> f%d;\n", i-1, i, i)
		case *cur.Start < next:
			fmt.Fprintf(&buf, "  f%d -> f%d [color=red, fontcolor=red, label=%q];\n",
				i-1, i, fmt.Sprintf("overlap %d byte(s)", next-*cur.Start))
		default:
			fmt.Fprintf(&buf, "  f%d -> f%d;\n", i-1, i)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func label(r *field.Record, detailed bool) string {
	parts := []string{
		escapeRecord(r.Name),
		fmt.Sprintf("%d..%d", *r.Start, *r.Start+*r.Size-1),
		fmt.Sprintf("size %d", *r.Size),
	}
	if detailed {
		if r.Type != "" {
			parts = append(parts, escapeRecord(r.Type))
		}
		if a, ok := field.ParseAlignment(r.Alignment); ok {
			parts = append(parts, a.String())
		}
		if v := field.EffectiveValue(r); v != "" {
			parts = append(parts, escapeRecord("'"+v+"'"))
		}
	}
	return "{" + strings.Join(parts, "|") + "}"
}

func fill(r *field.Record) string {
	switch {
	case *r.Size <= 0 || *r.Start <= 0:
		return `, fillcolor="#fde2e1"`
	case r.End != nil && *r.End != *r.Start+*r.Size-1:
		return `, fillcolor="#fde2e1"`
	case r.IsRequired():
		return `, fillcolor="#e8f0fe"`
	}
	return ""
}

var recordSpecial = strings.NewReplacer(
	`{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`,
)

func escapeRecord(s string) string {
	return recordSpecial.Replace(s)
}

// quote wraps s in double quotes for DOT. Unlike %q it keeps backslashes,
// which carry the record-label escapes.
func quote(s string) string {
	return `"` + strings.NewReplacer(`"`, `\"`, "\n", `\n`).Replace(s) + `"`
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based <svg> tag with one whose
// width and height match the viewBox, so the diagram scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
