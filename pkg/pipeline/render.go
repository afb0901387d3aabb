package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/eventlayout/pkg/diagram"
	"github.com/matzehuels/eventlayout/pkg/export"
	"github.com/matzehuels/eventlayout/pkg/field"
	"github.com/matzehuels/eventlayout/pkg/fixedwidth"
	pkgio "github.com/matzehuels/eventlayout/pkg/io"
)

// Render generates output artifacts in the requested formats. m must be the
// export model assembled from records.
func Render(ctx context.Context, m *export.Model, records []*field.Record, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, format, m, records, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders a single artifact.
func RenderFormat(ctx context.Context, format string, m *export.Model, records []*field.Record, opts Options) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case FormatXML:
		indent := opts.Indent
		if indent == "" {
			indent = pkgio.DefaultIndent
		}
		if err := pkgio.WriteXMLIndent(&buf, m, indent); err != nil {
			return nil, err
		}
	case FormatJSON:
		if err := pkgio.WriteJSON(&buf, m); err != nil {
			return nil, err
		}
	case FormatLine:
		buf.WriteString(fixedwidth.Line(records))
		buf.WriteByte('\n')
	case FormatDOT:
		buf.WriteString(diagram.ToDOT(records, diagram.Options{Detailed: opts.Detailed}))
	case FormatSVG:
		dot := diagram.ToDOT(records, diagram.Options{Detailed: opts.Detailed})
		return diagram.RenderSVG(ctx, dot)
	default:
		return nil, ValidateFormat(format)
	}
	return buf.Bytes(), nil
}
