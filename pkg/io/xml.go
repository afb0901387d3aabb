package io

import (
	"encoding/xml"
	"io"
	"strconv"

	"github.com/matzehuels/eventlayout/pkg/errors"
	"github.com/matzehuels/eventlayout/pkg/export"
)

// DefaultIndent is the indentation of XML output.
const DefaultIndent = "    "

// WriteXML writes m as an <evento> document indented with [DefaultIndent].
func WriteXML(w io.Writer, m *export.Model) error {
	return WriteXMLIndent(w, m, DefaultIndent)
}

// WriteXMLIndent writes m as an <evento> document:
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<evento tamanhoTotal="8" totalCampos="2">
//	    <campos>
//	        <CODIGO tipo="TEXTO" tamanho="3" posicaoInicial="1" posicaoFinal="3">AB </CODIGO>
//	        ...
//	    </campos>
//	</evento>
//
// Element names are the entry tags. Optional attributes are omitted when
// empty; tipo is always written.
func WriteXMLIndent(w io.Writer, m *export.Model, indent string) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write xml header")
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", indent)

	root := start("evento",
		attr("tamanhoTotal", strconv.Itoa(m.TotalSize)),
		attr("totalCampos", strconv.Itoa(m.FieldCount)))
	campos := start("campos")

	tokens := []xml.Token{root, campos}
	for _, e := range m.Entries {
		el := start(e.Tag, entryAttrs(e)...)
		tokens = append(tokens, el, xml.CharData(e.Value), el.End())
	}
	tokens = append(tokens, campos.End(), root.End())

	for _, t := range tokens {
		if err := enc.EncodeToken(t); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "encode xml")
		}
	}
	if err := enc.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "flush xml")
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write xml")
	}
	return nil
}

func entryAttrs(e export.Entry) []xml.Attr {
	var attrs []xml.Attr
	if e.ID != nil {
		attrs = append(attrs, attr("id", strconv.Itoa(*e.ID)))
	}
	attrs = append(attrs, attr("tipo", e.Type))
	if e.Size != nil {
		attrs = append(attrs, attr("tamanho", strconv.Itoa(*e.Size)))
	}
	if e.Start != nil {
		attrs = append(attrs, attr("posicaoInicial", strconv.Itoa(*e.Start)))
	}
	attrs = append(attrs, attr("posicaoFinal", strconv.Itoa(e.End)))

	optional := []struct{ name, value string }{
		{"alinhamento", e.Alignment},
		{"obrigatorio", e.Required},
		{"descricao", e.Description},
		{"colunaDB", e.Column},
	}
	for _, o := range optional {
		if o.value != "" {
			attrs = append(attrs, attr(o.name, o.value))
		}
	}
	return attrs
}

func start(name string, attrs ...xml.Attr) xml.StartElement {
	return xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs}
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}
