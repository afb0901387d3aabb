package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/eventlayout/pkg/export"
	"github.com/matzehuels/eventlayout/pkg/field"
)

func TestWriteXML(t *testing.T) {
	records := []*field.Record{
		{Name: "B", Input: "S", Type: "INTEIRO", Start: field.IntPtr(4), Size: field.IntPtr(2), Value: "7", Required: "S", Column: "CD_B"},
		{Name: "cod a", Input: "S", ID: field.IntPtr(3), Type: "TEXTO", Start: field.IntPtr(1), Size: field.IntPtr(3), Value: "A&B<", Description: "first"},
	}

	var buf bytes.Buffer
	if err := WriteXML(&buf, export.Assemble(records)); err != nil {
		t.Fatalf("WriteXML: %v", err)
	}

	want := `<?xml version="1.0" encoding="UTF-8"?>
<evento tamanhoTotal="5" totalCampos="2">
    <campos>
        <cod_a id="3" tipo="TEXTO" tamanho="3" posicaoInicial="1" posicaoFinal="3" descricao="first">A&amp;B</cod_a>
        <B tipo="INTEIRO" tamanho="2" posicaoInicial="4" posicaoFinal="5" obrigatorio="S" colunaDB="CD_B">07</B>
    </campos>
</evento>
`
	if got := buf.String(); got != want {
		t.Errorf("WriteXML() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteXMLEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXML(&buf, export.Assemble(nil)); err != nil {
		t.Fatalf("WriteXML: %v", err)
	}
	if !strings.Contains(buf.String(), `<evento tamanhoTotal="0" totalCampos="0">`) {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestWriteXMLIndent(t *testing.T) {
	records := []*field.Record{{Name: "A", Input: "S", Start: field.IntPtr(1), Size: field.IntPtr(1), Value: "x"}}

	var buf bytes.Buffer
	if err := WriteXMLIndent(&buf, export.Assemble(records), "\t"); err != nil {
		t.Fatalf("WriteXMLIndent: %v", err)
	}
	if !strings.Contains(buf.String(), "\n\t\t<A ") {
		t.Errorf("tab indentation not applied:\n%s", buf.String())
	}
}
