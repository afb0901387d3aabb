package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/eventlayout/pkg/field"
)

func TestReadCSVFrom(t *testing.T) {
	input := "\xef\xbb\xbfNome Campo,Tamanho,Pos_Inicial,PosFinal,Tipo,ValorPadrao,Obrigatorio\n" +
		"CODIGO,3,1,3,TEXTO,AB,S\n" +
		",9,9,9,,,\n" +
		"VALOR, 5.0 ,4,,INTEIRO,,N\n" +
		"SEMPOS,2,x,,TEXTO,,\n"

	records, err := ReadCSVFrom(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("ReadCSVFrom: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len = %d, want 3", len(records))
	}

	a := records[0]
	if a.Name != "CODIGO" || a.Line != 2 || *a.Size != 3 || *a.Start != 1 || *a.End != 3 {
		t.Errorf("first record = %s line %d", a, a.Line)
	}
	if a.Input != field.Yes {
		t.Errorf("Input = %q, want S when no Entrada column", a.Input)
	}
	if a.Value != "AB" {
		t.Errorf("Value = %q, want default AB", a.Value)
	}

	b := records[1]
	if b.Line != 4 || *b.Size != 5 || b.End != nil || b.Type != "INTEIRO" {
		t.Errorf("second record = %s line %d", b, b.Line)
	}

	if records[2].Start != nil {
		t.Errorf("non-numeric start parsed as %d", *records[2].Start)
	}
}

func TestReadCSVSemicolon(t *testing.T) {
	input := "NomeCampo;TamanhoCampo;PosicaoInicial;Entrada;DefaultValue;ValorUsuario\n" +
		"A;2;1;N;x;\n" +
		"B;3;3;S;dv;typed\n"

	records, err := ReadCSVFrom(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("ReadCSVFrom: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	if records[0].Input != "N" || records[0].Value != "x" {
		t.Errorf("A = input %q value %q", records[0].Input, records[0].Value)
	}
	if records[1].Value != "typed" {
		t.Errorf("B value = %q, want the user value", records[1].Value)
	}
}

func TestReadCSVDataStartRow(t *testing.T) {
	input := "NomeCampo,TamanhoCampo\nA,1\nB,2\nC,3\n"
	records, err := ReadCSVFrom(strings.NewReader(input), Options{DataStartRow: 4})
	if err != nil {
		t.Fatalf("ReadCSVFrom: %v", err)
	}
	if len(records) != 1 || records[0].Name != "C" {
		t.Errorf("records = %v, want only C", records)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	orig := []*field.Record{
		{
			Name: "CODIGO", Input: "S", Persistence: "N", ID: field.IntPtr(7), Type: "TEXTO",
			Size: field.IntPtr(3), Start: field.IntPtr(1), End: field.IntPtr(3),
			Default: "AB", Alignment: "BLANK_LEFT", Required: "S", Column: "CD",
			NumberScale: field.IntPtr(2), RuleDescription: "rule", Value: "XYZ",
		},
		{Name: "VAZIO", Input: "N"},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, orig); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	got, err := ReadCSVFrom(&buf, Options{})
	if err != nil {
		t.Fatalf("ReadCSVFrom: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	g := got[0]
	if g.Name != "CODIGO" || *g.ID != 7 || *g.Size != 3 || *g.Start != 1 || *g.End != 3 {
		t.Errorf("layout lost: %s", g)
	}
	if g.Persistence != "N" || g.Alignment != "BLANK_LEFT" || g.Column != "CD" || g.RuleDescription != "rule" {
		t.Errorf("attributes lost: %+v", g)
	}
	if g.NumberScale == nil || *g.NumberScale != 2 {
		t.Errorf("NumberScale = %v, want 2", g.NumberScale)
	}
	if g.Value != "XYZ" {
		t.Errorf("Value = %q, want XYZ", g.Value)
	}
	if got[1].Input != "N" || got[1].Size != nil {
		t.Errorf("second = %+v", got[1])
	}
}
