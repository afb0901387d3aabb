package io

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/eventlayout/pkg/field"
)

// column describes one spreadsheet column of the layout template.
//
// Exactly one of str and num is set. index is the 0-based position in the
// standard template, or -1 for columns the template does not carry.
type column struct {
	header  string
	index   int
	aliases []string
	str     func(*field.Record) *string
	num     func(*field.Record) **int
}

// Columns of the "Campos Entrada" template, in template order.
var columns = []*column{
	strCol("Entrada", 0, func(r *field.Record) *string { return &r.Input }),
	strCol("Persistencia", 1, func(r *field.Record) *string { return &r.Persistence }),
	strCol("Enriquecimento", 2, func(r *field.Record) *string { return &r.Enrichment }),
	strCol("MapaAtributo", 3, func(r *field.Record) *string { return &r.AttributeMap }),
	strCol("Saida", 4, func(r *field.Record) *string { return &r.Output }),
	strCol("CampoConcatenado", 5, func(r *field.Record) *string { return &r.Concatenated }),
	numCol("IdentificadorCampo", 6, func(r *field.Record) **int { return &r.ID }, "ID", "IdCampo"),
	strCol("NomeCampo", 7, func(r *field.Record) *string { return &r.Name }, "Nome", "Campo", "FieldName"),
	strCol("DescricaoCampo", 8, func(r *field.Record) *string { return &r.Description }, "Descricao"),
	strCol("TipoCampo", 9, func(r *field.Record) *string { return &r.Type }, "Tipo"),
	numCol("TamanhoCampo", 10, func(r *field.Record) **int { return &r.Size }, "Tamanho"),
	numCol("PosicaoInicial", 11, func(r *field.Record) **int { return &r.Start }, "PosInicial", "PosIni"),
	numCol("PosicaoFinal", 12, func(r *field.Record) **int { return &r.End }, "PosFinal", "PosFin"),
	strCol("ValorPadrao", 13, func(r *field.Record) *string { return &r.Default }),
	strCol("AlinhamentoCampo", 14, func(r *field.Record) *string { return &r.Alignment }, "Alinhamento"),
	strCol("CampoObrigatorio", 15, func(r *field.Record) *string { return &r.Required }, "Obrigatorio"),
	strCol("DominioCampo", 16, func(r *field.Record) *string { return &r.Domain }, "Dominio"),
	strCol("MascaraCampo", 17, func(r *field.Record) *string { return &r.Mask }, "Mascara"),
	strCol("NomeTabela", 22, func(r *field.Record) *string { return &r.Table }, "Tabela"),
	strCol("NomeColuna", 23, func(r *field.Record) *string { return &r.Column }, "ColunaDB", "Coluna"),
	strCol("OracleDataType", 24, func(r *field.Record) *string { return &r.OracleType }, "OracleType"),
	numCol("DataLength", 25, func(r *field.Record) **int { return &r.DataLength }),
	numCol("NumberPrecision", 26, func(r *field.Record) **int { return &r.NumberPrecision }),
	numCol("NumberScale", 27, func(r *field.Record) **int { return &r.NumberScale }),
	strCol("Nullable", 28, func(r *field.Record) *string { return &r.Nullable }),
	strCol("Encrypted", 29, func(r *field.Record) *string { return &r.Encrypted }),
	strCol("Unique", 30, func(r *field.Record) *string { return &r.Unique }),
	strCol("RuleAttribute", 31, func(r *field.Record) *string { return &r.RuleAttribute }),
	strCol("DefaultValue", 32, func(r *field.Record) *string { return &r.DefaultValue }),
	strCol("Description", 33, func(r *field.Record) *string { return &r.RuleDescription }),
	strCol("Origin", 35, func(r *field.Record) *string { return &r.Origin }),
	strCol("EventAttribute", 37, func(r *field.Record) *string { return &r.EventAttribute }),
	strCol("Type", 38, func(r *field.Record) *string { return &r.RuleType }),
	strCol("ModelAttribute", 39, func(r *field.Record) *string { return &r.ModelAttribute }),
	strCol("ScoreModelIn", 40, func(r *field.Record) *string { return &r.ScoreModelIn }),
	strCol("ValorUsuario", -1, func(r *field.Record) *string { return &r.Value }, "Valor"),
}

// Columns written back to a workbook. Passthrough metadata is never
// rewritten.
var saveColumns = []string{
	"NomeCampo", "DescricaoCampo", "TipoCampo", "AlinhamentoCampo", "CampoObrigatorio",
	"ValorPadrao", "Entrada", "Persistencia", "Enriquecimento", "Saida",
	"TamanhoCampo", "PosicaoInicial", "PosicaoFinal",
}

// headerMarkers identify the header row of a sheet.
var headerMarkers = map[string]bool{"nomecampo": true, "nome": true, "campo": true, "fieldname": true}

func strCol(header string, index int, str func(*field.Record) *string, aliases ...string) *column {
	return &column{header: header, index: index, aliases: normAll(header, aliases), str: str}
}

func numCol(header string, index int, num func(*field.Record) **int, aliases ...string) *column {
	return &column{header: header, index: index, aliases: normAll(header, aliases), num: num}
}

func normAll(header string, aliases []string) []string {
	out := []string{normalizeKey(header)}
	for _, a := range aliases {
		out = append(out, normalizeKey(a))
	}
	return out
}

func columnByHeader(header string) *column {
	for _, c := range columns {
		if c.header == header {
			return c
		}
	}
	return nil
}

var keySeparators = regexp.MustCompile(`[\s_\-]`)

// normalizeKey lowercases s and drops whitespace, underscores and hyphens,
// so "Nome Campo", "nome_campo" and "NomeCampo" compare equal.
func normalizeKey(s string) string {
	return strings.ToLower(keySeparators.ReplaceAllString(s, ""))
}

// set stores a raw cell value into r.
func (c *column) set(r *field.Record, raw string) {
	if c.str != nil {
		*c.str(r) = strings.TrimSpace(raw)
		return
	}
	*c.num(r) = parseInt(raw)
}

// get returns the cell text of r for c.
func (c *column) get(r *field.Record) string {
	if c.str != nil {
		return *c.str(r)
	}
	if p := *c.num(r); p != nil {
		return strconv.Itoa(*p)
	}
	return ""
}

// parseInt reads integer cells written as "12", "12.0" or " 12 ".
// Fractions are truncated; blank or non-numeric text yields nil.
func parseInt(raw string) *int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return field.IntPtr(n)
	}
	f, err := strconv.ParseFloat(s, 64)
	// NaN, ±Inf and anything outside the int range fail the bounds check.
	if err != nil || !(f >= math.MinInt && f < float64(math.MaxInt)) {
		return nil
	}
	return field.IntPtr(int(f))
}
