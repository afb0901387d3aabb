// Package io reads layouts from spreadsheets and writes exports.
//
// # Overview
//
// Layouts are maintained as spreadsheets with one row per field. This
// package turns such a table into [field.Record] values and back, and
// serializes an [export.Model] as XML or JSON.
//
// Supported sources:
//
//   - Excel workbooks (.xlsx, .xlsm), read and updated with excelize
//   - CSV files, comma or semicolon separated, optionally with a UTF-8 BOM
//   - JSON working sets written by [WriteJSON]
//
// # Locating the Layout
//
// In a workbook the layout lives in the sheet named by [Options.Sheet]
// (default "Campos Entrada"). Sheet names and column headers are compared
// after lowercasing and removing spaces, underscores and hyphens, so
// "Campos_Entrada" and "camposentrada" both match.
//
// The first 10 rows are searched for a header row, recognized by a cell
// reading NomeCampo, Nome, Campo or FieldName. Columns are then matched by
// header, accepting common aliases (Tamanho for TamanhoCampo, PosIni for
// PosicaoInicial, ColunaDB for NomeColuna, ...). Without a header row the
// fixed column positions of the standard template apply and data starts at
// row 6.
//
// Rows without a field name are skipped. When the sheet has no Entrada
// column every field is treated as input. Integer cells accept "12", "12.0"
// and surrounding blanks; anything else reads as absent.
//
// # Values
//
// A record's Value starts as its ValorPadrao, or its DefaultValue when
// ValorPadrao is blank. A ValorUsuario column, when present and filled,
// takes precedence.
//
// # Saving
//
// [WriteSheet] updates the workbook in place: each record is written to its
// source row, only the editable columns are touched and formula cells are
// preserved.
//
// # XML
//
// [WriteXML] writes the export model as an <evento> document with one
// element per field inside <campos>:
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<evento tamanhoTotal="5" totalCampos="2">
//	    <campos>
//	        <A tipo="TEXTO" tamanho="3" posicaoInicial="1" posicaoFinal="3">AB </A>
//	        <B tipo="INTEIRO" tamanho="2" posicaoInicial="4" posicaoFinal="5">07</B>
//	    </campos>
//	</evento>
//
// [field.Record]: github.com/matzehuels/eventlayout/pkg/field.Record
// [export.Model]: github.com/matzehuels/eventlayout/pkg/export.Model
package io
