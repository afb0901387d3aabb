package io

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/eventlayout/pkg/errors"
	"github.com/matzehuels/eventlayout/pkg/field"
)

var rawCells = excelize.Options{RawCellValue: true}

// ReadSheet reads the layout from the workbook at path.
func ReadSheet(path string, opts Options) ([]*field.Record, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readWorkbook(f, opts)
}

// ReadSheetFrom reads the layout from a workbook stream. ReadSheetFrom does
// not close r.
func ReadSheetFrom(r io.Reader, opts Options) ([]*field.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open workbook")
	}
	defer f.Close()
	return readWorkbook(f, opts)
}

func readWorkbook(f *excelize.File, opts Options) ([]*field.Record, error) {
	sheet, err := findSheet(f, opts.sheet())
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet, rawCells)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read sheet %q", sheet)
	}
	g := locate(rows, opts)
	if err := evalFormulas(f, sheet, rows, g); err != nil {
		return nil, err
	}
	return g.records(rows), nil
}

// evalFormulas fills mapped data cells that hold a formula without a cached
// result. Workbooks written by generators rather than by a spreadsheet
// application carry no cached values.
func evalFormulas(f *excelize.File, sheet string, rows [][]string, g grid) error {
	for i := g.dataStart; i < len(rows); i++ {
		for _, j := range g.cols {
			if j < len(rows[i]) && rows[i][j] != "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "cell %d,%d", j+1, i+1)
			}
			formula, err := f.GetCellFormula(sheet, cell)
			if err != nil || formula == "" {
				continue
			}
			v, err := f.CalcCellValue(sheet, cell, rawCells)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidFormat, err, "evaluate %s!%s (=%s)", sheet, cell, formula)
			}
			for len(rows[i]) <= j {
				rows[i] = append(rows[i], "")
			}
			rows[i][j] = v
		}
	}
	return nil
}

// WriteSheet updates the workbook at path in place with records.
//
// Each record is written to its source line. Only the editable columns are
// written and cells holding a formula are left alone. Records without a line
// are ignored.
func WriteSheet(path string, records []*field.Record, opts Options) error {
	f, err := openWorkbook(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sheet, err := findSheet(f, opts.sheet())
	if err != nil {
		return err
	}
	rows, err := f.GetRows(sheet, rawCells)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "read sheet %q", sheet)
	}
	g := locate(rows, opts)

	for _, r := range records {
		if r == nil || r.Line <= 0 {
			continue
		}
		for _, h := range saveColumns {
			c := columnByHeader(h)
			j, ok := g.cols[c]
			if !ok {
				continue
			}
			if err := writeCell(f, sheet, j+1, r.Line, c, r); err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "write %s line %d", h, r.Line)
			}
		}
	}

	if err := f.Save(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "save %s", path)
	}
	return nil
}

func writeCell(f *excelize.File, sheet string, col, row int, c *column, r *field.Record) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if formula, err := f.GetCellFormula(sheet, cell); err == nil && formula != "" {
		return nil
	}
	if c.num != nil {
		if p := *c.num(r); p != nil {
			return f.SetCellValue(sheet, cell, *p)
		}
		return f.SetCellStr(sheet, cell, "")
	}
	return f.SetCellStr(sheet, cell, *c.str(r))
}

func openWorkbook(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "stat %s", path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open workbook %s", path)
	}
	return f, nil
}

func findSheet(f *excelize.File, name string) (string, error) {
	want := normalizeKey(name)
	list := f.GetSheetList()
	for _, s := range list {
		if normalizeKey(s) == want {
			return s, nil
		}
	}
	return "", errors.New(errors.ErrCodeSheetNotFound, "sheet %q not found (available: %s)",
		name, strings.Join(quoteAll(list), ", "))
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
