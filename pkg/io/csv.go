package io

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/eventlayout/pkg/errors"
	"github.com/matzehuels/eventlayout/pkg/field"
)

// ReadCSV reads the layout from the CSV file at path. The separator is
// detected from the first line: ';' when it has more semicolons than commas,
// ',' otherwise.
func ReadCSV(path string, opts Options) ([]*field.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return ReadCSVFrom(f, opts)
}

// ReadCSVFrom reads a CSV layout from r. ReadCSVFrom does not close r.
func ReadCSVFrom(r io.Reader, opts Options) ([]*field.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read csv")
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = detectComma(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse csv")
	}
	return locate(rows, opts).records(rows), nil
}

func detectComma(data []byte) rune {
	line, _ := bufio.NewReader(bytes.NewReader(data)).ReadString('\n')
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}

// WriteCSV writes records as CSV with a header row naming every template
// column. The output reads back with [ReadCSVFrom].
func WriteCSV(w io.Writer, records []*field.Record) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.header
	}
	if err := cw.Write(header); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write csv header")
	}

	row := make([]string, len(columns))
	for _, r := range records {
		if r == nil {
			continue
		}
		for i, c := range columns {
			row[i] = c.get(r)
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "write csv line %d", r.Line)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "flush csv")
	}
	return nil
}
