package io

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/eventlayout/pkg/errors"
	"github.com/matzehuels/eventlayout/pkg/field"
)

// Format is a tabular source format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// FormatOf returns the format of path from its extension.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupportedFormat, "unsupported file type %q for %s", ext, path)
	}
}

// Read decodes a layout of the given format from r.
func Read(r io.Reader, format Format, opts Options) ([]*field.Record, error) {
	switch format {
	case FormatXLSX:
		return ReadSheetFrom(r, opts)
	case FormatCSV:
		return ReadCSVFrom(r, opts)
	case FormatJSON:
		return ReadJSON(r)
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedFormat, "unsupported format %q", format)
	}
}

// ReadFile reads the layout at path, choosing the reader by extension.
func ReadFile(path string, opts Options) ([]*field.Record, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatXLSX:
		return ReadSheet(path, opts)
	case FormatCSV:
		return ReadCSV(path, opts)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteFile saves records to path. Workbooks are updated in place; CSV and
// JSON files are rewritten.
func WriteFile(path string, records []*field.Record, opts Options) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	if format == FormatXLSX {
		return WriteSheet(path, records, opts)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	if format == FormatCSV {
		err = WriteCSV(f, records)
	} else {
		err = WriteJSON(f, records)
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = errors.Wrap(errors.ErrCodeIO, cerr, "close %s", path)
	}
	return err
}
