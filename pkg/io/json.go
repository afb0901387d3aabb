package io

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/eventlayout/pkg/errors"
	"github.com/matzehuels/eventlayout/pkg/field"
)

// WriteJSON encodes v as indented JSON and writes it to w. It is used for
// export models, reports and working sets alike.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode json")
	}
	return nil
}

// ReadJSON decodes a working set written by [WriteJSON]: a JSON array of
// records. Nil entries are dropped.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]*field.Record, error) {
	var records []*field.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	out := records[:0]
	for _, rec := range records {
		if rec != nil {
			out = append(out, rec)
		}
	}
	return out, nil
}
