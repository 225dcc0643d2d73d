// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
)

// Column names used for reading and writing Data tables
const (
	StimCol   = "Stim"
	CountsCol = "Counts"
)

// Schema returns the table schema for Data: one row per time bin.
func Schema() etable.Schema {
	return etable.Schema{
		{Name: StimCol, Type: etensor.FLOAT64},
		{Name: CountsCol, Type: etensor.INT64},
	}
}

// Table returns the data as an etable.Table with Stim and Counts columns.
func (d *Data) Table() *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "SpikeData")
	dt.SetMetaData("desc", fmt.Sprintf("stimulus and spike counts, dt = %g", d.Dt))
	dt.SetFromSchema(Schema(), len(d.Stim))
	for t := range d.Stim {
		dt.SetCellFloat(StimCol, t, d.Stim[t])
		dt.SetCellFloat(CountsCol, t, float64(d.Counts[t]))
	}
	return dt
}

// FromTable extracts Data from a table having Stim and Counts columns,
// with given bin width.  Counts must be whole non-negative numbers.
func FromTable(dt *etable.Table, binDt float64) (*Data, error) {
	d := &Data{Dt: binDt}
	d.Stim = make([]float64, dt.Rows)
	d.Counts = make([]int, dt.Rows)
	for t := 0; t < dt.Rows; t++ {
		s := dt.CellFloat(StimCol, t)
		c := dt.CellFloat(CountsCol, t)
		if math.IsNaN(s) || math.IsNaN(c) {
			return nil, fmt.Errorf("series: row %d: missing or non-numeric %s / %s value", t, StimCol, CountsCol)
		}
		if c != math.Trunc(c) {
			return nil, fmt.Errorf("%w: non-integer count %v in row %d", ErrInvalidCount, c, t)
		}
		d.Stim[t] = s
		d.Counts[t] = int(c)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// ReadTable reads Data from a delimited text table with a header row
// naming the Stim and Counts columns.  The header can be plain names, as
// from a spreadsheet, or typed etable headers as written by WriteTable.
// Plain-named columns are read as float64 values, whatever the first row
// looks like, so an integer first stimulus value does not make the whole
// column integer.
func ReadTable(r io.Reader, delim etable.Delims, binDt float64) (*Data, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("series: reading table: %w", err)
	}
	if b, err = typedHeaders(b, delim); err != nil {
		return nil, err
	}
	dt := &etable.Table{}
	if err := dt.ReadCSV(bytes.NewReader(b), delim); err != nil {
		return nil, fmt.Errorf("series: reading table: %w", err)
	}
	return FromTable(dt, binDt)
}

// delimRune returns the field separator for delim, or 0 if it has none
func delimRune(delim etable.Delims) rune {
	switch delim {
	case etable.Tab:
		return '\t'
	case etable.Comma:
		return ','
	}
	return 0
}

// typedHeaders replaces a plain header row of names with typed etable
// headers: float64 for Stim, Counts and any other column.  Text that already
// has typed headers, or no recognizable header, is returned unchanged.
func typedHeaders(b []byte, delim etable.Delims) ([]byte, error) {
	dr := delimRune(delim)
	if dr == 0 {
		return b, nil
	}
	eol := bytes.IndexByte(b, '\n')
	if eol < 0 {
		eol = len(b)
	}
	line := strings.TrimRight(string(b[:eol]), "\r")
	names := strings.Split(line, string(dr))
	hasStim := false
	for i, nm := range names {
		nm = strings.Trim(strings.TrimSpace(nm), "\"")
		if nm == "" || strings.ContainsAny(nm[:1], "_$%#|@^") {
			return b, nil
		}
		names[i] = nm
		if nm == StimCol {
			hasStim = true
		}
	}
	if !hasStim {
		return b, nil
	}
	sch := make(etable.Schema, len(names))
	for i, nm := range names {
		sch[i] = etable.Column{Name: nm, Type: etensor.FLOAT64}
	}
	hdr := &etable.Table{}
	hdr.SetFromSchema(sch, 0)
	var out bytes.Buffer
	hdr.WriteCSVHeaders(&out, delim)
	typed := bytes.TrimRight(out.Bytes(), "\r\n")
	if len(typed) == 0 {
		return nil, fmt.Errorf("series: could not write typed headers for %v", names)
	}
	return append(typed, b[eol:]...), nil
}

// WriteTable writes Data as a delimited text table with headers,
// readable by ReadTable.
func (d *Data) WriteTable(w io.Writer, delim etable.Delims) error {
	return d.Table().WriteCSV(w, delim, etable.Headers)
}
