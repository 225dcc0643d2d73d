// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package dmat builds the lagged (Hankel-structured) design matrix used to
regress spike counts on the recent history of a stimulus.

Row t of the matrix holds the Window most recent stimulus samples ending at
(and including) bin t, earliest first and most recent last.  Bins before the
start of the stimulus are zero.  Thus row t, column j equals row t-1, column
j+1, and the dot product of a row with a filter is a causal correlation of the
stimulus with the time-reversed filter -- filter index Window-1 weights the
current bin, index 0 the bin Window-1 steps back.

An optional leading column of ones carries the intercept (constant offset).
*/
package dmat

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/chenhongbiao/GLMspiketraintutorial/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a lagged stimulus design matrix.
type Matrix struct {

	// NumTimeBins x (Window [+1]) matrix values
	X *mat.Dense

	// number of stimulus lags in each row
	Window int

	// if true, column 0 is a constant 1 for the intercept
	Intercept bool
}

// Build returns the design matrix for stimulus with given window size,
// optionally with a leading intercept column of ones.
// Window must be between 1 and len(stim).
func Build(stim []float64, window int, intercept bool) (*Matrix, error) {
	n := len(stim)
	if window < 1 {
		return nil, &series.DimensionError{What: "window size", Got: window, Rel: ">=", Want: 1}
	}
	if window > n {
		return nil, &series.DimensionError{What: "window size", Got: window, Rel: "<=", Want: n}
	}
	off := 0
	if intercept {
		off = 1
	}
	nc := window + off
	vals := make([]float64, n*nc)
	for t := 0; t < n; t++ {
		row := vals[t*nc : (t+1)*nc]
		if intercept {
			row[0] = 1
		}
		st := t - window + 1
		for j := 0; j < window; j++ {
			if si := st + j; si >= 0 {
				row[off+j] = stim[si]
			}
		}
	}
	return &Matrix{X: mat.NewDense(n, nc, vals), Window: window, Intercept: intercept}, nil
}

// Rows returns the number of time bins (rows)
func (m *Matrix) Rows() int {
	r, _ := m.X.Dims()
	return r
}

// Cols returns the number of columns, including any intercept column
func (m *Matrix) Cols() int {
	_, c := m.X.Dims()
	return c
}

// Offset returns the column index of the first stimulus lag: 1 with an
// intercept column, else 0.
func (m *Matrix) Offset() int {
	if m.Intercept {
		return 1
	}
	return 0
}

// Lags returns the stimulus lags of row t, earliest first, excluding any
// intercept column.  The slice shares storage with the matrix.
func (m *Matrix) Lags(t int) []float64 {
	return m.X.RawRowView(t)[m.Offset():]
}

// Project returns the filter output for each row: the dot product of the
// stimulus lags with coefs, excluding the intercept.  len(coefs) must equal Window.
func (m *Matrix) Project(coefs []float64) ([]float64, error) {
	if err := series.CheckLen("filter length", len(coefs), m.Window); err != nil {
		return nil, err
	}
	n := m.Rows()
	out := make([]float64, n)
	for t := 0; t < n; t++ {
		out[t] = floats.Dot(m.Lags(t), coefs)
	}
	return out, nil
}

// Regressors returns the matrix with or without a leading intercept column,
// as requested, adding or removing the column as needed.  If the request
// matches the matrix as built, X itself is returned.
func (m *Matrix) Regressors(intercept bool) *mat.Dense {
	n := m.Rows()
	switch {
	case intercept == m.Intercept:
		return m.X
	case m.Intercept:
		return mat.DenseCopyOf(m.X.Slice(0, n, 1, m.Window+1))
	default:
		a := mat.NewDense(n, m.Window+1, nil)
		for t := 0; t < n; t++ {
			row := a.RawRowView(t)
			row[0] = 1
			copy(row[1:], m.X.RawRowView(t))
		}
		return a
	}
}

// SizeReport returns a string reporting the dimensions and memory footprint
// of the matrix.
func (m *Matrix) SizeReport() string {
	var b strings.Builder
	nmem := m.Rows() * m.Cols() * int(unsafe.Sizeof(float64(0)))
	fmt.Fprintf(&b, "%14s:\t Rows: %d\t Lags: %d\t Intercept: %v\t Mem: %v\n", "DesignMatrix", m.Rows(), m.Window, m.Intercept, (datasize.ByteSize)(nmem).HumanReadable())
	return b.String()
}
