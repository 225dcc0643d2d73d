// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"bytes"
	"errors"
	"testing"

	"github.com/emer/etable/v2/etable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testData() *Data {
	return &Data{
		Stim:   []float64{0.5, -1.25, 2, 0, 3.5},
		Counts: []int{0, 2, 1, 0, 4},
		Dt:     0.01,
	}
}

func TestValidate(t *testing.T) {
	d := testData()
	require.NoError(t, d.Validate())
	assert.Equal(t, 5, d.Len())
	assert.Equal(t, 7, d.TotalSpikes())
	assert.InDelta(t, 1.4, d.MeanCount(), 1e-12)
	assert.InDelta(t, 140, d.MeanRate(), 1e-9)
	assert.InDelta(t, 0.05, d.Duration(), 1e-12)

	d.Counts = d.Counts[:4]
	err := d.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
	var de *DimensionError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 4, de.Got)
	assert.Equal(t, 5, de.Want)

	d = testData()
	d.Counts[1] = -1
	assert.True(t, errors.Is(d.Validate(), ErrInvalidCount))

	d = testData()
	d.Dt = 0
	assert.Error(t, d.Validate())
}

func TestFloat(t *testing.T) {
	assert.Equal(t, []float64{0, 2, 1, 0, 4}, testData().CountsFloat())
	assert.Equal(t, 0, Total(nil))
}

func TestTableRoundTrip(t *testing.T) {
	d := testData()
	dt := d.Table()
	assert.Equal(t, d.Len(), dt.Rows)

	rd, err := FromTable(dt, d.Dt)
	require.NoError(t, err)
	assert.Equal(t, d.Stim, rd.Stim)
	assert.Equal(t, d.Counts, rd.Counts)
}

func TestReadWriteTable(t *testing.T) {
	d := testData()
	var b bytes.Buffer
	require.NoError(t, d.WriteTable(&b, etable.Tab))

	rd, err := ReadTable(&b, etable.Tab, d.Dt)
	require.NoError(t, err)
	assert.Equal(t, d.Stim, rd.Stim)
	assert.Equal(t, d.Counts, rd.Counts)
	assert.Equal(t, d.Dt, rd.Dt)
}

func TestReadPlainTable(t *testing.T) {
	// first stimulus value is a whole number: later fractional values must survive
	csv := "Stim,Counts\n1,0\n2.5,3\n-0.75,1\n4,0\n"
	d, err := ReadTable(bytes.NewBufferString(csv), etable.Comma, 0.01)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, -0.75, 4}, d.Stim)
	assert.Equal(t, []int{0, 3, 1, 0}, d.Counts)
	assert.Equal(t, 0.01, d.Dt)

	// columns in any order, extra columns ignored, CRLF line ends
	tsv := "Time\tCounts\tStim\r\n0\t2\t3\r\n1\t0\t0.5\r\n"
	d, err = ReadTable(bytes.NewBufferString(tsv), etable.Tab, 0.001)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 0.5}, d.Stim)
	assert.Equal(t, []int{2, 0}, d.Counts)

	_, err = ReadTable(bytes.NewBufferString("Stim,Counts\n1,0.5\n"), etable.Comma, 0.01)
	assert.True(t, errors.Is(err, ErrInvalidCount))
}
