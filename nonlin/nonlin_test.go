// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nonlin

import (
	"errors"
	"math"
	"testing"

	"github.com/chenhongbiao/GLMspiketraintutorial/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-12

func TestEstimateSmall(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 10}
	counts := []int{1, 3, 0, 2, 2, 5}
	nl, err := Estimate(x, counts, 5, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 5, nl.NBins())
	assert.InDelta(t, 0.0, nl.Range.Min, difTol)
	assert.InDelta(t, 10.0, nl.Range.Max, difTol)
	assert.InDeltaSlice(t, []float64{1, 3, 5, 7, 9}, nl.Centers, difTol)
	// bin 0: x in [0,2): counts 1,3 -> 2 / 0.5
	// bin 1: [2,4): 0,2 -> 1 / 0.5; bin 2: [4,6): 2 -> 2 / 0.5; bin 4: max value 10
	assert.Equal(t, []int{2, 2, 1, 0, 1}, nl.N)
	assert.InDeltaSlice(t, []float64{4, 2, 4, 0, 10}, nl.Values, difTol)
	assert.True(t, nl.Empty(3))
	assert.False(t, nl.Empty(4))
	assert.Equal(t, 4, nl.NParams())

	np := Params{NBins: 5}
	nlp, err := np.Estimate(x, counts, 0.5)
	require.NoError(t, err)
	assert.Equal(t, nl, nlp)
	np.Defaults()
	nlp, err = np.Estimate(x, counts, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 25, nlp.NBins())
}

func TestEvaluate(t *testing.T) {
	nl := &Nonlinearity{
		Centers: []float64{1, 3, 5, 7, 9},
		Values:  []float64{4, 2, 4, 0, 10},
		N:       []int{2, 2, 1, 0, 1},
	}
	assert.Equal(t, 4.0, nl.Evaluate(1))
	assert.Equal(t, 4.0, nl.Evaluate(-100)) // constant extrapolation
	assert.Equal(t, 10.0, nl.Evaluate(1e6))
	assert.Equal(t, 2.0, nl.Evaluate(3.2))
	assert.Equal(t, 4.0, nl.Evaluate(2)) // tie between 1 and 3 -> lower
	assert.Equal(t, 2.0, nl.Evaluate(2.0001))
	// empty bin at 7 falls back to nearest non-empty: 5 and 9 tie -> lower
	assert.Equal(t, 4.0, nl.Evaluate(7))
	assert.Equal(t, 10.0, nl.Evaluate(7.5))
	assert.Equal(t, 4.0, nl.Evaluate(6.5))
	assert.Equal(t, 2, nl.Nearest(6.9))
	assert.Equal(t, []float64{4, 10}, nl.Apply([]float64{0, 100}))
	assert.InDeltaSlice(t, []float64{0.4, 1}, nl.BinCounts([]float64{0, 100}, 0.1), difTol)
}

func TestEstimateConstant(t *testing.T) {
	nl, err := Estimate([]float64{2, 2, 2}, []int{1, 0, 2}, 4, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0, 0, 0}, nl.N)
	assert.Equal(t, 2.0, nl.Range.Min)
	assert.Equal(t, 2.0, nl.Range.Max)
	assert.InDelta(t, 1.0, nl.Values[0], difTol)
	for _, x := range []float64{-5, 2, 17} {
		assert.InDelta(t, 1.0, nl.Evaluate(x), difTol)
	}
}

func TestEstimateErrors(t *testing.T) {
	_, err := Estimate([]float64{1, 2}, []int{1}, 3, 1)
	assert.True(t, errors.Is(err, series.ErrDimensionMismatch))
	_, err = Estimate([]float64{1, 2}, []int{1, 0}, 0, 1)
	assert.True(t, errors.Is(err, series.ErrDimensionMismatch))
	_, err = Estimate(nil, nil, 3, 1)
	assert.True(t, errors.Is(err, series.ErrDegenerateInput))
	_, err = Estimate([]float64{1, 2}, []int{1, 0}, 3, 0)
	assert.Error(t, err)
	_, err = Estimate([]float64{1, math.NaN()}, []int{1, 0}, 3, 1)
	assert.Error(t, err)
	_, err = Estimate([]float64{math.Inf(-1), 1}, []int{1, 0}, 3, 1)
	assert.Error(t, err)
}

func TestEvaluateNoBin(t *testing.T) {
	nl := &Nonlinearity{
		Centers: []float64{1, 3},
		Values:  []float64{0, 0},
		N:       []int{0, 0},
	}
	assert.Equal(t, -1, nl.Nearest(2))
	assert.True(t, math.IsNaN(nl.Evaluate(2)))

	nl.N[1] = 4
	nl.Values[1] = 8
	assert.Equal(t, 8.0, nl.Evaluate(-3))
	assert.Equal(t, -1, nl.Nearest(math.NaN()))
	assert.True(t, math.IsNaN(nl.Evaluate(math.NaN())))
}

func TestMonotonicRecovery(t *testing.T) {
	src := rand.NewSource(5)
	nrm := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	n := 20000
	dt := 0.01
	x := make([]float64, n)
	counts := make([]int, n)
	for i := range x {
		x[i] = nrm.Rand()
		lambda := math.Exp(-1 + x[i])
		counts[i] = int(distuv.Poisson{Lambda: lambda, Src: src}.Rand())
	}
	nl, err := Estimate(x, counts, 10, dt)
	require.NoError(t, err)
	prev := -1.0
	for i, v := range nl.Values {
		if nl.N[i] < 500 {
			continue
		}
		assert.Greater(t, v, prev, "bin %d", i)
		prev = v
		if nl.N[i] < 2000 {
			continue
		}
		// well-sampled bins are close to the true rate at the bin center
		want := math.Exp(-1+nl.Centers[i]) / dt
		assert.InEpsilon(t, want, v, 0.3, "bin %d", i)
	}
}

func TestXX1(t *testing.T) {
	xx1 := XX1Params{}
	xx1.Defaults()

	tstx := []float64{-0.05, -0.04, -0.03, -0.02, -0.01, 0, .01, .02, .03, .04, .05, .1, .2, .3, .4, .5}
	cory := []float64{1.7735989e-14, 7.155215e-12, 2.8866178e-09, 1.1645374e-06, 0.00046864923, 0.094767615, 0.47916666, 0.65277773, 0.742268, 0.7967479, 0.8333333, 0.90909094, 0.95238096, 0.96774197, 0.9756098, 0.98039216}
	for i := range tstx {
		ny := xx1.NoisyXX1(tstx[i])
		assert.InDelta(t, cory[i], ny, 1e-6, "x: %v", tstx[i])
	}
	prev := -1.0
	for x := -1.0; x < 2; x += 0.01 {
		r := xx1.Rate(x)
		assert.GreaterOrEqual(t, r, prev, "x: %v", x)
		assert.Less(t, r, xx1.MaxRate)
		prev = r
	}
}
