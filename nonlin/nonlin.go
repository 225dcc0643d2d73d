// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package nonlin estimates the static nonlinearity that maps the output of a
fitted linear filter to a firing rate.

The estimate is non-parametric: the range of filter outputs is split into
equal-width bins and the rate in each bin is the mean observed spike count of
the time bins whose filter output falls there, divided by the bin width dt.
The result is piecewise constant: evaluating at any x returns the value of
the nearest bin center, with constant extrapolation beyond the edges.

Bins that received no samples are marked Empty and never supply a value;
evaluation falls back to the nearest non-empty bin instead.

The package also provides a parametric saturating nonlinearity, XX1Params,
for generating synthetic linear-nonlinear-Poisson data.
*/
package nonlin

import (
	"fmt"
	"math"

	"github.com/chenhongbiao/GLMspiketraintutorial/series"
	"github.com/emer/etable/v2/minmax"
	"gonum.org/v1/gonum/floats"
)

// Params are the parameters for the non-parametric nonlinearity estimate
type Params struct {
	NBins int `def:"25" min:"1" desc:"number of equal-width bins spanning the range of filter outputs -- more bins resolve more shape but each bin averages fewer samples"`
}

func (np *Params) Defaults() {
	np.NBins = 25
}

// Estimate returns the binned nonlinearity using NBins bins
func (np *Params) Estimate(x []float64, counts []int, dt float64) (*Nonlinearity, error) {
	return Estimate(x, counts, np.NBins, dt)
}

// Nonlinearity is a piecewise-constant function of filter output,
// frozen at estimation time.
type Nonlinearity struct {

	// bin center x values, increasing
	Centers []float64

	// mean rate (spikes / sec) in each bin -- 0 for empty bins, which never supply a value
	Values []float64

	// number of samples that fell in each bin
	N []int

	// range of filter output that the bins span
	Range minmax.F64
}

// Estimate returns the binned nonlinearity from filter output x and the
// observed counts in the same time bins, using nBins equal-width bins over
// [min(x), max(x)] and bin width dt to convert counts to rates.
// The maximum value falls in the last bin.  If all x are equal, all
// samples fall in bin 0.
func Estimate(x []float64, counts []int, nBins int, dt float64) (*Nonlinearity, error) {
	if err := series.CheckLen("spike counts length", len(counts), len(x)); err != nil {
		return nil, err
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("nonlin: %w: no filter outputs", series.ErrDegenerateInput)
	}
	if nBins < 1 {
		return nil, &series.DimensionError{What: "number of bins", Got: nBins, Rel: ">=", Want: 1}
	}
	if !(dt > 0) {
		return nil, fmt.Errorf("nonlin: bin width dt must be positive, is %v", dt)
	}
	nl := &Nonlinearity{}
	nl.Range.SetInfinity()
	for t, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("nonlin: filter output %v in bin %d is not finite", v, t)
		}
		nl.Range.FitValInRange(v)
	}
	width := (nl.Range.Max - nl.Range.Min) / float64(nBins)

	nl.Centers = make([]float64, nBins)
	nl.Values = make([]float64, nBins)
	nl.N = make([]int, nBins)
	sums := make([]float64, nBins)
	for i := range nl.Centers {
		nl.Centers[i] = nl.Range.Min + (float64(i)+0.5)*width
	}
	for t, v := range x {
		bi := 0
		if width > 0 {
			bi = int((v - nl.Range.Min) / width)
			if bi >= nBins {
				bi = nBins - 1
			}
		}
		nl.N[bi]++
		sums[bi] += float64(counts[t])
	}
	for i, n := range nl.N {
		if n > 0 {
			nl.Values[i] = sums[i] / float64(n) / dt
		}
	}
	return nl, nil
}

// NBins returns the number of bins
func (nl *Nonlinearity) NBins() int { return len(nl.Centers) }

// Empty returns true if bin i received no samples
func (nl *Nonlinearity) Empty(i int) bool { return nl.N[i] == 0 }

// Nearest returns the index of the non-empty bin whose center is nearest
// to x, ties going to the lower index.  Returns -1 if x is NaN or every
// bin is empty, which Estimate never produces.
func (nl *Nonlinearity) Nearest(x float64) int {
	best := -1
	if math.IsNaN(x) {
		return best
	}
	bd := math.Inf(1)
	for i, c := range nl.Centers {
		if nl.N[i] == 0 {
			continue
		}
		if d := math.Abs(x - c); d < bd || best < 0 {
			best, bd = i, d
		}
	}
	return best
}

// Evaluate returns the rate (spikes / sec) of the non-empty bin whose
// center is nearest to x.  Valid for any x, including beyond the
// estimated range.  Returns NaN where Nearest has no bin.
func (nl *Nonlinearity) Evaluate(x float64) float64 {
	bi := nl.Nearest(x)
	if bi < 0 {
		return math.NaN()
	}
	return nl.Values[bi]
}

// Apply returns Evaluate for each of xs
func (nl *Nonlinearity) Apply(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = nl.Evaluate(x)
	}
	return out
}

// BinCounts returns the expected spike count per time bin for each of xs:
// Evaluate(x) * dt.  This is the rate prediction to score against counts.
func (nl *Nonlinearity) BinCounts(xs []float64, dt float64) []float64 {
	out := nl.Apply(xs)
	floats.Scale(dt, out)
	return out
}

// NParams returns the number of free parameters: one value per non-empty bin
func (nl *Nonlinearity) NParams() int {
	np := 0
	for _, n := range nl.N {
		if n > 0 {
			np++
		}
	}
	return np
}
