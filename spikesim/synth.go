// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spikesim

import (
	"fmt"
	"math"

	"github.com/chenhongbiao/GLMspiketraintutorial/dmat"
	"github.com/chenhongbiao/GLMspiketraintutorial/fit"
	"github.com/chenhongbiao/GLMspiketraintutorial/series"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Params are the parameters for generating synthetic data
type Params struct {
	N         int     `def:"10000" min:"1" desc:"number of time bins"`
	Window    int     `def:"25" min:"1" desc:"number of taps in the generating filter"`
	Intercept float64 `def:"-2" desc:"log of the baseline expected count per bin for GLM data"`
	Dt        float64 `def:"0.01" min:"0" desc:"bin width in seconds"`
	Norm      float64 `def:"1" min:"0" desc:"Euclidean norm of the generating filter, which is the standard deviation of its output on white noise"`
}

func (sp *Params) Defaults() {
	sp.N = 10000
	sp.Window = 25
	sp.Intercept = -2
	sp.Dt = 0.01
	sp.Norm = 1
}

// WhiteNoise returns n independent standard normal samples
func WhiteNoise(n int, src rand.Source) []float64 {
	nrm := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	stim := make([]float64, n)
	for i := range stim {
		stim[i] = nrm.Rand()
	}
	return stim
}

// Filter returns a biphasic temporal filter of n taps with the given
// Euclidean norm, earliest lag first to match design matrix rows: a
// positive lobe peaking a few bins before the present, followed further
// back by a slower negative lobe.
func Filter(n int, norm float64) []float64 {
	f := make([]float64, n)
	tau := math.Max(float64(n)/8, 1)
	for i := range f {
		lag := float64(n - i) // most recent tap is lag 1
		f[i] = (lag/tau)*math.Exp(-lag/tau) - 0.5*(lag/(2*tau))*math.Exp(-lag/(2*tau))
	}
	if l := floats.Norm(f, 2); l > 0 {
		floats.Scale(norm/l, f)
	}
	return f
}

// GLMData returns stimulus with counts drawn from the Poisson GLM given by
// the filter: expected count exp(intercept + stimulus lags . coefs) per bin.
func GLMData(stim []float64, f *fit.Filter, dt float64, src rand.Source) (*series.Data, error) {
	X, err := dmat.Build(stim, f.Len(), false)
	if err != nil {
		return nil, err
	}
	rate, err := f.ExpRate(X)
	if err != nil {
		return nil, err
	}
	counts, err := Draw(rate, src)
	if err != nil {
		return nil, fmt.Errorf("spikesim: glm data: %w", err)
	}
	d := &series.Data{Stim: stim, Counts: counts, Dt: dt}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// LNPData returns stimulus with counts drawn from a linear-nonlinear-Poisson
// model: the filter output passed through nl, a rate in spikes / sec, gives
// an expected count of nl(x) * dt per bin.
func LNPData(stim, coefs []float64, nl func(x float64) float64, dt float64, src rand.Source) (*series.Data, error) {
	X, err := dmat.Build(stim, len(coefs), false)
	if err != nil {
		return nil, err
	}
	drive, err := X.Project(coefs)
	if err != nil {
		return nil, err
	}
	rate := make([]float64, len(drive))
	for t, x := range drive {
		rate[t] = nl(x) * dt
	}
	counts, err := Draw(rate, src)
	if err != nil {
		return nil, fmt.Errorf("spikesim: lnp data: %w", err)
	}
	d := &series.Data{Stim: stim, Counts: counts, Dt: dt}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Generate returns white-noise GLM data from the params, along with the
// generating filter.
func (sp *Params) Generate(src rand.Source) (*series.Data, *fit.Filter, error) {
	f := &fit.Filter{Coefs: Filter(sp.Window, sp.Norm), Intercept: sp.Intercept, HasIntercept: true}
	d, err := GLMData(WhiteNoise(sp.N, src), f, sp.Dt, src)
	if err != nil {
		return nil, nil, err
	}
	return d, f, nil
}

// GenerateLNP returns white-noise data from a linear-nonlinear-Poisson
// model with the params' filter (no intercept) and the nonlinearity nl,
// a rate in spikes / sec, along with the generating filter.
func (sp *Params) GenerateLNP(nl func(x float64) float64, src rand.Source) (*series.Data, *fit.Filter, error) {
	f := &fit.Filter{Coefs: Filter(sp.Window, sp.Norm)}
	d, err := LNPData(WhiteNoise(sp.N, src), f.Coefs, nl, sp.Dt, src)
	if err != nil {
		return nil, nil, err
	}
	return d, f, nil
}
