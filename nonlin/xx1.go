// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nonlin

import "math"

// XX1Params are the parameters of a saturating, monotonically increasing
// Noisy X/(X+1) rate function, mapping filter output to firing rate.
// The basic x/(x+1) function is smoothed as if convolved with gaussian noise,
// which produces a graded early level of firing slightly below threshold
// rather than a hard onset at threshold.  A piecewise approximation is used
// in place of the actual convolution.
// Used as a known generative nonlinearity for linear-nonlinear-Poisson data.
type XX1Params struct {
	Thr          float64 `def:"0.5" desc:"threshold on the filter output, below which firing is only the noise-smoothed tail"`
	Gain         float64 `def:"100,40,20" min:"0" desc:"gain of the x/(x+1) function -- lower values give a more graded response"`
	NVar         float64 `def:"0.005,0.01" min:"0" desc:"variance of the gaussian noise smoothing -- determines the curvature near threshold"`
	MaxRate      float64 `def:"100" min:"0" desc:"firing rate in spikes / sec approached at saturation"`
	SigMult      float64 `def:"0.33" view:"-" json:"-" desc:"multiplier on sigmoid used for values below threshold"`
	SigMultPow   float64 `def:"0.8" view:"-" json:"-" desc:"power for computing SigMultEff as function of Gain * NVar"`
	SigGain      float64 `def:"3" view:"-" json:"-" desc:"gain multipler on (x - thr) for sigmoid used for values below threshold"`
	InterpRange  float64 `def:"0.01" view:"-" json:"-" desc:"range above threshold over which to linearly interpolate"`
	GainCorRange float64 `def:"10" view:"-" json:"-" desc:"range in units of NVar over which to apply gain correction to compensate for smoothing"`
	GainCor      float64 `def:"0.1" view:"-" json:"-" desc:"gain correction multiplier"`

	SigGainNVar float64 `view:"-" json:"-" desc:"SigGain / NVar"`
	SigMultEff  float64 `view:"-" json:"-" desc:"overall multiplier on sigmoidal component below threshold = SigMult * pow(Gain * NVar, SigMultPow)"`
	SigValAt0   float64 `view:"-" json:"-" desc:"0.5 * SigMultEff -- value at threshold"`
	InterpVal   float64 `view:"-" json:"-" desc:"function value at InterpRange - SigValAt0 -- for interpolation"`
}

func (xp *XX1Params) Update() {
	xp.SigGainNVar = xp.SigGain / xp.NVar
	xp.SigMultEff = xp.SigMult * math.Pow(xp.Gain*xp.NVar, xp.SigMultPow)
	xp.SigValAt0 = 0.5 * xp.SigMultEff
	xp.InterpVal = xp.XX1GainCor(xp.InterpRange) - xp.SigValAt0
}

func (xp *XX1Params) Defaults() {
	xp.Thr = 0.5
	xp.Gain = 100
	xp.NVar = 0.005
	xp.MaxRate = 100
	xp.SigMult = 0.33
	xp.SigMultPow = 0.8
	xp.SigGain = 3.0
	xp.InterpRange = 0.01
	xp.GainCorRange = 10.0
	xp.GainCor = 0.1
	xp.Update()
}

// XX1 computes the basic x/(x+1) function
func (xp *XX1Params) XX1(x float64) float64 { return x / (x + 1) }

// XX1GainCor computes x/(x+1) with gain correction within GainCorRange
func (xp *XX1Params) XX1GainCor(x float64) float64 {
	gainCorFact := (xp.GainCorRange - (x / xp.NVar)) / xp.GainCorRange
	if gainCorFact < 0 {
		return xp.XX1(xp.Gain * x)
	}
	newGain := xp.Gain * (1 - xp.GainCor*gainCorFact)
	return xp.XX1(newGain * x)
}

// NoisyXX1 computes the noise-smoothed x/(x+1) function of x relative to
// threshold, in [0, 1).
func (xp *XX1Params) NoisyXX1(x float64) float64 {
	switch {
	case x < 0:
		return xp.SigMultEff / (1 + math.Exp(-(x * xp.SigGainNVar)))
	case x < xp.InterpRange:
		interp := 1 - ((xp.InterpRange - x) / xp.InterpRange)
		return xp.SigValAt0 + interp*xp.InterpVal
	default:
		return xp.XX1GainCor(x)
	}
}

// Rate returns the firing rate in spikes / sec for filter output x
func (xp *XX1Params) Rate(x float64) float64 {
	return xp.MaxRate * xp.NoisyXX1(x-xp.Thr)
}
