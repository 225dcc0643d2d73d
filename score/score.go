// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package score evaluates spike-rate predictions against observed spike counts:
Poisson log-likelihood, single-spike information relative to a constant-rate
model, and the AIC / BIC penalized-likelihood criteria.

Rates here are expected spike counts per time bin (spikes / sec times the
bin width).  Scores are plain values computed on demand; deciding which model
wins is left to the caller, e.g. with Compare.
*/
package score

import (
	"errors"
	"fmt"
	"math"

	"github.com/chenhongbiao/GLMspiketraintutorial/series"
)

// ErrInvalidRate is reported when a predicted rate makes the log-likelihood
// undefined.  See InvalidRateError.
var ErrInvalidRate = errors.New("invalid rate")

// InvalidRateError reports the first time bin with an invalid rate.
// It matches ErrInvalidRate under errors.Is.
type InvalidRateError struct {
	Bin   int
	Rate  float64
	Count int
}

func (e *InvalidRateError) Error() string {
	return fmt.Sprintf("score: %s %v in bin %d with spike count %d", ErrInvalidRate, e.Rate, e.Bin, e.Count)
}

func (e *InvalidRateError) Is(target error) bool { return target == ErrInvalidRate }

// Score holds the comparison statistics of one rate prediction
type Score struct {

	// Poisson log-likelihood sum_t (y_t log r_t - r_t), omitting the log y_t! term that is constant across models
	LL float64

	// log-likelihood of the homogeneous (constant mean rate) model
	LL0 float64

	// single-spike information: (LL - LL0) / (total spikes * ln 2), bits / spike
	SSInfo float64

	// Akaike Information Criterion: -2 LL + 2 NParams -- lower is better
	AIC float64

	// Bayesian Information Criterion: -2 LL + NParams ln(NBins) -- lower is better
	BIC float64

	// number of model parameters
	NParams int

	// total number of observed spikes
	NSpikes int

	// number of time bins
	NBins int
}

// LogLikelihood returns sum_t (y_t log r_t - r_t).  A bin with y_t = 0
// contributes -r_t, so r_t = 0 is allowed there.  Rates must be finite and
// non-negative, and positive wherever y_t > 0, or an InvalidRateError is
// returned.
func LogLikelihood(counts []int, rate []float64) (float64, error) {
	if err := series.CheckLen("rate length", len(rate), len(counts)); err != nil {
		return 0, err
	}
	if err := series.CheckCounts(counts); err != nil {
		return 0, err
	}
	ll := 0.0
	for t, y := range counts {
		r := rate[t]
		if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 || (y > 0 && r == 0) {
			return 0, &InvalidRateError{Bin: t, Rate: r, Count: y}
		}
		if y > 0 {
			ll += float64(y) * math.Log(r)
		}
		ll -= r
	}
	return ll, nil
}

// ConstRate returns the homogeneous rate prediction: the mean count per
// bin in every bin.
func ConstRate(counts []int) []float64 {
	rate := make([]float64, len(counts))
	if len(counts) == 0 {
		return rate
	}
	mc := float64(series.Total(counts)) / float64(len(counts))
	for t := range rate {
		rate[t] = mc
	}
	return rate
}

// Homogeneous returns the log-likelihood of the constant-rate model
func Homogeneous(counts []int) (float64, error) {
	return LogLikelihood(counts, ConstRate(counts))
}

// AIC returns the Akaike Information Criterion -2 ll + 2 k
func AIC(ll float64, k int) float64 { return -2*ll + 2*float64(k) }

// BIC returns the Bayesian Information Criterion -2 ll + k ln(n)
func BIC(ll float64, k, n int) float64 { return -2*ll + float64(k)*math.Log(float64(n)) }

// SSInfo returns the single-spike information in bits / spike of a model
// with log-likelihood ll, relative to the homogeneous ll0.
func SSInfo(ll, ll0 float64, nsp int) float64 {
	return (ll - ll0) / (float64(nsp) * math.Ln2)
}

// Evaluate scores the rate prediction, expressed as expected count per
// bin, of a model with nParams parameters.  The response must contain
// spikes, else single-spike information is undefined and an error matching
// series.ErrDegenerateInput is returned.
func Evaluate(counts []int, rate []float64, nParams int) (Score, error) {
	sc := Score{NParams: nParams, NBins: len(counts)}
	ll, err := LogLikelihood(counts, rate)
	if err != nil {
		return sc, err
	}
	sc.NSpikes = series.Total(counts)
	if sc.NSpikes == 0 {
		return sc, fmt.Errorf("score: %w: no spikes", series.ErrDegenerateInput)
	}
	ll0, err := Homogeneous(counts)
	if err != nil {
		return sc, err
	}
	sc.LL = ll
	sc.LL0 = ll0
	sc.SSInfo = SSInfo(ll, ll0, sc.NSpikes)
	sc.AIC = AIC(ll, nParams)
	sc.BIC = BIC(ll, nParams, sc.NBins)
	return sc, nil
}

// Compare orders two scores by AIC: -1 if a is better (lower AIC),
// +1 if b is better, 0 if equal.
func Compare(a, b Score) int {
	switch {
	case a.AIC < b.AIC:
		return -1
	case a.AIC > b.AIC:
		return 1
	}
	return 0
}

// MSE returns the mean squared error of a count prediction
func MSE(counts []int, pred []float64) (float64, error) {
	if err := series.CheckLen("prediction length", len(pred), len(counts)); err != nil {
		return 0, err
	}
	if len(counts) == 0 {
		return 0, nil
	}
	se := 0.0
	for t, y := range counts {
		d := float64(y) - pred[t]
		se += d * d
	}
	return se / float64(len(counts)), nil
}
