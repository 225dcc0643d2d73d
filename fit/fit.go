// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package fit estimates temporal stimulus filters that predict spike counts
from a lagged design matrix (see package dmat):

* LinearGaussian: ordinary least squares via the normal equations, with or
without an intercept -- the linear-Gaussian model, whose filter without an
intercept is also the whitened spike-triggered average.

* STA: the spike-triggered average, an unbiased filter estimate under
white-noise stimuli.

* Poisson: maximum-likelihood fit of a Poisson GLM with exponential
nonlinearity (intercept + filter), by iteratively reweighted least squares.

Each call produces an independent Filter; no state is shared between fits,
so separate fits can safely run concurrently.
*/
package fit

import (
	"errors"
	"fmt"
	"math"

	"github.com/chenhongbiao/GLMspiketraintutorial/dmat"
	"github.com/chenhongbiao/GLMspiketraintutorial/series"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrSingularMatrix is reported when the normal equations of a fit
	// cannot be solved, e.g., there are fewer distinct observations
	// than coefficients.
	ErrSingularMatrix = errors.New("singular matrix")

	// ErrConvergence is reported when an iterative fit reaches its
	// iteration limit without meeting its tolerance.  See ConvergenceError.
	ErrConvergence = errors.New("convergence failure")

	// ErrDegenerateInput is reported for an all-zero response.
	ErrDegenerateInput = series.ErrDegenerateInput
)

// ConvergenceError reports an iterative fit that did not converge.
// It matches ErrConvergence under errors.Is.
type ConvergenceError struct {

	// number of iterations performed
	Iters int

	// largest absolute coefficient change on the last iteration
	Delta float64

	// tolerance that Delta needed to fall below
	Tol float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("fit: %s after %d iterations: coefficient change %.4g > tolerance %.4g", ErrConvergence, e.Iters, e.Delta, e.Tol)
}

func (e *ConvergenceError) Is(target error) bool { return target == ErrConvergence }

// Filter is a fitted temporal filter with an optional intercept.
// Coefs are ordered like the design matrix lags: earliest first,
// so the last coefficient weights the current time bin.
type Filter struct {

	// filter coefficients, one per stimulus lag
	Coefs []float64

	// constant offset added to the filter output, if HasIntercept
	Intercept float64

	// whether the intercept was fit (else Intercept is 0)
	HasIntercept bool
}

// Len returns the number of filter coefficients
func (f *Filter) Len() int { return len(f.Coefs) }

// NParams returns the number of fitted parameters
func (f *Filter) NParams() int {
	if f.HasIntercept {
		return len(f.Coefs) + 1
	}
	return len(f.Coefs)
}

// Clone returns a deep copy
func (f *Filter) Clone() *Filter {
	cp := *f
	cp.Coefs = append([]float64(nil), f.Coefs...)
	return &cp
}

// Linear returns the linear prediction for each row of X:
// intercept + lags . coefs.  For the linear-Gaussian model this is the
// predicted spike count per bin.
func (f *Filter) Linear(X *dmat.Matrix) ([]float64, error) {
	out, err := X.Project(f.Coefs)
	if err != nil {
		return nil, err
	}
	if f.Intercept != 0 {
		floats.AddConst(f.Intercept, out)
	}
	return out, nil
}

// ExpRate returns exp(Linear(X)), the expected spike count per bin
// under the exponential-nonlinearity Poisson GLM.  Divide by the bin
// width for spikes / sec.
func (f *Filter) ExpRate(X *dmat.Matrix) ([]float64, error) {
	out, err := f.Linear(X)
	if err != nil {
		return nil, err
	}
	for i, v := range out {
		out[i] = math.Exp(v)
	}
	return out, nil
}

// fromSolution splits a solution vector into intercept and coefficients
func fromSolution(w []float64, intercept bool) *Filter {
	if !intercept {
		return &Filter{Coefs: w}
	}
	return &Filter{Intercept: w[0], Coefs: w[1:], HasIntercept: true}
}
