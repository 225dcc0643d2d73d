// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"fmt"
	"math"

	"github.com/chenhongbiao/GLMspiketraintutorial/dmat"
	"github.com/chenhongbiao/GLMspiketraintutorial/series"
	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/mat"
)

// PoissonParams are the iteration parameters for fitting the Poisson GLM.
type PoissonParams struct {
	MaxIter  int     `def:"100" min:"1" desc:"maximum number of IRLS iterations -- a fit that has not met Tol by then reports a convergence failure"`
	Tol      float64 `def:"1e-8" min:"0" desc:"convergence tolerance on the largest absolute change of any coefficient between iterations"`
	MaxHalve int     `def:"30" min:"0" desc:"maximum number of times a Newton step is halved when it fails to increase the log-likelihood"`
}

func (pp *PoissonParams) Defaults() {
	pp.MaxIter = 100
	pp.Tol = 1e-8
	pp.MaxHalve = 30
}

// Poisson fits a Poisson GLM with exponential nonlinearity:
// the expected count in bin t is exp(intercept + X_t . filter), and the
// intercept and filter jointly maximize the Poisson log-likelihood
// sum_t (y_t log r_t - r_t).  The likelihood is log-concave in the
// parameters, so the optimum found by IRLS (Newton's method with the
// canonical log link) is the unique global one.
type Poisson struct {
	Params PoissonParams

	// logs iteration progress at V(1) and the final fit at V(0) -- zero value discards
	Log logr.Logger
}

// NewPoisson returns a Poisson fitter with default params
func NewPoisson() *Poisson {
	pf := &Poisson{}
	pf.Params.Defaults()
	return pf
}

// GLMResult is the outcome of a Poisson GLM fit
type GLMResult struct {
	Filter

	// number of IRLS iterations used
	Iters int

	// Poisson log-likelihood sum_t (y_t log r_t - r_t) at the fitted parameters
	LogLike float64
}

// Fit fits intercept and filter to the counts.  The intercept is always
// fit, whether or not X has an intercept column.  Errors match
// ErrDegenerateInput for an all-zero response, ErrSingularMatrix if the
// weighted normal equations cannot be solved, and ErrConvergence if MaxIter
// iterations do not reach Tol.
func (pf *Poisson) Fit(X *dmat.Matrix, counts []int) (*GLMResult, error) {
	if err := series.CheckLen("spike counts length", len(counts), X.Rows()); err != nil {
		return nil, err
	}
	if err := series.CheckCounts(counts); err != nil {
		return nil, err
	}
	nsp := series.Total(counts)
	if nsp == 0 {
		return nil, fmt.Errorf("fit: poisson glm: %w: all counts are zero, intercept diverges to -Inf", ErrDegenerateInput)
	}
	A := X.Regressors(true)
	n, p := A.Dims()
	y := series.Float(counts)

	beta := make([]float64, p)
	beta[0] = math.Log(float64(nsp) / float64(n))
	eta := make([]float64, n)
	mu := make([]float64, n)
	ll := predict(A, beta, y, eta, mu)

	next := make([]float64, p)
	z := make([]float64, n)
	delta := math.Inf(1)
	for iter := 1; iter <= pf.Params.MaxIter; iter++ {
		// working response; the IRLS weights are mu for the log link
		for t := range z {
			if mu[t] == 0 { // underflow: zero weight
				z[t] = eta[t]
				continue
			}
			z[t] = eta[t] + (y[t]-mu[t])/mu[t]
		}
		sol, err := solveNormal(A, mu, z)
		if err != nil {
			return nil, fmt.Errorf("fit: poisson glm iteration %d: %w", iter, err)
		}

		step := 1.0
		var nll float64
		for h := 0; ; h++ {
			for j := range next {
				next[j] = beta[j] + step*(sol[j]-beta[j])
			}
			nll = predict(A, next, y, eta, mu)
			if nll >= ll-1e-12*(1+math.Abs(ll)) || h >= pf.Params.MaxHalve {
				break
			}
			step *= 0.5
		}
		if math.IsInf(nll, 0) || math.IsNaN(nll) {
			return nil, &ConvergenceError{Iters: iter, Delta: math.Inf(1), Tol: pf.Params.Tol}
		}

		delta = 0
		for j := range beta {
			delta = math.Max(delta, math.Abs(next[j]-beta[j]))
		}
		copy(beta, next)
		pf.Log.V(1).Info("irls iteration", "iter", iter, "loglike", nll, "delta", delta, "step", step)
		ll = nll
		if delta < pf.Params.Tol {
			pf.Log.Info("poisson glm converged", "iters", iter, "loglike", ll)
			res := &GLMResult{Filter: *fromSolution(beta, true), Iters: iter, LogLike: ll}
			return res, nil
		}
	}
	return nil, &ConvergenceError{Iters: pf.Params.MaxIter, Delta: delta, Tol: pf.Params.Tol}
}

// predict computes the linear predictor eta = A beta and mean mu = exp(eta)
// into the given slices, returning the Poisson log-likelihood.
// Returns -Inf if any mean overflows.
func predict(A *mat.Dense, beta, y, eta, mu []float64) float64 {
	bv := mat.NewVecDense(len(beta), beta)
	ev := mat.NewVecDense(len(eta), eta)
	ev.MulVec(A, bv)
	ll := 0.0
	for t, e := range eta {
		m := math.Exp(e)
		if math.IsInf(m, 1) {
			return math.Inf(-1)
		}
		mu[t] = m
		ll += y[t]*e - m
	}
	return ll
}
