// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"errors"
	"fmt"
	"math"

	"github.com/chenhongbiao/GLMspiketraintutorial/dmat"
	"github.com/chenhongbiao/GLMspiketraintutorial/series"
	"gonum.org/v1/gonum/mat"
)

// LinearGaussian returns the ordinary least-squares filter minimizing
// ||y - X w||^2, optionally with an intercept: the solution of the normal
// equations w = (X'X)^-1 X'y.  The intercept column is added or dropped as needed,
// regardless of how X was built.  Returns an error matching
// ErrSingularMatrix if X'X is not invertible.
func LinearGaussian(X *dmat.Matrix, counts []int, intercept bool) (*Filter, error) {
	if err := series.CheckLen("spike counts length", len(counts), X.Rows()); err != nil {
		return nil, err
	}
	if err := series.CheckCounts(counts); err != nil {
		return nil, err
	}
	A := X.Regressors(intercept)
	w, err := solveNormal(A, nil, series.Float(counts))
	if err != nil {
		return nil, err
	}
	return fromSolution(w, intercept), nil
}

// STA returns the spike-triggered average of the stimulus lags:
// the spike-count weighted mean of the rows of X, excluding any intercept.
// Returns an error matching ErrDegenerateInput if there are no spikes.
func STA(X *dmat.Matrix, counts []int) ([]float64, error) {
	if err := series.CheckLen("spike counts length", len(counts), X.Rows()); err != nil {
		return nil, err
	}
	if err := series.CheckCounts(counts); err != nil {
		return nil, err
	}
	nsp := series.Total(counts)
	if nsp == 0 {
		return nil, fmt.Errorf("fit: spike-triggered average: %w: no spikes", ErrDegenerateInput)
	}
	sta := make([]float64, X.Window)
	for t, c := range counts {
		if c == 0 {
			continue
		}
		lags := X.Lags(t)
		for j := range sta {
			sta[j] += float64(c) * lags[j]
		}
	}
	for j := range sta {
		sta[j] /= float64(nsp)
	}
	return sta, nil
}

// WhitenedSTA returns the spike-triggered average corrected for stimulus
// autocorrelation, (X'X)^-1 X'y over the stimulus lags only, which is the
// least-squares filter without an intercept.
func WhitenedSTA(X *dmat.Matrix, counts []int) ([]float64, error) {
	f, err := LinearGaussian(X, counts, false)
	if err != nil {
		return nil, err
	}
	return f.Coefs, nil
}

// solveNormal returns the (optionally weighted) least-squares solution w
// minimizing sum_t wts[t] (y[t] - A[t] . w)^2, which solves the normal
// equations (A' W A) w = A' W y, where W = diag(wts), or the identity if
// wts is nil.  It works from a QR factorization of W^1/2 A rather than
// forming A' W A, whose condition number is the square of that of A.
// Returns an error matching ErrSingularMatrix when the columns of A are
// linearly dependent, so A' W A is not invertible.
func solveNormal(A *mat.Dense, wts []float64, y []float64) ([]float64, error) {
	n, p := A.Dims()
	if n < p {
		return nil, fmt.Errorf("fit: %w: %d observations for %d coefficients", ErrSingularMatrix, n, p)
	}
	sa := A
	sy := y
	if wts != nil {
		// rows scaled by sqrt(w): (sA)'(sA) = A'WA
		sa = mat.NewDense(n, p, nil)
		sy = make([]float64, n)
		for t := 0; t < n; t++ {
			sw := math.Sqrt(wts[t])
			dst := sa.RawRowView(t)
			for j, v := range A.RawRowView(t) {
				dst[j] = sw * v
			}
			sy[t] = sw * y[t]
		}
	}
	var qr mat.QR
	qr.Factorize(sa)
	var x mat.VecDense
	if err := qr.SolveVecTo(&x, false, mat.NewVecDense(n, sy)); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("fit: %w: condition number %.4g", ErrSingularMatrix, float64(cond))
		}
		return nil, err
	}
	w := make([]float64, x.Len())
	for i := range w {
		w[i] = x.AtVec(i)
	}
	return w, nil
}
