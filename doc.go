// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package glmspike is the overall repository for fitting and comparing
encoding models that predict a neuron's spike counts from a time-varying
stimulus, implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* series: the stimulus and spike count time series, with loading and saving
as etable.Table data, and the error kinds for malformed or degenerate input.

* dmat: the lagged (Hankel) design matrix, where row t holds the window of
stimulus samples ending at bin t, earliest first, zero-padded at the start.

* fit: the linear-Gaussian (least-squares) filter, the spike-triggered average,
and the Poisson GLM with exponential nonlinearity fit by iteratively
reweighted least squares.

* nonlin: the nonparametric binned estimate of the nonlinearity mapping
filter output to firing rate, and a parametric saturating nonlinearity
for generating data.

* score: Poisson log-likelihood, single-spike information, AIC and BIC
for any rate prediction, and model comparison tables.

* spikesim: Poisson spike count draws from a rate prediction, and synthetic
data from known models.

* examples: glmfit runs the whole pipeline on a data file or on synthetic
data and prints the model comparison -- the place to start.
*/
package glmspike
