// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spikesim draws Poisson spike counts from predicted rates, and
generates synthetic stimulus / response data from known models for
checking that fitting recovers what generated the data.

Every function takes an explicit rand.Source, so a fixed seed gives a
reproducible draw.  Nothing is retained between calls.
*/
package spikesim

import (
	"math"

	"github.com/chenhongbiao/GLMspiketraintutorial/score"
	"github.com/chenhongbiao/GLMspiketraintutorial/series"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Draw returns one trial of spike counts, with the count in bin t drawn
// from a Poisson distribution with mean rate[t] (expected count per bin).
// Rates must be finite and non-negative, else an error matching
// score.ErrInvalidRate is returned.
func Draw(rate []float64, src rand.Source) ([]int, error) {
	if err := checkRates(rate); err != nil {
		return nil, err
	}
	return draw(rate, src), nil
}

// Simulate returns repeats independent trials of Draw on the same rates,
// indexed [trial][bin].
func Simulate(rate []float64, repeats int, src rand.Source) ([][]int, error) {
	if repeats < 0 {
		return nil, &series.DimensionError{What: "repeats", Got: repeats, Rel: ">=", Want: 0}
	}
	if err := checkRates(rate); err != nil {
		return nil, err
	}
	trials := make([][]int, repeats)
	for i := range trials {
		trials[i] = draw(rate, src)
	}
	return trials, nil
}

func draw(rate []float64, src rand.Source) []int {
	counts := make([]int, len(rate))
	for t, r := range rate {
		if r == 0 {
			continue
		}
		counts[t] = int(distuv.Poisson{Lambda: r, Src: src}.Rand())
	}
	return counts
}

func checkRates(rate []float64) error {
	for t, r := range rate {
		if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
			return &score.InvalidRateError{Bin: t, Rate: r}
		}
	}
	return nil
}

// PSTH returns the peri-stimulus time histogram of the trials: the mean
// count in each bin across trials, divided by dt to give spikes / sec.
// Returns nil if there are no trials.
func PSTH(trials [][]int, dt float64) []float64 {
	if len(trials) == 0 {
		return nil
	}
	psth := make([]float64, len(trials[0]))
	for _, tr := range trials {
		for t, c := range tr {
			psth[t] += float64(c)
		}
	}
	norm := 1 / (float64(len(trials)) * dt)
	for t := range psth {
		psth[t] *= norm
	}
	return psth
}

// Raster returns the spike times (bin index, repeated for multiple spikes
// in a bin) of one trial, for plotting a raster.
func Raster(counts []int) []int {
	var times []int
	for t, c := range counts {
		for i := 0; i < c; i++ {
			times = append(times, t)
		}
	}
	return times
}
