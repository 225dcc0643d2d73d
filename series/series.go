// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package series holds the stimulus and spike-count time series that all
model fitting operates on, along with the error kinds that describe
malformed or degenerate inputs.

A stimulus is one real-valued sample per time bin, and the spike counts are
the number of spikes the neuron emitted in each of the same bins.  Both are
treated as read-only once constructed: every fitter and estimator derives new
values from them and never writes back.
*/
package series

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDimensionMismatch is reported when paired series have different
	// lengths, or a window does not fit within a series.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrDegenerateInput is reported when a response series carries no
	// information to fit, e.g., it contains no spikes at all.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrInvalidCount is reported for negative spike counts.
	ErrInvalidCount = errors.New("invalid spike count")
)

// DimensionError describes a size constraint that was violated.
// It matches ErrDimensionMismatch under errors.Is.
type DimensionError struct {
	What string
	Got  int
	Rel  string
	Want int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: %s is %d, must be %s %d", ErrDimensionMismatch, e.What, e.Got, e.Rel, e.Want)
}

func (e *DimensionError) Is(target error) bool { return target == ErrDimensionMismatch }

// CheckLen returns a DimensionError if got != want
func CheckLen(what string, got, want int) error {
	if got != want {
		return &DimensionError{What: what, Got: got, Rel: "==", Want: want}
	}
	return nil
}

// CheckCounts returns an error if any count is negative
func CheckCounts(counts []int) error {
	for i, c := range counts {
		if c < 0 {
			return fmt.Errorf("%w: count %d in bin %d", ErrInvalidCount, c, i)
		}
	}
	return nil
}

// Total returns the total number of spikes
func Total(counts []int) int {
	sum := 0
	for _, c := range counts {
		sum += c
	}
	return sum
}

// Float returns the counts as float64 values, for use as a regression response.
func Float(counts []int) []float64 {
	y := make([]float64, len(counts))
	for i, c := range counts {
		y[i] = float64(c)
	}
	return y
}

// Data is a stimulus and the spike counts recorded in the same time bins.
type Data struct {

	// stimulus value in each time bin
	Stim []float64

	// number of spikes in each time bin, aligned with Stim
	Counts []int

	// bin width in seconds
	Dt float64
}

// Validate checks the invariants of paired series: equal length,
// non-negative counts and a positive bin width.
func (d *Data) Validate() error {
	if err := CheckLen("spike counts length", len(d.Counts), len(d.Stim)); err != nil {
		return err
	}
	if err := CheckCounts(d.Counts); err != nil {
		return err
	}
	if !(d.Dt > 0) || math.IsInf(d.Dt, 1) {
		return fmt.Errorf("series: bin width must be positive and finite, is %v", d.Dt)
	}
	return nil
}

// Len returns the number of time bins
func (d *Data) Len() int { return len(d.Stim) }

// Duration returns the total duration in seconds
func (d *Data) Duration() float64 { return float64(len(d.Stim)) * d.Dt }

// TotalSpikes returns the total number of spikes
func (d *Data) TotalSpikes() int { return Total(d.Counts) }

// MeanCount returns the mean spike count per bin
func (d *Data) MeanCount() float64 {
	if len(d.Counts) == 0 {
		return 0
	}
	return float64(d.TotalSpikes()) / float64(len(d.Counts))
}

// MeanRate returns the mean firing rate in spikes / sec
func (d *Data) MeanRate() float64 { return d.MeanCount() / d.Dt }

// CountsFloat returns the counts as float64 values
func (d *Data) CountsFloat() []float64 { return Float(d.Counts) }
