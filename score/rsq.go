// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package score

import (
	"github.com/chenhongbiao/GLMspiketraintutorial/series"
	"gonum.org/v1/gonum/stat"
)

// RSquared returns the fraction of count variance explained by a
// prediction, 1 - SSE / SST -- the natural measure for the linear-Gaussian
// model, whose predictions may not be valid Poisson rates.
func RSquared(counts []int, pred []float64) (float64, error) {
	if err := series.CheckLen("prediction length", len(pred), len(counts)); err != nil {
		return 0, err
	}
	return stat.RSquaredFrom(pred, series.Float(counts), nil), nil
}
