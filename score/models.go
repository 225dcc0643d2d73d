// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package score

import "github.com/goki/ki/kit"

// Models are the kinds of spike-rate model that are compared
type Models int32

//go:generate stringer -type=Models

var KiT_Models = kit.Enums.AddEnum(ModelsN, false, nil)

func (ev Models) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Models) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Homog is the homogeneous model: constant mean rate
	Homog Models = iota

	// Linear is the linear-Gaussian filter without intercept
	Linear

	// LinearOffset is the linear-Gaussian filter with intercept
	LinearOffset

	// ExpGLM is the Poisson GLM with exponential nonlinearity
	ExpGLM

	// LNP is a filter followed by the non-parametric binned nonlinearity
	LNP

	// LNPGLM is the GLM filter followed by the non-parametric binned nonlinearity
	LNPGLM

	ModelsN
)
