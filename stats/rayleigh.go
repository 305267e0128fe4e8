// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "math"

// Rayleigh is the Rayleigh distribution family. It defines only its
// density and CDF; every other operation is derived numerically.
var Rayleigh = NewContinuous(Family{
	Name: "rayleigh",
	A:    0,
	B:    math.Inf(1),
	PDF: func(z float64, _ []float64) float64 {
		return z * math.Exp(-z*z/2)
	},
	CDF: func(z float64, _ []float64) float64 {
		return -math.Expm1(-z * z / 2)
	},
})
