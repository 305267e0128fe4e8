// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "math/rand/v2"

// Uniform is the continuous uniform distribution on
// [loc, loc+scale].
var Uniform = NewContinuous(Family{
	Name: "uniform",
	A:    0,
	B:    1,
	PDF:  func(z float64, _ []float64) float64 { return 1 },
	CDF:  func(z float64, _ []float64) float64 { return z },
	SF:   func(z float64, _ []float64) float64 { return 1 - z },
	PPF:  func(q float64, _ []float64) float64 { return q },
	ISF:  func(q float64, _ []float64) float64 { return 1 - q },
	Stats: func(_ []float64, _ Moments) MomentSet {
		return MomentSet{Has: AllMoments, Mean: 0.5, Variance: 1.0 / 12, Skew: 0, Kurtosis: -1.2}
	},
	Entropy: func(_ []float64) float64 { return 0 },
	Rand: func(rng *rand.Rand, _ []float64) float64 {
		return rng.Float64()
	},
})
