// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/rand/v2"
)

// Bernoulli is the Bernoulli distribution family with success
// probability p.
var Bernoulli = NewDiscrete(DiscreteFamily{
	Name:      "bernoulli",
	NumShapes: 1,
	A:         0,
	B:         1,
	Check: func(s []float64) (Support, bool) {
		p := s[0]
		return Support{0, 1}, p >= 0 && p <= 1
	},
	PMF: func(k float64, s []float64) float64 {
		if k == 0 {
			return 1 - s[0]
		}
		return s[0]
	},
	CDF: func(k float64, s []float64) float64 {
		return 1 - s[0]
	},
	PPF: func(q float64, s []float64) float64 {
		if q <= 1-s[0] {
			return 0
		}
		return 1
	},
	Stats: func(s []float64, _ Moments) MomentSet {
		p := s[0]
		v := p * (1 - p)
		return MomentSet{
			Has:      AllMoments,
			Mean:     p,
			Variance: v,
			Skew:     (1 - 2*p) / math.Sqrt(v),
			Kurtosis: (1 - 6*v) / v,
		}
	},
	Entropy: func(s []float64) float64 {
		return entropyOf([]float64{s[0], 1 - s[0]})
	},
	Rand: func(rng *rand.Rand, s []float64) float64 {
		if rng.Float64() < s[0] {
			return 1
		}
		return 0
	},
})
