// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "math"

// Geom is the geometric distribution family: the number of trials up
// to and including the first success, with success probability p.
var Geom = NewDiscrete(DiscreteFamily{
	Name:      "geom",
	NumShapes: 1,
	A:         1,
	B:         math.Inf(1),
	Check: func(s []float64) (Support, bool) {
		p := s[0]
		return Support{1, math.Inf(1)}, p > 0 && p <= 1
	},
	PMF: func(k float64, s []float64) float64 {
		p := s[0]
		return math.Pow(1-p, k-1) * p
	},
	CDF: func(k float64, s []float64) float64 {
		return -math.Expm1(k * math.Log1p(-s[0]))
	},
	SF: func(k float64, s []float64) float64 {
		return math.Exp(k * math.Log1p(-s[0]))
	},
	PPF: func(q float64, s []float64) float64 {
		p := s[0]
		k := math.Max(math.Ceil(math.Log1p(-q)/math.Log1p(-p)), 1)
		// Correct for rounding in the closed form.
		if k > 1 && -math.Expm1((k-1)*math.Log1p(-p)) >= q {
			k--
		}
		return k
	},
	Stats: func(s []float64, _ Moments) MomentSet {
		p := s[0]
		return MomentSet{
			Has:      AllMoments,
			Mean:     1 / p,
			Variance: (1 - p) / (p * p),
			Skew:     (2 - p) / math.Sqrt(1-p),
			Kurtosis: 6 + p*p/(1-p),
		}
	},
})
