// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// LogNorm is the log-normal distribution family with shape parameter
// s, the standard deviation of the underlying normal. exp of the
// underlying mean is the scale.
var LogNorm = NewContinuous(Family{
	Name:      "lognorm",
	NumShapes: 1,
	A:         0,
	B:         math.Inf(1),
	PDF: func(z float64, s []float64) float64 {
		if z == 0 {
			return 0
		}
		return math.Exp(lognormLogPDF(z, s[0]))
	},
	LogPDF: func(z float64, s []float64) float64 {
		return lognormLogPDF(z, s[0])
	},
	CDF: func(z float64, s []float64) float64 {
		return StdNormal.CDF(math.Log(z) / s[0])
	},
	SF: func(z float64, s []float64) float64 {
		return StdNormal.CDF(-math.Log(z) / s[0])
	},
	PPF: func(q float64, s []float64) float64 {
		return math.Exp(s[0] * distuv.UnitNormal.Quantile(q))
	},
	Munp: func(n int, s []float64) float64 {
		k := float64(n) * s[0]
		return math.Exp(k * k / 2)
	},
	Entropy: func(s []float64) float64 {
		return 0.5 * (1 + math.Log(2*math.Pi*s[0]*s[0]))
	},
	Rand: func(rng *rand.Rand, s []float64) float64 {
		return math.Exp(s[0] * rng.NormFloat64())
	},
})

func lognormLogPDF(z, s float64) float64 {
	if z == 0 {
		return math.Inf(-1)
	}
	l := math.Log(z) / s
	return -l*l/2 - math.Log(s*z) + math.Log(invSqrt2Pi)
}
