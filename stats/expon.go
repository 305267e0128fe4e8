// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/rand/v2"

	"github.com/cockroachdb/errors"
)

// Expon is the exponential distribution family. loc shifts the start
// of the support and scale is the mean excess over loc.
var Expon = NewContinuous(Family{
	Name: "expon",
	A:    0,
	B:    math.Inf(1),
	PDF: func(z float64, _ []float64) float64 {
		return math.Exp(-z)
	},
	LogPDF: func(z float64, _ []float64) float64 {
		return -z
	},
	CDF: func(z float64, _ []float64) float64 {
		return -math.Expm1(-z)
	},
	SF: func(z float64, _ []float64) float64 {
		return math.Exp(-z)
	},
	PPF: func(q float64, _ []float64) float64 {
		return -math.Log1p(-q)
	},
	ISF: func(q float64, _ []float64) float64 {
		return -math.Log(q)
	},
	Munp: func(n int, _ []float64) float64 {
		return math.Gamma(float64(n) + 1)
	},
	Stats: func(_ []float64, _ Moments) MomentSet {
		return MomentSet{Has: AllMoments, Mean: 1, Variance: 1, Skew: 2, Kurtosis: 6}
	},
	Entropy: func(_ []float64) float64 {
		return 1
	},
	Rand: func(rng *rand.Rand, _ []float64) float64 {
		return rng.ExpFloat64()
	},
	Link: exponLink,
})

// exponLink solves log SF(x) = -(x-loc)/scale for loc or scale.
func exponLink(x, logSF float64, par []float64, i int) (float64, error) {
	switch i {
	case 0:
		return x + par[1]*logSF, nil
	case 1:
		return -(x - par[0]) / logSF, nil
	}
	return 0, errors.Wrapf(ErrNotImplemented, "expon: link for parameter %d", i)
}
