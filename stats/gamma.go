// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/rand/v2"

	"github.com/aclements/go-distfit/mathx"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// Gamma is the gamma distribution family with shape parameter a.
var Gamma = NewContinuous(Family{
	Name:      "gamma",
	NumShapes: 1,
	A:         0,
	B:         math.Inf(1),
	PDF: func(z float64, s []float64) float64 {
		return math.Exp(gammaLogPDF(z, s[0]))
	},
	LogPDF: func(z float64, s []float64) float64 {
		return gammaLogPDF(z, s[0])
	},
	CDF: func(z float64, s []float64) float64 {
		return mathx.GammaInc(s[0], z)
	},
	SF: func(z float64, s []float64) float64 {
		return mathx.GammaIncComp(s[0], z)
	},
	PPF: func(q float64, s []float64) float64 {
		return mathx.GammaIncInv(s[0], q)
	},
	Munp: func(n int, s []float64) float64 {
		a := s[0]
		lg1, _ := math.Lgamma(a + float64(n))
		lg0, _ := math.Lgamma(a)
		return math.Exp(lg1 - lg0)
	},
	Stats: func(s []float64, _ Moments) MomentSet {
		a := s[0]
		return MomentSet{Has: AllMoments, Mean: a, Variance: a, Skew: 2 / math.Sqrt(a), Kurtosis: 6 / a}
	},
	Entropy: func(s []float64) float64 {
		a := s[0]
		lg, _ := math.Lgamma(a)
		return a + lg + (1-a)*mathext.Digamma(a)
	},
	Rand: func(rng *rand.Rand, s []float64) float64 {
		return distuv.Gamma{Alpha: s[0], Beta: 1, Src: rngSource{rng}}.Rand()
	},
})

func gammaLogPDF(z, a float64) float64 {
	lg, _ := math.Lgamma(a)
	if z == 0 {
		switch {
		case a == 1:
			return -lg
		case a < 1:
			return inf
		}
		return math.Inf(-1)
	}
	return (a-1)*math.Log(z) - z - lg
}
