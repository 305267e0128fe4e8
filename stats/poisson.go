// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/rand/v2"

	"github.com/aclements/go-distfit/mathx"
	"gonum.org/v1/gonum/stat/distuv"
)

// Poisson is the Poisson distribution family with mean mu >= 0.
var Poisson = NewDiscrete(DiscreteFamily{
	Name:      "poisson",
	NumShapes: 1,
	A:         0,
	B:         math.Inf(1),
	Check: func(s []float64) (Support, bool) {
		mu := s[0]
		return Support{0, math.Inf(1)}, mu >= 0 && !math.IsInf(mu, 1)
	},
	PMF: func(k float64, s []float64) float64 {
		mu := s[0]
		if mu == 0 {
			if k == 0 {
				return 1
			}
			return 0
		}
		lg, _ := math.Lgamma(k + 1)
		return math.Exp(k*math.Log(mu) - mu - lg)
	},
	CDF: func(k float64, s []float64) float64 {
		if s[0] == 0 {
			return 1
		}
		return mathx.GammaIncComp(k+1, s[0])
	},
	SF: func(k float64, s []float64) float64 {
		if s[0] == 0 {
			return 0
		}
		return mathx.GammaInc(k+1, s[0])
	},
	Stats: func(s []float64, _ Moments) MomentSet {
		mu := s[0]
		return MomentSet{Has: AllMoments, Mean: mu, Variance: mu, Skew: 1 / math.Sqrt(mu), Kurtosis: 1 / mu}
	},
	Rand: func(rng *rand.Rand, s []float64) float64 {
		if s[0] == 0 {
			return 0
		}
		return distuv.Poisson{Lambda: s[0], Src: rngSource{rng}}.Rand()
	},
})
