// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"github.com/cockroachdb/errors"
)

// eulerMascheroni is Euler's constant γ.
const eulerMascheroni = 0.57721566490153286060651209008240243104215933593992

// WeibullMin is the Weibull minimum-extreme-value distribution family
// with shape parameter c.
var WeibullMin = NewContinuous(Family{
	Name:      "weibull_min",
	NumShapes: 1,
	A:         0,
	B:         math.Inf(1),
	PDF: func(z float64, s []float64) float64 {
		c := s[0]
		return c * math.Pow(z, c-1) * math.Exp(-math.Pow(z, c))
	},
	LogPDF: func(z float64, s []float64) float64 {
		c := s[0]
		if z == 0 && c == 1 {
			return 0
		}
		return math.Log(c) + (c-1)*math.Log(z) - math.Pow(z, c)
	},
	CDF: func(z float64, s []float64) float64 {
		return -math.Expm1(-math.Pow(z, s[0]))
	},
	SF: func(z float64, s []float64) float64 {
		return math.Exp(-math.Pow(z, s[0]))
	},
	PPF: func(q float64, s []float64) float64 {
		return math.Pow(-math.Log1p(-q), 1/s[0])
	},
	ISF: func(q float64, s []float64) float64 {
		return math.Pow(-math.Log(q), 1/s[0])
	},
	Munp: func(n int, s []float64) float64 {
		return math.Gamma(1 + float64(n)/s[0])
	},
	Entropy: func(s []float64) float64 {
		c := s[0]
		return -math.Log(c) + eulerMascheroni*(1-1/c) + 1
	},
	Link: weibullLink,
})

// weibullLink solves log SF(x) = -((x-loc)/scale)^c for c, loc or
// scale.
func weibullLink(x, logSF float64, par []float64, i int) (float64, error) {
	c, loc, scale := par[0], par[1], par[2]
	switch i {
	case 0:
		return math.Log(-logSF) / math.Log((x-loc)/scale), nil
	case 1:
		return x - scale*math.Pow(-logSF, 1/c), nil
	case 2:
		return (x - loc) / math.Pow(-logSF, 1/c), nil
	}
	return 0, errors.Wrapf(ErrNotImplemented, "weibull_min: link for parameter %d", i)
}
