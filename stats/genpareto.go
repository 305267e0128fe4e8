// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"github.com/cockroachdb/errors"
)

// GenPareto is the generalized Pareto distribution family with shape
// parameter c, which may be any finite value. For c >= 0 the support
// is [0, ∞); for c < 0 it is [0, -1/c].
var GenPareto = NewContinuous(Family{
	Name:      "genpareto",
	NumShapes: 1,
	A:         0,
	B:         math.Inf(1),
	Check: func(s []float64) (Support, bool) {
		c := s[0]
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return Support{}, false
		}
		if c < 0 {
			return Support{0, -1 / c}, true
		}
		return Support{0, math.Inf(1)}, true
	},
	PDF: func(z float64, s []float64) float64 {
		return math.Exp(genparetoLogPDF(z, s[0]))
	},
	LogPDF: func(z float64, s []float64) float64 {
		return genparetoLogPDF(z, s[0])
	},
	CDF: func(z float64, s []float64) float64 {
		return -math.Expm1(genparetoLogSF(z, s[0]))
	},
	SF: func(z float64, s []float64) float64 {
		return math.Exp(genparetoLogSF(z, s[0]))
	},
	PPF: func(q float64, s []float64) float64 {
		return genparetoISFLog(math.Log1p(-q), s[0])
	},
	ISF: func(q float64, s []float64) float64 {
		return genparetoISFLog(math.Log(q), s[0])
	},
	Stats: func(s []float64, req Moments) MomentSet {
		c := s[0]
		ms := MomentSet{Has: MV, Mean: inf, Variance: inf}
		if c < 1 {
			ms.Mean = 1 / (1 - c)
		}
		if c < 0.5 {
			ms.Variance = 1 / ((1 - c) * (1 - c) * (1 - 2*c))
		}
		return ms
	},
	Entropy: func(s []float64) float64 {
		return s[0] + 1
	},
	Link: genparetoLink,
})

func genparetoLogPDF(z, c float64) float64 {
	if c == 0 {
		return -z
	}
	if c == -1 {
		// Uniform on [0, 1].
		return 0
	}
	return -(1 + 1/c) * math.Log1p(c*z)
}

func genparetoLogSF(z, c float64) float64 {
	if c == 0 {
		return -z
	}
	return -math.Log1p(c*z) / c
}

// genparetoISFLog returns the standardized quantile whose log survival
// probability is logSF.
func genparetoISFLog(logSF, c float64) float64 {
	if c == 0 {
		return -logSF
	}
	return math.Expm1(-c*logSF) / c
}

// genparetoLink solves log SF(x) = -log1p(c·(x-loc)/scale)/c for loc
// or scale.
func genparetoLink(x, logSF float64, par []float64, i int) (float64, error) {
	c, loc, scale := par[0], par[1], par[2]
	switch i {
	case 1:
		return x - scale*genparetoISFLog(logSF, c), nil
	case 2:
		return (x - loc) / genparetoISFLog(logSF, c), nil
	}
	return 0, errors.Wrapf(ErrNotImplemented, "genpareto: link for parameter %d", i)
}
