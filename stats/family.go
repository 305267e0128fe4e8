// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/rand/v2"
)

// Support is the closed interval [A, B] outside of which a
// standardized distribution has no probability. Either bound may be
// infinite.
type Support struct {
	A, B float64
}

// Contains reports whether A <= x <= B.
func (s Support) Contains(x float64) bool {
	return s.A <= x && x <= s.B
}

// Moments is a set of the first four moments.
type Moments uint8

const (
	Mean Moments = 1 << iota
	Variance
	Skew
	Kurtosis

	// MV requests the mean and variance, which is what most
	// callers want.
	MV = Mean | Variance

	AllMoments = Mean | Variance | Skew | Kurtosis
)

// A MomentSet holds the mean, variance, skewness and excess kurtosis
// of a distribution. Has records which of the fields are set.
type MomentSet struct {
	Has                            Moments
	Mean, Variance, Skew, Kurtosis float64
}

// Get returns the moment m, which must be a single flag, and whether
// it is set.
func (s MomentSet) Get(m Moments) (float64, bool) {
	if s.Has&m == 0 {
		return 0, false
	}
	switch m {
	case Mean:
		return s.Mean, true
	case Variance:
		return s.Variance, true
	case Skew:
		return s.Skew, true
	case Kurtosis:
		return s.Kurtosis, true
	}
	panic("stats: MomentSet.Get of multiple moments")
}

// A LinkFunc expresses parameter i of a distribution as a function of
// a quantile x, the log survival probability at x, and the remaining
// parameters par (shapes, loc, scale). That is, if
// logSF = log(P(X > x; par)), then par[i] = link(x, logSF, par, i).
//
// A LinkFunc returns an error matching ErrNotImplemented if it cannot
// solve for parameter i.
type LinkFunc func(x, logSF float64, par []float64, i int) (float64, error)

// A Family defines a continuous distribution family in terms of
// primitive functions of the standardized variate z = (x-loc)/scale
// and the shape parameters.
//
// All of the primitives are optional, except that at least one of PDF
// and CDF must be set. A primitive is only called with shapes that
// pass Check, and PDF, CDF and SF are only called with z inside the
// support.
type Family struct {
	// Name is the family's display name, such as "norm".
	Name string

	// NumShapes is the number of shape parameters.
	NumShapes int

	// A and B are the bounds of the support of the standardized
	// distribution. Use Check for shape-dependent bounds.
	A, B float64

	// BadValue, if non-nil, is the value returned for invalid
	// arguments. The default is NaN.
	BadValue *float64

	// Check reports whether shapes are valid and returns the
	// support for those shapes. If Check is nil, all shapes must
	// be positive and the support is [A, B].
	Check func(shapes []float64) (Support, bool)

	PDF    func(z float64, shapes []float64) float64
	LogPDF func(z float64, shapes []float64) float64
	CDF    func(z float64, shapes []float64) float64
	SF     func(z float64, shapes []float64) float64

	// PPF and ISF are the inverses of CDF and SF, called with
	// probabilities strictly between 0 and 1.
	PPF func(q float64, shapes []float64) float64
	ISF func(q float64, shapes []float64) float64

	// Munp returns the n'th raw (non-central) moment.
	Munp func(n int, shapes []float64) float64

	// Stats returns any subset of the moments requested by req.
	// Moments it omits are derived from raw moments.
	Stats func(shapes []float64, req Moments) MomentSet

	// Entropy returns the differential entropy.
	Entropy func(shapes []float64) float64

	// Rand returns a random variate.
	Rand func(rng *rand.Rand, shapes []float64) float64

	// Link relates quantiles and survival probabilities to
	// parameters, for profiling.
	Link LinkFunc

	// MomentsFromPPF selects how raw moments are derived when
	// Munp is nil. By default they are computed as the integral
	// of zⁿ·pdf(z) over the support. If MomentsFromPPF is set,
	// they are computed as the integral of ppf(q)ⁿ over [0, 1].
	MomentsFromPPF bool
}

// positiveShapes is the default argument check.
func positiveShapes(shapes []float64) bool {
	for _, s := range shapes {
		if !(s > 0) {
			return false
		}
	}
	return true
}

func badValueOr(p *float64) float64 {
	if p == nil {
		return nan
	}
	return *p
}

// isInt reports whether x is a finite integer.
func isInt(x float64) bool {
	return x == math.Trunc(x) && !math.IsInf(x, 0)
}
