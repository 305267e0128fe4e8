// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/rand/v2"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// NormalDist is a normal (Gaussian) distribution with mean Mu and
// standard deviation Sigma.
type NormalDist struct {
	Mu, Sigma float64
}

// StdNormal is the standard normal distribution (Mu = 0, Sigma = 1)
var StdNormal = NormalDist{0, 1}

// 1/sqrt(2 * pi)
const invSqrt2Pi = 0.39894228040143267793994605993438186847585863116493465766592583

func (n NormalDist) PDF(x float64) float64 {
	z := x - n.Mu
	return math.Exp(-z*z/(2*n.Sigma*n.Sigma)) * invSqrt2Pi / n.Sigma
}

func (n NormalDist) PDFEach(xs []float64) []float64 {
	res := make([]float64, len(xs))
	if n.Mu == 0 && n.Sigma == 1 {
		// Standard normal fast path
		for i, x := range xs {
			res[i] = math.Exp(-x*x/2) * invSqrt2Pi
		}
	} else {
		a := -1 / (2 * n.Sigma * n.Sigma)
		b := invSqrt2Pi / n.Sigma
		for i, x := range xs {
			z := x - n.Mu
			res[i] = math.Exp(z*z*a) * b
		}
	}
	return res
}

func (n NormalDist) CDF(x float64) float64 {
	return math.Erfc(-(x-n.Mu)/(n.Sigma*math.Sqrt2)) / 2
}

func (n NormalDist) CDFEach(xs []float64) []float64 {
	res := make([]float64, len(xs))
	a := 1 / (n.Sigma * math.Sqrt2)
	for i, x := range xs {
		res[i] = math.Erfc(-(x-n.Mu)*a) / 2
	}
	return res
}

func (n NormalDist) InvCDF(p float64) float64 {
	switch {
	case p == 0:
		return math.Inf(-1)
	case p == 1:
		return math.Inf(1)
	case !(p > 0 && p < 1):
		return math.NaN()
	}
	return n.Mu + n.Sigma*distuv.UnitNormal.Quantile(p)
}

func (n NormalDist) InvCDFEach(ps []float64) []float64 {
	res := make([]float64, len(ps))
	for i, p := range ps {
		res[i] = n.InvCDF(p)
	}
	return res
}

func (n NormalDist) Rand(r *rand.Rand) float64 {
	return r.NormFloat64()*n.Sigma + n.Mu
}

func (n NormalDist) Bounds() (float64, float64) {
	const stddevs = 3
	return n.Mu - stddevs*n.Sigma, n.Mu + stddevs*n.Sigma
}

// Norm is the normal distribution family with parameters loc (the
// mean) and scale (the standard deviation).
var Norm = NewContinuous(Family{
	Name: "norm",
	A:    math.Inf(-1),
	B:    math.Inf(1),
	PDF: func(z float64, _ []float64) float64 {
		return math.Exp(-z*z/2) * invSqrt2Pi
	},
	LogPDF: func(z float64, _ []float64) float64 {
		return -z*z/2 + math.Log(invSqrt2Pi)
	},
	CDF: func(z float64, _ []float64) float64 {
		return StdNormal.CDF(z)
	},
	SF: func(z float64, _ []float64) float64 {
		return StdNormal.CDF(-z)
	},
	PPF: func(q float64, _ []float64) float64 {
		return distuv.UnitNormal.Quantile(q)
	},
	ISF: func(q float64, _ []float64) float64 {
		return -distuv.UnitNormal.Quantile(q)
	},
	Stats: func(_ []float64, _ Moments) MomentSet {
		return MomentSet{Has: AllMoments, Mean: 0, Variance: 1, Skew: 0, Kurtosis: 0}
	},
	Entropy: func(_ []float64) float64 {
		return 0.5 * (math.Log(2*math.Pi) + 1)
	},
	Rand: func(rng *rand.Rand, _ []float64) float64 {
		return rng.NormFloat64()
	},
	Link: normLink,
})

// normLink solves x = loc + scale·z for loc or scale, where z is the
// standard normal quantile with log survival probability logSF.
func normLink(x, logSF float64, par []float64, i int) (float64, error) {
	z := -distuv.UnitNormal.Quantile(math.Exp(logSF))
	switch i {
	case 0:
		return x - par[1]*z, nil
	case 1:
		return (x - par[0]) / z, nil
	}
	return 0, errors.Wrapf(ErrNotImplemented, "norm: link for parameter %d", i)
}
