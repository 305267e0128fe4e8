// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/rand/v2"
)

// boundsTail is the probability left outside each end of
// RV.Bounds when the support is unbounded.
const boundsTail = 1e-4

// An RV is a continuous distribution with fixed parameters, as
// returned by Continuous.Freeze. It implements Dist.
type RV struct {
	dist *Continuous
	par  []float64
}

// Dist returns the distribution family of rv.
func (rv *RV) Dist() *Continuous {
	return rv.dist
}

// Params returns a copy of rv's parameters: the shapes, loc and
// scale.
func (rv *RV) Params() []float64 {
	return append([]float64(nil), rv.par...)
}

// Valid reports whether rv's parameters are valid. All methods of an
// invalid RV return the bad value.
func (rv *RV) Valid() bool {
	_, ok := rv.dist.resolve(rv.par)
	return ok
}

func (rv *RV) each(xs []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = f(x)
	}
	return out
}

func (rv *RV) PDF(x float64) float64 {
	return rv.dist.at(x, rv.par, rv.dist.pdfAt)
}

func (rv *RV) PDFEach(xs []float64) []float64 {
	return rv.each(xs, rv.PDF)
}

func (rv *RV) LogPDF(x float64) float64 {
	return rv.dist.at(x, rv.par, rv.dist.logpdfAt)
}

func (rv *RV) CDF(x float64) float64 {
	return rv.dist.at(x, rv.par, rv.dist.cdfAt)
}

func (rv *RV) CDFEach(xs []float64) []float64 {
	return rv.each(xs, rv.CDF)
}

func (rv *RV) SF(x float64) float64 {
	return rv.dist.at(x, rv.par, rv.dist.sfAt)
}

func (rv *RV) CHF(x float64) float64 {
	return rv.dist.at(x, rv.par, rv.dist.chfAt)
}

func (rv *RV) PPF(q float64) float64 {
	return rv.dist.at(q, rv.par, rv.dist.ppfAt)
}

func (rv *RV) ISF(q float64) float64 {
	return rv.dist.at(q, rv.par, rv.dist.isfAt)
}

// InvCDF is PPF.
func (rv *RV) InvCDF(y float64) float64 {
	return rv.PPF(y)
}

func (rv *RV) InvCDFEach(ys []float64) []float64 {
	return rv.each(ys, rv.PPF)
}

// Support returns the interval outside of which rv has zero density.
func (rv *RV) Support() (float64, float64) {
	p, ok := rv.dist.resolve(rv.par)
	if !ok {
		return rv.dist.badValue, rv.dist.badValue
	}
	return p.sup.A*p.scale + p.loc, p.sup.B*p.scale + p.loc
}

// Bounds returns the support of rv, with infinite ends replaced by
// the quantiles at 0.01% and 99.99%.
func (rv *RV) Bounds() (float64, float64) {
	lo, hi := rv.Support()
	if math.IsInf(lo, -1) {
		lo = rv.PPF(boundsTail)
	}
	if math.IsInf(hi, 1) {
		hi = rv.ISF(boundsTail)
	}
	return lo, hi
}

// Stats returns the moments of rv requested by req.
func (rv *RV) Stats(req Moments) MomentSet {
	p, ok := rv.dist.resolve(rv.par)
	if !ok {
		b := rv.dist.badValue
		return MomentSet{Has: req, Mean: b, Variance: b, Skew: b, Kurtosis: b}
	}
	return rv.dist.moments(p, req)
}

func (rv *RV) Mean() float64 {
	return rv.Stats(Mean).Mean
}

func (rv *RV) Variance() float64 {
	return rv.Stats(Variance).Variance
}

func (rv *RV) StdDev() float64 {
	return math.Sqrt(rv.Variance())
}

func (rv *RV) Entropy() float64 {
	return rv.dist.at(0, rv.par, func(_ float64, p point) float64 {
		return rv.dist.entropy0(p) + math.Log(p.scale)
	})
}

// Rand returns a random variate of rv.
func (rv *RV) Rand(rng *rand.Rand) float64 {
	p, ok := rv.dist.resolve(rv.par)
	if !ok {
		return rv.dist.badValue
	}
	return rv.dist.rand0(rng, p)*p.scale + p.loc
}

// RandN returns n random variates of rv.
func (rv *RV) RandN(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = rv.Rand(rng)
	}
	return out
}
