// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/aclements/go-distfit/mathx"
	"github.com/aclements/go-distfit/vec"
	"github.com/cockroachdb/errors"
)

// Initial bracket for the generic quantile solver. It is clipped to
// the support and expanded as needed.
const (
	ppfXA = -10.0
	ppfXB = 10.0
)

// Continuous is a continuous distribution family compiled from a
// Family.
//
// Every operation takes its parameters as the shape parameters
// followed by optional loc (default 0) and scale (default 1) arrays,
// all broadcast against each other and against the variate. The
// standardized variate is z = (x-loc)/scale.
//
// A Continuous is immutable and safe for concurrent use.
type Continuous struct {
	base
	fam Family
}

// NewContinuous returns the engine for family f. It panics if f
// defines neither PDF nor CDF.
func NewContinuous(f Family) *Continuous {
	if f.PDF == nil && f.CDF == nil {
		panic(fmt.Sprintf("stats: family %q defines neither PDF nor CDF", f.Name))
	}
	return &Continuous{
		base: base{
			name:      f.Name,
			numShapes: f.NumShapes,
			hasScale:  true,
			support:   Support{f.A, f.B},
			check:     f.Check,
			badValue:  badValueOr(f.BadValue),
		},
		fam: f,
	}
}

// Family returns the definition of c.
func (c *Continuous) Family() Family {
	return c.fam
}

// Standardized primitives. These take z within p.sup and fall back
// to numerical methods when the family omits a primitive.

func (c *Continuous) pdf0(z float64, p point) float64 {
	if c.fam.PDF != nil {
		return c.fam.PDF(z, p.shapes)
	}
	cdf := func(z float64) float64 {
		switch {
		case z <= p.sup.A:
			return 0
		case z >= p.sup.B:
			return 1
		}
		return c.fam.CDF(z, p.shapes)
	}
	return math.Max(mathx.Derivative(cdf, z), 0)
}

func (c *Continuous) logpdf0(z float64, p point) float64 {
	if c.fam.LogPDF != nil {
		return c.fam.LogPDF(z, p.shapes)
	}
	return math.Log(c.pdf0(z, p))
}

func (c *Continuous) cdf0(z float64, p point) float64 {
	switch {
	case c.fam.CDF != nil:
		return c.fam.CDF(z, p.shapes)
	case c.fam.SF != nil:
		return 1 - c.fam.SF(z, p.shapes)
	}
	pdf := func(z float64) float64 {
		return c.fam.PDF(z, p.shapes)
	}
	v, _ := mathx.Integrate(pdf, p.sup.A, z)
	return math.Min(math.Max(v, 0), 1)
}

func (c *Continuous) sf0(z float64, p point) float64 {
	if c.fam.SF != nil {
		return c.fam.SF(z, p.shapes)
	}
	return 1 - c.cdf0(z, p)
}

func (c *Continuous) ppf0(q float64, p point) float64 {
	switch {
	case c.fam.PPF != nil:
		return c.fam.PPF(q, p.shapes)
	case c.fam.ISF != nil:
		return c.fam.ISF(1-q, p.shapes)
	}
	return c.solvePPF(q, p)
}

func (c *Continuous) isf0(q float64, p point) float64 {
	if c.fam.ISF != nil {
		return c.fam.ISF(q, p.shapes)
	}
	return c.ppf0(1-q, p)
}

// solvePPF inverts the CDF by root finding.
func (c *Continuous) solvePPF(q float64, p point) float64 {
	f := func(z float64) float64 {
		switch {
		case z <= p.sup.A:
			return -q
		case z >= p.sup.B:
			return 1 - q
		}
		return c.cdf0(z, p) - q
	}
	lo, hi, ok := mathx.Bracket(f, ppfXA, ppfXB, p.sup.A, p.sup.B)
	if !ok {
		return nan
	}
	z, err := mathx.Brent(f, lo, hi, 0)
	if err != nil {
		return nan
	}
	return z
}

// Point functions with loc/scale and support handling. These
// implement the element-wise semantics of the public methods.

func (c *Continuous) pdfAt(x float64, p point) float64 {
	z := p.std(x)
	if !p.sup.Contains(z) {
		return 0
	}
	return c.pdf0(z, p) / p.scale
}

func (c *Continuous) logpdfAt(x float64, p point) float64 {
	z := p.std(x)
	if !p.sup.Contains(z) {
		return math.Inf(-1)
	}
	return c.logpdf0(z, p) - math.Log(p.scale)
}

func (c *Continuous) cdfAt(x float64, p point) float64 {
	z := p.std(x)
	switch {
	case z <= p.sup.A:
		return 0
	case z >= p.sup.B:
		return 1
	}
	return c.cdf0(z, p)
}

func (c *Continuous) sfAt(x float64, p point) float64 {
	z := p.std(x)
	switch {
	case z <= p.sup.A:
		return 1
	case z >= p.sup.B:
		return 0
	}
	return c.sf0(z, p)
}

func (c *Continuous) chfAt(x float64, p point) float64 {
	z := p.std(x)
	switch {
	case z <= p.sup.A:
		return 0
	case z >= p.sup.B:
		return inf
	}
	if c.fam.SF == nil {
		if cdf := c.cdf0(z, p); cdf < 0.5 {
			return -math.Log1p(-cdf)
		}
	}
	return -math.Log(c.sf0(z, p))
}

func (c *Continuous) ppfAt(q float64, p point) float64 {
	switch {
	case q == 0:
		return p.sup.A*p.scale + p.loc
	case q == 1:
		return p.sup.B*p.scale + p.loc
	case q > 0 && q < 1:
		return c.ppf0(q, p)*p.scale + p.loc
	}
	return c.badValue
}

func (c *Continuous) isfAt(q float64, p point) float64 {
	switch {
	case q == 0:
		return p.sup.B*p.scale + p.loc
	case q == 1:
		return p.sup.A*p.scale + p.loc
	case q > 0 && q < 1:
		return c.isf0(q, p)*p.scale + p.loc
	}
	return c.badValue
}

// PDF returns the probability density function at x. It is 0 outside
// the support.
func (c *Continuous) PDF(x vec.Array, args ...vec.Array) (vec.Array, error) {
	return c.eval1(x, args, c.pdfAt)
}

// LogPDF returns the log of the probability density function at x.
func (c *Continuous) LogPDF(x vec.Array, args ...vec.Array) (vec.Array, error) {
	return c.eval1(x, args, c.logpdfAt)
}

// CDF returns the cumulative distribution function at x. It is 0 at
// and below the lower support bound and 1 at and above the upper.
func (c *Continuous) CDF(x vec.Array, args ...vec.Array) (vec.Array, error) {
	return c.eval1(x, args, c.cdfAt)
}

// SF returns the survival function 1-CDF(x), computed directly when
// the family provides it.
func (c *Continuous) SF(x vec.Array, args ...vec.Array) (vec.Array, error) {
	return c.eval1(x, args, c.sfAt)
}

// CHF returns the cumulative hazard function -log(SF(x)).
func (c *Continuous) CHF(x vec.Array, args ...vec.Array) (vec.Array, error) {
	return c.eval1(x, args, c.chfAt)
}

// PPF returns the percent point function (the inverse of CDF) at q.
// PPF(0) and PPF(1) are the lower and upper support bounds; q outside
// [0, 1] yields the bad value.
func (c *Continuous) PPF(q vec.Array, args ...vec.Array) (vec.Array, error) {
	return c.eval1(q, args, c.ppfAt)
}

// ISF returns the inverse survival function at q.
func (c *Continuous) ISF(q vec.Array, args ...vec.Array) (vec.Array, error) {
	return c.eval1(q, args, c.isfAt)
}

// munp returns the n'th raw moment of the standardized distribution.
func (c *Continuous) munp(n int, p point) float64 {
	if n == 0 {
		return 1
	}
	if c.fam.Munp != nil {
		return c.fam.Munp(n, p.shapes)
	}
	if n <= 4 && c.fam.Stats != nil {
		req := momentsUpTo(n)
		if ms := c.fam.Stats(p.shapes, req); ms.Has&req == req {
			return rawFromMoments(n, ms)
		}
	}
	if c.fam.MomentsFromPPF {
		v, _ := mathx.Integrate(func(q float64) float64 {
			return math.Pow(c.ppf0(q, p), float64(n))
		}, 0, 1)
		return v
	}
	v, _ := mathx.Integrate(func(z float64) float64 {
		d := c.pdf0(z, p)
		if d == 0 {
			return 0
		}
		return math.Pow(z, float64(n)) * d
	}, p.sup.A, p.sup.B)
	return v
}

func (c *Continuous) moments(p point, req Moments) MomentSet {
	var ms MomentSet
	if c.fam.Stats != nil {
		ms = c.fam.Stats(p.shapes, req)
	}
	raw := newRawMoments(func(n int) float64 { return c.munp(n, p) })
	return scaleMoments(deriveMoments(ms, req, raw), p.loc, p.scale)
}

// Stats returns the moments requested by req: the mean, variance,
// skewness and excess kurtosis.
func (c *Continuous) Stats(req Moments, args ...vec.Array) (Summary, error) {
	res, err := c.eval(vec.Scalar(0), args, 4, func(_ float64, p point, out []float64) {
		ms := c.moments(p, req)
		out[0], out[1], out[2], out[3] = ms.Mean, ms.Variance, ms.Skew, ms.Kurtosis
	})
	if err != nil {
		return Summary{}, err
	}
	return summary(req, res), nil
}

func summary(req Moments, res []vec.Array) Summary {
	var s Summary
	if req&Mean != 0 {
		s.Mean = res[0]
	}
	if req&Variance != 0 {
		s.Variance = res[1]
	}
	if req&Skew != 0 {
		s.Skew = res[2]
	}
	if req&Kurtosis != 0 {
		s.Kurtosis = res[3]
	}
	return s
}

// Moment returns the n'th raw (non-central) moment E[Xⁿ]. n must be
// non-negative.
func (c *Continuous) Moment(n int, args ...vec.Array) (vec.Array, error) {
	if n < 0 {
		return vec.Array{}, errors.Wrapf(ErrInvalidArgument, "moment order %d must be a non-negative integer", n)
	}
	return c.evalParams(args, func(p point) float64 {
		raw := newRawMoments(func(n int) float64 { return c.munp(n, p) })
		return shiftScale(n, p.loc, p.scale, raw)
	})
}

func (c *Continuous) entropy0(p point) float64 {
	if c.fam.Entropy != nil {
		return c.fam.Entropy(p.shapes)
	}
	integrand := func(z float64) float64 {
		d := c.pdf0(z, p)
		if !(d > 0) && !math.IsNaN(d) {
			return 0
		}
		return -d * math.Log(d)
	}
	h, _ := mathx.Integrate(integrand, p.sup.A, p.sup.B)
	if !math.IsNaN(h) {
		return h
	}
	// Retry over the central 99.8% of the distribution.
	lo, hi := p.sup.A, p.sup.B
	if math.IsInf(lo, -1) {
		lo = c.ppf0(0.001, p)
	}
	if math.IsInf(hi, 1) {
		hi = c.ppf0(0.999, p)
	}
	h, _ = mathx.Integrate(integrand, lo, hi)
	return h
}

// Entropy returns the differential entropy of the distribution.
func (c *Continuous) Entropy(args ...vec.Array) (vec.Array, error) {
	return c.evalParams(args, func(p point) float64 {
		return c.entropy0(p) + math.Log(p.scale)
	})
}

// Rand returns random variates with the broadcast shape of size and
// the parameters. size may be nil. The family's sampler is used if
// it has one; otherwise variates are drawn by inverting the CDF at
// uniform probabilities.
func (c *Continuous) Rand(rng *rand.Rand, size []int, args ...vec.Array) (vec.Array, error) {
	return c.sample(size, args, func(p point) float64 {
		return c.rand0(rng, p)
	})
}

func (c *Continuous) rand0(rng *rand.Rand, p point) float64 {
	if c.fam.Rand != nil {
		return c.fam.Rand(rng, p.shapes)
	}
	return c.ppf0(uniform(rng), p)
}

// Freeze returns the distribution with fixed parameters par (shapes,
// then optional loc and scale).
func (c *Continuous) Freeze(par ...float64) (*RV, error) {
	full, err := c.fullParams(par)
	if err != nil {
		return nil, err
	}
	return &RV{dist: c, par: full}, nil
}
