// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/rand/v2"
)

// A DiscreteRV is a discrete distribution with fixed parameters, as
// returned by Discrete.Freeze. It implements DiscreteDist.
type DiscreteRV struct {
	dist *Discrete
	par  []float64
}

// Dist returns the distribution family of rv.
func (rv *DiscreteRV) Dist() *Discrete {
	return rv.dist
}

// Params returns a copy of rv's parameters: the shapes and loc.
func (rv *DiscreteRV) Params() []float64 {
	return append([]float64(nil), rv.par...)
}

// Valid reports whether rv's parameters are valid.
func (rv *DiscreteRV) Valid() bool {
	_, ok := rv.dist.resolve(rv.par)
	return ok
}

func (rv *DiscreteRV) PMF(k float64) float64 {
	return rv.dist.at(k, rv.par, rv.dist.pmfAt)
}

func (rv *DiscreteRV) CDF(k float64) float64 {
	return rv.dist.at(k, rv.par, rv.dist.cdfAt)
}

func (rv *DiscreteRV) SF(k float64) float64 {
	return rv.dist.at(k, rv.par, rv.dist.sfAt)
}

func (rv *DiscreteRV) PPF(q float64) float64 {
	return rv.dist.at(q, rv.par, rv.dist.ppfAt)
}

func (rv *DiscreteRV) ISF(q float64) float64 {
	return rv.dist.at(q, rv.par, rv.dist.isfAt)
}

// Support returns the smallest and largest possible outcomes.
func (rv *DiscreteRV) Support() (float64, float64) {
	p, ok := rv.dist.resolve(rv.par)
	if !ok {
		return rv.dist.badValue, rv.dist.badValue
	}
	return p.sup.A + p.loc, p.sup.B + p.loc
}

// Bounds returns the support of rv, with infinite ends replaced by
// the quantiles at 0.01% and 99.99%.
func (rv *DiscreteRV) Bounds() (float64, float64) {
	lo, hi := rv.Support()
	if math.IsInf(lo, -1) {
		lo = rv.PPF(boundsTail)
	}
	if math.IsInf(hi, 1) {
		hi = rv.ISF(boundsTail)
	}
	return lo, hi
}

// Step returns the distance between successive outcomes. It is 1 for
// formula-defined families and 0 for table-defined ones, whose
// outcomes need not be evenly spaced.
func (rv *DiscreteRV) Step() float64 {
	if rv.dist.kind == tableDefined {
		return 0
	}
	return 1
}

// Stats returns the moments of rv requested by req.
func (rv *DiscreteRV) Stats(req Moments) MomentSet {
	p, ok := rv.dist.resolve(rv.par)
	if !ok {
		b := rv.dist.badValue
		return MomentSet{Has: req, Mean: b, Variance: b, Skew: b, Kurtosis: b}
	}
	return rv.dist.moments(p, req)
}

func (rv *DiscreteRV) Mean() float64 {
	return rv.Stats(Mean).Mean
}

func (rv *DiscreteRV) Variance() float64 {
	return rv.Stats(Variance).Variance
}

func (rv *DiscreteRV) Entropy() float64 {
	return rv.dist.at(0, rv.par, func(_ float64, p point) float64 {
		return rv.dist.entropy0(p)
	})
}

// Rand returns a random outcome of rv.
func (rv *DiscreteRV) Rand(rng *rand.Rand) float64 {
	p, ok := rv.dist.resolve(rv.par)
	if !ok {
		return rv.dist.badValue
	}
	return rv.dist.rand0(rng, p) + p.loc
}
