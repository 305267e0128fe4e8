// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"sort"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// spacingPenalty replaces each non-finite log spacing in NLogPS.
var spacingPenalty = 100 * math.Log(math.MaxFloat64)

// eulerGamma is the truncated Euler-Mascheroni constant of Cheng and
// Stephens' approximation.
const eulerGamma = 0.57722

func (c *Continuous) checkObjective(par, data []float64) error {
	if len(par) != c.NumParams() {
		return errors.Wrapf(ErrInvalidArgument, "%s: got %d parameters, want %d", c.name, len(par), c.NumParams())
	}
	if len(data) == 0 {
		return errors.Wrap(ErrInvalidArgument, "no data")
	}
	return nil
}

// NNLF returns the negative log-likelihood of par (shapes, loc,
// scale) given data:
//
//	-Σ log pdf((xᵢ-loc)/scale) + n·log(scale)
//
// It returns +Inf if par is invalid or any datum lies outside the
// open support.
func (c *Continuous) NNLF(par, data []float64) (float64, error) {
	if err := c.checkObjective(par, data); err != nil {
		return 0, err
	}
	return c.nnlf(par, data), nil
}

func (c *Continuous) nnlf(par, data []float64) float64 {
	p, ok := c.resolve(par)
	if !ok {
		return inf
	}
	sum := 0.0
	for _, x := range data {
		z := p.std(x)
		if z <= p.sup.A || z >= p.sup.B {
			return inf
		}
		sum -= c.logpdf0(z, p)
	}
	sum += float64(len(data)) * math.Log(p.scale)
	if math.IsNaN(sum) {
		return inf
	}
	return sum
}

// NLogPS returns Moran's negative log product of spacings statistic
// of par given data, which must be sorted in increasing order.
//
// The spacings are the successive differences of 0, the CDF at each
// datum, and 1. The spacing of a datum equal to its predecessor to
// within a few ulps, or of any interior datum whose CDF spacing is not
// positive, is replaced by the log density at the tied point plus
// log(scale). Any remaining
// non-finite log spacing contributes a large finite penalty instead.
//
// NLogPS returns +Inf if par is invalid or any datum lies outside the
// open support.
func (c *Continuous) NLogPS(par, data []float64) (float64, error) {
	if err := c.checkObjective(par, data); err != nil {
		return 0, err
	}
	if !sort.Float64sAreSorted(data) {
		return 0, errors.Wrap(ErrInvalidArgument, "data must be sorted")
	}
	return c.nlogps(par, data), nil
}

func (c *Continuous) nlogps(par, data []float64) float64 {
	p, ok := c.resolve(par)
	if !ok {
		return inf
	}
	n := len(data)
	z := make([]float64, n)
	for i, x := range data {
		z[i] = p.std(x)
		if z[i] <= p.sup.A || z[i] >= p.sup.B {
			return inf
		}
	}

	logD := make([]float64, n+1)
	prev := 0.0
	for i := 0; i <= n; i++ {
		cur := 1.0
		if i < n {
			cur = c.cdf0(z[i], p)
		}
		d := cur - prev
		if i > 0 && i < n && (d <= 0 || isTie(z[i], z[i-1])) {
			logD[i] = c.logpdf0(z[i-1], p) + math.Log(p.scale)
		} else {
			logD[i] = math.Log(d)
		}
		prev = cur
	}

	t := 0.0
	for _, d := range logD {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			t += spacingPenalty
		} else {
			t -= d
		}
	}
	return t
}

// isTie reports whether a and b are equal to within a few ulps.
func isTie(a, b float64) bool {
	return math.Abs(a-b) <= tieTol*math.Max(math.Abs(a), 1)
}

const tieTol = 4 * 0x1p-52

// PValue returns the p-value of Moran's goodness-of-fit test for par
// given sorted data, where k parameters were estimated from the data.
// It uses Cheng and Stephens' chi-squared approximation to the
// distribution of NLogPS. Ties in the data make the p-value
// conservative.
func (c *Continuous) PValue(par, data []float64, k int) (float64, error) {
	if err := c.checkObjective(par, data); err != nil {
		return 0, err
	}
	return c.pvalue(par, data, k), nil
}

func (c *Continuous) pvalue(par, data []float64, k int) float64 {
	t := c.nlogps(par, data)
	return moranPValue(t, len(data), k)
}

// moranPValue converts Moran's statistic t for a sample of n with k
// estimated parameters into a p-value.
func moranPValue(t float64, n, k int) float64 {
	fn := float64(n)
	np1 := fn + 1
	m := np1*(math.Log(np1)+eulerGamma) - 0.5 - 1/(12*np1)
	v := np1*(math.Pi*math.Pi/6-1) - 0.5 - 1/(6*np1)
	c1 := m - math.Sqrt(0.5*fn*v)
	c2 := math.Sqrt(v / (2 * fn))
	tn := (t + 0.5*float64(k) - c1) / c2
	if math.IsNaN(tn) {
		return nan
	}
	return distuv.ChiSquared{K: fn}.Survival(tn)
}

// EstLocScale returns method-of-moments estimates of loc and scale
// for data given the shape parameters, by matching the sample mean and
// variance to those of the standardized distribution.
func (c *Continuous) EstLocScale(data []float64, shapes ...float64) (loc, scale float64, err error) {
	if len(shapes) != c.numShapes {
		return 0, 0, c.argsError(len(shapes))
	}
	if len(data) == 0 {
		return 0, 0, errors.Wrap(ErrInvalidArgument, "no data")
	}
	par := append(append([]float64(nil), shapes...), 0, 1)
	p, ok := c.resolve(par)
	if !ok {
		return nan, nan, nil
	}
	ms := c.moments(p, MV)
	loc, scale = estLocScale(data, ms.Mean, ms.Variance)
	return loc, scale, nil
}

func estLocScale(data []float64, mu, mu2 float64) (loc, scale float64) {
	mean, variance := meanVariance(data)
	scale = math.Sqrt(variance / mu2)
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = 1
	}
	loc = mean - scale*mu
	if math.IsNaN(loc) || math.IsInf(loc, 0) {
		loc = mean
	}
	return loc, scale
}

// sortedCopy returns data sorted in increasing order, copying it
// unless inPlace is set.
func sortedCopy(data []float64, inPlace bool) []float64 {
	if !inPlace {
		data = append([]float64(nil), data...)
	}
	sort.Float64s(data)
	return data
}
