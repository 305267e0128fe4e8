// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/aclements/go-distfit/vec"
	"github.com/cockroachdb/errors"
)

// MomentTol is the magnitude below which terms of the generic
// discrete moment series are considered negligible.
const MomentTol = 1e-8

// entropyTol is the magnitude below which terms of the generic
// discrete entropy sum are dropped.
const entropyTol = 1e-16

// A DiscreteFamily defines a discrete distribution family over the
// integers in terms of primitive functions of the standardized
// outcome k-loc and the shape parameters.
//
// All of the primitives are optional, except that at least one of PMF
// and CDF must be set. PMF, CDF and SF are only called with integer k
// inside the support.
type DiscreteFamily struct {
	// Name is the family's display name, such as "binom".
	Name string

	// NumShapes is the number of shape parameters.
	NumShapes int

	// A and B are the integer bounds of the support. Use Check
	// for shape-dependent bounds.
	A, B float64

	// BadValue, if non-nil, is the value returned for invalid
	// arguments. The default is NaN.
	BadValue *float64

	// Check reports whether shapes are valid and returns the
	// support for those shapes. If Check is nil, all shapes must
	// be positive and the support is [A, B].
	Check func(shapes []float64) (Support, bool)

	PMF func(k float64, shapes []float64) float64
	CDF func(k float64, shapes []float64) float64
	SF  func(k float64, shapes []float64) float64

	// PPF and ISF are called with probabilities strictly
	// between 0 and 1.
	PPF func(q float64, shapes []float64) float64
	ISF func(q float64, shapes []float64) float64

	Munp    func(n int, shapes []float64) float64
	Stats   func(shapes []float64, req Moments) MomentSet
	Entropy func(shapes []float64) float64
	Rand    func(rng *rand.Rand, shapes []float64) float64
}

type discreteKind int

const (
	formulaDefined discreteKind = iota
	tableDefined
)

// Discrete is a discrete distribution family, defined either by a
// DiscreteFamily or by an explicit table of outcomes and
// probabilities (see NewTable).
//
// Every operation takes its parameters as the shape parameters
// followed by an optional loc array (default 0).
//
// A Discrete is immutable and safe for concurrent use.
type Discrete struct {
	base
	kind discreteKind
	fam  DiscreteFamily

	// Table-defined distributions. cum[i] is the probability of
	// an outcome <= xk[i].
	xk, pk, cum []float64
}

// NewDiscrete returns the engine for family f. It panics if f defines
// neither PMF nor CDF.
func NewDiscrete(f DiscreteFamily) *Discrete {
	if f.PMF == nil && f.CDF == nil {
		panic(fmt.Sprintf("stats: family %q defines neither PMF nor CDF", f.Name))
	}
	return &Discrete{
		base: base{
			name:      f.Name,
			numShapes: f.NumShapes,
			support:   Support{f.A, f.B},
			check:     f.Check,
			badValue:  badValueOr(f.BadValue),
		},
		kind: formulaDefined,
		fam:  f,
	}
}

// NewTable returns the discrete distribution taking value xk[i] with
// probability pk[i]. Repeated values are merged. The probabilities
// must be non-negative and sum to 1.
func NewTable(name string, xk, pk []float64) (*Discrete, error) {
	if len(xk) != len(pk) {
		return nil, errors.Wrapf(ErrInvalidArgument, "%s: %d values but %d probabilities", name, len(xk), len(pk))
	}
	if len(xk) == 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "%s: empty table", name)
	}
	idx := make([]int, len(xk))
	for i := range idx {
		if math.IsNaN(xk[i]) || math.IsInf(xk[i], 0) {
			return nil, errors.Wrapf(ErrInvalidArgument, "%s: value %g is not finite", name, xk[i])
		}
		if !(pk[i] >= 0) {
			return nil, errors.Wrapf(ErrInvalidArgument, "%s: probability %g is negative", name, pk[i])
		}
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xk[idx[a]] < xk[idx[b]] })

	d := &Discrete{
		base: base{
			name:     name,
			badValue: nan,
		},
		kind: tableDefined,
	}
	total := 0.0
	for _, i := range idx {
		if n := len(d.xk); n > 0 && d.xk[n-1] == xk[i] {
			d.pk[n-1] += pk[i]
		} else {
			d.xk = append(d.xk, xk[i])
			d.pk = append(d.pk, pk[i])
		}
		total += pk[i]
	}
	if math.Abs(total-1) > 1e-8 {
		return nil, errors.Wrapf(ErrInvalidArgument, "%s: probabilities sum to %g, not 1", name, total)
	}
	d.cum = make([]float64, len(d.pk))
	s := 0.0
	for i, p := range d.pk {
		s += p
		d.cum[i] = s
	}
	d.cum[len(d.cum)-1] = 1
	d.support = Support{d.xk[0], d.xk[len(d.xk)-1]}
	return d, nil
}

// Table returns the outcomes and probabilities of a table-defined
// distribution, or nils for a formula-defined one.
func (d *Discrete) Table() (xk, pk []float64) {
	if d.kind != tableDefined {
		return nil, nil
	}
	return append([]float64(nil), d.xk...), append([]float64(nil), d.pk...)
}

// Standardized primitives.

func (d *Discrete) pmf0(k float64, p point) float64 {
	if d.kind == tableDefined {
		i := sort.SearchFloat64s(d.xk, k)
		if i < len(d.xk) && d.xk[i] == k {
			return d.pk[i]
		}
		return 0
	}
	if d.fam.PMF != nil {
		return d.fam.PMF(k, p.shapes)
	}
	return d.fam.CDF(k, p.shapes) - d.cdfInt(k-1, p)
}

// cdfInt returns the CDF at integer k, which may be below the
// support.
func (d *Discrete) cdfInt(k float64, p point) float64 {
	switch {
	case k < p.sup.A:
		return 0
	case k >= p.sup.B:
		return 1
	}
	return d.cdf0(k, p)
}

func (d *Discrete) cdf0(k float64, p point) float64 {
	switch {
	case d.kind == tableDefined:
		i := sort.Search(len(d.xk), func(i int) bool { return d.xk[i] > k })
		if i == 0 {
			return 0
		}
		return d.cum[i-1]
	case d.fam.CDF != nil:
		return d.fam.CDF(k, p.shapes)
	case d.fam.SF != nil:
		return 1 - d.fam.SF(k, p.shapes)
	}
	// Sum the PMF up to k.
	s := 0.0
	if !math.IsInf(p.sup.A, -1) {
		for j := p.sup.A; j <= k; j++ {
			s += d.fam.PMF(j, p.shapes)
		}
		return math.Min(s, 1)
	}
	for j := k; ; j-- {
		t := d.fam.PMF(j, p.shapes)
		s += t
		if t < entropyTol && k-j > 1000 {
			break
		}
	}
	return math.Min(s, 1)
}

func (d *Discrete) sf0(k float64, p point) float64 {
	if d.kind == formulaDefined && d.fam.SF != nil {
		return d.fam.SF(k, p.shapes)
	}
	return 1 - d.cdf0(k, p)
}

func (d *Discrete) ppf0(q float64, p point) float64 {
	switch {
	case d.kind == tableDefined:
		i := sort.Search(len(d.cum), func(i int) bool { return d.cum[i] >= q })
		if i == len(d.cum) {
			i--
		}
		return d.xk[i]
	case d.fam.PPF != nil:
		return d.fam.PPF(q, p.shapes)
	}
	return d.searchPPF(q, p)
}

func (d *Discrete) isf0(q float64, p point) float64 {
	if d.kind == formulaDefined && d.fam.ISF != nil {
		return d.fam.ISF(q, p.shapes)
	}
	return d.ppf0(1-q, p)
}

// searchPPF returns the smallest integer k with CDF(k) >= q by
// bisection, first widening the search interval in doubling steps if
// the support is unbounded.
func (d *Discrete) searchPPF(q float64, p point) float64 {
	lo, hi := p.sup.A, p.sup.B
	if math.IsInf(hi, 1) {
		start := 0.0
		if !math.IsInf(lo, -1) {
			start = math.Max(lo, 0)
		}
		for step := 10.0; ; step *= 2 {
			if hi = start + step; d.cdfInt(hi, p) >= q {
				break
			}
		}
	}
	if math.IsInf(lo, -1) {
		start := math.Min(hi, 0)
		for step := 10.0; ; step *= 2 {
			if lo = start - step; d.cdfInt(lo, p) < q {
				break
			}
		}
	}
	if d.cdfInt(lo, p) >= q {
		return lo
	}
	// Invariant: cdf(lo) < q <= cdf(hi).
	for hi-lo > 1 {
		mid := math.Floor(lo + (hi-lo)/2)
		if d.cdfInt(mid, p) < q {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi
}

// pmfStd is the PMF of the standardized outcome k.
func (d *Discrete) pmfStd(k float64, p point) float64 {
	if !p.sup.Contains(k) || (d.kind == formulaDefined && !isInt(k)) {
		return 0
	}
	return d.pmf0(k, p)
}

// Point functions with loc and support handling.

func (d *Discrete) pmfAt(x float64, p point) float64 {
	return d.pmfStd(x-p.loc, p)
}

func (d *Discrete) cdfAt(x float64, p point) float64 {
	k := x - p.loc
	if d.kind == formulaDefined {
		k = math.Floor(k)
	}
	switch {
	case k < p.sup.A:
		return 0
	case k >= p.sup.B:
		return 1
	}
	return d.cdf0(k, p)
}

func (d *Discrete) sfAt(x float64, p point) float64 {
	k := x - p.loc
	if d.kind == formulaDefined {
		k = math.Floor(k)
	}
	switch {
	case k < p.sup.A:
		return 1
	case k >= p.sup.B:
		return 0
	}
	return d.sf0(k, p)
}

func (d *Discrete) ppfAt(q float64, p point) float64 {
	switch {
	case q == 0:
		return p.sup.A - 1 + p.loc
	case q == 1:
		return p.sup.B + p.loc
	case q > 0 && q < 1:
		return d.ppf0(q, p) + p.loc
	}
	return d.badValue
}

func (d *Discrete) isfAt(q float64, p point) float64 {
	switch {
	case q == 0:
		return p.sup.B + p.loc
	case q == 1:
		return p.sup.A - 1 + p.loc
	case q > 0 && q < 1:
		return d.isf0(q, p) + p.loc
	}
	return d.badValue
}

// PMF returns the probability mass function at x. It is 0 outside the
// support and, for formula-defined families, at non-integer x-loc.
func (d *Discrete) PMF(x vec.Array, args ...vec.Array) (vec.Array, error) {
	return d.eval1(x, args, d.pmfAt)
}

// CDF returns the cumulative distribution function at x.
func (d *Discrete) CDF(x vec.Array, args ...vec.Array) (vec.Array, error) {
	return d.eval1(x, args, d.cdfAt)
}

// SF returns the survival function 1-CDF(x).
func (d *Discrete) SF(x vec.Array, args ...vec.Array) (vec.Array, error) {
	return d.eval1(x, args, d.sfAt)
}

// PPF returns the smallest outcome k with CDF(k) >= q. PPF(0) is one
// less than the lower support bound and PPF(1) is the upper support
// bound.
func (d *Discrete) PPF(q vec.Array, args ...vec.Array) (vec.Array, error) {
	return d.eval1(q, args, d.ppfAt)
}

// ISF returns the inverse survival function at q.
func (d *Discrete) ISF(q vec.Array, args ...vec.Array) (vec.Array, error) {
	return d.eval1(q, args, d.isfAt)
}

func (d *Discrete) munp(n int, p point) float64 {
	if n == 0 {
		return 1
	}
	if d.kind == tableDefined {
		s := 0.0
		for i, x := range d.xk {
			s += math.Pow(x, float64(n)) * d.pk[i]
		}
		return s
	}
	if d.fam.Munp != nil {
		return d.fam.Munp(n, p.shapes)
	}
	if n <= 4 && d.fam.Stats != nil {
		req := momentsUpTo(n)
		if ms := d.fam.Stats(p.shapes, req); ms.Has&req == req {
			return rawFromMoments(n, ms)
		}
	}
	return d.sumMoment(n, p)
}

// sumMoment sums kⁿ·pmf(k) over the support, stopping once the terms
// become negligible past ±1000.
func (d *Discrete) sumMoment(n int, p point) float64 {
	a, b := p.sup.A, p.sup.B
	mid := (math.Min(b, 1000) + math.Max(a, -1000)) / 2
	ulimit := math.Max(1000, mid)
	llimit := math.Min(-1000, mid)
	term := func(k float64) float64 {
		return math.Pow(k, float64(n)) * d.pmfStd(k, p)
	}

	tot := 0.0
	diff := math.Inf(1)
	for k := math.Max(0, a); k <= b && (k <= ulimit || math.Abs(diff) > MomentTol); k++ {
		diff = term(k)
		tot += diff
	}
	if a < 0 {
		diff = math.Inf(1)
		for k := -1.0; k >= a && (k >= llimit || math.Abs(diff) > MomentTol); k-- {
			diff = term(k)
			tot += diff
		}
	}
	return tot
}

func (d *Discrete) moments(p point, req Moments) MomentSet {
	var ms MomentSet
	if d.kind == formulaDefined && d.fam.Stats != nil {
		ms = d.fam.Stats(p.shapes, req)
	}
	raw := newRawMoments(func(n int) float64 { return d.munp(n, p) })
	return scaleMoments(deriveMoments(ms, req, raw), p.loc, 1)
}

// Stats returns the moments requested by req.
func (d *Discrete) Stats(req Moments, args ...vec.Array) (Summary, error) {
	res, err := d.eval(vec.Scalar(0), args, 4, func(_ float64, p point, out []float64) {
		ms := d.moments(p, req)
		out[0], out[1], out[2], out[3] = ms.Mean, ms.Variance, ms.Skew, ms.Kurtosis
	})
	if err != nil {
		return Summary{}, err
	}
	return summary(req, res), nil
}

// Moment returns the n'th raw moment E[Xⁿ]. n must be non-negative.
func (d *Discrete) Moment(n int, args ...vec.Array) (vec.Array, error) {
	if n < 0 {
		return vec.Array{}, errors.Wrapf(ErrInvalidArgument, "moment order %d must be a non-negative integer", n)
	}
	return d.evalParams(args, func(p point) float64 {
		raw := newRawMoments(func(n int) float64 { return d.munp(n, p) })
		return shiftScale(n, p.loc, 1, raw)
	})
}

func (d *Discrete) entropy0(p point) float64 {
	if d.kind == tableDefined {
		return entropyOf(d.pk)
	}
	if d.fam.Entropy != nil {
		return d.fam.Entropy(p.shapes)
	}
	h := func(k float64) float64 {
		v := d.pmfStd(k, p)
		if v <= 0 {
			return 0
		}
		return -v * math.Log(v)
	}
	// Sum outward from the mean until the terms vanish.
	mu := math.Floor(d.munp(1, p))
	if math.IsNaN(mu) || math.IsInf(mu, 0) || !p.sup.Contains(mu) {
		mu = math.Max(p.sup.A, math.Min(p.sup.B, 0))
	}
	ent := h(mu)
	for k := mu + 1; k <= p.sup.B; k++ {
		t := h(k)
		ent += t
		if t < entropyTol && k-mu > 1 {
			break
		}
	}
	for k := mu - 1; k >= p.sup.A; k-- {
		t := h(k)
		ent += t
		if t < entropyTol && mu-k > 1 {
			break
		}
	}
	return ent
}

// entropyOf returns the entropy of the probabilities pk.
func entropyOf(pk []float64) float64 {
	h := 0.0
	for _, p := range pk {
		if p > 0 {
			h -= p * math.Log(p)
		}
	}
	return h
}

// Entropy returns the entropy of the distribution.
func (d *Discrete) Entropy(args ...vec.Array) (vec.Array, error) {
	return d.evalParams(args, d.entropy0)
}

// Rand returns random variates with the broadcast shape of size and
// the parameters. size may be nil.
func (d *Discrete) Rand(rng *rand.Rand, size []int, args ...vec.Array) (vec.Array, error) {
	return d.sample(size, args, func(p point) float64 {
		return d.rand0(rng, p)
	})
}

func (d *Discrete) rand0(rng *rand.Rand, p point) float64 {
	if d.kind == formulaDefined && d.fam.Rand != nil {
		return d.fam.Rand(rng, p.shapes)
	}
	return d.ppf0(uniform(rng), p)
}

// Freeze returns the distribution with fixed parameters par (shapes,
// then optional loc).
func (d *Discrete) Freeze(par ...float64) (*DiscreteRV, error) {
	full, err := d.fullParams(par)
	if err != nil {
		return nil, err
	}
	return &DiscreteRV{dist: d, par: full}, nil
}
