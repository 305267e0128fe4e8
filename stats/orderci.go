// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"github.com/cockroachdb/errors"
)

// An OrderCI is a distribution-free confidence interval for a
// quantile, bounded by two order statistics of a sample.
//
// It complements the profile interval of a quantile: it makes no
// assumption about the family of the data, at the cost of being
// wider.
type OrderCI struct {
	// Q is the quantile (the non-exceedance probability).
	Q float64

	// N is the sample size.
	N int

	// Level is the achieved confidence level, which is at least
	// the requested level.
	Level float64

	// Lo and Hi are the 1-based order statistics bounding the
	// interval. Lo of 0 and Hi of N+1 mean the bound is
	// unbounded, which happens when the sample is too small for
	// the requested level or Q is close to 0 or 1.
	Lo, Hi int

	// Ambiguous is set if the interval [Lo+1, Hi+1] has the same
	// confidence. Ties are broken toward the left.
	Ambiguous bool
}

// orderCIExactLimit is the largest sample size for which OrderCI sums
// binomial probabilities rather than using the normal approximation.
// It is a variable for testing.
var orderCIExactLimit = 30

// NewOrderCI returns the narrowest order-statistic interval containing
// the q'th quantile of a sample of size n with probability at least
// level.
//
// The number of sample points below the quantile is Binomial(n, q),
// so its PMF at k is the probability that the quantile lies between
// the k'th and (k+1)'th order statistics.
func NewOrderCI(n int, q, level float64) (OrderCI, error) {
	if n < 0 {
		return OrderCI{}, errors.Wrapf(ErrInvalidArgument, "negative sample size %d", n)
	}
	if !(q >= 0 && q <= 1) {
		return OrderCI{}, errors.Wrapf(ErrInvalidArgument, "quantile %g not in [0, 1]", q)
	}
	if !(level > 0) {
		return OrderCI{}, errors.Wrapf(ErrInvalidArgument, "confidence level %g not positive", level)
	}

	ci := OrderCI{Q: q, N: n}
	if level >= 1 {
		ci.Level, ci.Lo, ci.Hi = 1, 0, n+1
		return ci, nil
	}

	b := BinomialDist{N: n, P: q}
	var l, r int
	if n <= orderCIExactLimit {
		l, r, ci.Level, ci.Ambiguous = orderCIExact(b, level)
	} else {
		l, r, ci.Level, ci.Ambiguous = orderCINormal(b, level)
	}
	ci.Lo, ci.Hi = max(l, 0), min(r, n+1)
	return ci, nil
}

// orderCIExact grows the band [l, r) of binomial outcomes outward from
// the lower mode, adding the more probable neighbor each step, until
// its probability reaches level. The PMF decreases monotonically away
// from the mode, so the band is the narrowest one.
func orderCIExact(b BinomialDist, level float64) (l, r int, conf float64, ambig bool) {
	x := int(math.Ceil(float64(b.N+1)*b.P) - 1)
	if b.P == 0 {
		x = 0
	}
	l, r = x, x+1
	conf = b.PMF(float64(x))
	lp, rp := b.PMF(float64(l-1)), b.PMF(float64(r))
	// Two equal modes.
	ambig = rp == conf

	// Stop if there is nothing left to add, in case rounding keeps
	// conf just below level.
	for conf < level && (lp > 0 || rp > 0) {
		ambig = lp == rp
		if lp >= rp {
			conf += lp
			l--
			lp = b.PMF(float64(l - 1))
		} else {
			conf += rp
			r++
			rp = b.PMF(float64(r))
		}
	}
	return
}

// orderCINormal finds the band with the normal approximation to b.
// Outcome k covers [k-0.5, k+0.5] of the approximation, so the
// symmetric central interval is rounded out to half-integers.
func orderCINormal(b BinomialDist, level float64) (l, r int, conf float64, ambig bool) {
	norm := b.NormalApprox()
	l1 := norm.InvCDF((1 - level) / 2)
	r1 := 2*norm.Mu - l1

	l = int(math.Floor(math.Floor(l1-0.5)+0.5)) + 1
	r = int(math.Floor(math.Ceil(r1-0.5)+0.5)) + 1

	// Pr[l <= X < r] with the continuity correction.
	band := func(l, r int) float64 {
		return norm.CDF(float64(r)-0.5) - norm.CDF(float64(l)-0.5)
	}
	conf = band(l, r)
	// Prefer a left-biased band if it still reaches level.
	if c := band(l, r-1); c >= level && c < conf {
		conf, ambig = c, true
		r--
	}
	if l <= 0 && r >= b.N+1 {
		// The whole line. The approximation's tails make band
		// slightly less than 1.
		conf, ambig = 1, false
	}
	return
}

// Bounds returns the interval in terms of the values of sorted, which
// must be a sorted sample of size ci.N. Unbounded ends are -Inf and
// +Inf.
func (ci OrderCI) Bounds(sorted []float64) (lo, hi float64, err error) {
	if len(sorted) != ci.N {
		return 0, 0, errors.Wrapf(ErrInvalidArgument, "sample has %d values, interval was computed for %d", len(sorted), ci.N)
	}
	lo, hi = math.Inf(-1), math.Inf(1)
	if ci.Lo >= 1 {
		lo = sorted[ci.Lo-1]
	}
	if ci.Hi <= ci.N {
		hi = sorted[ci.Hi-1]
	}
	return lo, hi, nil
}

// OrderCI returns the distribution-free confidence interval at level
// 1-f.Alpha of the quantile of the data with survival probability sf.
func (f *Fitted) OrderCI(sf float64) (lo, hi float64, err error) {
	ci, err := NewOrderCI(len(f.Data), 1-sf, 1-f.Alpha)
	if err != nil {
		return 0, 0, err
	}
	return ci.Bounds(f.Data)
}
