// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"github.com/aclements/go-distfit/mathx"
)

// BinomialDist is a binomial distribution.
type BinomialDist struct {
	// N is the number of independent Bernoulli trials. N >= 0.
	//
	// If N=1, this is equivalent to the Bernoulli distribution.
	N int

	// P is the probability of success in each trial. 0 <= P <= 1.
	P float64
}

// PMF is the probability of getting exactly int(k) successes in d.N
// independent Bernoulli trials with probability d.P.
func (d BinomialDist) PMF(k float64) float64 {
	ki := int(math.Floor(k))
	if ki < 0 || ki > d.N {
		return 0
	}
	return binomPMF(float64(ki), float64(d.N), d.P)
}

// CDF is the probability of getting k or fewer successes in d.N
// independent Bernoulli trials with probability d.P.
func (d BinomialDist) CDF(k float64) float64 {
	k = math.Floor(k)
	ki := int(k)
	if ki < 0 {
		return 0
	} else if ki >= d.N {
		return 1
	}
	return binomCDF(k, float64(d.N), d.P)
}

func (d BinomialDist) Bounds() (float64, float64) {
	return 0, float64(d.N)
}

func (d BinomialDist) Step() float64 {
	return 1
}

func (d BinomialDist) Mean() float64 {
	return float64(d.N) * d.P
}

func (d BinomialDist) Variance() float64 {
	return float64(d.N) * d.P * (1 - d.P)
}

// NormalApprox returns a normal distribution approximation of
// binomial distribution d.
//
// Because the binomial distribution is discrete and the normal
// distribution is continuous, the caller must apply a continuity
// correction when using this approximation. Specifically, if b is the
// binomial distribution and n is the normal approximation, operations
// map as follows:
//
//	b.PMF(k) => n.CDF(k+0.5) - n.CDF(k-0.5)
//	b.CDF(k) => n.CDF(k+0.5)
func (d BinomialDist) NormalApprox() NormalDist {
	return NormalDist{Mu: d.Mean(), Sigma: math.Sqrt(d.Variance())}
}

// Freeze returns d as a frozen member of the Binom family.
func (d BinomialDist) Freeze() *DiscreteRV {
	rv, err := Binom.Freeze(float64(d.N), d.P)
	if err != nil {
		panic(err)
	}
	return rv
}

// Binom is the binomial distribution family with shape parameters n,
// the number of trials, and p, the success probability.
var Binom = NewDiscrete(DiscreteFamily{
	Name:      "binom",
	NumShapes: 2,
	A:         0,
	B:         math.Inf(1),
	Check: func(s []float64) (Support, bool) {
		n, p := s[0], s[1]
		if !(n >= 0) || !isInt(n) || !(p >= 0 && p <= 1) {
			return Support{}, false
		}
		return Support{0, n}, true
	},
	PMF: func(k float64, s []float64) float64 {
		return binomPMF(k, s[0], s[1])
	},
	CDF: func(k float64, s []float64) float64 {
		return binomCDF(k, s[0], s[1])
	},
	SF: func(k float64, s []float64) float64 {
		return mathx.BetaInc(s[1], k+1, s[0]-k)
	},
	Stats: func(s []float64, _ Moments) MomentSet {
		n, p := s[0], s[1]
		q := 1 - p
		v := n * p * q
		return MomentSet{
			Has:      AllMoments,
			Mean:     n * p,
			Variance: v,
			Skew:     (q - p) / math.Sqrt(v),
			Kurtosis: (1 - 6*p*q) / v,
		}
	},
})

func binomPMF(k, n, p float64) float64 {
	if n <= 64 {
		return mathx.Choose(int(n), int(k)) * math.Pow(p, k) * math.Pow(1-p, n-k)
	}
	if (p == 0 && k == 0) || (p == 1 && k == n) {
		return 1
	}
	lc, _ := math.Lgamma(n + 1)
	lk, _ := math.Lgamma(k + 1)
	lnk, _ := math.Lgamma(n - k + 1)
	return math.Exp(lc - lk - lnk + k*math.Log(p) + (n-k)*math.Log1p(-p))
}

// binomCDF returns P(X <= k) for integer 0 <= k < n.
func binomCDF(k, n, p float64) float64 {
	return mathx.BetaInc(1-p, n-k, k+1)
}
