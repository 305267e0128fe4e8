// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"github.com/aclements/go-distfit/mathx"
	"github.com/aclements/go-distfit/vec"
)

// Summary holds the requested moments of a distribution, broadcast
// over its parameters. Moments that were not requested are zero
// Arrays.
type Summary struct {
	Mean, Variance, Skew, Kurtosis vec.Array
}

// rawMoments memoizes the raw moments of one standardized
// distribution for the duration of a single call.
type rawMoments struct {
	munp  func(n int) float64
	cache map[int]float64
}

func newRawMoments(munp func(n int) float64) *rawMoments {
	return &rawMoments{munp: munp, cache: map[int]float64{0: 1}}
}

func (r *rawMoments) at(n int) float64 {
	if v, ok := r.cache[n]; ok {
		return v
	}
	v := r.munp(n)
	r.cache[n] = v
	return v
}

// central returns the n'th central moment about mu by binomial
// expansion of the raw moments.
func (r *rawMoments) central(n int, mu float64) float64 {
	s := 0.0
	for j := 0; j <= n; j++ {
		s += mathx.Choose(n, j) * r.at(j) * math.Pow(-mu, float64(n-j))
	}
	return s
}

// deriveMoments returns the moments in req, taking them from ms where
// present and deriving the rest from raw moments.
func deriveMoments(ms MomentSet, req Moments, raw *rawMoments) MomentSet {
	// Seed the raw moment cache with anything ms gives us
	// exactly.
	if v, ok := ms.Get(Mean); ok {
		raw.cache[1] = v
		if v2, ok := ms.Get(Variance); ok {
			raw.cache[2] = v2 + v*v
		}
	}

	mean := func() float64 {
		if v, ok := ms.Get(Mean); ok {
			return v
		}
		return raw.at(1)
	}
	variance := func() float64 {
		if v, ok := ms.Get(Variance); ok {
			return v
		}
		m := mean()
		return raw.at(2) - m*m
	}

	var out MomentSet
	if req&Mean != 0 {
		out.Mean = mean()
		out.Has |= Mean
	}
	if req&Variance != 0 {
		out.Variance = variance()
		out.Has |= Variance
	}
	if req&Skew != 0 {
		if v, ok := ms.Get(Skew); ok {
			out.Skew = v
		} else {
			out.Skew = raw.central(3, mean()) / math.Pow(variance(), 1.5)
		}
		out.Has |= Skew
	}
	if req&Kurtosis != 0 {
		if v, ok := ms.Get(Kurtosis); ok {
			out.Kurtosis = v
		} else {
			v2 := variance()
			out.Kurtosis = raw.central(4, mean())/(v2*v2) - 3
		}
		out.Has |= Kurtosis
	}
	return out
}

// momentsUpTo returns the moments needed to reconstruct the raw
// moments of order 1 through n <= 4.
func momentsUpTo(n int) Moments {
	return Moments(1<<n) - 1
}

// rawFromMoments returns the n'th raw moment, 1 <= n <= 4, of a
// distribution with the given mean, variance, skewness and excess
// kurtosis.
func rawFromMoments(n int, ms MomentSet) float64 {
	mu, v := ms.Mean, ms.Variance
	sd := math.Sqrt(v)
	switch n {
	case 1:
		return mu
	case 2:
		return v + mu*mu
	case 3:
		c3 := ms.Skew * v * sd
		return c3 + 3*mu*v + mu*mu*mu
	case 4:
		c3 := ms.Skew * v * sd
		c4 := (ms.Kurtosis + 3) * v * v
		return c4 + 4*mu*c3 + 6*mu*mu*v + mu*mu*mu*mu
	}
	panic("stats: rawFromMoments order out of range")
}

// shiftScale returns the n'th raw moment of loc + scale·Z given the
// raw moments of Z.
func shiftScale(n int, loc, scale float64, raw *rawMoments) float64 {
	if loc == 0 {
		return math.Pow(scale, float64(n)) * raw.at(n)
	}
	s := 0.0
	for j := 0; j <= n; j++ {
		s += mathx.Choose(n, j) * math.Pow(loc, float64(n-j)) * math.Pow(scale, float64(j)) * raw.at(j)
	}
	return s
}

// scaleMoments converts standardized moments to those of
// loc + scale·Z.
func scaleMoments(ms MomentSet, loc, scale float64) MomentSet {
	ms.Mean = ms.Mean*scale + loc
	ms.Variance *= scale * scale
	return ms
}
