// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mathx

import (
	"math"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/combin"
)

// Choose returns the binomial coefficient of n and k.
func Choose(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	if k <= 64 {
		// Exact in float64 up to this point for all
		// practical n.
		r := 1.0
		for i := 1; i <= k; i++ {
			r = r * float64(n-k+i) / float64(i)
		}
		return math.Round(r)
	}
	return math.Exp(combin.LogGeneralizedBinomial(float64(n), float64(k)))
}

// BetaInc returns the value of the regularized incomplete beta
// function Iₓ(a, b).
//
// This is not to be confused with the "incomplete beta function",
// which can be computed as BetaInc(x, a, b)*Beta(a, b).
//
// If x < 0 or x > 1, returns NaN.
func BetaInc(x, a, b float64) float64 {
	if x < 0 || x > 1 || math.IsNaN(x) {
		return nan
	}
	switch {
	case x == 0:
		return 0
	case x == 1:
		return 1
	}
	return mathext.RegIncBeta(a, b, x)
}

// GammaInc returns the regularized lower incomplete gamma function
// P(a, x).
func GammaInc(a, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if math.IsInf(x, 1) {
		return 1
	}
	return mathext.GammaIncReg(a, x)
}

// GammaIncComp returns the regularized upper incomplete gamma
// function Q(a, x) = 1 - P(a, x).
func GammaIncComp(a, x float64) float64 {
	if x <= 0 {
		return 1
	}
	if math.IsInf(x, 1) {
		return 0
	}
	return mathext.GammaIncRegComp(a, x)
}

// GammaIncInv returns x such that GammaInc(a, x) = p.
func GammaIncInv(a, p float64) float64 {
	switch {
	case p <= 0:
		return 0
	case p >= 1:
		return inf
	}
	return mathext.GammaIncRegInv(a, p)
}
