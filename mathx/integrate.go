// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mathx

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// IntegrateTol is the relative tolerance requested by Integrate.
const IntegrateTol = 1.49e-8

const (
	integrateOrder  = 15
	integrateDepth  = 40
	integrateBudget = 500
)

// Integrate returns an approximation of the integral of f over
// [a, b] and an estimate of its absolute error. Either bound may be
// infinite.
//
// Infinite intervals are mapped onto finite ones by the substitutions
// x = a + t/(1-t), x = b - (1-t)/t or x = t/(1-t²). The finite
// integral is then computed by adaptive bisection, comparing n- and
// 2n-point Gauss-Legendre rules on each panel.
//
// If f produces a NaN anywhere it is evaluated, the result is NaN.
func Integrate(f func(float64) float64, a, b float64) (float64, float64) {
	switch {
	case math.IsNaN(a) || math.IsNaN(b):
		return nan, nan
	case a == b:
		return 0, 0
	case a > b:
		v, err := Integrate(f, b, a)
		return -v, err
	}

	g, lo, hi := f, a, b
	switch {
	case math.IsInf(a, -1) && math.IsInf(b, 1):
		g = func(t float64) float64 {
			d := 1 - t*t
			return f(t/d) * (1 + t*t) / (d * d)
		}
		lo, hi = -1, 1
	case math.IsInf(b, 1):
		g = func(t float64) float64 {
			d := 1 - t
			return f(a+t/d) / (d * d)
		}
		lo, hi = 0, 1
	case math.IsInf(a, -1):
		g = func(t float64) float64 {
			return f(b-(1-t)/t) / (t * t)
		}
		lo, hi = 0, 1
	}
	in := &integrator{f: g, budget: integrateBudget}
	whole, err := in.rule(lo, hi)
	if math.IsNaN(whole) || math.IsInf(whole, 0) {
		return whole, err
	}
	atol := math.Max(IntegrateTol*math.Abs(whole), 1e-15)
	if err <= atol {
		return whole, err
	}
	return in.adapt(lo, hi, atol, integrateDepth)
}

type integrator struct {
	f      func(float64) float64
	budget int
}

// rule returns the 2n+1-point estimate over [a, b] and its difference
// from the n-point estimate.
func (in *integrator) rule(a, b float64) (float64, float64) {
	in.budget--
	i1 := quad.Fixed(in.f, a, b, integrateOrder, quad.Legendre{}, 0)
	i2 := quad.Fixed(in.f, a, b, 2*integrateOrder+1, quad.Legendre{}, 0)
	if math.IsNaN(i1) || math.IsNaN(i2) {
		return nan, nan
	}
	return i2, math.Abs(i2 - i1)
}

func (in *integrator) adapt(a, b, atol float64, depth int) (float64, float64) {
	m := a + (b-a)/2
	l, lerr := in.rule(a, m)
	r, rerr := in.rule(m, b)
	if math.IsNaN(l) || math.IsNaN(r) {
		return nan, nan
	}
	if depth > 0 && in.budget > 0 {
		if lerr > atol/2 {
			l, lerr = in.adapt(a, m, atol/2, depth-1)
		}
		if rerr > atol/2 && in.budget > 0 {
			r, rerr = in.adapt(m, b, atol/2, depth-1)
		}
	}
	return l + r, lerr + rerr
}
