// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mathx

import (
	"math"

	"github.com/cockroachdb/errors"
)

// DefaultXTol is the absolute tolerance used by Brent when xtol is 0.
const DefaultXTol = 1e-14

const brentRTol = 4 * 2.220446049250313e-16

const brentMaxIter = 100

// Brent finds a root of f in [a, b] using Brent's method. f(a) and
// f(b) must have opposite signs (or one of them must be zero);
// otherwise Brent returns an error matching ErrNoBracket.
//
// The result x satisfies |x - x₀| <= xtol + 4ε|x₀| for some true root
// x₀, unless the iteration limit is reached first, in which case the
// best estimate is returned with a nil error.
func Brent(f func(float64) float64, a, b, xtol float64) (float64, error) {
	if xtol <= 0 {
		xtol = DefaultXTol
	}
	fa, fb := f(a), f(b)
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if math.IsNaN(fa) || math.IsNaN(fb) || (fa > 0) == (fb > 0) {
		return nan, errors.Wrapf(ErrNoBracket, "f(%g)=%g, f(%g)=%g", a, fa, b, fb)
	}

	c, fc := a, fa
	d := b - a
	e := d
	for iter := 0; iter < brentMaxIter; iter++ {
		if (fb > 0) == (fc > 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		tol := 0.5 * (xtol + brentRTol*math.Abs(b))
		m := 0.5 * (c - b)
		if math.Abs(m) <= tol || fb == 0 {
			return b, nil
		}
		if math.Abs(e) >= tol && math.Abs(fa) > math.Abs(fb) {
			// Attempt interpolation.
			var p, q float64
			s := fb / fa
			if a == c {
				// Secant.
				p = 2 * m * s
				q = 1 - s
			} else {
				// Inverse quadratic.
				qq := fa / fc
				r := fb / fc
				p = s * (2*m*qq*(qq-r) - (b-a)*(r-1))
				q = (qq - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			} else {
				p = -p
			}
			if 2*p < math.Min(3*m*q-math.Abs(tol*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = m
				e = m
			}
		} else {
			// Bisection.
			d = m
			e = m
		}
		a, fa = b, fb
		if math.Abs(d) > tol {
			b += d
		} else if m > 0 {
			b += tol
		} else {
			b -= tol
		}
		fb = f(b)
	}
	return b, nil
}

// Bracket expands the interval [lo, hi] until f changes sign across
// it, without extending past [min, max]. It returns the expanded
// interval and whether a sign change was found.
//
// f is assumed to be non-decreasing, as is the case for a CDF minus a
// target probability. Each expansion doubles the distance of the
// offending end from the other end.
func Bracket(f func(float64) float64, lo, hi, min, max float64) (float64, float64, bool) {
	if lo > hi {
		lo, hi = hi, lo
	}
	lo, hi = math.Max(lo, min), math.Min(hi, max)
	for i := 0; i < 1000; i++ {
		flo, fhi := f(lo), f(hi)
		if math.IsNaN(flo) || math.IsNaN(fhi) {
			return lo, hi, false
		}
		if flo <= 0 && fhi >= 0 {
			return lo, hi, true
		}
		if flo > 0 {
			if lo <= min {
				return lo, hi, false
			}
			w := 2 * math.Max(hi-lo, 1)
			hi, lo = lo, math.Max(lo-w, min)
		} else {
			if hi >= max {
				return lo, hi, false
			}
			w := 2 * math.Max(hi-lo, 1)
			lo, hi = hi, math.Min(hi+w, max)
		}
	}
	return lo, hi, false
}
