// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mathx implements special functions and numerical
// primitives not provided by the standard math package: binomial
// coefficients, the regularized incomplete beta function, bracketed
// root finding, adaptive quadrature, finite-difference derivatives,
// pseudo-inverses and derivative-free minimization.
//
// Most routines are thin wrappers around gonum that fix the settings
// the distribution engines in package stats rely on.
package mathx // import "github.com/aclements/go-distfit/mathx"

import (
	"math"

	"github.com/cockroachdb/errors"
)

var inf = math.Inf(1)
var nan = math.NaN()

// ErrNoBracket is returned by the root finders when f has the same
// sign at both ends of the search interval.
var ErrNoBracket = errors.New("f(a) and f(b) must have different signs")
