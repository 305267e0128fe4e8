// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stats implements families of continuous and discrete
// probability distributions and the estimation of their parameters.
//
// A distribution family is described by a Family (continuous) or a
// DiscreteFamily (discrete): a small set of optional primitive
// functions of the standardized variate, such as the density, the
// cumulative distribution or the quantile function. NewContinuous and
// NewDiscrete compile a family into an engine that derives any
// missing operation from the primitives it has, falling back to
// numerical integration, root finding or differentiation as
// required.
//
// Engine operations accept vec.Arrays and broadcast the variate
// against the shape, location and scale parameters. Invalid
// parameter combinations never cause an error: the affected elements
// of the result are set to the family's bad value (NaN by default).
// Errors are reserved for malformed calls, such as the wrong number
// of parameters; they match ErrInvalidArgument or ErrNotImplemented
// under errors.Is.
//
// Continuous.Fit estimates parameters by maximum likelihood or
// maximum product of spacings and returns a Fitted distribution with
// a covariance estimate, normal-approximation confidence bounds and a
// goodness-of-fit p-value. Fitted.Profile computes a profile
// log-likelihood for a parameter, a quantile or a survival
// probability, from which Profile.CI derives likelihood-ratio
// confidence intervals.
package stats // import "github.com/aclements/go-distfit/stats"

import (
	"math"

	"github.com/cockroachdb/errors"
)

var inf = math.Inf(1)
var nan = math.NaN()

// ErrInvalidArgument is returned for structurally malformed calls:
// wrong parameter counts, negative moment orders, mismatched fixed
// parameter vectors and similar programmer errors.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNotImplemented is returned when a distribution family does not
// support a requested operation.
var ErrNotImplemented = errors.New("not implemented")
