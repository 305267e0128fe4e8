// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"sort"

	"github.com/cockroachdb/errors"
)

var continuousFamilies = map[string]*Continuous{}

var discreteFamilies = map[string]*Discrete{}

func init() {
	for _, c := range []*Continuous{Norm, Expon, Gamma, WeibullMin, GenPareto, LogNorm, Uniform, Rayleigh} {
		continuousFamilies[c.Name()] = c
	}
	for _, d := range []*Discrete{Binom, Poisson, Geom, Bernoulli} {
		discreteFamilies[d.Name()] = d
	}
}

// ContinuousByName returns the built-in continuous family with the
// given name, such as "norm" or "genpareto".
func ContinuousByName(name string) (*Continuous, error) {
	if c, ok := continuousFamilies[name]; ok {
		return c, nil
	}
	return nil, errors.Wrapf(ErrInvalidArgument, "unknown continuous distribution %q", name)
}

// DiscreteByName returns the built-in discrete family with the given
// name, such as "binom".
func DiscreteByName(name string) (*Discrete, error) {
	if d, ok := discreteFamilies[name]; ok {
		return d, nil
	}
	return nil, errors.Wrapf(ErrInvalidArgument, "unknown discrete distribution %q", name)
}

// Names returns the sorted names of the built-in continuous and
// discrete families.
func Names() (continuous, discrete []string) {
	for name := range continuousFamilies {
		continuous = append(continuous, name)
	}
	for name := range discreteFamilies {
		discrete = append(discrete, name)
	}
	sort.Strings(continuous)
	sort.Strings(discrete)
	return
}
