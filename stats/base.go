// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/rand/v2"

	"github.com/aclements/go-distfit/vec"
	"github.com/cockroachdb/errors"
)

// base implements the argument handling shared by the continuous and
// discrete engines: parameter counting, broadcasting, validity
// masking and filling invalid elements with the bad value.
type base struct {
	name      string
	numShapes int
	hasScale  bool
	support   Support
	check     func(shapes []float64) (Support, bool)
	badValue  float64
}

// A point is a resolved, valid parameter tuple.
type point struct {
	shapes     []float64
	sup        Support
	loc, scale float64
}

// std returns the standardized variate of x.
func (p point) std(x float64) float64 {
	return (x - p.loc) / p.scale
}

// Name returns the name of the distribution family.
func (b *base) Name() string {
	return b.name
}

// NumShapes returns the number of shape parameters.
func (b *base) NumShapes() int {
	return b.numShapes
}

// NumParams returns the length of a full parameter tuple: the shape
// parameters followed by loc and, for continuous families, scale.
func (b *base) NumParams() int {
	if b.hasScale {
		return b.numShapes + 2
	}
	return b.numShapes + 1
}

// BadValue returns the value used for invalid arguments.
func (b *base) BadValue() float64 {
	return b.badValue
}

func (b *base) checkShapes(shapes []float64) (Support, bool) {
	if b.check != nil {
		return b.check(shapes)
	}
	return b.support, positiveShapes(shapes)
}

// resolve checks a full parameter tuple.
func (b *base) resolve(par []float64) (point, bool) {
	k := b.numShapes
	p := point{shapes: par[:k:k], loc: par[k], scale: 1}
	if b.hasScale {
		p.scale = par[k+1]
	}
	if !(p.scale > 0) || math.IsInf(p.scale, 1) || math.IsNaN(p.loc) || math.IsInf(p.loc, 0) {
		return p, false
	}
	sup, ok := b.checkShapes(p.shapes)
	p.sup = sup
	return p, ok
}

func (b *base) argsError(n int) error {
	what := "loc"
	if b.hasScale {
		what = "loc and scale"
	}
	return errors.Wrapf(ErrInvalidArgument, "%s: got %d parameters, want %d shape parameters followed by optional %s",
		b.name, n, b.numShapes, what)
}

// fullParams returns par padded with the default loc (0) and scale
// (1).
func (b *base) fullParams(par []float64) ([]float64, error) {
	k, n := b.numShapes, b.NumParams()
	if len(par) < k || len(par) > n {
		return nil, b.argsError(len(par))
	}
	full := make([]float64, n)
	copy(full, par)
	if b.hasScale && len(par) < k+2 {
		full[k+1] = 1
	}
	return full, nil
}

// broadcast returns the broadcast shape and the broadcast columns x,
// shapes..., loc[, scale], filling in default loc and scale.
func (b *base) broadcast(explicit []int, x vec.Array, args []vec.Array) ([]int, [][]float64, error) {
	k, n := b.numShapes, b.NumParams()
	if len(args) < k || len(args) > n {
		return nil, nil, b.argsError(len(args))
	}
	all := make([]vec.Array, 0, n+1)
	all = append(all, x)
	all = append(all, args...)
	if len(args) < k+1 {
		all = append(all, vec.Scalar(0))
	}
	if b.hasScale && len(all) < n+1 {
		all = append(all, vec.Scalar(1))
	}
	return vec.Broadcast(explicit, all...)
}

// eval evaluates f at every element of the broadcast of x and args.
// f receives the raw x and the resolved parameters and writes nout
// results to out. Elements where x is NaN or the parameters are
// invalid are set to the bad value in every output.
func (b *base) eval(x vec.Array, args []vec.Array, nout int, f func(x float64, p point, out []float64)) ([]vec.Array, error) {
	shape, cols, err := b.broadcast(nil, x, args)
	if err != nil {
		return nil, err
	}

	par := make([]float64, len(cols)-1)
	mask := make([]bool, vec.Size(shape))
	for i := range mask {
		if math.IsNaN(cols[0][i]) {
			continue
		}
		for j := range par {
			par[j] = cols[j+1][i]
		}
		_, mask[i] = b.resolve(par)
	}

	sel := vec.Select(mask, cols...)
	m := len(sel[0])
	vals := make([][]float64, nout)
	for o := range vals {
		vals[o] = make([]float64, m)
	}
	out := make([]float64, nout)
	for i := 0; i < m; i++ {
		for j := range par {
			par[j] = sel[j+1][i]
		}
		p, _ := b.resolve(par)
		f(sel[0][i], p, out)
		for o := range out {
			vals[o][i] = out[o]
		}
	}

	res := make([]vec.Array, nout)
	for o := range res {
		res[o] = vec.Fill(shape, mask, vals[o], b.badValue)
	}
	return res, nil
}

func (b *base) eval1(x vec.Array, args []vec.Array, f func(x float64, p point) float64) (vec.Array, error) {
	res, err := b.eval(x, args, 1, func(x float64, p point, out []float64) {
		out[0] = f(x, p)
	})
	if err != nil {
		return vec.Array{}, err
	}
	return res[0], nil
}

// evalParams is like eval1 for operations that depend only on the
// parameters.
func (b *base) evalParams(args []vec.Array, f func(p point) float64) (vec.Array, error) {
	return b.eval1(vec.Scalar(0), args, func(_ float64, p point) float64 {
		return f(p)
	})
}

// at evaluates f at a scalar x with a full parameter tuple, returning
// the bad value for invalid parameters.
func (b *base) at(x float64, par []float64, f func(x float64, p point) float64) float64 {
	if math.IsNaN(x) {
		return b.badValue
	}
	p, ok := b.resolve(par)
	if !ok {
		return b.badValue
	}
	return f(x, p)
}

// sample draws one variate per element of the broadcast of size and
// args. draw returns a standardized variate; a zero scale yields loc.
func (b *base) sample(size []int, args []vec.Array, draw func(p point) float64) (vec.Array, error) {
	shape, cols, err := b.broadcast(size, vec.Scalar(0), args)
	if err != nil {
		return vec.Array{}, err
	}
	k := b.numShapes
	par := make([]float64, len(cols)-1)
	out := make([]float64, vec.Size(shape))
	for i := range out {
		for j := range par {
			par[j] = cols[j+1][i]
		}
		degenerate := b.hasScale && par[k+1] == 0
		if degenerate {
			par[k+1] = 1
		}
		p, ok := b.resolve(par)
		switch {
		case !ok:
			out[i] = b.badValue
		case degenerate:
			out[i] = p.loc
		default:
			out[i] = draw(p)*p.scale + p.loc
		}
	}
	return vec.New(shape, out), nil
}

// rngSource lets a *rand.Rand drive the distuv samplers.
type rngSource struct{ *rand.Rand }

func (rngSource) Seed(uint64) {}

// uniform returns a uniform variate in the open interval (0, 1).
func uniform(rng *rand.Rand) float64 {
	for {
		if u := rng.Float64(); u > 0 {
			return u
		}
	}
}
