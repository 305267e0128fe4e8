// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mathx

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// DerivativeStep is the step used by Derivative.
const DerivativeStep = 1e-5

// Derivative returns the first derivative of f at x using a central
// difference with step DerivativeStep.
func Derivative(f func(float64) float64, x float64) float64 {
	return fd.Derivative(f, x, &fd.Settings{
		Formula: fd.Central,
		Step:    DerivativeStep,
	})
}

// Gradient returns the gradient of f at x using central differences.
// Each coordinate is stepped relative to its magnitude so that
// parameters of very different scale are handled alike.
func Gradient(f func([]float64) float64, x []float64) []float64 {
	d := scales(x)
	g := func(u []float64) float64 {
		return f(unscale(u, x, d))
	}
	grad := fd.Gradient(nil, g, make([]float64, len(x)), &fd.Settings{Formula: fd.Central})
	for i := range grad {
		grad[i] /= d[i]
	}
	return grad
}

// Hessian returns the matrix of second partial derivatives of f at x,
// computed by central differences on a per-coordinate scaled copy of
// x. len(x) must be positive.
func Hessian(f func([]float64) float64, x []float64) *mat.SymDense {
	n := len(x)
	d := scales(x)
	g := func(u []float64) float64 {
		return f(unscale(u, x, d))
	}
	hu := mat.NewSymDense(n, nil)
	fd.Hessian(hu, g, make([]float64, n), &fd.Settings{Formula: fd.Central})

	h := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			h.SetSym(i, j, hu.At(i, j)/(d[i]*d[j]))
		}
	}
	return h
}

// scales returns the per-coordinate step multipliers for x.
func scales(x []float64) []float64 {
	d := make([]float64, len(x))
	for i, v := range x {
		d[i] = math.Max(math.Abs(v), 1e-2)
		if math.IsInf(d[i], 0) || math.IsNaN(d[i]) {
			d[i] = 1
		}
	}
	return d
}

// unscale maps u back to x0 + d·u.
func unscale(u, x0, d []float64) []float64 {
	x := make([]float64, len(u))
	for i := range u {
		x[i] = x0[i] + d[i]*u[i]
	}
	return x
}

// PInvRCond is the default relative cutoff for small singular values
// in PInv.
const PInvRCond = 1e-15

// PInv returns the Moore-Penrose pseudo-inverse of a. Singular values
// at most rcond times the largest singular value are treated as zero.
// If rcond <= 0, PInvRCond is used.
//
// PInv reports false if the singular value decomposition fails or a
// contains a non-finite element.
func PInv(a mat.Matrix, rcond float64) (*mat.Dense, bool) {
	if rcond <= 0 {
		rcond = PInvRCond
	}
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := a.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, false
			}
		}
	}

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, false
	}
	s := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	cutoff := 0.0
	if len(s) > 0 {
		cutoff = rcond * s[0]
	}
	inv := make([]float64, len(s))
	for i, sv := range s {
		if sv > cutoff {
			inv[i] = 1 / sv
		}
	}

	// pinv = V · diag(1/s) · Uᵀ
	vs := mat.DenseCopyOf(&v)
	vr, _ := vs.Dims()
	for i := 0; i < vr; i++ {
		for j := range inv {
			vs.Set(i, j, vs.At(i, j)*inv[j])
		}
	}
	var out mat.Dense
	out.Mul(vs, u.T())
	return &out, true
}
