// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mathx

import (
	"math"

	"gonum.org/v1/gonum/optimize"
)

// MinimizeResult is the outcome of Minimize.
type MinimizeResult struct {
	// X is the best point found and F is f(X).
	X []float64
	F float64

	// Status is the optimizer's termination status.
	Status optimize.Status

	// Err is the error reported by the optimizer, if any. X and F
	// are still the best point found.
	Err error
}

// Minimize minimizes f starting from x0 using the Nelder-Mead simplex
// method.
//
// The initial simplex perturbs each coordinate of x0 by 5% (or by
// 0.00025 for zero coordinates). Iteration stops when the best value
// improves by less than 1e-10 (absolute or relative) over 20·len(x0)
// consecutive iterations, or after 200·len(x0) iterations.
//
// f may return +Inf to reject a point; it should never return NaN.
func Minimize(f func([]float64) float64, x0 []float64) MinimizeResult {
	n := len(x0)
	if n == 0 {
		return MinimizeResult{X: nil, F: f(nil), Status: optimize.Success}
	}

	verts := make([][]float64, n+1)
	vals := make([]float64, n+1)
	verts[0] = append([]float64(nil), x0...)
	for i := 0; i < n; i++ {
		v := append([]float64(nil), x0...)
		if v[i] != 0 {
			v[i] *= 1.05
		} else {
			v[i] = 0.00025
		}
		verts[i+1] = v
	}
	for i, v := range verts {
		vals[i] = f(v)
	}

	p := optimize.Problem{Func: f}
	settings := &optimize.Settings{
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-10,
			Relative:   1e-10,
			Iterations: 20 * n,
		},
		MajorIterations: 200 * n,
		FuncEvaluations: 400 * n,
	}
	method := &optimize.NelderMead{InitialVertices: verts, InitialValues: vals}

	res, err := optimize.Minimize(p, x0, settings, method)
	if res == nil || !(res.F < math.Inf(1)) {
		// Nothing better than +Inf was found.
		return MinimizeResult{X: append([]float64(nil), x0...), F: vals[0], Status: optimize.Failure, Err: err}
	}
	return MinimizeResult{X: res.X, F: res.F, Status: res.Status, Err: err}
}
